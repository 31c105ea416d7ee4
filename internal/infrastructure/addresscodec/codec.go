// Package addresscodec decodes addresses with each network's real encoding.
// It backs the strict validation mode; the regex check stays the default contract.
package addresscodec

import (
	"bytes"
	"crypto/sha512"
	"encoding/base32"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

var (
	ErrChecksum   = errors.New("address checksum mismatch")
	ErrWrongNet   = errors.New("address belongs to another network")
	ErrBadLength  = errors.New("decoded address has unexpected length")
	ErrBadPayload = errors.New("decoded address payload is malformed")
)

const (
	suiAddressLength      = 32
	algorandKeyLength     = 32
	algorandChecksumBytes = 4
	cardanoHRP            = "addr"
	cborArrayOfTwo        = 0x82
)

var algorandEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Verify decodes address with networkID's codec. Networks without a codec are accepted.
func Verify(address, networkID string) error {
	switch strings.ToLower(strings.TrimSpace(networkID)) {
	case "bitcoin":
		return verifyBitcoin(address)
	case "ethereum", "bnb-chain", "polygon", "avalanche":
		return verifyEVM(address)
	case "solana":
		return verifySolana(address)
	case "cardano":
		return verifyCardano(address)
	case "sui":
		return verifySui(address)
	case "algorand":
		return verifyAlgorand(address)
	default:
		return nil
	}
}

func verifyBitcoin(address string) error {
	addr, err := btcutil.DecodeAddress(address, &chaincfg.MainNetParams)
	if err != nil {
		return fmt.Errorf("bitcoin: %w", err)
	}
	if !addr.IsForNet(&chaincfg.MainNetParams) {
		return fmt.Errorf("bitcoin: %w", ErrWrongNet)
	}
	return nil
}

// verifyEVM enforces EIP-55 only for mixed-case input, as wallets do.
func verifyEVM(address string) error {
	if !common.IsHexAddress(address) {
		return fmt.Errorf("evm: %w", ErrBadPayload)
	}
	body := address[2:]
	if body == strings.ToLower(body) || body == strings.ToUpper(body) {
		return nil
	}
	if common.HexToAddress(address).Hex() != address {
		return fmt.Errorf("evm: %w", ErrChecksum)
	}
	return nil
}

func verifySolana(address string) error {
	if _, err := solana.PublicKeyFromBase58(address); err != nil {
		return fmt.Errorf("solana: %w", err)
	}
	return nil
}

// verifyCardano accepts Shelley bech32 and Byron base58 addresses.
func verifyCardano(address string) error {
	if strings.HasPrefix(address, cardanoHRP+"1") {
		hrp, data, err := bech32.DecodeNoLimit(address)
		if err != nil {
			return fmt.Errorf("cardano: %w", err)
		}
		if hrp != cardanoHRP {
			return fmt.Errorf("cardano: %w", ErrWrongNet)
		}
		if len(data) == 0 {
			return fmt.Errorf("cardano: %w", ErrBadLength)
		}
		return nil
	}

	raw, err := base58.Decode(address)
	if err != nil {
		return fmt.Errorf("cardano: %w", err)
	}
	// Byron addresses are a CBOR pair [tagged payload, crc32].
	if len(raw) < 2 || raw[0] != cborArrayOfTwo {
		return fmt.Errorf("cardano: %w", ErrBadPayload)
	}
	return nil
}

func verifySui(address string) error {
	raw, err := hexutil.Decode(address)
	if err != nil {
		return fmt.Errorf("sui: %w", err)
	}
	if len(raw) != suiAddressLength {
		return fmt.Errorf("sui: %w", ErrBadLength)
	}
	return nil
}

// verifyAlgorand checks the trailing 4 bytes against SHA-512/256 of the public key.
func verifyAlgorand(address string) error {
	raw, err := algorandEncoding.DecodeString(address)
	if err != nil {
		return fmt.Errorf("algorand: %w", err)
	}
	if len(raw) != algorandKeyLength+algorandChecksumBytes {
		return fmt.Errorf("algorand: %w", ErrBadLength)
	}
	key, checksum := raw[:algorandKeyLength], raw[algorandKeyLength:]
	sum := sha512.Sum512_256(key)
	if !bytes.Equal(sum[len(sum)-algorandChecksumBytes:], checksum) {
		return fmt.Errorf("algorand: %w", ErrChecksum)
	}
	return nil
}
