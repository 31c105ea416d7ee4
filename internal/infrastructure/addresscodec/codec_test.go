package addresscodec

import (
	"crypto/sha512"
	"errors"
	"testing"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/mr-tron/base58"
)

func algorandAddress(key []byte) string {
	sum := sha512.Sum512_256(key)
	raw := append(append([]byte{}, key...), sum[len(sum)-4:]...)
	return algorandEncoding.EncodeToString(raw)
}

func TestVerify_Accepts(t *testing.T) {
	t.Parallel()

	shelley, err := bech32.EncodeFromBase256("addr", append([]byte{0x01}, make([]byte, 56)...))
	if err != nil {
		t.Fatalf("bech32 encode: %v", err)
	}
	byron := base58.Encode(append([]byte{0x82, 0xd8, 0x18}, make([]byte, 40)...))
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}

	cases := []struct{ network, address string }{
		{"bitcoin", "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"},
		{"bitcoin", "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4"},
		{"ethereum", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"},
		{"polygon", "0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359"},
		{"avalanche", "0xFB6916095CA1DF60BB79CE92CE3EA74C37C5D359"},
		{"solana", "11111111111111111111111111111111"},
		{"solana", "So11111111111111111111111111111111111111112"},
		{"cardano", shelley},
		{"cardano", byron},
		{"sui", "0x2d178b9704706393d2630fe6cf9415c2c50b181e9e3c7a977237bb2929f82d9c"},
		{"algorand", algorandAddress(key)},
		{"polkadot", "anything goes"},
	}
	for _, tc := range cases {
		if err := Verify(tc.address, tc.network); err != nil {
			t.Fatalf("Verify(%s, %s): %v", tc.address, tc.network, err)
		}
	}
}

func TestVerify_Rejects(t *testing.T) {
	t.Parallel()

	key := make([]byte, 32)
	good := algorandAddress(key)
	corrupted := []byte(good)
	if corrupted[10] == 'A' {
		corrupted[10] = 'B'
	} else {
		corrupted[10] = 'A'
	}

	cases := []struct{ network, address string }{
		{"bitcoin", "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNb"},
		{"bitcoin", "tb1qw508d6qejxtdg4y5r3zarvary0c5xw7kxpjzsx"},
		{"ethereum", "0x5aaeb6053F3E94C9b9A09f33669435E7Ef1BeAed"},
		{"ethereum", "0x1234"},
		{"solana", "1111"},
		{"cardano", "addr1qxyz"},
		{"cardano", "3J98t1WpEZ73CNmQviecrnyiWrnqRhWNLy"},
		{"sui", "0x2d17"},
		{"algorand", string(corrupted)},
		{"algorand", "AAAA"},
	}
	for _, tc := range cases {
		if err := Verify(tc.address, tc.network); err == nil {
			t.Fatalf("Verify(%s, %s) accepted a bad address", tc.address, tc.network)
		}
	}
}

func TestVerify_AlgorandChecksumError(t *testing.T) {
	t.Parallel()

	key := make([]byte, 32)
	key[0] = 1
	addr := algorandAddress(key)
	other := algorandAddress(make([]byte, 32))
	// Splice the checksum of another key onto this one.
	spliced := addr[:52] + other[52:]
	if spliced == addr {
		t.Skip("checksums collide")
	}
	if err := Verify(spliced, "algorand"); !errors.Is(err, ErrChecksum) {
		t.Fatalf("err=%v", err)
	}
}
