package walletloader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	input := `# treasury wallets
0xabc

  bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh   # cold storage
`
	addresses, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse err=%v", err)
	}
	if len(addresses) != 2 || addresses[0] != "0xabc" || addresses[1] != "bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh" {
		t.Fatalf("addresses=%v", addresses)
	}
}

func TestParse_RejectsExtraFields(t *testing.T) {
	t.Parallel()

	if _, err := Parse(strings.NewReader("\nsui 0x1\n")); err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("err=%v", err)
	}
}

func TestLoadWallets(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "wallets.txt")
	if err := os.WriteFile(path, []byte("9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM\n"), 0o600); err != nil {
		t.Fatalf("write err=%v", err)
	}
	addresses, err := LoadWallets(path)
	if err != nil || len(addresses) != 1 {
		t.Fatalf("addresses=%v err=%v", addresses, err)
	}

	if _, err := LoadWallets(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("missing file should fail")
	}
}
