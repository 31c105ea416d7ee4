package walletloader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadWallets reads a wallet list file. See Parse for the format.
func LoadWallets(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open wallet file %s: %w", path, err)
	}
	defer file.Close()

	addresses, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("wallet file %s: %w", path, err)
	}
	return addresses, nil
}

// Parse reads one address per line. Blank lines and lines starting with # are skipped,
// as is anything after a # on an address line.
func Parse(r io.Reader) ([]string, error) {
	var addresses []string
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		switch len(fields) {
		case 0:
			continue
		case 1:
			addresses = append(addresses, fields[0])
		default:
			return nil, fmt.Errorf("line %d: expected a single address, got %d fields", lineNum, len(fields))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning wallet list: %w", err)
	}
	return addresses, nil
}
