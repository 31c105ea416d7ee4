package configloader

import (
	"strings"

	"balance_resolver/internal/pkg/utils"
)

// Credential names used by the network definitions.
const (
	CredentialEtherscan   = "etherscan"
	CredentialBlockfrost  = "blockfrost"
	CredentialHelius      = "helius"
	CredentialBscScan     = "bscscan"
	CredentialPolygonScan = "polygonscan"
	CredentialSnowTrace   = "snowtrace"
)

// Credentials is the process-wide API key set. It is read once at startup and never mutated.
type Credentials struct {
	Etherscan   string `yaml:"etherscan"`
	Blockfrost  string `yaml:"blockfrost"`
	Helius      string `yaml:"helius"`
	BscScan     string `yaml:"bscscan"`
	PolygonScan string `yaml:"polygonscan"`
	SnowTrace   string `yaml:"snowtrace"`
}

// placeholders are the sentinel values shipped in example env files. They count as "not configured".
var placeholders = map[string]string{
	CredentialEtherscan:   "YourEtherscanApiKeyHere",
	CredentialBlockfrost:  "YourBlockfrostApiKeyHere",
	CredentialHelius:      "YourHeliusApiKeyHere",
	CredentialBscScan:     "YourBscScanApiKeyHere",
	CredentialPolygonScan: "YourPolygonScanApiKeyHere",
	CredentialSnowTrace:   "YourSnowTraceApiKeyHere",
}

var envNames = map[string]string{
	CredentialEtherscan:   "ETHERSCAN_API_KEY",
	CredentialBlockfrost:  "BLOCKFROST_API_KEY",
	CredentialHelius:      "HELIUS_API_KEY",
	CredentialBscScan:     "BSCSCAN_API_KEY",
	CredentialPolygonScan: "POLYGONSCAN_API_KEY",
	CredentialSnowTrace:   "SNOWTRACE_API_KEY",
}

// Placeholder returns the sentinel value for a credential name.
func Placeholder(name string) string {
	return placeholders[name]
}

// EnvName returns the environment variable that overrides a credential.
func EnvName(name string) string {
	return envNames[name]
}

func (c *Credentials) field(name string) *string {
	switch name {
	case CredentialEtherscan:
		return &c.Etherscan
	case CredentialBlockfrost:
		return &c.Blockfrost
	case CredentialHelius:
		return &c.Helius
	case CredentialBscScan:
		return &c.BscScan
	case CredentialPolygonScan:
		return &c.PolygonScan
	case CredentialSnowTrace:
		return &c.SnowTrace
	default:
		return nil
	}
}

func (c *Credentials) applyEnv() {
	for name, env := range envNames {
		if f := c.field(name); f != nil {
			*f = strings.TrimSpace(utils.GetEnv(env, *f))
		}
	}
}

// Lookup returns the configured key for name. The boolean is false when the key is
// absent, blank, or still set to its placeholder sentinel.
func (c Credentials) Lookup(name string) (string, bool) {
	f := c.field(name)
	if f == nil {
		return "", false
	}
	key := strings.TrimSpace(*f)
	if key == "" || key == placeholders[name] {
		return "", false
	}
	return key, true
}

// Missing lists the credential names that are not usable.
func (c Credentials) Missing() []string {
	names := []string{CredentialEtherscan, CredentialBlockfrost, CredentialHelius, CredentialBscScan, CredentialPolygonScan, CredentialSnowTrace}
	var missing []string
	for _, name := range names {
		if _, ok := c.Lookup(name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
