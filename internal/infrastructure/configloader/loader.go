package configloader

import (
	"fmt"
	"os"
	"strings"

	"balance_resolver/internal/pkg/utils"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port                string `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"readTimeoutSeconds"`
	WriteTimeoutSeconds int    `yaml:"writeTimeoutSeconds"`
	IdleTimeoutSeconds  int    `yaml:"idleTimeoutSeconds"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
}

// HTTPClientConfig configures the outbound transport shared by all upstream clients.
type HTTPClientConfig struct {
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	UserAgent            string `yaml:"userAgent"`
}

// CoinGeckoConfig holds CoinGecko API specific configurations.
type CoinGeckoConfig struct {
	APIKey     string `yaml:"apiKey"`
	BaseURL    string `yaml:"baseURL"`
	VsCurrency string `yaml:"vsCurrency"`
}

// ProvidersConfig holds the base URL of every balance provider.
// Empty values fall back to the public mainnet endpoints.
type ProvidersConfig struct {
	BlockCypher string `yaml:"blockcypher"`
	Etherscan   string `yaml:"etherscan"`
	Blockfrost  string `yaml:"blockfrost"`
	SuiRPC      string `yaml:"suiRpc"`
	Helius      string `yaml:"helius"`
	AlgoIndexer string `yaml:"algoIndexer"`
	BscScan     string `yaml:"bscscan"`
	PolygonScan string `yaml:"polygonscan"`
	SnowTrace   string `yaml:"snowtrace"`
}

// RateLimitConfig controls the per-client limiter of the HTTP API.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	Burst             int     `yaml:"burst"`
	IdleExpiryMinutes int     `yaml:"idleExpiryMinutes"`
}

// SwaggerConfig holds configuration for Swagger UI.
type SwaggerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	SpecFile string `yaml:"specFile"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server      ServerConfig     `yaml:"server"`
	Logging     LoggingConfig    `yaml:"logging"`
	HTTP        HTTPClientConfig `yaml:"http"`
	CoinGecko   CoinGeckoConfig  `yaml:"coingecko"`
	Providers   ProvidersConfig  `yaml:"providers"`
	Credentials Credentials      `yaml:"credentials"`
	RateLimit   RateLimitConfig  `yaml:"rateLimit"`
	Swagger     SwaggerConfig    `yaml:"swagger"`
}

// Load reads the YAML configuration file from the given path, applies defaults
// and environment overrides.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// LoadOrDefault behaves like Load but falls back to defaults when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logrus.Warnf("Config file %s not found, using defaults and environment", path)
		return Parse(nil)
	}
	return Load(path)
}

// Parse unmarshals raw YAML and applies defaults and environment overrides.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	for _, name := range cfg.Credentials.Missing() {
		logrus.Warnf("Credential %q is not configured, lookups that need it will fail", name)
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	cfg.Server.Port = utils.GetEnv("SERVER_PORT", cfg.Server.Port)
	cfg.Logging.Level = utils.GetEnv("LOG_LEVEL", cfg.Logging.Level)
	cfg.CoinGecko.APIKey = utils.GetEnv("COINGECKO_API_KEY", cfg.CoinGecko.APIKey)
	cfg.Credentials.applyEnv()
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	cfg.Server.Port = strings.TrimPrefix(cfg.Server.Port, ":")
	if cfg.Server.ReadTimeoutSeconds <= 0 {
		cfg.Server.ReadTimeoutSeconds = 10
	}
	if cfg.Server.WriteTimeoutSeconds <= 0 {
		cfg.Server.WriteTimeoutSeconds = 60
	}
	if cfg.Server.IdleTimeoutSeconds <= 0 {
		cfg.Server.IdleTimeoutSeconds = 120
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.HTTP.RequestTimeoutMillis <= 0 {
		cfg.HTTP.RequestTimeoutMillis = 15000
	}
	if cfg.HTTP.UserAgent == "" {
		cfg.HTTP.UserAgent = "balance-resolver/1.0"
	}

	if cfg.CoinGecko.BaseURL == "" {
		cfg.CoinGecko.BaseURL = "https://api.coingecko.com/api/v3" // Default public API
	}
	if cfg.CoinGecko.VsCurrency == "" {
		cfg.CoinGecko.VsCurrency = "usd"
	}

	if cfg.RateLimit.RequestsPerSecond <= 0 {
		cfg.RateLimit.RequestsPerSecond = 2
	}
	if cfg.RateLimit.Burst <= 0 {
		cfg.RateLimit.Burst = 5
	}
	if cfg.RateLimit.IdleExpiryMinutes <= 0 {
		cfg.RateLimit.IdleExpiryMinutes = 10
	}

	if cfg.Swagger.SpecFile == "" {
		cfg.Swagger.SpecFile = "./docs/swagger.yaml"
	}
	// Provider base URLs are left empty on purpose: the network definitions carry the public defaults.
}
