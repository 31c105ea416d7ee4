package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"balance_resolver/internal/app/port"
	"balance_resolver/internal/app/service"
	"balance_resolver/internal/infrastructure/configloader"
	"balance_resolver/internal/infrastructure/httpclient"
	clientprovider "balance_resolver/internal/infrastructure/network/client"
	networkdefinition "balance_resolver/internal/infrastructure/network/definition"
	"balance_resolver/internal/pkg/logger"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// Runtime bundles what the commands need to do their work.
type Runtime struct {
	Resolver    port.BalanceResolver
	Logger      port.Logger
	Validator   port.AddressValidator
	Descriptors port.NetworkDescriptorProvider
	Close       func()
}

// Opener builds a Runtime. Tests swap it for one backed by stubs.
type Opener func(ctx context.Context, configPath string, verbose bool) (*Runtime, error)

// OpenRuntime wires the real fetchers, price oracle and validator from the config file.
// A missing config file is not an error; defaults and the environment apply.
func OpenRuntime(_ context.Context, configPath string, verbose bool) (*Runtime, error) {
	level := zapcore.WarnLevel
	logrus.SetLevel(logrus.WarnLevel)
	if verbose {
		level = zapcore.DebugLevel
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetOutput(os.Stderr)

	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.DisableStacktrace = true
	zapLogger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	slogLogger := slog.New(zapslog.NewHandler(zapLogger.Core(), zapslog.WithName("balance")))
	appLogger := logger.NewSlogAdapter(slogLogger)

	cfg, err := configloader.LoadOrDefault(configPath)
	if err != nil {
		_ = zapLogger.Sync()
		return nil, err
	}

	oracle := httpclient.NewCoinGeckoClient(
		cfg.CoinGecko.BaseURL,
		cfg.CoinGecko.APIKey,
		cfg.CoinGecko.VsCurrency,
		time.Duration(cfg.HTTP.RequestTimeoutMillis)*time.Millisecond,
		zapLogger.Named("CoinGeckoClient"),
	)

	registry, err := clientprovider.NewRegistry(cfg, oracle, zapLogger)
	if err != nil {
		_ = zapLogger.Sync()
		return nil, fmt.Errorf("failed to build fetcher registry: %w", err)
	}

	return &Runtime{
		Resolver:    service.NewBalanceService(registry, appLogger),
		Logger:      appLogger,
		Validator:   service.NewAddressValidator(appLogger),
		Descriptors: networkdefinition.NewDescriptorProvider(),
		Close: func() {
			registry.Close()
			_ = zapLogger.Sync()
		},
	}, nil
}
