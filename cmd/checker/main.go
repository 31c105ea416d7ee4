package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"balance_resolver/internal/app/service"
	"balance_resolver/internal/infrastructure/configloader"
	"balance_resolver/internal/infrastructure/httpclient"
	clientprovider "balance_resolver/internal/infrastructure/network/client"
	networkdefinition "balance_resolver/internal/infrastructure/network/definition"
	"balance_resolver/internal/infrastructure/restapi"
	"balance_resolver/internal/pkg/logger"
	"balance_resolver/internal/pkg/metrics"
	"balance_resolver/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yml")
	cfg, err := configloader.LoadOrDefault(cfgPath)
	if err != nil {
		return err
	}

	zapLogger, err := logger.InitSlog(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer zapLogger.Sync() //nolint:errcheck

	logger.Info("Balance resolver is starting", "config", cfgPath)
	if cfg.Logging.Level == "debug" {
		logger.Debug("Debug mode enabled")
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics.MustRegisterMetrics()

	appLogger := logger.NewSlogAdapter(slog.Default())

	oracle := httpclient.NewCoinGeckoClient(
		cfg.CoinGecko.BaseURL,
		cfg.CoinGecko.APIKey,
		cfg.CoinGecko.VsCurrency,
		time.Duration(cfg.HTTP.RequestTimeoutMillis)*time.Millisecond,
		zapLogger.Named("CoinGeckoClient"),
	)

	registry, err := clientprovider.NewRegistry(cfg, oracle, zapLogger)
	if err != nil {
		return fmt.Errorf("failed to build fetcher registry: %w", err)
	}
	defer registry.Close()
	logger.Info("Fetcher registry initialized", "networks", registry.SupportedNetworks())

	resolver := service.NewBalanceService(registry, appLogger)
	validator := service.NewAddressValidator(appLogger)
	handler := restapi.NewBalanceHandler(resolver, validator, networkdefinition.NewDescriptorProvider(), appLogger)

	limiter := restapi.NewIPRateLimiter(
		cfg.RateLimit.RequestsPerSecond,
		cfg.RateLimit.Burst,
		time.Duration(cfg.RateLimit.IdleExpiryMinutes)*time.Minute,
	)

	router := restapi.SetupRouter(handler, restapi.RouterOptions{
		Logger:          zapLogger.Named("http"),
		RateLimiter:     limiter,
		EnableMetrics:   true,
		EnableSwagger:   cfg.Swagger.Enabled,
		SwaggerSpecFile: cfg.Swagger.SpecFile,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting HTTP server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("Graceful shutdown failed", zap.Error(err))
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Balance resolver stopped")
	return nil
}
