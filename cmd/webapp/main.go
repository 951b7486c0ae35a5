// Command webapp runs the employee and admin web application on top of a
// bill store service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/billhub/billhub/internal/config"
	"github.com/billhub/billhub/internal/infrastructure/client"
	"github.com/billhub/billhub/internal/infrastructure/storage"
	"github.com/billhub/billhub/internal/interfaces/web"
	"github.com/billhub/billhub/pkg/utils"
)

func main() {
	_ = gotenv.Load()

	configPath := os.Getenv("BILLED_CONFIG")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting web application",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Webapp.Port),
		zap.String("store", cfg.Store.BaseURL))

	store := client.New(client.Config{
		BaseURL: cfg.Store.BaseURL,
		Timeout: cfg.Store.Timeout,
	}, logger)

	sessions := storage.NewFileSessionStore(cfg.Storage.SessionPath, logger)

	app := web.NewApp(web.Config{
		Host:         cfg.Webapp.Host,
		Port:         cfg.Webapp.Port,
		ReadTimeout:  cfg.Webapp.ReadTimeout,
		WriteTimeout: cfg.Webapp.WriteTimeout,
	}, store, sessions, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Start(ctx); err != nil {
		logger.Fatal("Web application failed", zap.Error(err))
	}

	logger.Info("Web application exited successfully")
}
