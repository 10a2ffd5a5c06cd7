package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace-service/src/internal/config"
	"marketplace-service/src/pkg/log"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func serve() error {
	logger := log.GetLogger()
	if viperConfig.GetString("jwt.secret") == "" {
		return errors.New("jwt.secret must be configured")
	}

	config.NewKafkaConfig(viperConfig)
	store, closeStore := config.NewStore(viperConfig, logger)
	defer closeStore()
	refreshTokens := config.NewRefreshTokenRepository(viperConfig, logger)
	producer := config.NewKafkaProducer(viperConfig, logger)
	if producer != nil {
		defer producer.Close()
	}
	asynqClient := config.NewAsynqClient(viperConfig)
	defer asynqClient.Close()

	validate := config.NewValidator(viperConfig)
	app := config.NewFiber(viperConfig)
	config.Bootstrap(&config.BootstrapConfig{
		Store:         store,
		RefreshTokens: refreshTokens,
		App:           app,
		Log:           logger,
		Validate:      validate,
		Config:        viperConfig,
		Producer:      producer,
		Storage:       config.NewBlobStorage(viperConfig, logger),
		Payments:      config.NewPaymentProvider(viperConfig, logger),
		Mailer:        config.NewMailDispatcher(viperConfig, asynqClient, logger),
	})

	webPort := viperConfig.GetInt("web.port")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	listenErr := make(chan error, 1)
	go func() {
		if err := app.Listen(fmt.Sprintf(":%d", webPort)); err != nil {
			listenErr <- err
			cancel()
		}
	}()

	waitForSignal(ctx)
	select {
	case err := <-listenErr:
		logger.Error("main", fmt.Sprintf("Failed to start server: %v", err), "main", "")
		return err
	default:
	}

	logger.Info("main", "Server marketplace-service is shutting down...", "graceful", "")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		logger.Error("main", fmt.Sprintf("Error during shutdown: %v", err), "graceful", "")
	}
	logger.Info("main", fmt.Sprintf("Server %s stopped", viperConfig.GetString("app.name")), "graceful", "")
	return nil
}

// waitForSignal blocks until the process is asked to stop or ctx ends.
func waitForSignal(ctx context.Context) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)
	select {
	case <-quit:
	case <-ctx.Done():
	}
}
