package main

import (
	"context"
	"fmt"

	"marketplace-service/src/internal/config"
	"marketplace-service/src/pkg/log"

	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the background task worker",
	Long:  `Consume queued tasks such as the demo request notification email.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return work(cmd.Context())
	},
}

func work(ctx context.Context) error {
	logger := log.GetLogger()
	server := config.NewAsynqServer(viperConfig)
	mux := config.NewTaskMux(viperConfig, logger)

	if err := server.Start(mux); err != nil {
		logger.Error("worker", fmt.Sprintf("Failed to start worker: %v", err), "main", "")
		return err
	}
	logger.Info("worker", "worker started", "main", viperConfig.GetString("asynq.queue"))

	if ctx == nil {
		ctx = context.Background()
	}
	waitForSignal(ctx)

	logger.Info("worker", "worker is shutting down...", "graceful", "")
	server.Shutdown()
	return nil
}
