package main

import (
	"marketplace-service/src/internal/config"
	"marketplace-service/src/pkg/log"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return config.Migrate(viperConfig, log.GetLogger())
	},
}
