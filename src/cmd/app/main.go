package main

import (
	"fmt"
	"os"

	"marketplace-service/src/internal/config"
	"marketplace-service/src/pkg/log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var viperConfig *viper.Viper

var rootCmd = &cobra.Command{
	Use:   "marketplace",
	Short: "Job marketplace service",
	Long: `Job marketplace service connecting clients who post transport jobs with drivers who bid on them.

Commands:
  serve    - Run the HTTP API
  worker   - Run the background task worker
  migrate  - Create or update the database schema`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		viperConfig = config.NewViper()
		log.InitLogger(viperConfig)
	},
}

func main() {
	rootCmd.AddCommand(serveCmd, workerCmd, migrateCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
