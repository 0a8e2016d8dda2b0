package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/estimate-intake/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "estimate-intake",
	Short: "Lead-intake estimate service",
	Long:  "Accepts property-service estimate requests, enriches them via third-party lookups, prices the work, writes a summary document, and pushes records into the CRM.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Optional .env for local development.
		_ = godotenv.Load()

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
