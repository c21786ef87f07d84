package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/adscout/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "adscout",
	Short: "Hyperlocal audience insights and ad channel matching",
	Long:  "Resolves campaign target areas into covered location zones, aggregates demographic and interest insights, and ranks local advertising channels against a business profile and budget.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
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
