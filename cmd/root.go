package main

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/westside-labs/rentscout/internal/config"
	"github.com/westside-labs/rentscout/internal/store"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "rentscout",
	Short: "West-LA apartment search pipeline",
	Long:  "Searches rental listing sites across target zip codes, classifies hits as genuine unit-level listings, extracts structured attributes, scores them against fixed criteria, and ranks the survivors.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "root: load config")
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "root: init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// initStore opens the configured store backend.
func initStore(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, cfg.Store)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
