package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/westside-labs/rentscout/internal/pipeline"
)

var composeCmd = &cobra.Command{
	Use:   "compose <zip>",
	Short: "Print the per-source search queries for a zip code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		area := cfg.Criteria.AreaByZip(args[0])
		queries := pipeline.ComposeQueries(area, cfg.Criteria)
		for _, source := range pipeline.Sources {
			fmt.Fprintf(os.Stdout, "%s:\n  %s\n", source, queries[source])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(composeCmd)
}
