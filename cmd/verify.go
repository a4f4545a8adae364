package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/westside-labs/rentscout/internal/fetch"
	"github.com/westside-labs/rentscout/internal/pipeline"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <url>",
	Short: "Extract and score a single listing URL",
	Long: `Fetches one listing page, extracts its attributes, and scores it
against the configured criteria. Prints the attributes and validation
result as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	url := args[0]

	fetcher := fetch.New(fetch.Options{
		UserAgent:      cfg.Fetch.UserAgent,
		Timeout:        time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
		MaxRetries:     cfg.Fetch.MaxRetries,
		MaxBodyBytes:   cfg.Fetch.MaxBodyBytes,
		RequestsPerSec: cfg.Fetch.RequestsPerSec,
	})

	content, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return eris.Wrap(err, "verify: fetch listing")
	}
	if content == "" {
		return eris.Errorf("verify: listing unavailable: %s", url)
	}

	attrs := pipeline.ExtractAttributes(content, url)
	validation := pipeline.Validate(attrs, cfg.Criteria)

	out := struct {
		Attributes any `json:"attributes"`
		Validation any `json:"validation"`
	}{attrs, validation}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(out), "verify: encode result")
}
