package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/westside-labs/rentscout/internal/fetch"
	"github.com/westside-labs/rentscout/internal/model"
	"github.com/westside-labs/rentscout/internal/pipeline"
	"github.com/westside-labs/rentscout/pkg/serper"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run the apartment search pipeline",
	Long: `Searches every configured listing source for each target zip code,
classifies and verifies candidate listings, and stores the ranked
apartments that pass the criteria.

Examples:
  # Search the configured target areas
  rentscout search

  # Search specific zips with a score floor and write a CSV
  rentscout search --zips 90066,90034 --min-score 85 --out results.csv`,
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.String("zips", "", "comma-separated zip codes (default: configured target areas)")
	f.Int("max-results", 0, "per-query search result cap (default: serper.max_results)")
	f.Float64("min-score", 0, "minimum validation percentage (on top of the pass threshold)")
	f.Int("concurrency", 0, "concurrent areas (default: search.concurrency)")
	f.String("out", "", "write results to this file")
	f.String("format", "csv", "output format for --out: csv or xlsx")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if cfg.Serper.Key == "" {
		return eris.New("search: serper.key is not configured (set RENTSCOUT_SERPER_KEY)")
	}

	zipCodes := targetZips(cmd)
	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults <= 0 {
		maxResults = cfg.Serper.MaxResults
	}
	minScore, _ := cmd.Flags().GetFloat64("min-score")
	if minScore <= 0 {
		minScore = cfg.Search.MinScore
	}
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if concurrency <= 0 {
		concurrency = cfg.Search.Concurrency
	}

	st, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck
	if err := st.Migrate(ctx); err != nil {
		return err
	}

	run, err := st.CreateRun(ctx, cfg.Criteria, zipCodes)
	if err != nil {
		return err
	}
	if err := st.UpdateRunStatus(ctx, run.ID, model.RunStatusSearching); err != nil {
		return err
	}

	searcher := fetch.NewSerperProvider(serper.NewClient(cfg.Serper.Key, serper.WithBaseURL(cfg.Serper.BaseURL)))
	fetcher := fetch.New(fetch.Options{
		UserAgent:      cfg.Fetch.UserAgent,
		Timeout:        time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
		MaxRetries:     cfg.Fetch.MaxRetries,
		MaxBodyBytes:   cfg.Fetch.MaxBodyBytes,
		RequestsPerSec: cfg.Fetch.RequestsPerSec,
	})

	runner := pipeline.NewRunner(cfg.Criteria, searcher, fetcher, pipeline.RunnerOptions{
		MaxResults:  maxResults,
		Concurrency: concurrency,
		QueryDelay:  time.Duration(cfg.Search.QueryDelaySecs * float64(time.Second)),
		MinScore:    minScore,
	})

	zap.L().Info("starting search", zap.String("run_id", run.ID), zap.Strings("zips", zipCodes))

	apartments, result, err := runner.Run(ctx, zipCodes)
	if err != nil {
		result.Error = err.Error()
		_ = st.UpdateRunResult(ctx, run.ID, &result)
		return eris.Wrap(err, "search: pipeline run")
	}

	if err := st.SaveApartments(ctx, run.ID, apartments); err != nil {
		return err
	}
	if err := st.UpdateRunResult(ctx, run.ID, &result); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Run %s: %d raw results, %d candidates, %d passed\n",
		run.ID, result.RawResults, result.Candidates, result.Passed)
	for i, apt := range apartments {
		fmt.Fprintf(os.Stdout, "%2d. %5.1f%%  %s  %s\n",
			i+1, apt.Validation.Percentage, apt.Area.Name, apt.URL)
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		return nil
	}
	format, _ := cmd.Flags().GetString("format")
	return writeReport(out, format, apartments)
}

// targetZips resolves the zip list from the --zips flag or the
// configured target areas.
func targetZips(cmd *cobra.Command) []string {
	raw, _ := cmd.Flags().GetString("zips")
	if raw != "" {
		var zips []string
		for _, z := range strings.Split(raw, ",") {
			if z = strings.TrimSpace(z); z != "" {
				zips = append(zips, z)
			}
		}
		return zips
	}
	zips := make([]string, 0, len(cfg.Criteria.TargetAreas))
	for _, area := range cfg.Criteria.TargetAreas {
		zips = append(zips, area.ZipCode)
	}
	return zips
}
