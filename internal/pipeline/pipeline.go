// Package pipeline implements the apartment search core: query
// composition, listing classification, attribute extraction, criteria
// validation, and result aggregation. The scoring functions are pure;
// only the Runner touches the network, through its collaborators.
package pipeline

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/westside-labs/rentscout/internal/model"
)

// SearchProvider returns raw search-engine hits for a query. It may
// return fewer results than asked for.
type SearchProvider interface {
	Search(ctx context.Context, query string, maxResults int) ([]model.RawResult, error)
}

// ContentFetcher returns listing page content for a URL. Ordinary HTTP
// failures surface as empty content with a nil error; a non-nil error
// means the fetch machinery itself broke.
type ContentFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// RunnerOptions tunes pipeline orchestration.
type RunnerOptions struct {
	MaxResults  int           // per-query search result cap
	Concurrency int           // concurrent areas
	QueryDelay  time.Duration // courtesy delay between upstream calls
	MinScore    float64       // extra percentage floor on top of the rubric pass flag
}

// Runner drives the search pipeline across target areas. One search or
// fetch failure never aborts the batch: it is logged and the run moves
// to the next candidate or area.
type Runner struct {
	criteria   model.SearchCriteria
	searcher   SearchProvider
	fetcher    ContentFetcher
	classifier *Classifier
	limiter    *rate.Limiter
	opts       RunnerOptions
}

// NewRunner builds a Runner over the given collaborators.
func NewRunner(criteria model.SearchCriteria, searcher SearchProvider, fetcher ContentFetcher, opts RunnerOptions) *Runner {
	if opts.MaxResults <= 0 {
		opts.MaxResults = 10
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.QueryDelay <= 0 {
		opts.QueryDelay = 500 * time.Millisecond
	}
	return &Runner{
		criteria:   criteria,
		searcher:   searcher,
		fetcher:    fetcher,
		classifier: NewClassifier(criteria),
		limiter:    rate.NewLimiter(rate.Every(opts.QueryDelay), 1),
		opts:       opts,
	}
}

// Run searches every zip code, classifies and verifies candidates, and
// returns the deduplicated, ranked apartments that pass the criteria,
// together with run counters.
func (r *Runner) Run(ctx context.Context, zipCodes []string) ([]model.RankedApartment, model.RunResult, error) {
	start := time.Now()

	var mu sync.Mutex
	var all []model.RankedApartment
	var result model.RunResult

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Concurrency)

	for _, zip := range zipCodes {
		g.Go(func() error {
			area := r.criteria.AreaByZip(zip)
			apartments, stats := r.searchArea(gCtx, area)

			mu.Lock()
			all = append(all, apartments...)
			result.RawResults += stats.RawResults
			result.Candidates += stats.Candidates
			result.Extracted += stats.Extracted
			result.Passed += stats.Passed
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, result, err
	}

	ranked := Aggregate(all)
	result.Passed = len(ranked)
	result.DurationMS = time.Since(start).Milliseconds()

	zap.L().Info("search complete",
		zap.Int("zip_codes", len(zipCodes)),
		zap.Int("raw_results", result.RawResults),
		zap.Int("candidates", result.Candidates),
		zap.Int("passed", result.Passed),
		zap.Int64("duration_ms", result.DurationMS),
	)
	return ranked, result, nil
}

// searchArea runs every source query for one area and verifies the
// candidates that classify as listings.
func (r *Runner) searchArea(ctx context.Context, area model.TargetArea) ([]model.RankedApartment, model.RunResult) {
	log := zap.L().With(zap.String("zip", area.ZipCode), zap.String("area", area.Name))
	var stats model.RunResult

	candidates, rawCount := r.collectCandidates(ctx, area, log)
	stats.RawResults = rawCount
	stats.Candidates = len(candidates)

	var apartments []model.RankedApartment
	for _, cand := range candidates {
		if ctx.Err() != nil {
			break
		}
		if err := r.limiter.Wait(ctx); err != nil {
			break
		}

		content, err := r.fetcher.Fetch(ctx, cand.URL)
		if err != nil {
			log.Warn("fetch failed", zap.String("url", cand.URL), zap.Error(err))
			continue
		}
		if content == "" {
			log.Debug("listing unavailable", zap.String("url", cand.URL))
			continue
		}

		attrs := ExtractAttributes(content, cand.URL)
		stats.Extracted++

		validation := Validate(attrs, r.criteria)
		if !validation.Passes || validation.Percentage < r.opts.MinScore {
			log.Debug("candidate failed criteria",
				zap.String("url", cand.URL),
				zap.Float64("percentage", validation.Percentage),
			)
			continue
		}

		apartments = append(apartments, model.RankedApartment{
			ListingCandidate: cand,
			Attributes:       attrs,
			Validation:       validation,
			SearchedAt:       time.Now().UTC(),
		})
		log.Info("verified apartment",
			zap.String("url", cand.URL),
			zap.String("address", attrs.Address),
			zap.Float64("percentage", validation.Percentage),
		)
	}

	stats.Passed = len(apartments)
	return apartments, stats
}

// collectCandidates queries every source for the area and keeps the
// hits that classify as unit-level listings. Also returns the total raw
// hit count across sources.
func (r *Runner) collectCandidates(ctx context.Context, area model.TargetArea, log *zap.Logger) ([]model.ListingCandidate, int) {
	queries := ComposeQueries(area, r.criteria)

	var candidates []model.ListingCandidate
	rawCount := 0
	for _, source := range Sources {
		if ctx.Err() != nil {
			break
		}
		if err := r.limiter.Wait(ctx); err != nil {
			break
		}

		results, err := r.searcher.Search(ctx, queries[source], r.opts.MaxResults)
		if err != nil {
			log.Warn("search failed", zap.String("source", source), zap.Error(err))
			continue
		}

		rawCount += len(results)
		kept := 0
		for _, res := range results {
			res.Source = source
			if res.FoundAt.IsZero() {
				res.FoundAt = time.Now().UTC()
			}
			if !r.classifier.IsListing(res.Title, res.Snippet, res.URL) {
				continue
			}
			candidates = append(candidates, model.ListingCandidate{
				RawResult: res,
				Area:      area,
				Score:     r.classifier.Score(res.Title, res.Snippet, res.URL),
			})
			kept++
		}
		log.Debug("source searched",
			zap.String("source", source),
			zap.Int("results", len(results)),
			zap.Int("kept", kept),
		)
	}
	return candidates, rawCount
}
