package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/westside-labs/rentscout/internal/model"
)

const listingURL = "https://www.apartments.com/mar-vista-ca-90066/unit-4821"

const listingContent = `$4,800/month. 2 bed, 1.5 bath, 950 sq ft.
In-unit washer and dryer, central air, private balcony. Available now.`

type mockSearcher struct {
	mu      sync.Mutex
	queries []string
	results []model.RawResult
	err     error
}

func (m *mockSearcher) Search(_ context.Context, query string, _ int) ([]model.RawResult, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()
	return m.results, m.err
}

type mockFetcher struct {
	mu      sync.Mutex
	fetched []string
	content map[string]string
	err     error
}

func (m *mockFetcher) Fetch(_ context.Context, url string) (string, error) {
	m.mu.Lock()
	m.fetched = append(m.fetched, url)
	m.mu.Unlock()
	return m.content[url], m.err
}

func testOptions() RunnerOptions {
	return RunnerOptions{MaxResults: 10, Concurrency: 2, QueryDelay: time.Millisecond}
}

func TestRunner_EndToEnd(t *testing.T) {
	criteria := model.DefaultCriteria()
	searcher := &mockSearcher{
		results: []model.RawResult{
			{
				Title:   "2 Bed 1.5 Bath Apartment in Mar Vista",
				Snippet: "$4,800/month, 950 sq ft, available now",
				URL:     listingURL,
			},
			{
				Title:   "Find apartments near you",
				Snippet: "Browse thousands of rentals",
				URL:     "https://www.apartments.com/search?zip=90066",
			},
		},
	}
	fetcher := &mockFetcher{content: map[string]string{listingURL: listingContent}}

	runner := NewRunner(criteria, searcher, fetcher, testOptions())
	ranked, result, err := runner.Run(context.Background(), []string{"90066"})
	require.NoError(t, err)

	// Every source query returns the same pair; the aggregation page is
	// rejected by classification and the listing dedupes to one.
	require.Len(t, ranked, 1)
	assert.Equal(t, listingURL, ranked[0].URL)
	assert.Equal(t, "Mar Vista", ranked[0].Area.Name)
	assert.True(t, ranked[0].Validation.Passes)
	assert.Equal(t, 100.0, ranked[0].Validation.Percentage)
	require.NotNil(t, ranked[0].Attributes.Price)
	assert.Equal(t, 4800, *ranked[0].Attributes.Price)

	assert.Equal(t, 2*len(Sources), result.RawResults)
	assert.Equal(t, len(Sources), result.Candidates)
	assert.Equal(t, len(Sources), result.Extracted)
	assert.Equal(t, 1, result.Passed)
	assert.Len(t, searcher.queries, len(Sources))
}

func TestRunner_SearchFailureDoesNotAbort(t *testing.T) {
	searcher := &mockSearcher{err: errors.New("upstream unavailable")}
	fetcher := &mockFetcher{content: map[string]string{}}

	runner := NewRunner(model.DefaultCriteria(), searcher, fetcher, testOptions())
	ranked, result, err := runner.Run(context.Background(), []string{"90066", "90034"})
	require.NoError(t, err)

	assert.Empty(t, ranked)
	assert.Equal(t, 0, result.RawResults)
	assert.Equal(t, 0, result.Passed)
	// Both areas still queried every source.
	assert.Len(t, searcher.queries, 2*len(Sources))
}

func TestRunner_UnavailableListingSkipped(t *testing.T) {
	searcher := &mockSearcher{
		results: []model.RawResult{{
			Title:   "2 Bed 1.5 Bath Apartment in Mar Vista",
			Snippet: "$4,800/month, 950 sq ft, available now",
			URL:     listingURL,
		}},
	}
	fetcher := &mockFetcher{content: map[string]string{}} // empty content: gone

	runner := NewRunner(model.DefaultCriteria(), searcher, fetcher, testOptions())
	ranked, result, err := runner.Run(context.Background(), []string{"90066"})
	require.NoError(t, err)

	assert.Empty(t, ranked)
	assert.Equal(t, len(Sources), result.Candidates)
	assert.Equal(t, 0, result.Extracted)
}

func TestRunner_MinScoreFloor(t *testing.T) {
	// Listing content missing outdoor space scores 90: passing, but under
	// a 95 floor.
	content := `$4,800/month. 2 bed, 1.5 bath, 950 sq ft.
In-unit washer and dryer, central air. Available now.`

	searcher := &mockSearcher{
		results: []model.RawResult{{
			Title:   "2 Bed 1.5 Bath Apartment in Mar Vista",
			Snippet: "$4,800/month, 950 sq ft, available now",
			URL:     listingURL,
		}},
	}
	fetcher := &mockFetcher{content: map[string]string{listingURL: content}}

	opts := testOptions()
	opts.MinScore = 95
	runner := NewRunner(model.DefaultCriteria(), searcher, fetcher, opts)

	ranked, result, err := runner.Run(context.Background(), []string{"90066"})
	require.NoError(t, err)
	assert.Empty(t, ranked)
	assert.Equal(t, len(Sources), result.Extracted)
}

func TestRunner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	searcher := &mockSearcher{}
	fetcher := &mockFetcher{}
	runner := NewRunner(model.DefaultCriteria(), searcher, fetcher, testOptions())

	ranked, _, err := runner.Run(ctx, []string{"90066"})
	require.NoError(t, err)
	assert.Empty(t, ranked)
	assert.Empty(t, searcher.queries)
}

func TestNewRunner_Defaults(t *testing.T) {
	runner := NewRunner(model.DefaultCriteria(), &mockSearcher{}, &mockFetcher{}, RunnerOptions{})

	assert.Equal(t, 10, runner.opts.MaxResults)
	assert.Equal(t, 1, runner.opts.Concurrency)
	assert.Equal(t, 500*time.Millisecond, runner.opts.QueryDelay)
}
