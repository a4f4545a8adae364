package fetch

import (
	"context"
	"time"

	"github.com/westside-labs/rentscout/internal/model"
	"github.com/westside-labs/rentscout/pkg/serper"
)

// SerperProvider adapts the Serper client to the pipeline's
// SearchProvider contract.
type SerperProvider struct {
	client serper.Client
}

// NewSerperProvider wraps a Serper client.
func NewSerperProvider(client serper.Client) *SerperProvider {
	return &SerperProvider{client: client}
}

// Search runs the query and converts organic hits to RawResults.
func (p *SerperProvider) Search(ctx context.Context, query string, maxResults int) ([]model.RawResult, error) {
	organic, err := p.client.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	results := make([]model.RawResult, 0, len(organic))
	for _, o := range organic {
		results = append(results, model.RawResult{
			Title:   o.Title,
			Snippet: o.Snippet,
			URL:     o.Link,
			FoundAt: now,
		})
	}
	return results, nil
}
