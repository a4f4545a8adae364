package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/westside-labs/rentscout/internal/model"
)

func TestClassifier_AcceptsConcreteListing(t *testing.T) {
	c := NewClassifier(model.DefaultCriteria())

	ok := c.IsListing(
		"2 Bed 2 Bath Apartment for Rent",
		"$4800/month, 950 sq ft, available now. Schedule a tour today.",
		"https://www.apartments.com/mar-vista-ca-90066/unit-4821",
	)
	assert.True(t, ok)
}

func TestClassifier_RejectsMarketingCopy(t *testing.T) {
	c := NewClassifier(model.DefaultCriteria())

	ok := c.IsListing(
		"Welcome to our community blog",
		"Read about the neighborhood and local events.",
		"https://example.com/blog/neighborhood",
	)
	assert.False(t, ok)
}

func TestClassifier_AggregationURLAlwaysRejected(t *testing.T) {
	c := NewClassifier(model.DefaultCriteria())

	// A perfectly listing-shaped snippet still loses to the URL exclusion.
	title := "2 Bed 2 Bath Apartment for Rent"
	snippet := "$4800/month, 950 sq ft, available now"

	tests := []struct {
		name string
		url  string
	}{
		{"search page", "https://www.apartments.com/search?zip=90066"},
		{"browse page", "https://www.zillow.com/browse/rentals"},
		{"results page", "https://www.trulia.com/results/90034"},
		{"city guide", "https://www.rentcafe.com/city-guide/los-angeles"},
		{"sitemap", "https://www.hotpads.com/sitemap.xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, c.IsListing(title, snippet, tt.url))
			// The score itself may be high; the exclusion is absolute.
			assert.GreaterOrEqual(t, c.Score(title, snippet, tt.url), acceptThreshold)
		})
	}
}

func TestClassifier_URLPatternsAndAreaBoost(t *testing.T) {
	c := NewClassifier(model.DefaultCriteria())

	// Content contributes nothing here; the URL alone must carry it.
	url := "https://www.apartments.com/mar-vista-ca-90066/unit-4821"
	score := c.Score("", "", url)

	// /unit.*\d+ and the apartments.com unit path both match (3 each),
	// and "mar-vista" is a target-area token (+3).
	assert.Equal(t, 2*urlPatternWeight+areaBoost, score)
	assert.True(t, c.IsListing("", "", url))
}

func TestClassifier_BelowThresholdRejected(t *testing.T) {
	c := NewClassifier(model.DefaultCriteria())

	// Two indicators, no patterns, no URL signal: score 2 < 4.
	ok := c.IsListing("Apartment living", "rent with us", "https://example.com/about")
	assert.False(t, ok)
	assert.Equal(t, 2*indicatorWeight, c.Score("Apartment living", "rent with us", "https://example.com/about"))
}

func TestClassifier_Deterministic(t *testing.T) {
	c := NewClassifier(model.DefaultCriteria())

	title := "2BR Apartment"
	snippet := "$4800/month available now, balcony, in-unit washer"
	url := "https://www.zillow.com/homedetails/rental-12345"

	first := c.Score(title, snippet, url)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Score(title, snippet, url))
	}
}

func TestClassifier_CaseInsensitive(t *testing.T) {
	c := NewClassifier(model.DefaultCriteria())

	lower := c.Score("2 bed 2 bath apartment", "available now $4800/month", "https://x.com/listing-99")
	upper := c.Score("2 BED 2 BATH APARTMENT", "AVAILABLE NOW $4800/month", "HTTPS://X.COM/LISTING-99")
	assert.Equal(t, lower, upper)
}
