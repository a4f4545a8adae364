package pipeline

import (
	"regexp"
	"strings"

	"github.com/westside-labs/rentscout/internal/model"
)

// Classifier weights and threshold. The classifier is a fixed-weight
// heuristic, not a trained model; these are tuning constants.
const (
	indicatorWeight  = 1
	patternWeight    = 2
	urlPatternWeight = 3
	areaBoost        = 3
	acceptThreshold  = 4
)

// listingIndicators are keyword substrings counted (once each) in the
// lower-cased title+snippet.
var listingIndicators = []string{
	"bedroom", "bath", "apartment", "rent", "$", "sq ft", "sqft",
	"available", "lease", "studio", "1br", "2br", "3br", "unit",
	"floor plan", "amenities", "contact", "tour", "apply",
}

// listingPatterns are content shapes that suggest a concrete unit-level
// listing rather than marketing copy.
var listingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\d{3,5}(?:/month|/mo)?`),                                     // price with period
	regexp.MustCompile(`\d+\s*(?:bed|br|bedroom).*\d+\s*(?:bath|ba)`),                  // bed/bath combo
	regexp.MustCompile(`\d+\s*sq\s*ft`),                                                // square footage
	regexp.MustCompile(`available\s+(?:now|immediately|\d+/\d+)`),                      // availability date
	regexp.MustCompile(`(?:call|contact|phone).*\d{3}.*\d{3}.*\d{4}`),                  // phone number
	regexp.MustCompile(`(?:schedule|book|virtual).*(?:tour|showing|visit)`),            // tour scheduling
	regexp.MustCompile(`(?:washer|dryer|laundry|w/d)[^.]{0,20}in[\s-]?unit`),           // in-unit laundry
	regexp.MustCompile(`(?:balcony|patio|deck|terrace|rooftop)`),                       // outdoor space
	regexp.MustCompile(`(?:second|third|fourth|upper|top)\s+floor|upstairs\s+unit`),    // above ground floor
}

// unitURLPatterns are URL path shapes that suggest a single-unit page.
var unitURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/apartment.*\d+`),
	regexp.MustCompile(`/unit.*\d+`),
	regexp.MustCompile(`/listing.*\d+`),
	regexp.MustCompile(`/property.*\d+`),
	regexp.MustCompile(`/rent.*\d+.*bedroom`),
	regexp.MustCompile(`apartments\.com/.*-ca-\d{5}/.*\d+`),
	regexp.MustCompile(`zillow\.com/.*rental.*\d+`),
	regexp.MustCompile(`trulia\.com/.*rent.*\d+`),
}

// aggregationExcludes reject search/browse/index pages outright,
// regardless of how listing-like the snippet reads.
var aggregationExcludes = []string{
	"search", "browse", "filter", "results", "find", "directory",
	"sitemap", "category", "all-apartments", "listings-page", "city-guide",
}

// Classifier decides whether a search hit is a genuine unit-level
// listing. Safe for concurrent use; all state is read-only after New.
type Classifier struct {
	areaTokens []string
}

// NewClassifier builds a classifier that recognizes the criteria's
// target areas (name slugs and zip codes) for the URL area boost.
func NewClassifier(criteria model.SearchCriteria) *Classifier {
	var tokens []string
	seen := make(map[string]bool)
	for _, area := range criteria.TargetAreas {
		slug := strings.ReplaceAll(strings.ToLower(area.Name), " ", "-")
		for _, tok := range []string{slug, area.ZipCode} {
			if tok != "" && !seen[tok] {
				seen[tok] = true
				tokens = append(tokens, tok)
			}
		}
	}
	return &Classifier{areaTokens: tokens}
}

// Score computes the combined heuristic score for a search hit:
// indicator count ×1, content pattern matches ×2, unit URL matches ×3,
// plus the area boost when the URL mentions a target area.
func (c *Classifier) Score(title, snippet, url string) int {
	content := strings.ToLower(title + " " + snippet)
	lowerURL := strings.ToLower(url)

	indicators := 0
	for _, ind := range listingIndicators {
		if strings.Contains(content, ind) {
			indicators++
		}
	}

	patterns := 0
	for _, re := range listingPatterns {
		if re.MatchString(content) {
			patterns++
		}
	}

	urlMatches := 0
	for _, re := range unitURLPatterns {
		if re.MatchString(lowerURL) {
			urlMatches++
		}
	}

	score := indicators*indicatorWeight + patterns*patternWeight + urlMatches*urlPatternWeight
	for _, tok := range c.areaTokens {
		if strings.Contains(lowerURL, tok) {
			score += areaBoost
			break
		}
	}
	return score
}

// IsListing reports whether a search hit should be treated as a
// unit-level listing: not an aggregation page, and scored at or above
// the accept threshold. Deterministic for identical inputs.
func (c *Classifier) IsListing(title, snippet, url string) bool {
	lowerURL := strings.ToLower(url)
	for _, exclude := range aggregationExcludes {
		if strings.Contains(lowerURL, exclude) {
			return false
		}
	}
	return c.Score(title, snippet, url) >= acceptThreshold
}
