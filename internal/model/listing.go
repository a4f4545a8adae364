package model

import "time"

// RawResult is one search-engine hit as delivered by the search
// provider, before any classification.
type RawResult struct {
	Title   string    `json:"title"`
	Snippet string    `json:"snippet"`
	URL     string    `json:"url"`
	Source  string    `json:"source"`
	FoundAt time.Time `json:"found_at"`
}

// ListingCandidate is a RawResult that passed listing classification,
// tagged with the area it was found under and the classifier score.
type ListingCandidate struct {
	RawResult
	Area  TargetArea `json:"area"`
	Score int        `json:"score"`
}

// RankedApartment is the final externally visible unit: a candidate
// merged with its extracted attributes, validation result, and search
// metadata. Immutable once produced by the aggregator.
type RankedApartment struct {
	ListingCandidate
	Attributes ExtractedAttributes `json:"attributes"`
	Validation ValidationResult    `json:"validation"`
	SearchedAt time.Time           `json:"searched_at"`
}
