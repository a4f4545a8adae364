package model

import "time"

// ValidationResult is the scored judgment of extracted attributes
// against a criteria set, on a fixed 100-point rubric.
type ValidationResult struct {
	Score       int                `json:"score"`
	MaxScore    int                `json:"max_score"`
	Percentage  float64            `json:"percentage"`
	Verdicts    map[string]string  `json:"verdicts"`
	Amenities   map[Amenity]string `json:"amenities"`
	Passes      bool               `json:"passes_criteria"`
	ValidatedAt time.Time          `json:"validated_at"`
}
