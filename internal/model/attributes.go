package model

import "time"

// Contact holds optional listing contact details. Phone and email are
// independent; either or both may be empty.
type Contact struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// ExtractedAttributes is the structured record pulled from raw listing
// content. Every field is independently optional: a nil pointer or
// empty value means the extractor found nothing plausible, not zero.
type ExtractedAttributes struct {
	Price        *int      `json:"price,omitempty"`
	Bedrooms     *int      `json:"bedrooms,omitempty"`
	Bathrooms    *float64  `json:"bathrooms,omitempty"`
	SquareFeet   *int      `json:"sqft,omitempty"`
	Address      string    `json:"address,omitempty"`
	Amenities    []Amenity `json:"amenities,omitempty"`
	Contact      Contact   `json:"contact"`
	Availability string    `json:"availability,omitempty"`
	Description  string    `json:"description,omitempty"`
	Images       []string  `json:"images,omitempty"`
	SourceURL    string    `json:"source_url"`
	ExtractedAt  time.Time `json:"extracted_at"`
}

// HasAmenity reports whether the canonical tag was extracted.
func (a ExtractedAttributes) HasAmenity(tag Amenity) bool {
	for _, am := range a.Amenities {
		if am == tag {
			return true
		}
	}
	return false
}
