package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/westside-labs/rentscout/internal/model"
)

func TestExtractAttributes_FullListing(t *testing.T) {
	content := `Beautiful Mar Vista apartment.
$4,800/month. 2 bed, 1.5 bath, 950 sq ft.
12345 Venice Blvd, Los Angeles, CA 90066
In-unit washer and dryer, central air, private balcony.
Available March 1, 2026. Call (310) 555-1234 or email leasing@example.com.`

	attrs := ExtractAttributes(content, "https://www.apartments.com/unit-1")

	require.NotNil(t, attrs.Price)
	assert.Equal(t, 4800, *attrs.Price)
	require.NotNil(t, attrs.Bedrooms)
	assert.Equal(t, 2, *attrs.Bedrooms)
	require.NotNil(t, attrs.Bathrooms)
	assert.InDelta(t, 1.5, *attrs.Bathrooms, 0.001)
	require.NotNil(t, attrs.SquareFeet)
	assert.Equal(t, 950, *attrs.SquareFeet)

	assert.Equal(t, "12345 Venice Blvd, Los Angeles, CA 90066", attrs.Address)
	assert.Equal(t, "March 1, 2026", attrs.Availability)
	assert.Equal(t, "(310) 555-1234", attrs.Contact.Phone)
	assert.Equal(t, "leasing@example.com", attrs.Contact.Email)
	assert.Equal(t, "https://www.apartments.com/unit-1", attrs.SourceURL)
	assert.False(t, attrs.ExtractedAt.IsZero())

	assert.Contains(t, attrs.Amenities, model.AmenityWasherDryer)
	assert.Contains(t, attrs.Amenities, model.AmenityAirConditioning)
	assert.Contains(t, attrs.Amenities, model.AmenityOutdoorSpace)
}

func TestExtractAttributes_EmptyContent(t *testing.T) {
	attrs := ExtractAttributes("", "https://example.com/listing-1")

	assert.Nil(t, attrs.Price)
	assert.Nil(t, attrs.Bedrooms)
	assert.Nil(t, attrs.Bathrooms)
	assert.Nil(t, attrs.SquareFeet)
	assert.Empty(t, attrs.Address)
	assert.Empty(t, attrs.Amenities)
	assert.Empty(t, attrs.Availability)
	assert.Empty(t, attrs.Images)
}

func TestExtractPrice_Plausibility(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    *int
	}{
		{"with period marker", "$4,800/month", intPtr(4800)},
		{"bare dollar amount", "rent is $5,200 monthly", intPtr(5200)},
		{"too low rejected", "$500/month", nil},
		{"too high rejected", "$20,000 per month", nil},
		{"no price", "call for pricing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractInt(tt.content, priceRules)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestExtractBedroomsAndBathrooms(t *testing.T) {
	beds := extractInt("spacious 2 bedroom unit", bedroomRules)
	require.NotNil(t, beds)
	assert.Equal(t, 2, *beds)

	baths := extractFloat("1.5 bath layout", bathroomRules)
	require.NotNil(t, baths)
	assert.InDelta(t, 1.5, *baths, 0.001)

	// Implausible values fall through every rule.
	assert.Nil(t, extractInt("9 bedroom mansion", bedroomRules))
	assert.Nil(t, extractFloat("7 bath estate", bathroomRules))
}

func TestExtractSquareFeet(t *testing.T) {
	sqft := extractInt("approximately 1,100 sqft", sqftRules)
	require.NotNil(t, sqft)
	assert.Equal(t, 1100, *sqft)

	assert.Nil(t, extractInt("tiny 150 sq ft closet", sqftRules))
}

func TestExtractAmenities_Categories(t *testing.T) {
	content := `Washer/dryer in unit, central air, private balcony, second floor,
newly renovated with tons of natural light, gated parking, pool and gym,
dishwasher, hardwood floors, granite counters, stainless steel appliances.`

	attrs := ExtractAttributes(content, "https://example.com/listing-1")

	for _, want := range model.AllAmenities() {
		assert.Contains(t, attrs.Amenities, want)
	}
}

func TestExtractDescription_Caps(t *testing.T) {
	short := "Description: too short.\n\nNext section"
	assert.Empty(t, extractDescription(short))

	body := strings.Repeat("Spacious and bright living area. ", 30)
	long := "Description: " + body + "\n\nNext section"
	desc := extractDescription(long)
	assert.NotEmpty(t, desc)
	assert.LessOrEqual(t, len(desc), maxDescriptionLen)
}

func TestExtractImages_ResolvesAndCaps(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 8; i++ {
		sb.WriteString(`<img src="https://cdn.example.com/photo-` + string(rune('a'+i)) + `.jpg">`)
	}
	sb.WriteString(`<img src="/photos/relative.jpg">`)
	sb.WriteString(`<img src="data:image/png;base64,AAAA">`)

	images := extractImages(sb.String(), "https://www.example.com/listing/1")

	assert.Len(t, images, maxImageURLs)
	for _, img := range images {
		assert.True(t, strings.HasPrefix(img, "https://"), "image %s", img)
	}
}

func TestExtractImages_RelativeAndDedup(t *testing.T) {
	content := `<img src="/photos/1.jpg">
<div style="background-image: url('/photos/1.jpg')"></div>
<img data-src="https://cdn.example.com/2.jpg">`

	images := extractImages(content, "https://www.example.com/listing/1")

	assert.Equal(t, []string{
		"https://www.example.com/photos/1.jpg",
		"https://cdn.example.com/2.jpg",
	}, images)
}

func intPtr(v int) *int { return &v }
