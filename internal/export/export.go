// Package export writes ranked apartments to report files.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/westside-labs/rentscout/internal/model"
)

// headers is the column layout shared by the CSV and XLSX writers.
var headers = []string{
	"rank", "score_pct", "passes", "price", "bedrooms", "bathrooms",
	"sqft", "address", "area", "zip_code", "amenities", "availability",
	"phone", "email", "source", "url",
}

// row flattens one apartment into report cells. Absent numeric fields
// render as empty strings, not zeros.
func row(rank int, apt model.RankedApartment) []string {
	amenities := make([]string, 0, len(apt.Attributes.Amenities))
	for _, a := range apt.Attributes.Amenities {
		amenities = append(amenities, string(a))
	}

	return []string{
		strconv.Itoa(rank),
		fmt.Sprintf("%.1f", apt.Validation.Percentage),
		strconv.FormatBool(apt.Validation.Passes),
		intCell(apt.Attributes.Price),
		intCell(apt.Attributes.Bedrooms),
		floatCell(apt.Attributes.Bathrooms),
		intCell(apt.Attributes.SquareFeet),
		apt.Attributes.Address,
		apt.Area.Name,
		apt.Area.ZipCode,
		strings.Join(amenities, "|"),
		apt.Attributes.Availability,
		apt.Attributes.Contact.Phone,
		apt.Attributes.Contact.Email,
		apt.Source,
		apt.URL,
	}
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func floatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
