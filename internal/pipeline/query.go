package pipeline

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/westside-labs/rentscout/internal/model"
)

// Sources lists the configured listing platforms in query order.
var Sources = []string{
	"apartments_com",
	"zillow",
	"trulia",
	"hotpads",
	"westside_rentals",
	"realtor_com",
	"rentcafe",
}

// sourceDomains maps source names to the site: restriction domain.
var sourceDomains = map[string]string{
	"apartments_com":   "apartments.com",
	"zillow":           "zillow.com",
	"trulia":           "trulia.com",
	"hotpads":          "hotpads.com",
	"westside_rentals": "westsiderentals.com",
	"realtor_com":      "realtor.com",
	"rentcafe":         "rentcafe.com",
}

// sourceKeywords holds the per-source amenity and freshness keywords
// appended to bias results toward unit-level listings: in-unit laundry
// and cooling on the biggest aggregators, availability phrasing on the
// map-driven sites, and above-ground floor hints on the local
// specialists.
var sourceKeywords = map[string]string{
	"apartments_com":   `"washer dryer in unit" "air conditioning" balcony available`,
	"zillow":           `"for rent" apartment "in unit laundry"`,
	"trulia":           `"for rent" "available now" "upper floor"`,
	"hotpads":          `"for rent" available balcony`,
	"westside_rentals": `luxury apartment "west los angeles" "second floor" OR "upper floor"`,
	"realtor_com":      `apartment rental "for rent" "available now"`,
	"rentcafe":         `luxury apartment "in unit washer" balcony`,
}

var dollars = message.NewPrinter(language.English)

// ComposeQueries builds one search query per configured listing source
// for an area. Each query carries the site restriction, the area name or
// zip, the bedroom count, both dollar-formatted price bounds, and the
// source's keyword set. Deterministic, no network, no error cases.
func ComposeQueries(area model.TargetArea, criteria model.SearchCriteria) map[string]string {
	minRent := dollars.Sprintf("$%d", criteria.MinRent)
	maxRent := dollars.Sprintf("$%d", criteria.MaxRent)

	queries := make(map[string]string, len(Sources))
	for _, source := range Sources {
		queries[source] = fmt.Sprintf(
			`site:%s "%s" OR "%s" %d bedroom apartment rent %s %s %s`,
			sourceDomains[source], area.Name, area.ZipCode,
			criteria.Bedrooms, minRent, maxRent, sourceKeywords[source],
		)
	}
	return queries
}
