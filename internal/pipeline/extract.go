package pipeline

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/westside-labs/rentscout/internal/model"
)

// Extraction caps.
const (
	minDescriptionLen = 50
	maxDescriptionLen = 500
	maxImageURLs      = 5
)

// intField is one ordered (pattern, plausibility) extraction rule for an
// integer field. The first pattern whose captured value passes the range
// check wins; implausible matches are skipped, not errors.
type intField struct {
	re       *regexp.Regexp
	min, max int
}

// floatField is the decimal counterpart of intField.
type floatField struct {
	re       *regexp.Regexp
	min, max float64
}

var priceRules = []intField{
	{regexp.MustCompile(`(?i)\$(\d{1,3}(?:,\d{3})*)\s*(?:/month|/mo|per month)`), 1000, 15000},
	{regexp.MustCompile(`\$(\d{1,3}(?:,\d{3})*)`), 1000, 15000},
	{regexp.MustCompile(`(?i)(\d{1,3}(?:,\d{3})*)\s*(?:/month|/mo)`), 1000, 15000},
}

var bedroomRules = []intField{
	{regexp.MustCompile(`(?i)(\d+)\s*(?:bed|br|bedroom)`), 0, 5},
	{regexp.MustCompile(`(?i)(\d+)bd`), 0, 5},
	{regexp.MustCompile(`(?i)(\d+)-bedroom`), 0, 5},
}

var bathroomRules = []floatField{
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:bath|ba|bathroom)`), 0.5, 5},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)ba`), 0.5, 5},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)-bathroom`), 0.5, 5},
}

var sqftRules = []intField{
	{regexp.MustCompile(`(?i)(\d{3,4})\s*(?:sq\s*ft|sqft|square feet)`), 300, 5000},
	{regexp.MustCompile(`(?i)(\d{1,3}(?:,\d{3}))\s*(?:sq\s*ft|sqft)`), 300, 5000},
}

// addressPatterns have no plausibility filter; the first match wins.
var addressPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+\s+[A-Za-z\s]+(?:Ave|Blvd|St|Drive|Dr|Road|Rd|Place|Pl|Way|Circle|Cir)[^,]*,\s*[A-Za-z\s]+,\s*CA\s*\d{5})`),
	regexp.MustCompile(`(?i)(\d+\s+[A-Za-z\s]+(?:Avenue|Boulevard|Street|Drive|Road|Place|Way|Circle)[^,]*)`),
}

// amenityKeywords maps each canonical amenity tag to the substring set
// that marks it present. Categories are independent; a listing may match
// many or none.
var amenityKeywords = map[model.Amenity][]string{
	model.AmenityWasherDryer:         {"washer", "dryer", "w/d", "in-unit laundry", "laundry"},
	model.AmenityAirConditioning:     {"air conditioning", "a/c", " ac ", "central air"},
	model.AmenityOutdoorSpace:        {"balcony", "patio", "deck", "outdoor", "terrace"},
	model.AmenityAboveGroundFloor:    {"second floor", "third floor", "upper floor", "top floor", "upstairs"},
	model.AmenityRenovated:           {"renovated", "remodeled", "updated kitchen", "newly upgraded"},
	model.AmenityNaturalLight:        {"natural light", "light-filled", "bright and airy", "sun-drenched"},
	model.AmenityParking:             {"parking", "garage", "carport"},
	model.AmenityPool:                {"pool", "swimming"},
	model.AmenityGym:                 {"gym", "fitness", "exercise"},
	model.AmenityDishwasher:          {"dishwasher"},
	model.AmenityHardwood:            {"hardwood", "wood floor"},
	model.AmenityStoneCounters:       {"granite", "quartz counter", "stone counter", "marble counter"},
	model.AmenityStainlessAppliances: {"stainless steel", "stainless appliance"},
}

var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\(\d{3}\)\s*\d{3}-\d{4})`),
	regexp.MustCompile(`(\d{3}-\d{3}-\d{4})`),
	regexp.MustCompile(`(\d{3}\.\d{3}\.\d{4})`),
}

var emailPattern = regexp.MustCompile(`([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)

// availabilityPatterns capture the raw phrase after "available" or
// "move-in". The value is returned unnormalized.
var availabilityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)available\s+(\w+\s+\d{1,2},?\s+\d{4})`),
	regexp.MustCompile(`(?i)available\s+(\d{1,2}/\d{1,2}/\d{2,4})`),
	regexp.MustCompile(`(?i)available\s+(now|immediately)`),
	regexp.MustCompile(`(?i)move.in\s+(\w+\s+\d{1,2})`),
}

// descriptionPatterns capture labeled description text up to a blank line.
var descriptionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)description[:\s]+(.*?)(?:\n\n|\r\n\r\n)`),
	regexp.MustCompile(`(?is)about this property[:\s]+(.*?)(?:\n\n|\r\n\r\n)`),
	regexp.MustCompile(`(?is)property details[:\s]+(.*?)(?:\n\n|\r\n\r\n)`),
}

var imagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<img[^>]+src=["']([^"']+)["']`),
	regexp.MustCompile(`(?i)background-image:\s*url\(["']?([^"')]+)["']?\)`),
	regexp.MustCompile(`(?i)data-src=["']([^"']+)["']`),
}

// ExtractAttributes pulls every structured field it can from raw listing
// content. Best-effort and total: a field whose patterns never match, or
// whose value fails its plausibility range, is left absent.
func ExtractAttributes(content, sourceURL string) model.ExtractedAttributes {
	attrs := model.ExtractedAttributes{
		SourceURL:   sourceURL,
		ExtractedAt: time.Now().UTC(),
	}

	attrs.Price = extractInt(content, priceRules)
	attrs.Bedrooms = extractInt(content, bedroomRules)
	attrs.Bathrooms = extractFloat(content, bathroomRules)
	attrs.SquareFeet = extractInt(content, sqftRules)
	attrs.Address = extractFirst(content, addressPatterns)
	attrs.Amenities = extractAmenities(content)
	attrs.Contact = extractContact(content)
	attrs.Availability = extractFirst(content, availabilityPatterns)
	attrs.Description = extractDescription(content)
	attrs.Images = extractImages(content, sourceURL)

	return attrs
}

func extractInt(content string, rules []intField) *int {
	for _, rule := range rules {
		m := rule.re.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		if err != nil {
			continue
		}
		if n >= rule.min && n <= rule.max {
			return &n
		}
	}
	return nil
}

func extractFloat(content string, rules []floatField) *float64 {
	for _, rule := range rules {
		m := rule.re.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		f, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if f >= rule.min && f <= rule.max {
			return &f
		}
	}
	return nil
}

func extractFirst(content string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(content); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

func extractAmenities(content string) []model.Amenity {
	lower := strings.ToLower(content)
	var found []model.Amenity
	for _, tag := range model.AllAmenities() {
		for _, kw := range amenityKeywords[tag] {
			if strings.Contains(lower, kw) {
				found = append(found, tag)
				break
			}
		}
	}
	return found
}

func extractContact(content string) model.Contact {
	var contact model.Contact
	for _, re := range phonePatterns {
		if m := re.FindStringSubmatch(content); m != nil {
			contact.Phone = m[1]
			break
		}
	}
	if m := emailPattern.FindStringSubmatch(content); m != nil {
		contact.Email = m[1]
	}
	return contact
}

func extractDescription(content string) string {
	for _, re := range descriptionPatterns {
		m := re.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		desc := strings.TrimSpace(m[1])
		if len(desc) <= minDescriptionLen {
			continue
		}
		if len(desc) > maxDescriptionLen {
			desc = desc[:maxDescriptionLen]
		}
		return desc
	}
	return ""
}

// extractImages collects img src, CSS background-image, and lazy-load
// data-src URLs. Absolute http(s) URLs are kept as-is, root-relative
// paths are resolved against the source URL, anything else is dropped.
// First-seen order is preserved; output is deduplicated and capped.
func extractImages(content, sourceURL string) []string {
	base, baseErr := url.Parse(sourceURL)

	var images []string
	seen := make(map[string]bool)
	add := func(u string) {
		if !seen[u] && len(images) < maxImageURLs {
			seen[u] = true
			images = append(images, u)
		}
	}

	for _, re := range imagePatterns {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			raw := m[1]
			switch {
			case strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://"):
				add(raw)
			case strings.HasPrefix(raw, "/") && baseErr == nil:
				ref, err := url.Parse(raw)
				if err != nil {
					continue
				}
				add(base.ResolveReference(ref).String())
			}
		}
	}
	return images
}
