package model

// Amenity is a canonical amenity tag attached to extracted listings and
// referenced by search criteria.
type Amenity string

const (
	AmenityWasherDryer         Amenity = "washer_dryer"
	AmenityAirConditioning     Amenity = "air_conditioning"
	AmenityOutdoorSpace        Amenity = "outdoor_space"
	AmenityAboveGroundFloor    Amenity = "above_ground_floor"
	AmenityRenovated           Amenity = "renovated"
	AmenityNaturalLight        Amenity = "natural_light"
	AmenityParking             Amenity = "parking"
	AmenityPool                Amenity = "pool"
	AmenityGym                 Amenity = "gym"
	AmenityDishwasher          Amenity = "dishwasher"
	AmenityHardwood            Amenity = "hardwood"
	AmenityStoneCounters       Amenity = "stone_counters"
	AmenityStainlessAppliances Amenity = "stainless_appliances"
)

// AllAmenities returns every known amenity tag in declaration order.
func AllAmenities() []Amenity {
	return []Amenity{
		AmenityWasherDryer, AmenityAirConditioning, AmenityOutdoorSpace,
		AmenityAboveGroundFloor, AmenityRenovated, AmenityNaturalLight,
		AmenityParking, AmenityPool, AmenityGym, AmenityDishwasher,
		AmenityHardwood, AmenityStoneCounters, AmenityStainlessAppliances,
	}
}

// TargetArea is one geographic search region: a zip code, a display
// name used in queries, and a priority rank used as a ranking tie-break
// (lower rank sorts first).
type TargetArea struct {
	ZipCode  string `json:"zip_code" yaml:"zip_code" mapstructure:"zip_code"`
	Name     string `json:"name" yaml:"name" mapstructure:"name"`
	Priority int    `json:"priority" yaml:"priority" mapstructure:"priority"`
}

// SearchCriteria is the immutable criteria set a run validates against.
type SearchCriteria struct {
	MinRent           int          `json:"min_rent" yaml:"min_rent" mapstructure:"min_rent"`
	MaxRent           int          `json:"max_rent" yaml:"max_rent" mapstructure:"max_rent"`
	Bedrooms          int          `json:"bedrooms" yaml:"bedrooms" mapstructure:"bedrooms"`
	MinBathrooms      float64      `json:"min_bathrooms" yaml:"min_bathrooms" mapstructure:"min_bathrooms"`
	MaxBathrooms      float64      `json:"max_bathrooms" yaml:"max_bathrooms" mapstructure:"max_bathrooms"`
	RequiredAmenities []Amenity    `json:"required_amenities" yaml:"required_amenities" mapstructure:"required_amenities"`
	PreferredFeatures []string     `json:"preferred_features" yaml:"preferred_features" mapstructure:"preferred_features"`
	TargetAreas       []TargetArea `json:"target_areas" yaml:"target_areas" mapstructure:"target_areas"`
}

// DefaultCriteria returns the stock West-LA criteria set used when no
// configuration overrides are present.
func DefaultCriteria() SearchCriteria {
	return SearchCriteria{
		MinRent:      4400,
		MaxRent:      5200,
		Bedrooms:     2,
		MinBathrooms: 1.5,
		MaxBathrooms: 2.0,
		RequiredAmenities: []Amenity{
			AmenityWasherDryer,
			AmenityAirConditioning,
			AmenityOutdoorSpace,
			AmenityAboveGroundFloor,
		},
		PreferredFeatures: []string{"renovated", "natural light", "dishwasher", "parking"},
		TargetAreas: []TargetArea{
			{ZipCode: "90066", Name: "Mar Vista", Priority: 1},
			{ZipCode: "90230", Name: "Culver City", Priority: 2},
			{ZipCode: "90232", Name: "Culver City", Priority: 3},
			{ZipCode: "90034", Name: "Palms", Priority: 4},
		},
	}
}

// AreaByZip finds the target area for a zip code. Returns a synthetic
// "West Los Angeles" area with the lowest priority when the zip is not
// configured, so ad-hoc zips still flow through the pipeline.
func (c SearchCriteria) AreaByZip(zip string) TargetArea {
	for _, a := range c.TargetAreas {
		if a.ZipCode == zip {
			return a
		}
	}
	return TargetArea{ZipCode: zip, Name: "West Los Angeles", Priority: len(c.TargetAreas) + 1}
}
