package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/westside-labs/rentscout/internal/model"
)

func TestComposeQueries_OnePerSource(t *testing.T) {
	criteria := model.DefaultCriteria()
	queries := ComposeQueries(criteria.TargetAreas[0], criteria)

	require.Len(t, queries, len(Sources))
	for _, source := range Sources {
		assert.Contains(t, queries, source)
		assert.NotEmpty(t, queries[source])
	}
}

func TestComposeQueries_CarriesAreaAndCriteria(t *testing.T) {
	criteria := model.DefaultCriteria()
	area := model.TargetArea{ZipCode: "90066", Name: "Mar Vista", Priority: 1}

	queries := ComposeQueries(area, criteria)

	for _, source := range Sources {
		q := queries[source]
		assert.Contains(t, q, "site:", "source %s", source)
		assert.Contains(t, q, `"Mar Vista"`, "source %s", source)
		assert.Contains(t, q, `"90066"`, "source %s", source)
		assert.Contains(t, q, "2 bedroom", "source %s", source)
		assert.Contains(t, q, "$4,400", "source %s", source)
		assert.Contains(t, q, "$5,200", "source %s", source)
	}
}

func TestComposeQueries_SiteRestrictions(t *testing.T) {
	criteria := model.DefaultCriteria()
	queries := ComposeQueries(criteria.TargetAreas[0], criteria)

	assert.Contains(t, queries["apartments_com"], "site:apartments.com")
	assert.Contains(t, queries["zillow"], "site:zillow.com")
	assert.Contains(t, queries["trulia"], "site:trulia.com")
	assert.Contains(t, queries["hotpads"], "site:hotpads.com")
	assert.Contains(t, queries["westside_rentals"], "site:westsiderentals.com")
	assert.Contains(t, queries["realtor_com"], "site:realtor.com")
	assert.Contains(t, queries["rentcafe"], "site:rentcafe.com")
}

func TestComposeQueries_Deterministic(t *testing.T) {
	criteria := model.DefaultCriteria()
	area := criteria.TargetAreas[1]

	first := ComposeQueries(area, criteria)
	second := ComposeQueries(area, criteria)
	assert.Equal(t, first, second)
}
