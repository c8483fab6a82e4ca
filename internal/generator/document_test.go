package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentValidate(t *testing.T) {
	t.Run("complete document", func(t *testing.T) {
		assert.NoError(t, validDocument().Validate())
	})

	cases := []struct {
		name    string
		mutate  func(*AdventureDocument)
		missing string
	}{
		{"no title", func(d *AdventureDocument) { d.Title = "" }, "title"},
		{"no description", func(d *AdventureDocument) { d.Description = "" }, "description"},
		{"no itinerary", func(d *AdventureDocument) { d.Itinerary = nil }, "itinerary"},
		{"no route addresses", func(d *AdventureDocument) {
			d.Route.StartAddress = ""
			d.Route.EndAddress = ""
		}, "route"},
		{"no weather", func(d *AdventureDocument) { d.WeatherForecast = WeatherForecast{} }, "weather_forecast"},
		{"no packing essentials", func(d *AdventureDocument) { d.PackingList.Essential = nil }, "packing_list"},
		{"no recommendations", func(d *AdventureDocument) {
			d.Recommendations.LocalTips = nil
			d.Recommendations.HiddenGems = nil
		}, "recommendations"},
		{"no estimated cost", func(d *AdventureDocument) { d.EstimatedCost = "" }, "estimated_cost"},
		{"no difficulty", func(d *AdventureDocument) { d.DifficultyLevel = "" }, "difficulty_level"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := validDocument()
			tc.mutate(doc)
			err := doc.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tc.missing)
		})
	}
}

func TestFallbackDocument(t *testing.T) {
	doc := FallbackDocument("Portland, OR", "full-day")

	assert.NoError(t, doc.Validate())
	assert.Equal(t, FallbackEstimatedCost, doc.EstimatedCost)
	assert.Contains(t, doc.Title, "Portland, OR")
	assert.Contains(t, doc.Description, "full-day")
	assert.Len(t, doc.Itinerary, 3)
	assert.Equal(t, "Portland, OR", doc.Route.StartAddress)
	assert.Equal(t, "easy", doc.DifficultyLevel)
}
