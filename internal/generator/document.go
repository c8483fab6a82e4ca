package generator

import (
	"errors"
	"time"
)

// Request carries the trip parameters for one generation call.
type Request struct {
	Location       string
	Destination    string
	Duration       string // few-hours, half-day, full-day, few-days
	ActivityType   string // hiking, cycling, ..., or "surprise-me"
	IsRoundTrip    bool
	CustomActivity string
	StartTime      *time.Time
	IsImmediate    bool
}

type ItineraryItem struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
	Location string `json:"location"`
	Duration string `json:"duration"`
	Notes    string `json:"notes"`
}

type RouteInfo struct {
	StartAddress        string   `json:"start_address"`
	EndAddress          string   `json:"end_address"`
	Waypoints           []string `json:"waypoints"`
	MapEmbedURL         string   `json:"map_embed_url"`
	EstimatedDistance   string   `json:"estimated_distance"`
	EstimatedTravelTime string   `json:"estimated_travel_time"`
}

type WeatherForecast struct {
	Temperature      string `json:"temperature"`
	Conditions       string `json:"conditions"`
	Precipitation    string `json:"precipitation"`
	Wind             string `json:"wind"`
	UVIndex          string `json:"uv_index"`
	BestTimeOutdoors string `json:"best_time_outdoors"`
}

type PackingList struct {
	Essential       []string `json:"essential"`
	WeatherSpecific []string `json:"weather_specific"`
	Optional        []string `json:"optional"`
	FoodAndDrink    []string `json:"food_and_drink"`
}

type Recommendations struct {
	PhotoOpportunities []string `json:"photo_opportunities"`
	LocalTips          []string `json:"local_tips"`
	HiddenGems         []string `json:"hidden_gems"`
}

// AdventureDocument is the structured itinerary produced by the
// recommendation generator, validated before it is persisted.
type AdventureDocument struct {
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	ImageURL        string          `json:"image_url,omitempty"`
	Itinerary       []ItineraryItem `json:"itinerary"`
	Route           RouteInfo       `json:"route"`
	WeatherForecast WeatherForecast `json:"weather_forecast"`
	PackingList     PackingList     `json:"packing_list"`
	Recommendations Recommendations `json:"recommendations"`
	EstimatedCost   string          `json:"estimated_cost"`
	DifficultyLevel string          `json:"difficulty_level"`
	BestSeason      string          `json:"best_season"`
	Accessibility   string          `json:"accessibility"`
}

// Validate checks the fields the rest of the system depends on. A document
// failing validation is treated the same as a failed upstream call.
func (d *AdventureDocument) Validate() error {
	if d.Title == "" {
		return errors.New("missing required field: title")
	}
	if d.Description == "" {
		return errors.New("missing required field: description")
	}
	if len(d.Itinerary) == 0 {
		return errors.New("missing required field: itinerary")
	}
	if d.Route.StartAddress == "" && d.Route.EndAddress == "" {
		return errors.New("missing required field: route")
	}
	if d.WeatherForecast == (WeatherForecast{}) {
		return errors.New("missing required field: weather_forecast")
	}
	if len(d.PackingList.Essential) == 0 {
		return errors.New("missing required field: packing_list")
	}
	if len(d.Recommendations.LocalTips) == 0 && len(d.Recommendations.HiddenGems) == 0 {
		return errors.New("missing required field: recommendations")
	}
	if d.EstimatedCost == "" {
		return errors.New("missing required field: estimated_cost")
	}
	if d.DifficultyLevel == "" {
		return errors.New("missing required field: difficulty_level")
	}
	return nil
}
