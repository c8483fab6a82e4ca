package adventure

import (
	"encoding/json"
	"time"

	"github.com/hedlaron/microadventures/internal/generator"
	"github.com/hedlaron/microadventures/internal/models"
)

// GenerateAdventureInput carries the trip parameters for a generation
// request.
type GenerateAdventureInput struct {
	Location       string     `json:"location" binding:"required"`
	Destination    string     `json:"destination"`
	Duration       string     `json:"duration" binding:"required,oneof=few-hours half-day full-day few-days"`
	ActivityType   string     `json:"activity_type" binding:"required"`
	IsRoundTrip    bool       `json:"is_round_trip"`
	CustomActivity string     `json:"custom_activity"`
	StartTime      *time.Time `json:"start_time"`
	IsImmediate    bool       `json:"is_immediate"`
}

// AdventureResponse is the owner-facing view of an adventure, including the
// sharing state.
type AdventureResponse struct {
	ID              uint                      `json:"id"`
	Title           string                    `json:"title"`
	Description     string                    `json:"description"`
	ImageURL        string                    `json:"image_url,omitempty"`
	Location        string                    `json:"location"`
	Destination     string                    `json:"destination,omitempty"`
	Duration        string                    `json:"duration"`
	ActivityType    string                    `json:"activity_type"`
	IsRoundTrip     bool                      `json:"is_round_trip"`
	Itinerary       []generator.ItineraryItem `json:"itinerary"`
	Route           generator.RouteInfo       `json:"route"`
	WeatherForecast generator.WeatherForecast `json:"weather_forecast"`
	PackingList     generator.PackingList     `json:"packing_list"`
	Recommendations generator.Recommendations `json:"recommendations"`
	EstimatedCost   string                    `json:"estimated_cost,omitempty"`
	DifficultyLevel string                    `json:"difficulty_level,omitempty"`
	BestSeason      string                    `json:"best_season,omitempty"`
	Accessibility   string                    `json:"accessibility,omitempty"`
	IsPublic        bool                      `json:"is_public"`
	ShareToken      *string                   `json:"share_token,omitempty"`
	SharedAt        *time.Time                `json:"shared_at,omitempty"`
	CreatedAt       time.Time                 `json:"created_at"`
}

// PublicAdventureResponse is the anonymous view of a shared adventure. It
// excludes the creator and the share token.
type PublicAdventureResponse struct {
	ID              uint                      `json:"id"`
	Title           string                    `json:"title"`
	Description     string                    `json:"description"`
	ImageURL        string                    `json:"image_url,omitempty"`
	Location        string                    `json:"location"`
	Destination     string                    `json:"destination,omitempty"`
	Duration        string                    `json:"duration"`
	ActivityType    string                    `json:"activity_type"`
	IsRoundTrip     bool                      `json:"is_round_trip"`
	Itinerary       []generator.ItineraryItem `json:"itinerary"`
	Route           generator.RouteInfo       `json:"route"`
	WeatherForecast generator.WeatherForecast `json:"weather_forecast"`
	PackingList     generator.PackingList     `json:"packing_list"`
	Recommendations generator.Recommendations `json:"recommendations"`
	EstimatedCost   string                    `json:"estimated_cost,omitempty"`
	DifficultyLevel string                    `json:"difficulty_level,omitempty"`
	BestSeason      string                    `json:"best_season,omitempty"`
	Accessibility   string                    `json:"accessibility,omitempty"`
	CreatedAt       time.Time                 `json:"created_at"`
	SharedAt        *time.Time                `json:"shared_at,omitempty"`
}

// HistoryResponse wraps the user's adventure history.
type HistoryResponse struct {
	Adventures []AdventureResponse `json:"adventures"`
}

type ShareAdventureInput struct {
	MakePublic *bool `json:"make_public" binding:"required"`
}

type ShareAdventureResponse struct {
	Success  bool    `json:"success"`
	ShareURL *string `json:"share_url"`
	Message  string  `json:"message"`
}

func toAdventureResponse(a *models.Adventure) AdventureResponse {
	resp := AdventureResponse{
		ID:              a.ID,
		Title:           a.Title,
		Description:     a.Description,
		ImageURL:        a.ImageURL,
		Location:        a.Location,
		Destination:     a.Destination,
		Duration:        a.Duration,
		ActivityType:    a.ActivityType,
		IsRoundTrip:     a.IsRoundTrip,
		EstimatedCost:   a.EstimatedCost,
		DifficultyLevel: a.DifficultyLevel,
		BestSeason:      a.BestSeason,
		Accessibility:   a.Accessibility,
		IsPublic:        a.IsPublic,
		ShareToken:      a.ShareToken,
		SharedAt:        a.SharedAt,
		CreatedAt:       a.CreatedAt,
	}
	// Columns hold JSON we marshalled ourselves; a decode failure leaves the
	// sub-document zero-valued rather than failing the whole response.
	_ = json.Unmarshal(a.Itinerary, &resp.Itinerary)
	_ = json.Unmarshal(a.Route, &resp.Route)
	_ = json.Unmarshal(a.WeatherForecast, &resp.WeatherForecast)
	_ = json.Unmarshal(a.PackingList, &resp.PackingList)
	_ = json.Unmarshal(a.Recommendations, &resp.Recommendations)
	return resp
}

func toPublicResponse(a *models.Adventure) PublicAdventureResponse {
	resp := PublicAdventureResponse{
		ID:              a.ID,
		Title:           a.Title,
		Description:     a.Description,
		ImageURL:        a.ImageURL,
		Location:        a.Location,
		Destination:     a.Destination,
		Duration:        a.Duration,
		ActivityType:    a.ActivityType,
		IsRoundTrip:     a.IsRoundTrip,
		EstimatedCost:   a.EstimatedCost,
		DifficultyLevel: a.DifficultyLevel,
		BestSeason:      a.BestSeason,
		Accessibility:   a.Accessibility,
		CreatedAt:       a.CreatedAt,
		SharedAt:        a.SharedAt,
	}
	_ = json.Unmarshal(a.Itinerary, &resp.Itinerary)
	_ = json.Unmarshal(a.Route, &resp.Route)
	_ = json.Unmarshal(a.WeatherForecast, &resp.WeatherForecast)
	_ = json.Unmarshal(a.PackingList, &resp.PackingList)
	_ = json.Unmarshal(a.Recommendations, &resp.Recommendations)
	return resp
}
