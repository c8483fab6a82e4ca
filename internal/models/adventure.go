package models

import (
	"time"

	"gorm.io/datatypes"
)

// Adventure is a generated itinerary owned by a single user. The nested
// documents (itinerary, route, weather, packing list, recommendations) are
// validated at the generator boundary and stored as JSON columns.
type Adventure struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	Title           string         `gorm:"size:255;not null" json:"title"`
	Description     string         `gorm:"type:text;not null" json:"description"`
	ImageURL        string         `gorm:"type:text" json:"image_url,omitempty"`
	Location        string         `gorm:"size:255;not null" json:"location"`
	Destination     string         `gorm:"size:255" json:"destination,omitempty"`
	Duration        string         `gorm:"size:50;not null" json:"duration"`
	ActivityType    string         `gorm:"size:100;not null" json:"activity_type"`
	IsRoundTrip     bool           `gorm:"not null;default:false" json:"is_round_trip"`
	Itinerary       datatypes.JSON `gorm:"type:jsonb;not null" json:"itinerary" swaggertype:"object"`
	Route           datatypes.JSON `gorm:"type:jsonb;not null" json:"route" swaggertype:"object"`
	WeatherForecast datatypes.JSON `gorm:"type:jsonb;not null" json:"weather_forecast" swaggertype:"object"`
	PackingList     datatypes.JSON `gorm:"type:jsonb;not null" json:"packing_list" swaggertype:"object"`
	Recommendations datatypes.JSON `gorm:"type:jsonb;not null" json:"recommendations" swaggertype:"object"`
	EstimatedCost   string         `gorm:"size:50" json:"estimated_cost,omitempty"`
	DifficultyLevel string         `gorm:"size:20" json:"difficulty_level,omitempty"`
	BestSeason      string         `gorm:"size:50" json:"best_season,omitempty"`
	Accessibility   string         `gorm:"size:100" json:"accessibility,omitempty"`

	// Public sharing. ShareToken is generated at most once and kept when the
	// adventure is made private again; token lookups always filter on IsPublic.
	IsPublic   bool       `gorm:"not null;default:false" json:"is_public"`
	ShareToken *string    `gorm:"size:36;uniqueIndex" json:"share_token,omitempty"`
	SharedAt   *time.Time `json:"shared_at,omitempty"`

	CreatedBy uint `gorm:"index;not null" json:"created_by"`
}

func (Adventure) TableName() string {
	return "adventures"
}

// AdventureQuota tracks the rolling 24h generation allowance for one user.
type AdventureQuota struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	UserID         uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	QuotaRemaining int       `gorm:"not null;default:10" json:"quota_remaining"`
	LastResetDate  time.Time `gorm:"not null" json:"last_reset_date"`
}

func (AdventureQuota) TableName() string {
	return "adventure_quotas"
}
