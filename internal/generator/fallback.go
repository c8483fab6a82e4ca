package generator

import "fmt"

// FallbackEstimatedCost marks adventures built from the static fallback
// document when the upstream generator is unavailable.
const FallbackEstimatedCost = "FREE (bring your own food/water)"

// FallbackDocument is the statically defined itinerary substituted when the
// generator call fails. Generation always succeeds from the caller's
// perspective once quota is available.
func FallbackDocument(location, duration string) *AdventureDocument {
	return &AdventureDocument{
		Title:       fmt.Sprintf("Local Adventure from %s", location),
		Description: fmt.Sprintf("Discover hidden gems and enjoy a %s adventure starting from %s.", duration, location),
		Itinerary: []ItineraryItem{
			{
				Time:     "9:00 AM",
				Activity: "Start your adventure with a visit to a local park or green space",
				Location: location,
				Duration: "1 hour",
				Notes:    "Great for morning photos and fresh air - completely free to enjoy",
			},
			{
				Time:     "10:30 AM",
				Activity: "Explore nearby walking trails or interesting neighborhoods",
				Location: fmt.Sprintf("Near %s", location),
				Duration: "1.5 hours",
				Notes:    "Take your time to discover hidden spots and public art",
			},
			{
				Time:     "12:00 PM",
				Activity: "Find a scenic spot for a picnic break",
				Location: fmt.Sprintf("Public space near %s", location),
				Duration: "1 hour",
				Notes:    "Bring your own food and enjoy the views",
			},
		},
		Route: RouteInfo{
			StartAddress:        location,
			EndAddress:          location,
			Waypoints:           []string{location},
			MapEmbedURL:         "https://www.google.com/maps/embed?pb=1!1m18!1m12!1m3!1d3024.1!2d0!3d0!2m3!1f0!2f0!3f0!3m2!1i1024!2i768!4f13.1",
			EstimatedDistance:   "2-5 km",
			EstimatedTravelTime: "2-3 hours walking",
		},
		WeatherForecast: WeatherForecast{
			Temperature:      "20-25C",
			Conditions:       "Pleasant",
			Precipitation:    "Low chance",
			Wind:             "Light breeze",
			UVIndex:          "Moderate",
			BestTimeOutdoors: "Morning to afternoon",
		},
		PackingList: PackingList{
			Essential:       []string{"Comfortable walking shoes", "Water bottle", "Phone with camera"},
			WeatherSpecific: []string{"Light jacket or sweater", "Sunglasses", "Sun hat"},
			Optional:        []string{"Backpack", "Portable phone charger", "Notebook for memories"},
			FoodAndDrink:    []string{"Bring your own water bottle", "Pack snacks from home", "Extra water for longer walks"},
		},
		Recommendations: Recommendations{
			PhotoOpportunities: []string{"Scenic viewpoints", "Interesting architecture", "Public art and murals"},
			LocalTips: []string{
				"Check weather conditions before heading out",
				"Start early to avoid crowds",
				"Bring a camera to capture memories",
				"Be open to spontaneous discoveries",
			},
			HiddenGems: []string{"Local parks with great views", "Historic neighborhoods", "Public gardens and green spaces"},
		},
		EstimatedCost:   FallbackEstimatedCost,
		DifficultyLevel: "easy",
		BestSeason:      "year-round",
		Accessibility:   "Moderate walking required",
	}
}
