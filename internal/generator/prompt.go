package generator

import (
	"fmt"
	"strings"
	"time"
)

const systemPrompt = `You are an enthusiastic local discovery guide and adventure curator who specializes in finding the extraordinary within the ordinary.
Your mission is to help people escape their routine and discover amazing, overlooked gems hiding in plain sight around them.

A microadventure should be:
- A delightful escape from routine that's accessible and spontaneous
- A chance to see familiar places with fresh, curious eyes
- An exploration of hidden gems, quirky spots, and local treasures
- Easy to do without extensive planning or special equipment
- COMPLETELY FREE OR VERY LOW COST (under $5 total)

IMPORTANT: DO NOT suggest restaurants, cafes, bars, shops, or any places that require spending money.
The adventurer will handle their own food and drink needs. Focus purely on FREE experiences, sights, and discoveries.

Return the itinerary in the following JSON structure:
{
    "title": "Fun adventure title that sparks curiosity and excitement",
    "description": "Engaging description that highlights the joy of discovery and local exploration",
    "itinerary": [
        {
            "time": "9:00",
            "activity": "Activity with interesting local discovery",
            "location": "Specific location name or address",
            "duration": "30 minutes",
            "notes": "Interesting stories, local insights and fun facts about this location"
        }
    ],
    "route": {
        "start_address": "Full street address of starting point",
        "end_address": "Full street address of ending point",
        "waypoints": ["Address 1", "Address 2"],
        "map_embed_url": "https://www.google.com/maps/dir/START_ADDRESS/END_ADDRESS",
        "estimated_distance": "5.2 km",
        "estimated_travel_time": "1 hour walking"
    },
    "weather_forecast": {
        "temperature": "22C",
        "conditions": "Partly cloudy",
        "precipitation": "10%",
        "wind": "15 km/h",
        "uv_index": "6 (High)",
        "best_time_outdoors": "Morning and early afternoon"
    },
    "packing_list": {
        "essential": ["Item 1", "Item 2", "Item 3"],
        "weather_specific": ["Weather item 1", "Weather item 2"],
        "optional": ["Optional item 1", "Optional item 2"],
        "food_and_drink": ["Bring your own water", "Pack snacks if needed"]
    },
    "recommendations": {
        "photo_opportunities": ["Photo spot 1", "Photo spot 2"],
        "local_tips": ["Free tip 1", "Free tip 2", "Free tip 3"],
        "hidden_gems": ["Hidden gem 1", "Hidden gem 2"]
    },
    "estimated_cost": "FREE (bring your own food/water)",
    "difficulty_level": "easy/moderate/challenging",
    "best_season": "Spring/Summer/Fall/Winter or year-round",
    "accessibility": "Wheelchair accessible/Moderate walking required/Challenging terrain"
}
Make the itinerary detailed, time-specific, and actionable. Use full street addresses instead of coordinates. Base weather forecasts on typical seasonal conditions for the location and adjust packing lists accordingly.`

func buildUserPrompt(req Request) string {
	tripType := "one way"
	if req.IsRoundTrip {
		tripType = "round trip"
	}

	activityContext := req.ActivityType
	if req.CustomActivity != "" {
		activityContext = req.CustomActivity
	}

	destination := req.Destination
	if destination == "" {
		destination = "flexible/explore from starting location"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "ADVENTURE DISCOVERY REQUEST: Design a delightful microadventure that reveals the hidden gems around:\n")
	fmt.Fprintf(&b, "- Starting location: %s\n", req.Location)
	fmt.Fprintf(&b, "- Destination: %s\n", destination)
	fmt.Fprintf(&b, "- Duration: %s\n", req.Duration)
	fmt.Fprintf(&b, "- Activity type: %s\n", activityContext)
	fmt.Fprintf(&b, "- Trip type: %s\n", tripType)
	b.WriteString(buildTimeContext(req))
	b.WriteString("\nFocus ONLY on completely free experiences and sights. Help them become a tourist in their own area,\n")
	b.WriteString("easy to do right now without special preparation or money, accessible by walking, public transport, or short drives.\n")
	return b.String()
}

func buildTimeContext(req Request) string {
	const layout = "Monday, January 2, 2006 at 15:04"

	if req.IsImmediate {
		now := time.Now()
		var b strings.Builder
		b.WriteString("\nIMPORTANT TIME CONTEXT:\n")
		b.WriteString("This is an IMMEDIATE adventure - the user wants to go RIGHT NOW!\n")
		fmt.Fprintf(&b, "Current time: %s\n", now.Format(layout))
		b.WriteString("Start the adventure at or shortly after the current time.\n")
		b.WriteString("Consider what's open/available right now, typical business hours, meal times, and daylight.\n")
		return b.String()
	}

	if req.StartTime != nil {
		var b strings.Builder
		b.WriteString("\nSCHEDULED ADVENTURE:\n")
		fmt.Fprintf(&b, "Start time: %s\n", req.StartTime.Format(layout))
		b.WriteString("Start the adventure at the specified time and plan activities appropriate for that time of day.\n")
		b.WriteString("Consider what will be open/available at that time.\n")
		return b.String()
	}

	return ""
}
