package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hedlaron/microadventures/config"
	"github.com/hedlaron/microadventures/internal/utils"
)

// ImageClient looks up a cover image for an adventure via the Unsplash
// search API. It is an external collaborator returning an opaque URL; all
// failures are reported as errors and the caller decides on a fallback.
type ImageClient struct {
	httpClient *http.Client
	accessKey  string
	baseURL    string
}

func NewImageClient(cfg *config.Config) *ImageClient {
	return &ImageClient{
		httpClient: utils.NewHTTPClient(10 * time.Second),
		accessKey:  cfg.UnsplashAccessKey,
		baseURL:    cfg.UnsplashBaseURL,
	}
}

var fallbackImages = []string{
	"https://images.unsplash.com/photo-1441974231531-c6227db76b6e?w=800",
	"https://images.unsplash.com/photo-1469474968028-56623f02e42e?w=800",
	"https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=800",
	"https://images.unsplash.com/photo-1501785888041-af3ef285b470?w=800",
}

// FallbackImage returns a generic adventure image for when search fails.
func (c *ImageClient) FallbackImage() string {
	return fallbackImages[rand.Intn(len(fallbackImages))]
}

// AdventureImage tries a handful of search terms derived from the request
// and returns the first hit.
func (c *ImageClient) AdventureImage(activityType, location, title, description string) (string, error) {
	for _, term := range searchTerms(activityType, location, title, description) {
		imageURL, err := c.search(term)
		if err != nil {
			return "", err
		}
		if imageURL != "" {
			return imageURL, nil
		}
	}
	return c.search("adventure exploration")
}

func (c *ImageClient) search(query string) (string, error) {
	if c.accessKey == "" {
		return "", errors.New("unsplash access key not configured")
	}

	reqURL := fmt.Sprintf("%s/search/photos?query=%s&per_page=1&orientation=landscape&client_id=%s",
		c.baseURL, url.QueryEscape(query), c.accessKey)

	resp, err := c.httpClient.Get(reqURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("image search returned status %d", resp.StatusCode)
	}

	var result struct {
		Results []struct {
			URLs struct {
				Regular string `json:"regular"`
			} `json:"urls"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	if len(result.Results) == 0 {
		return "", nil
	}
	return result.Results[0].URLs.Regular, nil
}

func searchTerms(activityType, location, title, description string) []string {
	terms := make([]string, 0, 6)

	content := strings.ToLower(title + " " + description)
	for keyword, query := range contentKeywords {
		if strings.Contains(content, keyword) {
			terms = append(terms, query)
			break
		}
	}

	// Strip region/country suffix so "San Francisco, CA" searches as the city.
	place := location
	if idx := strings.Index(place, ","); idx > 0 {
		place = place[:idx]
	}

	if activityType != "" && activityType != "surprise-me" {
		terms = append(terms, activityType+" "+place, activityType)
	}
	terms = append(terms, place, "outdoor adventure")
	return terms
}

var contentKeywords = map[string]string{
	"mural":    "street art",
	"park":     "city park",
	"beach":    "beach coastline",
	"mountain": "mountain vista",
	"river":    "river waterfront",
	"historic": "historic architecture",
	"sunset":   "sunset viewpoint",
	"garden":   "botanical garden",
	"trail":    "forest trail",
}
