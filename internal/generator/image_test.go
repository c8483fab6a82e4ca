package generator

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hedlaron/microadventures/config"
)

func newTestImageClient(baseURL, accessKey string) *ImageClient {
	return NewImageClient(&config.Config{
		UnsplashAccessKey: accessKey,
		UnsplashBaseURL:   baseURL,
	})
}

func TestAdventureImage(t *testing.T) {
	var queries []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/photos", r.URL.Path)
		assert.Equal(t, "test-access-key", r.URL.Query().Get("client_id"))
		queries = append(queries, r.URL.Query().Get("query"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{
				{"urls": map[string]string{"regular": "https://images.example.com/hit.jpg"}},
			},
		})
	}))
	defer server.Close()

	client := newTestImageClient(server.URL, "test-access-key")
	imageURL, err := client.AdventureImage("hiking", "San Francisco, CA", "Trail Day", "A forest trail walk")
	assert.NoError(t, err)
	assert.Equal(t, "https://images.example.com/hit.jpg", imageURL)

	// First term wins; the content keyword for "trail" is tried before the
	// activity-based searches.
	assert.Equal(t, []string{"forest trail"}, queries)
}

func TestAdventureImageFallsThroughEmptyResults(t *testing.T) {
	var queries []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query().Get("query"))
		if len(queries) < 3 {
			w.Write([]byte(`{"results": []}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{
				{"urls": map[string]string{"regular": "https://images.example.com/third.jpg"}},
			},
		})
	}))
	defer server.Close()

	client := newTestImageClient(server.URL, "test-access-key")
	imageURL, err := client.AdventureImage("cycling", "Berlin", "City Ride", "Pedal through the city")
	assert.NoError(t, err)
	assert.Equal(t, "https://images.example.com/third.jpg", imageURL)
	assert.Equal(t, []string{"cycling Berlin", "cycling", "Berlin"}, queries)
}

func TestAdventureImageMissingAccessKey(t *testing.T) {
	client := newTestImageClient("http://unused", "")
	_, err := client.AdventureImage("hiking", "Berlin", "Title", "Description")
	assert.Error(t, err)
}

func TestAdventureImageUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestImageClient(server.URL, "test-access-key")
	_, err := client.AdventureImage("hiking", "Berlin", "Title", "Description")
	assert.Error(t, err)
}

func TestFallbackImage(t *testing.T) {
	client := newTestImageClient("http://unused", "")
	for i := 0; i < 10; i++ {
		assert.Contains(t, fallbackImages, client.FallbackImage())
	}
}

func TestSearchTerms(t *testing.T) {
	t.Run("surprise-me skips activity terms", func(t *testing.T) {
		terms := searchTerms("surprise-me", "Lisbon, Portugal", "Mystery Walk", "Wander freely")
		assert.Equal(t, []string{"Lisbon", "outdoor adventure"}, terms)
	})

	t.Run("region suffix is stripped", func(t *testing.T) {
		terms := searchTerms("kayaking", "Oakland, CA", "Bay Paddle", "Out on the water")
		assert.Contains(t, terms, "kayaking Oakland")
	})
}
