package adventure

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hedlaron/microadventures/internal/generator"
	"github.com/hedlaron/microadventures/internal/models"
	"github.com/hedlaron/microadventures/internal/services"
)

type stubGenerator struct{}

func (stubGenerator) Generate(req generator.Request) (*generator.AdventureDocument, error) {
	doc := generator.FallbackDocument(req.Location, req.Duration)
	doc.Title = "Test Adventure"
	return doc, nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	db.Migrator().DropTable(&models.User{}, &models.Adventure{}, &models.AdventureQuota{})

	if err := db.AutoMigrate(&models.User{}, &models.Adventure{}, &models.AdventureQuota{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

// fakeAuth injects the user the way the auth middleware would after token
// validation.
func fakeAuth(u models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", u)
		c.Next()
	}
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	quotas := services.NewQuotaService(db)
	adventures := services.NewAdventureService(db, nil, quotas, stubGenerator{})
	h := NewHandler(adventures, quotas)

	router := gin.New()
	v1 := router.Group("/api/v1")
	authorized := v1.Group("/")
	authorized.Use(fakeAuth(models.User{ID: 1, Username: "alice", Role: "user", IsActive: true}))
	RegisterRoutes(v1, authorized, h)

	return router, db
}

func doRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response envelope: %v", err)
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("failed to decode response data: %v", err)
		}
	}
	return env
}

func generateBody() map[string]interface{} {
	return map[string]interface{}{
		"location":      "San Francisco, CA",
		"duration":      "half-day",
		"activity_type": "hiking",
		"is_round_trip": true,
	}
}

func TestGenerateEndpoint(t *testing.T) {
	router, db := setupRouter(t)

	t.Run("success", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/adventures/generate", generateBody())
		assert.Equal(t, http.StatusCreated, w.Code)

		var resp AdventureResponse
		decodeEnvelope(t, w, &resp)
		assert.Equal(t, "Test Adventure", resp.Title)
		assert.Equal(t, "San Francisco, CA", resp.Location)
		assert.NotEmpty(t, resp.Itinerary)
		assert.False(t, resp.IsPublic)
	})

	t.Run("invalid duration", func(t *testing.T) {
		body := generateBody()
		body["duration"] = "forever"
		w := doRequest(router, http.MethodPost, "/api/v1/adventures/generate", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing location", func(t *testing.T) {
		body := generateBody()
		delete(body, "location")
		w := doRequest(router, http.MethodPost, "/api/v1/adventures/generate", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("quota exhausted", func(t *testing.T) {
		db.Model(&models.AdventureQuota{}).Where("user_id = ?", 1).Update("quota_remaining", 0)

		w := doRequest(router, http.MethodPost, "/api/v1/adventures/generate", generateBody())
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})
}

func TestQuotaEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	w := doRequest(router, http.MethodPost, "/api/v1/adventures/generate", generateBody())
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/adventures/quota", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var status services.QuotaStatus
	decodeEnvelope(t, w, &status)
	assert.Equal(t, services.DefaultDailyQuota-1, status.Remaining)
	assert.Equal(t, services.DefaultDailyQuota, status.Total)
	assert.Greater(t, status.TimeUntilReset, 0)
}

func TestHistoryEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	for i := 0; i < 2; i++ {
		w := doRequest(router, http.MethodPost, "/api/v1/adventures/generate", generateBody())
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	w := doRequest(router, http.MethodGet, "/api/v1/adventures/my-history", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var history HistoryResponse
	decodeEnvelope(t, w, &history)
	assert.Len(t, history.Adventures, 2)
}

func TestShareLifecycle(t *testing.T) {
	router, _ := setupRouter(t)

	w := doRequest(router, http.MethodPost, "/api/v1/adventures/generate", generateBody())
	assert.Equal(t, http.StatusCreated, w.Code)
	var created AdventureResponse
	decodeEnvelope(t, w, &created)

	w = doRequest(router, http.MethodGet, "/api/v1/adventures/shared/unknown-token", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Publish and pull the token out of the share URL.
	w = doRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/adventures/%d/share", created.ID),
		map[string]interface{}{"make_public": true})
	assert.Equal(t, http.StatusOK, w.Code)

	var shareResp ShareAdventureResponse
	decodeEnvelope(t, w, &shareResp)
	assert.True(t, shareResp.Success)
	assert.NotNil(t, shareResp.ShareURL)
	assert.Equal(t, "Adventure is now publicly shareable", shareResp.Message)

	token := (*shareResp.ShareURL)[len("/shared/"):]
	assert.Len(t, token, 36)

	w = doRequest(router, http.MethodGet, "/api/v1/adventures/shared/"+token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var public PublicAdventureResponse
	decodeEnvelope(t, w, &public)
	assert.Equal(t, created.ID, public.ID)
	assert.Equal(t, created.Title, public.Title)

	// Unshare; the token stops resolving.
	w = doRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/adventures/%d/share", created.ID),
		map[string]interface{}{"make_public": false})
	assert.Equal(t, http.StatusOK, w.Code)

	decodeEnvelope(t, w, &shareResp)
	assert.Equal(t, "Adventure sharing disabled", shareResp.Message)
	assert.Nil(t, shareResp.ShareURL)

	w = doRequest(router, http.MethodGet, "/api/v1/adventures/shared/"+token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShareValidation(t *testing.T) {
	router, _ := setupRouter(t)

	t.Run("missing make_public", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/adventures/1/share", map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown adventure", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/adventures/9999/share",
			map[string]interface{}{"make_public": true})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/adventures/abc/share",
			map[string]interface{}{"make_public": true})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	w := doRequest(router, http.MethodPost, "/api/v1/adventures/generate", generateBody())
	assert.Equal(t, http.StatusCreated, w.Code)
	var created AdventureResponse
	decodeEnvelope(t, w, &created)

	w = doRequest(router, http.MethodDelete, fmt.Sprintf("/api/v1/adventures/%d", created.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodDelete, fmt.Sprintf("/api/v1/adventures/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
