package services

import (
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"

	"github.com/hedlaron/microadventures/internal/generator"
	"github.com/hedlaron/microadventures/internal/models"
)

type stubGenerator struct {
	doc   *generator.AdventureDocument
	err   error
	calls int
}

func (s *stubGenerator) Generate(req generator.Request) (*generator.AdventureDocument, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.doc != nil {
		return s.doc, nil
	}
	doc := generator.FallbackDocument(req.Location, req.Duration)
	doc.Title = "Stubbed Adventure"
	doc.EstimatedCost = "FREE"
	return doc, nil
}

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func testRequest() generator.Request {
	return generator.Request{
		Location:     "San Francisco, CA",
		Destination:  "Golden Gate Park",
		Duration:     "half-day",
		ActivityType: "hiking",
		IsRoundTrip:  true,
	}
}

func TestGenerateForUser(t *testing.T) {
	db := setupTestDB(t)
	gen := &stubGenerator{}
	svc := NewAdventureService(db, nil, NewQuotaService(db), gen)

	a, err := svc.GenerateForUser(1, testRequest())
	assert.NoError(t, err)
	assert.Equal(t, "Stubbed Adventure", a.Title)
	assert.Equal(t, uint(1), a.CreatedBy)
	assert.Equal(t, "San Francisco, CA", a.Location)
	assert.False(t, a.IsPublic)
	assert.Nil(t, a.ShareToken)
	assert.Equal(t, 1, gen.calls)

	var quota models.AdventureQuota
	db.Where("user_id = ?", 1).First(&quota)
	assert.Equal(t, DefaultDailyQuota-1, quota.QuotaRemaining)
}

func TestGenerateForUserFallback(t *testing.T) {
	db := setupTestDB(t)
	gen := &stubGenerator{err: errors.New("upstream timeout")}
	svc := NewAdventureService(db, nil, NewQuotaService(db), gen)

	a, err := svc.GenerateForUser(1, testRequest())
	assert.NoError(t, err)
	assert.Equal(t, generator.FallbackEstimatedCost, a.EstimatedCost)

	// Persisted, and quota decremented exactly once.
	var count int64
	db.Model(&models.Adventure{}).Where("created_by = ?", 1).Count(&count)
	assert.Equal(t, int64(1), count)

	var quota models.AdventureQuota
	db.Where("user_id = ?", 1).First(&quota)
	assert.Equal(t, DefaultDailyQuota-1, quota.QuotaRemaining)
}

func TestGenerateForUserQuotaExhausted(t *testing.T) {
	db := setupTestDB(t)
	gen := &stubGenerator{}
	quotas := NewQuotaService(db)
	svc := NewAdventureService(db, nil, quotas, gen)

	quota, err := quotas.GetOrCreate(1)
	assert.NoError(t, err)
	db.Model(quota).Update("quota_remaining", 0)

	_, err = svc.GenerateForUser(1, testRequest())
	assert.ErrorIs(t, err, ErrQuotaExhausted)
	assert.Equal(t, 0, gen.calls)

	var count int64
	db.Model(&models.Adventure{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestToggleSharing(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdventureService(db, nil, NewQuotaService(db), &stubGenerator{})

	a, err := svc.GenerateForUser(1, testRequest())
	assert.NoError(t, err)

	t.Run("share generates token once", func(t *testing.T) {
		shared, err := svc.ToggleSharing(a.ID, 1, true)
		assert.NoError(t, err)
		assert.True(t, shared.IsPublic)
		assert.NotNil(t, shared.ShareToken)
		assert.Len(t, *shared.ShareToken, 36)
		assert.NotNil(t, shared.SharedAt)

		again, err := svc.ToggleSharing(a.ID, 1, true)
		assert.NoError(t, err)
		assert.Equal(t, *shared.ShareToken, *again.ShareToken)
	})

	t.Run("unshare keeps token", func(t *testing.T) {
		shared, err := svc.ToggleSharing(a.ID, 1, true)
		assert.NoError(t, err)
		token := *shared.ShareToken

		private, err := svc.ToggleSharing(a.ID, 1, false)
		assert.NoError(t, err)
		assert.False(t, private.IsPublic)
		assert.Nil(t, private.SharedAt)
		assert.NotNil(t, private.ShareToken)
		assert.Equal(t, token, *private.ShareToken)

		var persisted models.Adventure
		db.First(&persisted, a.ID)
		assert.False(t, persisted.IsPublic)
		assert.Nil(t, persisted.SharedAt)
		assert.Equal(t, token, *persisted.ShareToken)
	})

	t.Run("non-owner gets not found and no mutation", func(t *testing.T) {
		before := models.Adventure{}
		db.First(&before, a.ID)

		_, err := svc.ToggleSharing(a.ID, 99, true)
		assert.ErrorIs(t, err, ErrAdventureNotFound)

		after := models.Adventure{}
		db.First(&after, a.ID)
		assert.Equal(t, before.IsPublic, after.IsPublic)
		assert.Equal(t, before.ShareToken, after.ShareToken)
	})
}

func TestGetSharedByToken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdventureService(db, nil, NewQuotaService(db), &stubGenerator{})

	a, err := svc.GenerateForUser(1, testRequest())
	assert.NoError(t, err)

	t.Run("unknown token", func(t *testing.T) {
		_, err := svc.GetSharedByToken("no-such-token")
		assert.ErrorIs(t, err, ErrAdventureNotFound)
	})

	t.Run("token of private record is not found", func(t *testing.T) {
		shared, err := svc.ToggleSharing(a.ID, 1, true)
		assert.NoError(t, err)
		token := *shared.ShareToken

		got, err := svc.GetSharedByToken(token)
		assert.NoError(t, err)
		assert.Equal(t, a.ID, got.ID)

		_, err = svc.ToggleSharing(a.ID, 1, false)
		assert.NoError(t, err)

		_, err = svc.GetSharedByToken(token)
		assert.ErrorIs(t, err, ErrAdventureNotFound)
	})
}

func TestGetSharedByTokenCacheInvalidation(t *testing.T) {
	db := setupTestDB(t)
	_, redisClient := setupTestRedis(t)
	svc := NewAdventureService(db, redisClient, NewQuotaService(db), &stubGenerator{})

	a, err := svc.GenerateForUser(1, testRequest())
	assert.NoError(t, err)

	shared, err := svc.ToggleSharing(a.ID, 1, true)
	assert.NoError(t, err)
	token := *shared.ShareToken

	// Populate the cache, then unshare. The cached copy must not leak.
	got, err := svc.GetSharedByToken(token)
	assert.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = svc.ToggleSharing(a.ID, 1, false)
	assert.NoError(t, err)

	_, err = svc.GetSharedByToken(token)
	assert.ErrorIs(t, err, ErrAdventureNotFound)
}

func TestDeleteInvalidatesSharedCache(t *testing.T) {
	db := setupTestDB(t)
	_, redisClient := setupTestRedis(t)
	svc := NewAdventureService(db, redisClient, NewQuotaService(db), &stubGenerator{})

	a, err := svc.GenerateForUser(1, testRequest())
	assert.NoError(t, err)

	shared, err := svc.ToggleSharing(a.ID, 1, true)
	assert.NoError(t, err)
	token := *shared.ShareToken

	// Warm the cache, then delete. The token must stop resolving right away.
	got, err := svc.GetSharedByToken(token)
	assert.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	assert.NoError(t, svc.Delete(a.ID, 1))

	_, err = svc.GetSharedByToken(token)
	assert.ErrorIs(t, err, ErrAdventureNotFound)
}

func TestHistoryForUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdventureService(db, nil, NewQuotaService(db), &stubGenerator{})

	for i := 0; i < 3; i++ {
		_, err := svc.GenerateForUser(1, testRequest())
		assert.NoError(t, err)
	}
	_, err := svc.GenerateForUser(2, testRequest())
	assert.NoError(t, err)

	adventures, err := svc.HistoryForUser(1)
	assert.NoError(t, err)
	assert.Len(t, adventures, 3)
	for _, a := range adventures {
		assert.Equal(t, uint(1), a.CreatedBy)
	}
}

func TestDeleteAdventure(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdventureService(db, nil, NewQuotaService(db), &stubGenerator{})

	a, err := svc.GenerateForUser(1, testRequest())
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(a.ID, 99), ErrAdventureNotFound)
	assert.NoError(t, svc.Delete(a.ID, 1))
	assert.ErrorIs(t, svc.Delete(a.ID, 1), ErrAdventureNotFound)
}
