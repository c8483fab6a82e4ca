package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hedlaron/microadventures/internal/database"
	"github.com/hedlaron/microadventures/internal/generator"
	"github.com/hedlaron/microadventures/internal/models"
)

const (
	sharedCacheKeyPrefix = "shared_adventure:"
	sharedCacheDuration  = time.Hour

	// HistoryLimit caps how many adventures the history endpoint returns.
	HistoryLimit = 50
)

// Generator produces an itinerary document for a trip request. The OpenAI
// client implements it; tests substitute stubs.
type Generator interface {
	Generate(req generator.Request) (*generator.AdventureDocument, error)
}

// AdventureService orchestrates quota-gated generation, persistence and the
// public sharing lifecycle.
type AdventureService struct {
	db        *gorm.DB
	redis     *redis.Client
	quotas    *QuotaService
	generator Generator
}

func NewAdventureService(db *gorm.DB, redisClient *redis.Client, quotas *QuotaService, gen Generator) *AdventureService {
	return &AdventureService{
		db:        db,
		redis:     redisClient,
		quotas:    quotas,
		generator: gen,
	}
}

// GenerateForUser runs the generation workflow: quota gate, generator call
// with fallback substitution, persistence, best-effort quota decrement. Once
// quota is available the operation always yields a persisted adventure, even
// when the upstream generator is down.
func (s *AdventureService) GenerateForUser(userID uint, req generator.Request) (*models.Adventure, error) {
	quota, err := s.quotas.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	quota, err = s.quotas.ResetIfNeeded(quota)
	if err != nil {
		return nil, err
	}
	if quota.QuotaRemaining <= 0 {
		return nil, ErrQuotaExhausted
	}

	doc, err := s.generator.Generate(req)
	if err != nil {
		zap.L().Warn("adventure generation failed, using fallback document",
			zap.Uint("user_id", userID),
			zap.Error(err))
		doc = generator.FallbackDocument(req.Location, req.Duration)
	}

	adventure, err := buildAdventure(userID, req, doc)
	if err != nil {
		return nil, err
	}
	if err := s.db.Create(adventure).Error; err != nil {
		return nil, err
	}

	// Best-effort: a decrement failure after the adventure was persisted is
	// logged and accepted, not retried.
	if _, err := s.quotas.Consume(userID); err != nil {
		zap.L().Warn("failed to decrement quota after generation",
			zap.Uint("user_id", userID),
			zap.Error(err))
	}

	return adventure, nil
}

func buildAdventure(userID uint, req generator.Request, doc *generator.AdventureDocument) (*models.Adventure, error) {
	itinerary, err := json.Marshal(doc.Itinerary)
	if err != nil {
		return nil, err
	}
	route, err := json.Marshal(doc.Route)
	if err != nil {
		return nil, err
	}
	weather, err := json.Marshal(doc.WeatherForecast)
	if err != nil {
		return nil, err
	}
	packing, err := json.Marshal(doc.PackingList)
	if err != nil {
		return nil, err
	}
	recommendations, err := json.Marshal(doc.Recommendations)
	if err != nil {
		return nil, err
	}

	return &models.Adventure{
		Title:           doc.Title,
		Description:     doc.Description,
		ImageURL:        doc.ImageURL,
		Location:        req.Location,
		Destination:     req.Destination,
		Duration:        req.Duration,
		ActivityType:    req.ActivityType,
		IsRoundTrip:     req.IsRoundTrip,
		Itinerary:       datatypes.JSON(itinerary),
		Route:           datatypes.JSON(route),
		WeatherForecast: datatypes.JSON(weather),
		PackingList:     datatypes.JSON(packing),
		Recommendations: datatypes.JSON(recommendations),
		EstimatedCost:   doc.EstimatedCost,
		DifficultyLevel: doc.DifficultyLevel,
		BestSeason:      doc.BestSeason,
		Accessibility:   doc.Accessibility,
		CreatedBy:       userID,
	}, nil
}

// HistoryForUser returns the user's adventures, newest first.
func (s *AdventureService) HistoryForUser(userID uint) ([]models.Adventure, error) {
	var adventures []models.Adventure
	err := s.db.Where("created_by = ?", userID).
		Order("created_at desc").
		Limit(HistoryLimit).
		Find(&adventures).Error
	if err != nil {
		return nil, err
	}
	return adventures, nil
}

// FindUserAdventure returns the adventure only if it belongs to the user.
// A foreign adventure is indistinguishable from a missing one.
func (s *AdventureService) FindUserAdventure(adventureID, userID uint) (*models.Adventure, error) {
	var adventure models.Adventure
	err := s.db.Where("id = ? AND created_by = ?", adventureID, userID).First(&adventure).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdventureNotFound
		}
		return nil, err
	}
	return &adventure, nil
}

// ToggleSharing flips public visibility for an owner's adventure. The share
// token is generated on first publish and kept when the adventure is made
// private again; only shared_at and is_public change on unshare.
func (s *AdventureService) ToggleSharing(adventureID, userID uint, makePublic bool) (*models.Adventure, error) {
	adventure, err := s.FindUserAdventure(adventureID, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"is_public": makePublic}

	if makePublic {
		if adventure.ShareToken == nil {
			token, err := s.newShareToken()
			if err != nil {
				return nil, err
			}
			adventure.ShareToken = &token
			updates["share_token"] = token
		}
		now := time.Now().UTC()
		adventure.SharedAt = &now
		updates["shared_at"] = now
	} else {
		adventure.SharedAt = nil
		updates["shared_at"] = nil
	}
	adventure.IsPublic = makePublic

	if err := s.db.Model(adventure).Updates(updates).Error; err != nil {
		return nil, err
	}

	if s.redis != nil && adventure.ShareToken != nil {
		s.redis.Del(database.Ctx, sharedCacheKeyPrefix+*adventure.ShareToken)
	}

	return adventure, nil
}

// newShareToken generates a token and regenerates on the unlikely collision
// with an existing one.
func (s *AdventureService) newShareToken() (string, error) {
	for i := 0; i < 3; i++ {
		token := uuid.New().String()
		var count int64
		if err := s.db.Model(&models.Adventure{}).Where("share_token = ?", token).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return token, nil
		}
	}
	return "", errors.New("failed to generate unique share token")
}

// GetSharedByToken resolves a share token to an adventure that is currently
// public. A valid token on a private record yields not-found.
func (s *AdventureService) GetSharedByToken(token string) (*models.Adventure, error) {
	cacheKey := sharedCacheKeyPrefix + token

	if s.redis != nil {
		val, err := s.redis.Get(database.Ctx, cacheKey).Result()
		if err == nil {
			var adventure models.Adventure
			if err := json.Unmarshal([]byte(val), &adventure); err == nil {
				return &adventure, nil
			}
		}
	}

	var adventure models.Adventure
	err := s.db.Where("share_token = ? AND is_public = ?", token, true).First(&adventure).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdventureNotFound
		}
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(adventure); err == nil {
			s.redis.Set(database.Ctx, cacheKey, data, sharedCacheDuration)
		}
	}

	return &adventure, nil
}

// Delete removes an adventure owned by the user. The shared cache entry is
// dropped as well so a deleted adventure's token stops resolving immediately.
func (s *AdventureService) Delete(adventureID, userID uint) error {
	adventure, err := s.FindUserAdventure(adventureID, userID)
	if err != nil {
		return err
	}

	result := s.db.Where("id = ? AND created_by = ?", adventureID, userID).Delete(&models.Adventure{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAdventureNotFound
	}

	if s.redis != nil && adventure.ShareToken != nil {
		s.redis.Del(database.Ctx, sharedCacheKeyPrefix+*adventure.ShareToken)
	}

	return nil
}
