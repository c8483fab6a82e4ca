package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hedlaron/microadventures/internal/database"
	"github.com/hedlaron/microadventures/internal/models"
)

const (
	userCacheKeyPrefix = "user:"
	userCacheDuration  = time.Hour
)

// UserService owns registration, authentication and account management.
type UserService struct {
	db     *gorm.DB
	redis  *redis.Client
	quotas *QuotaService
}

func NewUserService(db *gorm.DB, redisClient *redis.Client, quotas *QuotaService) *UserService {
	return &UserService{db: db, redis: redisClient, quotas: quotas}
}

// Register creates a new active user. The very first account becomes admin.
func (s *UserService) Register(username, email, password string) (*models.User, error) {
	var existing models.User
	result := s.db.Where("username = ? OR email = ?", username, email).First(&existing)
	if result.Error == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var userCount int64
	s.db.Model(&models.User{}).Count(&userCount)

	role := "user"
	if userCount == 0 {
		role = "admin"
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		IsActive: true,
		Role:     role,
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies credentials for an active account.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, errors.New("invalid credentials")
	}

	if !user.IsActive {
		return nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	return &user, nil
}

// FindByID loads a user, serving repeated lookups from cache.
func (s *UserService) FindByID(userID uint) (*models.User, error) {
	cacheKey := fmt.Sprintf("%s%d", userCacheKeyPrefix, userID)
	if s.redis != nil {
		val, err := s.redis.Get(database.Ctx, cacheKey).Result()
		if err == nil {
			var user models.User
			if err := json.Unmarshal([]byte(val), &user); err == nil {
				return &user, nil
			}
		}
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(user); err == nil {
			s.redis.Set(database.Ctx, cacheKey, data, userCacheDuration)
		}
	}

	return &user, nil
}

// List retrieves a paginated list of users.
func (s *UserService) List(page, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	offset := (page - 1) * limit

	if err := s.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := s.db.Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Update applies selective field updates with an optimistic-lock version
// check. Email and username changes are checked for uniqueness first.
func (s *UserService) Update(id uint, updates map[string]interface{}) (*models.User, error) {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var user models.User
	if err := tx.First(&user, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if email, ok := updates["email"].(string); ok && email != "" {
		var count int64
		tx.Model(&models.User{}).Where("email = ? AND id <> ?", email, id).Count(&count)
		if count > 0 {
			tx.Rollback()
			return nil, ErrUserAlreadyExists
		}
	}

	if username, ok := updates["username"].(string); ok && username != "" {
		var count int64
		tx.Model(&models.User{}).Where("username = ? AND id <> ?", username, id).Count(&count)
		if count > 0 {
			tx.Rollback()
			return nil, ErrUserAlreadyExists
		}
	}

	if password, ok := updates["password"].(string); ok && password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		updates["password"] = string(hashedPassword)
	}

	currentVersion := user.Version
	updates["version"] = currentVersion + 1

	result := tx.Model(&user).Where("version = ?", currentVersion).Updates(updates)
	if result.Error != nil {
		tx.Rollback()
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return nil, ErrOptimisticLock
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.invalidateCache(id)

	s.db.First(&user, id)

	return &user, nil
}

// Delete permanently removes a user and their quota record. Adventures are
// kept; this endpoint is destructive and unconditional.
func (s *UserService) Delete(id uint) error {
	result := s.db.Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	if err := s.quotas.Delete(id); err != nil {
		return err
	}

	s.invalidateCache(id)
	return nil
}

func (s *UserService) invalidateCache(id uint) {
	if s.redis != nil {
		s.redis.Del(database.Ctx, fmt.Sprintf("%s%d", userCacheKeyPrefix, id))
	}
}
