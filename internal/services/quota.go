package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/hedlaron/microadventures/internal/models"
)

const (
	// DefaultDailyQuota is the number of adventures a user may generate per
	// rolling 24-hour window.
	DefaultDailyQuota = 10
	QuotaResetWindow  = 24 * time.Hour
)

// QuotaStatus is the read model returned to callers.
type QuotaStatus struct {
	Remaining      int       `json:"adventures_remaining"`
	Total          int       `json:"total_quota"`
	ResetTime      time.Time `json:"reset_time"`
	TimeUntilReset int       `json:"time_until_reset"`
}

// QuotaService owns the per-user generation allowance. Resets are evaluated
// lazily on access; an untouched quota keeps a stale last_reset_date until
// the next read, which is fine since quota only matters when consumed or
// displayed.
type QuotaService struct {
	db *gorm.DB
}

func NewQuotaService(db *gorm.DB) *QuotaService {
	return &QuotaService{db: db}
}

// GetOrCreate returns the user's quota record, creating a full one on first
// access.
func (s *QuotaService) GetOrCreate(userID uint) (*models.AdventureQuota, error) {
	if userID == 0 {
		return nil, ErrInvalidUserID
	}

	var quota models.AdventureQuota
	err := s.db.Where("user_id = ?", userID).First(&quota).Error
	if err == nil {
		return &quota, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	quota = models.AdventureQuota{
		UserID:         userID,
		QuotaRemaining: DefaultDailyQuota,
		LastResetDate:  time.Now().UTC(),
	}
	if err := s.db.Create(&quota).Error; err != nil {
		return nil, err
	}
	return &quota, nil
}

// ResetIfNeeded applies the rolling-window reset rule as a single update.
// Calling it twice within the same window is a no-op the second time.
func (s *QuotaService) ResetIfNeeded(quota *models.AdventureQuota) (*models.AdventureQuota, error) {
	now := time.Now().UTC()
	if now.Sub(quota.LastResetDate) <= QuotaResetWindow {
		return quota, nil
	}

	err := s.db.Model(quota).Updates(map[string]interface{}{
		"quota_remaining": DefaultDailyQuota,
		"last_reset_date": now,
	}).Error
	if err != nil {
		return nil, err
	}

	quota.QuotaRemaining = DefaultDailyQuota
	quota.LastResetDate = now
	return quota, nil
}

// CanConsume reports whether the user has allowance left in the current
// window.
func (s *QuotaService) CanConsume(userID uint) (bool, error) {
	quota, err := s.GetOrCreate(userID)
	if err != nil {
		return false, err
	}
	quota, err = s.ResetIfNeeded(quota)
	if err != nil {
		return false, err
	}
	return quota.QuotaRemaining > 0, nil
}

// Consume takes one unit of allowance. The decrement is a single conditional
// update so two concurrent calls cannot take the same unit.
func (s *QuotaService) Consume(userID uint) (*models.AdventureQuota, error) {
	quota, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	quota, err = s.ResetIfNeeded(quota)
	if err != nil {
		return nil, err
	}

	result := s.db.Model(&models.AdventureQuota{}).
		Where("user_id = ? AND quota_remaining > 0", userID).
		UpdateColumn("quota_remaining", gorm.Expr("quota_remaining - 1"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrQuotaExhausted
	}

	quota.QuotaRemaining--
	return quota, nil
}

// Status returns the quota read model, applying a pending reset first.
func (s *QuotaService) Status(userID uint) (*QuotaStatus, error) {
	quota, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	quota, err = s.ResetIfNeeded(quota)
	if err != nil {
		return nil, err
	}

	resetTime := quota.LastResetDate.Add(QuotaResetWindow)
	timeUntilReset := int(time.Until(resetTime).Seconds())
	if timeUntilReset < 0 {
		timeUntilReset = 0
	}

	return &QuotaStatus{
		Remaining:      quota.QuotaRemaining,
		Total:          DefaultDailyQuota,
		ResetTime:      resetTime,
		TimeUntilReset: timeUntilReset,
	}, nil
}

// Delete removes the quota record for a user. Used when the user account is
// deleted; the next access would lazily recreate it.
func (s *QuotaService) Delete(userID uint) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.AdventureQuota{}).Error
}
