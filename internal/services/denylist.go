package services

import (
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/hedlaron/microadventures/internal/database"
)

const denylistPrefix = "denylist:"

// DenylistService marks logged-out tokens as revoked until they expire.
type DenylistService struct {
	redis *redis.Client
}

func NewDenylistService(redisClient *redis.Client) *DenylistService {
	return &DenylistService{redis: redisClient}
}

func (s *DenylistService) Add(tokenString string, expiration time.Duration) error {
	key := denylistPrefix + tokenString
	return s.redis.Set(database.Ctx, key, 1, expiration).Err()
}

func (s *DenylistService) IsDenylisted(tokenString string) (bool, error) {
	key := denylistPrefix + tokenString
	val, err := s.redis.Get(database.Ctx, key).Result()
	if err != nil {
		if err == redis.Nil { // key does not exist
			return false, nil
		}
		return false, err
	}
	return val != "", nil
}
