package database

import (
	"context"

	"github.com/go-redis/redis/v8"

	"github.com/hedlaron/microadventures/config"
)

var Ctx = context.Background()

func ConnectRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisFullAddr(),
		Password: cfg.RedisPassword,
		DB:       0, // use default DB
	})

	if _, err := client.Ping(Ctx).Result(); err != nil {
		return nil, err
	}
	return client, nil
}
