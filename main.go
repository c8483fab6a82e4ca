package main

import (
	"log"

	"github.com/hedlaron/microadventures/config"
	"github.com/hedlaron/microadventures/internal/api"
	"github.com/hedlaron/microadventures/internal/database"
	"github.com/hedlaron/microadventures/internal/models"
	"github.com/hedlaron/microadventures/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	err = logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg)
	if err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}

	// Migrate the schema
	err = db.AutoMigrate(&models.User{}, &models.Adventure{}, &models.AdventureQuota{})
	if err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	router := api.NewRouter(cfg, db, redisClient)

	if err := router.Run(":8080"); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
