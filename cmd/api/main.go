package main

import (
	"log"
	"time"

	"github.com/thermowatch/go-thermal-backend/config"
	"github.com/thermowatch/go-thermal-backend/internal/bootstrap"
	"github.com/thermowatch/go-thermal-backend/internal/detection"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	db, err := bootstrap.OpenDB(cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	detectionClient := detection.NewClient(
		cfg.Detection.BaseURL,
		time.Duration(cfg.Detection.TimeoutMs)*time.Millisecond,
	)

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		Version:            cfg.App.Version,
		DB:                 db,
		DetectionClient:    detectionClient,
		CORSAllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
