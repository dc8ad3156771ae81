package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/minhvo/profile-atlas/adapters/event"
	"github.com/minhvo/profile-atlas/adapters/geocoding"
	httpAdapter "github.com/minhvo/profile-atlas/adapters/http"
	"github.com/minhvo/profile-atlas/adapters/persistence"
	directoryUC "github.com/minhvo/profile-atlas/internal/application/usecase/directory"
	"github.com/minhvo/profile-atlas/internal/config"
	"github.com/minhvo/profile-atlas/internal/domain/geocode"
	"github.com/minhvo/profile-atlas/pkg/logger"
	"github.com/minhvo/profile-atlas/pkg/tracing"
)

func main() {
	fmt.Println("Start Profile Atlas API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	// Tracing (optional)
	if cfg.Tracing.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "profile-atlas-server")
		if err != nil {
			log.Fatalf("FATAL: cannot init tracing: %v", err)
		}
		defer tp.Shutdown(context.Background())
	}

	// Geocoder, with Redis read-through cache when Redis is configured
	var geocoder geocode.Geocoder = geocoding.NewGoogleGeocoder(cfg, appLogger)
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("FATAL: cannot connect Redis: %v", err)
		}
		defer redisClient.Close()
		geocoder = geocoding.NewRedisCache(geocoder, redisClient, cfg.Redis.CacheTTL, appLogger)
	}

	// Profile event stream (optional)
	var events event.Publisher = event.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg)
		if err != nil {
			log.Fatalf("FATAL: cannot init Kafka: %v", err)
		}
		defer kafkaClient.Close()
		events = kafkaClient
	}

	// Store
	profileRepo := persistence.NewMemoryProfileRepo(appLogger)

	// Use Cases
	addProfileUseCase := directoryUC.NewAddProfileUseCase(profileRepo, geocoder, events, appLogger)
	updateProfileUseCase := directoryUC.NewUpdateProfileUseCase(profileRepo, geocoder, events, appLogger)
	deleteProfileUseCase := directoryUC.NewDeleteProfileUseCase(profileRepo, events, appLogger)
	getProfileUseCase := directoryUC.NewGetProfileUseCase(profileRepo)
	listProfilesUseCase := directoryUC.NewListProfilesUseCase(profileRepo)

	// HTTP Handler
	profileHandler := httpAdapter.NewProfileHandler(
		addProfileUseCase,
		updateProfileUseCase,
		deleteProfileUseCase,
		getProfileUseCase,
		listProfilesUseCase,
		appLogger,
	)

	// Setup Gin router
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(httpAdapter.ErrorMiddleware(appLogger))

	httpAdapter.RegisterRoutes(router, profileHandler)

	log.Printf("Server running on port %s", cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Cannot run server: %v", err)
	}
}
