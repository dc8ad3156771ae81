package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/minhvo/profile-atlas/adapters/event"
	"github.com/minhvo/profile-atlas/internal/config"
	"github.com/minhvo/profile-atlas/pkg/logger"
)

// The worker tails the profile event stream and writes a structured activity
// log of directory changes.
func main() {
	fmt.Println("Starting Profile Atlas Worker...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}
	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatal("FATAL: Kafka brokers are not configured")
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	// Kafka Consumer
	profileConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicProfileEvents,
		GroupID:  "directory-activity-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer profileConsumer.Close()

	log.Printf("Worker listening on topic '%s'...", event.TopicProfileEvents)

	ctx := context.Background()
	for {
		msg, err := profileConsumer.ReadMessage(ctx)
		if err != nil {
			log.Printf("ERROR: Failed to read message from Kafka: %v", err)
			continue
		}

		var payload event.ProfileEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			log.Printf("ERROR: Failed to unmarshal event: %v. Skipping.", err)
			continue
		}

		appLogger.Info("Directory activity",
			zap.String("event_type", string(payload.EventType)),
			zap.String("profile_id", payload.ProfileID.String()),
			zap.String("address", payload.Address),
			zap.Time("occurred_at", payload.OccurredAt),
		)
	}
}
