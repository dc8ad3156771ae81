package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/minhvo/profile-atlas/internal/config"
)

const TopicProfileEvents = "profile.events"

type ProfileEventType string

const (
	ProfileEventTypeCreated ProfileEventType = "created"
	ProfileEventTypeUpdated ProfileEventType = "updated"
	ProfileEventTypeDeleted ProfileEventType = "deleted"
)

type ProfileEventPayload struct {
	EventType  ProfileEventType `json:"event_type"`
	ProfileID  uuid.UUID        `json:"profile_id"`
	Address    string           `json:"address,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// Publisher is what the use cases need from the event stream. The Kafka
// client satisfies it; NoopPublisher stands in when no brokers are configured.
type Publisher interface {
	PublishProfileEvent(ctx context.Context, payload ProfileEventPayload) error
}

type KafkaProducerClient struct {
	ProfileEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	profileWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicProfileEvents,
		Balancer: &kafka.LeastBytes{},
	}

	fmt.Println("Initialize Kafka Producer successfully.")

	return &KafkaProducerClient{
		ProfileEventsWriter: profileWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishProfileEvent(ctx context.Context, payload ProfileEventPayload) error {
	if payload.OccurredAt.IsZero() {
		payload.OccurredAt = time.Now().UTC()
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal profile event: %w", err)
	}

	return c.ProfileEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.ProfileID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.ProfileEventsWriter != nil {
		c.ProfileEventsWriter.Close()
	}
	fmt.Println("Closed Kafka Producer")
}

// NoopPublisher drops every event. Used when the event stream is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishProfileEvent(ctx context.Context, payload ProfileEventPayload) error {
	return nil
}
