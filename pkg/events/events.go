package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

const (
	ApplicationSubmitted     = "application.submitted"
	ApplicationStatusChanged = "application.status_changed"
	JobPosted                = "job.posted"
)

type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Key        string    `json:"key"`
	Data       any       `json:"data"`
}

// New builds an event. key is used for partitioning (Kafka) and should be the
// aggregate id the event is about.
func New(eventType, key string, data any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Key:        key,
		Data:       data,
	}
}

func (e Event) Marshal() ([]byte, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event %s: %w", e.Type, err)
	}
	return body, nil
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type Options struct {
	Broker       string
	RabbitMQURL  string
	KafkaBrokers []string
	KafkaTopic   string
}

// NewPublisher picks the backend named by opts.Broker. When the broker cannot
// be reached it logs and falls back to the no-op publisher.
func NewPublisher(opts Options) Publisher {
	switch opts.Broker {
	case "rabbitmq":
		p, err := NewRabbitMQPublisher(opts.RabbitMQURL)
		if err != nil {
			log.Printf("⚠️  rabbitmq unavailable, events disabled: %v", err)
			return Noop{}
		}
		log.Println("✅ Publishing domain events to rabbitmq")
		return p
	case "kafka":
		if len(opts.KafkaBrokers) == 0 {
			log.Println("⚠️  KAFKA_BROKERS empty, events disabled")
			return Noop{}
		}
		log.Println("✅ Publishing domain events to kafka")
		return NewKafkaPublisher(opts.KafkaBrokers, opts.KafkaTopic)
	default:
		return Noop{}
	}
}

type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }

// PublishAsync fires the event on a detached context and only logs failures.
// Request handlers use it so a broker outage never fails the request.
func PublishAsync(p Publisher, event Event) {
	if p == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := p.Publish(ctx, event); err != nil {
			log.Printf("❌ failed to publish %s: %v", event.Type, err)
		}
	}()
}
