package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/laksham-labs/assessment-portal/internal/models"
)

// Publisher emits attempt lifecycle events to the message broker.
type Publisher interface {
	PublishAttemptStarted(ctx context.Context, attempt *models.AssessmentAttempt) error
	PublishAttemptCompleted(ctx context.Context, attempt *models.AssessmentAttempt) error
	PublishAttemptExpired(ctx context.Context, attempt *models.AssessmentAttempt) error
	Close() error
}

type eventPublisher struct {
	publisher message.Publisher
	topic     string
	logger    *slog.Logger
}

// NewKafkaPublisher connects a watermill Kafka publisher for attempt events.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) (Publisher, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		wmLogger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}

	return &eventPublisher{
		publisher: publisher,
		topic:     topic,
		logger:    logger,
	}, nil
}

// NewGoChannelPublisher is an in-process publisher for tests and for
// deployments without a broker.
func NewGoChannelPublisher(topic string, logger *slog.Logger) Publisher {
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger))

	return &eventPublisher{
		publisher: pubsub,
		topic:     topic,
		logger:    logger,
	}
}

func (p *eventPublisher) PublishAttemptStarted(ctx context.Context, attempt *models.AssessmentAttempt) error {
	return p.publish(ctx, NewAttemptEvent(AttemptStartedEvent, attempt))
}

func (p *eventPublisher) PublishAttemptCompleted(ctx context.Context, attempt *models.AssessmentAttempt) error {
	return p.publish(ctx, NewAttemptEvent(AttemptCompletedEvent, attempt))
}

func (p *eventPublisher) PublishAttemptExpired(ctx context.Context, attempt *models.AssessmentAttempt) error {
	return p.publish(ctx, NewAttemptEvent(AttemptExpiredEvent, attempt))
}

func (p *eventPublisher) publish(_ context.Context, event *AttemptEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event", event.Event)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Event, err)
	}

	p.logger.Debug("event published", "event", event.Event, "attempt_id", event.AttemptID)
	return nil
}

func (p *eventPublisher) Close() error {
	return p.publisher.Close()
}

// NoopPublisher drops all events. Used when eventing is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishAttemptStarted(context.Context, *models.AssessmentAttempt) error   { return nil }
func (NoopPublisher) PublishAttemptCompleted(context.Context, *models.AssessmentAttempt) error { return nil }
func (NoopPublisher) PublishAttemptExpired(context.Context, *models.AssessmentAttempt) error   { return nil }
func (NoopPublisher) Close() error                                                             { return nil }
