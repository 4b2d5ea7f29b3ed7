package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("events")

// Publisher delivers game events to whoever is watching.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type redisPublisher struct {
	rdb     *redis.Client
	channel string
}

// NewRedisPublisher creates a Publisher that sends JSON encoded events to a
// Redis Pub/Sub channel. An empty channel means EventsChannel.
func NewRedisPublisher(rdb *redis.Client, channel string) Publisher {
	if channel == "" {
		channel = EventsChannel
	}
	return &redisPublisher{rdb: rdb, channel: channel}
}

func (p *redisPublisher) Publish(ctx context.Context, event Event) error {
	ctx, span := tracer.Start(ctx, "RedisPublisher.Publish", trace.WithAttributes(
		attribute.String("event.type", event.Type),
		attribute.String("messaging.destination", p.channel),
	))
	defer span.End()

	data, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal %s event: %w", event.Type, err)
	}

	if err := p.rdb.Publish(ctx, p.channel, data).Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to publish event")
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}
	return nil
}

func (p *redisPublisher) Close() error {
	return p.rdb.Close()
}

type logPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a Publisher that writes every event to logger at
// debug level. A nil logger means slog.Default().
func NewLogPublisher(logger *slog.Logger) Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &logPublisher{logger: logger}
}

func (p *logPublisher) Publish(ctx context.Context, event Event) error {
	p.logger.DebugContext(ctx, "Game event", "event", event.Type, "payload", string(event.Payload))
	return nil
}

func (p *logPublisher) Close() error { return nil }
