package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/amirasaad/ledger/pkg/eventbus"
	"github.com/redis/go-redis/v9"
)

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Factories maps an event type to a constructor for decoding its payload.
type Factories map[string]func() eventbus.Event

// RedisEventBus publishes events to a Redis stream and consumes them through
// a consumer group.
type RedisEventBus struct {
	client    *redis.Client
	stream    string
	group     string
	consumer  string
	factories Factories
	logger    *slog.Logger

	mu       sync.RWMutex
	handlers map[string][]eventbus.HandlerFunc
}

// NewWithRedis connects to url and makes sure stream and group exist.
func NewWithRedis(
	ctx context.Context,
	url, stream, group string,
	factories Factories,
	logger *slog.Logger,
) (*RedisEventBus, error) {
	if url == "" || stream == "" || group == "" {
		return nil, errors.New("redis event bus: url, stream, and group are required")
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis event bus: invalid URL: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis event bus: connection failed: %w", err)
	}

	err = client.XGroupCreateMkStream(ctx, stream, group, "0").Err()
	if err != nil && !isBusyGroup(err) {
		return nil, fmt.Errorf("redis event bus: create group: %w", err)
	}

	host, _ := os.Hostname()
	return &RedisEventBus{
		client:    client,
		stream:    stream,
		group:     group,
		consumer:  fmt.Sprintf("%s-%d", host, os.Getpid()),
		factories: factories,
		logger:    logger.With("bus", "redis", "stream", stream),
		handlers:  make(map[string][]eventbus.HandlerFunc),
	}, nil
}

func isBusyGroup(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "BUSYGROUP")
}

// Emit appends the event to the stream.
func (b *RedisEventBus) Emit(ctx context.Context, event eventbus.Event) error {
	raw, err := encodeEvent(event)
	if err != nil {
		return err
	}
	if err := b.client.XAdd(ctx, &redis.XAddArgs{
		Stream: b.stream,
		Values: map[string]any{"event": raw},
	}).Err(); err != nil {
		b.logger.Error("failed to emit event", "type", event.EventType(), "error", err)
		return fmt.Errorf("redis event bus: emit failed: %w", err)
	}
	b.logger.Debug("event emitted", "type", event.EventType())
	return nil
}

// Register adds a handler. Handlers only run while Start is consuming.
func (b *RedisEventBus) Register(eventType string, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Start consumes the stream until ctx is cancelled.
func (b *RedisEventBus) Start(ctx context.Context) {
	b.logger.Info("consumer started", "group", b.group, "consumer", b.consumer)
	for {
		if ctx.Err() != nil {
			b.logger.Info("consumer stopped")
			return
		}
		res, err := b.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    b.group,
			Consumer: b.consumer,
			Streams:  []string{b.stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
				b.logger.Error("error reading from stream", "error", err)
				time.Sleep(time.Second)
			}
			continue
		}
		for _, stream := range res {
			for _, msg := range stream.Messages {
				b.handle(ctx, msg)
			}
		}
	}
}

func (b *RedisEventBus) handle(ctx context.Context, msg redis.XMessage) {
	event, err := decodeEvent(msg.Values, b.factories)
	if err != nil {
		b.logger.Error("failed to decode event", "msg_id", msg.ID, "error", err)
		b.pushToDLQ(ctx, msg.Values)
	} else {
		b.mu.RLock()
		handlers := append([]eventbus.HandlerFunc{}, b.handlers[event.EventType()]...)
		b.mu.RUnlock()
		for _, handler := range handlers {
			func() {
				defer func() {
					if r := recover(); r != nil {
						b.logger.Error("handler panic recovered", "panic", r, "type", event.EventType())
						b.pushToDLQ(ctx, msg.Values)
					}
				}()
				if err := handler(ctx, event); err != nil {
					b.logger.Error("handler error", "error", err, "type", event.EventType())
					b.pushToDLQ(ctx, msg.Values)
				}
			}()
		}
	}
	if err := b.client.XAck(ctx, b.stream, b.group, msg.ID).Err(); err != nil {
		b.logger.Error("failed to acknowledge message", "error", err, "msg_id", msg.ID)
	}
}

func (b *RedisEventBus) pushToDLQ(ctx context.Context, values map[string]any) {
	dlq := b.stream + ":dlq"
	if err := b.client.XAdd(ctx, &redis.XAddArgs{Stream: dlq, Values: values}).Err(); err != nil {
		b.logger.Error("failed to push to DLQ", "error", err, "stream", dlq)
		return
	}
	b.logger.Warn("event pushed to DLQ", "stream", dlq)
}

// Close releases the redis client.
func (b *RedisEventBus) Close() error {
	return b.client.Close()
}

func encodeEvent(event eventbus.Event) (string, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("redis event bus: marshal failed: %w", err)
	}
	raw, err := json.Marshal(envelope{Type: event.EventType(), Payload: payload})
	if err != nil {
		return "", fmt.Errorf("redis event bus: envelope marshal failed: %w", err)
	}
	return string(raw), nil
}

func decodeEvent(values map[string]any, factories Factories) (eventbus.Event, error) {
	raw, ok := values["event"].(string)
	if !ok {
		return nil, errors.New("message has no event field")
	}
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	constructor, ok := factories[env.Type]
	if !ok {
		return nil, fmt.Errorf("unknown event type %q", env.Type)
	}
	event := constructor()
	if err := json.Unmarshal(env.Payload, event); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	return event, nil
}

var _ eventbus.Bus = (*RedisEventBus)(nil)
