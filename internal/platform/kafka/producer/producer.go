// Package producer publishes keyed JSON messages.
package producer

import (
	"context"
	"fmt"
	"log/slog"

	json "github.com/goccy/go-json"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Producer wraps a franz-go client for publishing.
type Producer struct {
	client *kgo.Client
	logger *slog.Logger
}

// New creates a Producer.
func New(client *kgo.Client, logger *slog.Logger) *Producer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Producer{client: client, logger: logger}
}

// PublishAsync encodes payload and produces it without waiting. Failures are
// logged only; onDone, when set, is called with the delivery result.
func (p *Producer) PublishAsync(ctx context.Context, topic, key string, payload any, onDone func(error)) {
	value, err := json.Marshal(payload)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to encode kafka message", "topic", topic, "key", key, "error", err)
		if onDone != nil {
			onDone(err)
		}
		return
	}
	record := &kgo.Record{Topic: topic, Key: []byte(key), Value: value}
	p.client.Produce(context.WithoutCancel(ctx), record, func(r *kgo.Record, err error) {
		if err != nil {
			p.logger.Warn("kafka produce failed", "topic", r.Topic, "key", string(r.Key), "error", err)
		}
		if onDone != nil {
			onDone(err)
		}
	})
}

// Publish encodes payload and waits for the broker to acknowledge it.
func (p *Producer) Publish(ctx context.Context, topic, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode kafka message: %w", err)
	}
	record := &kgo.Record{Topic: topic, Key: []byte(key), Value: value}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce to %s: %w", topic, err)
	}
	return nil
}

// Flush waits for buffered records.
func (p *Producer) Flush(ctx context.Context) error {
	return p.client.Flush(ctx)
}
