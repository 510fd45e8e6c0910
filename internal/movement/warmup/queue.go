package warmup

import (
	"context"
	"log/slog"

	"seawatch/internal/movement/metrics"
	"seawatch/internal/movement/ports"
	"seawatch/internal/platform/kafka/producer"
)

// Transport names.
const (
	TransportKafka   = "kafka"
	TransportChannel = "channel"
)

// KafkaQueue publishes warm-ups to a topic without waiting for delivery.
type KafkaQueue struct {
	producer *producer.Producer
	topic    string
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewKafkaQueue creates a KafkaQueue publishing to topic.
func NewKafkaQueue(p *producer.Producer, topic string, m *metrics.Metrics, logger *slog.Logger) *KafkaQueue {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &KafkaQueue{producer: p, topic: topic, metrics: m, logger: logger}
}

// Enqueue publishes q keyed by IMO so warm-ups for one vessel stay ordered.
func (k *KafkaQueue) Enqueue(ctx context.Context, q ports.MovementQuery) {
	msg := NewMessage(q)
	k.producer.PublishAsync(ctx, k.topic, msg.IMO, msg, nil)
	k.metrics.IncrementWarmupEnqueued(TransportKafka)
	k.logger.DebugContext(ctx, "warm-up enqueued", "request_id", msg.RequestID, "imo", msg.IMO)
}

// ChannelQueue hands warm-ups to an in-process worker. A full queue drops
// the request.
type ChannelQueue struct {
	ch      chan ports.MovementQuery
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewChannelQueue creates a queue holding up to size pending requests.
func NewChannelQueue(size int, m *metrics.Metrics, logger *slog.Logger) *ChannelQueue {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ChannelQueue{ch: make(chan ports.MovementQuery, size), metrics: m, logger: logger}
}

// Enqueue never blocks.
func (c *ChannelQueue) Enqueue(ctx context.Context, q ports.MovementQuery) {
	select {
	case c.ch <- q:
		c.metrics.IncrementWarmupEnqueued(TransportChannel)
	default:
		c.metrics.IncrementWarmupResult("dropped")
		c.logger.WarnContext(ctx, "warm-up queue full, dropping request", "imo", q.IMO.String())
	}
}

// Requests is the receive side for a Worker.
func (c *ChannelQueue) Requests() <-chan ports.MovementQuery {
	return c.ch
}
