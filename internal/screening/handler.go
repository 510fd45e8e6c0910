package screening

import (
	"context"
	"log/slog"

	"seawatch/internal/platform/kafka/consumer"
	"seawatch/internal/screening/metrics"
)

// TaskHandler consumes screening tasks from Kafka and runs them in order.
type TaskHandler struct {
	runner  *Runner
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewTaskHandler creates a TaskHandler.
func NewTaskHandler(runner *Runner, m *metrics.Metrics, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TaskHandler{runner: runner, metrics: m, logger: logger}
}

// Handle decodes one task and runs it. Malformed tasks are logged and
// skipped; run failures are already recorded on the ship check.
func (h *TaskHandler) Handle(ctx context.Context, msg *consumer.Message) error {
	job, err := DecodeTask(msg.Value)
	if err != nil {
		h.metrics.IncrementOutcome("", "invalid")
		h.logger.WarnContext(ctx, "discarding invalid screening task",
			"key", string(msg.Key),
			"offset", msg.Offset,
			"error", err,
		)
		return nil
	}
	return h.runner.Run(ctx, job)
}
