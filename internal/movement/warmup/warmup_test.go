package warmup

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seawatch/internal/movement/ports"
	"seawatch/internal/platform/kafka/consumer"
	id "seawatch/pkg/domain"
)

var query = ports.MovementQuery{
	ScreeningID: id.NewScreeningID(),
	IMO:         "9074729",
	VesselID:    "244123000",
	Since:       time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
}

// recordingWarmer counts warm-ups and tracks the peak number in flight.
type recordingWarmer struct {
	mu       sync.Mutex
	seen     []ports.MovementQuery
	inFlight atomic.Int32
	peak     atomic.Int32
	delay    time.Duration
	err      error
}

func (r *recordingWarmer) Warm(_ context.Context, q ports.MovementQuery) error {
	n := r.inFlight.Add(1)
	defer r.inFlight.Add(-1)
	for {
		p := r.peak.Load()
		if n <= p || r.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(r.delay)
	r.mu.Lock()
	r.seen = append(r.seen, q)
	r.mu.Unlock()
	return r.err
}

func TestMessage(t *testing.T) {
	t.Run("round trips a query", func(t *testing.T) {
		raw, err := json.Marshal(NewMessage(query))
		require.NoError(t, err)

		got, err := Decode(raw)

		require.NoError(t, err)
		assert.Equal(t, query, got)
	})

	t.Run("rejects an invalid imo", func(t *testing.T) {
		_, err := Decode([]byte(`{"imo": "123", "since": "2024-01-01T00:00:00Z"}`))
		assert.Error(t, err)
	})

	t.Run("rejects a missing since", func(t *testing.T) {
		_, err := Decode([]byte(`{"imo": "9074729"}`))
		assert.Error(t, err)
	})
}

func TestChannelQueue(t *testing.T) {
	q := NewChannelQueue(1, nil, nil)

	q.Enqueue(context.Background(), query)
	q.Enqueue(context.Background(), query) // dropped, never blocks

	assert.Len(t, q.Requests(), 1)
}

func TestWorker(t *testing.T) {
	t.Run("drains the channel with bounded concurrency", func(t *testing.T) {
		warmer := &recordingWarmer{delay: 20 * time.Millisecond}
		worker := NewWorker(warmer, 2)
		requests := make(chan ports.MovementQuery, 6)
		for range 6 {
			requests <- query
		}
		close(requests)

		require.NoError(t, worker.Run(context.Background(), requests))

		assert.Len(t, warmer.seen, 6)
		assert.LessOrEqual(t, warmer.peak.Load(), int32(2))
	})

	t.Run("failures are swallowed", func(t *testing.T) {
		warmer := &recordingWarmer{err: errors.New("aggregator down")}
		worker := NewWorker(warmer, 1)
		requests := make(chan ports.MovementQuery, 1)
		requests <- query
		close(requests)

		assert.NoError(t, worker.Run(context.Background(), requests))
		assert.Len(t, warmer.seen, 1)
	})

	t.Run("stops on cancellation", func(t *testing.T) {
		worker := NewWorker(&recordingWarmer{}, 1)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.NoError(t, worker.Run(ctx, make(chan ports.MovementQuery)))
	})

	t.Run("handles kafka messages", func(t *testing.T) {
		warmer := &recordingWarmer{}
		worker := NewWorker(warmer, 1)
		raw, err := json.Marshal(NewMessage(query))
		require.NoError(t, err)

		require.NoError(t, worker.Handle(context.Background(), &consumer.Message{Value: raw}))
		require.NoError(t, worker.Handle(context.Background(), &consumer.Message{Value: []byte("junk")}))
		worker.Wait()

		require.Len(t, warmer.seen, 1)
		assert.Equal(t, query.IMO, warmer.seen[0].IMO)
	})
}
