package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seawatch/internal/screening/models"
	id "seawatch/pkg/domain"
	"seawatch/pkg/platform/sentinel"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	screeningID, shipID := id.NewScreeningID(), id.NewShipID()

	t.Run("pending then done", func(t *testing.T) {
		store := NewInMemory()
		require.NoError(t, store.MarkPending(ctx, screeningID, shipID, models.CheckShipMovement, now))

		pending, err := store.Get(ctx, screeningID, models.CheckShipMovement)
		require.NoError(t, err)
		assert.Equal(t, models.CheckStatusPending, pending.Status)
		assert.Equal(t, id.SeverityUnknown, pending.Severity)

		outcome := models.Outcome{Severity: id.SeverityCritical, HasReport: true}
		require.NoError(t, store.MarkDone(ctx, screeningID, models.CheckShipMovement, outcome, now.Add(time.Minute)))

		done, err := store.Get(ctx, screeningID, models.CheckShipMovement)
		require.NoError(t, err)
		assert.Equal(t, models.CheckStatusDone, done.Status)
		assert.Equal(t, id.SeverityCritical, done.Severity)
		assert.True(t, done.HasReport)
		assert.Equal(t, shipID, done.ShipID)
	})

	t.Run("pending again resets a finished check", func(t *testing.T) {
		store := NewInMemory()
		require.NoError(t, store.MarkPending(ctx, screeningID, shipID, models.CheckShipMovement, now))
		require.NoError(t, store.MarkDone(ctx, screeningID, models.CheckShipMovement, models.Outcome{Severity: id.SeverityOK, HasReport: true}, now))
		require.NoError(t, store.MarkPending(ctx, screeningID, shipID, models.CheckShipMovement, now))

		c, err := store.Get(ctx, screeningID, models.CheckShipMovement)
		require.NoError(t, err)
		assert.Equal(t, models.CheckStatusPending, c.Status)
		assert.False(t, c.HasReport)
	})

	t.Run("done without pending", func(t *testing.T) {
		store := NewInMemory()

		err := store.MarkDone(ctx, screeningID, models.CheckShipMovement, models.FailedOutcome, now)

		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}
