package track

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"seawatch/internal/movement/models"
	"seawatch/internal/movement/outlier"
	"seawatch/internal/movement/ports"
	"seawatch/internal/movement/ports/mocks"
	id "seawatch/pkg/domain"
	"seawatch/pkg/platform/sentinel"
)

var (
	vessel = id.VesselID("538001234")
	origin = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
)

func fixAt(hours int) models.Position {
	return models.NewPosition(vessel, origin.Add(time.Duration(hours)*time.Hour), 51.9, 4.1)
}

// =============================================================================
// FetchHistory
// =============================================================================

func TestFetchHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("follows cursors until the feed runs dry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockPositionSource(ctrl)
		gomock.InOrder(
			source.EXPECT().Page(gomock.Any(), vessel, "", 2).Return(ports.PositionPage{
				Positions:  []models.Position{fixAt(10), fixAt(9)},
				NextCursor: FormatCursor(origin.Add(9 * time.Hour)),
			}, nil),
			source.EXPECT().Page(gomock.Any(), vessel, FormatCursor(origin.Add(9*time.Hour)), 2).Return(ports.PositionPage{
				Positions:  []models.Position{fixAt(8), fixAt(7)},
				NextCursor: FormatCursor(origin.Add(7 * time.Hour)),
			}, nil),
			source.EXPECT().Page(gomock.Any(), vessel, FormatCursor(origin.Add(7*time.Hour)), 2).
				Return(ports.PositionPage{}, sentinel.ErrNoMoreData),
		)

		got, err := FetchHistory(ctx, source, vessel, origin, 2)
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, origin.Add(10*time.Hour), got[0].Timestamp)
		assert.Equal(t, origin.Add(7*time.Hour), got[3].Timestamp)
	})

	t.Run("stops at the boundary and drops older positions", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockPositionSource(ctrl)
		stopAt := origin.Add(8 * time.Hour)
		source.EXPECT().Page(gomock.Any(), vessel, "", 10).Return(ports.PositionPage{
			Positions:  []models.Position{fixAt(9), fixAt(8), fixAt(7)},
			NextCursor: FormatCursor(origin.Add(7 * time.Hour)),
		}, nil)

		got, err := FetchHistory(ctx, source, vessel, stopAt, 10)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("cursor equal to the boundary ends the walk", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockPositionSource(ctrl)
		source.EXPECT().Page(gomock.Any(), vessel, "", 10).Return(ports.PositionPage{
			Positions:  []models.Position{fixAt(9)},
			NextCursor: FormatCursor(origin),
		}, nil)

		got, err := FetchHistory(ctx, source, vessel, origin, 10)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("unparsable cursor ends the walk", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockPositionSource(ctrl)
		source.EXPECT().Page(gomock.Any(), vessel, "", 10).Return(ports.PositionPage{
			Positions:  []models.Position{fixAt(9)},
			NextCursor: "page-2",
		}, nil)

		got, err := FetchHistory(ctx, source, vessel, origin, 10)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("no data at all is an empty history", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockPositionSource(ctrl)
		source.EXPECT().Page(gomock.Any(), vessel, "", 10).Return(ports.PositionPage{}, sentinel.ErrNoMoreData)

		got, err := FetchHistory(ctx, source, vessel, origin, 10)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("upstream failure propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockPositionSource(ctrl)
		boom := errors.New("upstream 502")
		source.EXPECT().Page(gomock.Any(), vessel, "", 10).Return(ports.PositionPage{}, boom)

		_, err := FetchHistory(ctx, source, vessel, origin, 10)
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
	})
}

// =============================================================================
// Sampling
// =============================================================================

func TestThin(t *testing.T) {
	t.Run("keeps one position per interval scanning newest first", func(t *testing.T) {
		var track []models.Position
		for m := 180; m >= 0; m -= 15 {
			track = append(track, models.NewPosition(vessel, origin.Add(time.Duration(m)*time.Minute), 0, 0))
		}

		got := Thin(track, time.Hour)

		require.Len(t, got, 4)
		assert.Equal(t, origin.Add(180*time.Minute), got[0].Timestamp)
		assert.Equal(t, origin.Add(120*time.Minute), got[1].Timestamp)
		assert.Equal(t, origin.Add(60*time.Minute), got[2].Timestamp)
		assert.Equal(t, origin, got[3].Timestamp)
	})

	t.Run("zero interval disables thinning", func(t *testing.T) {
		track := []models.Position{fixAt(2), fixAt(1)}
		assert.Equal(t, track, Thin(track, 0))
	})

	t.Run("empty track", func(t *testing.T) {
		assert.Empty(t, Thin(nil, time.Hour))
	})

	t.Run("no-fix position does not take a valid fix's slot once dropped", func(t *testing.T) {
		noFix := models.Position{VesselID: vessel, Timestamp: origin.Add(time.Hour)}
		track := []models.Position{fixAt(2), noFix, models.NewPosition(vessel, origin.Add(30*time.Minute), 51.9, 4.1)}

		valid, dropped := outlier.DropInvalid(track)
		got := Thin(valid, time.Hour)

		assert.Equal(t, 1, dropped)
		require.Len(t, got, 2)
		assert.True(t, got[1].HasFix())
		assert.Equal(t, origin.Add(30*time.Minute), got[1].Timestamp)
	})
}

func TestDropUnderway(t *testing.T) {
	moving := fixAt(3).WithSpeed(12)
	drifting := fixAt(2).WithSpeed(0.4)
	unknown := fixAt(1)

	t.Run("drops fixes at or above the stopped threshold", func(t *testing.T) {
		got := DropUnderway([]models.Position{moving, drifting, unknown, fixAt(0).WithSpeed(1)}, 1)
		assert.Equal(t, []models.Position{drifting, unknown}, got)
	})

	t.Run("negative threshold disables the filter", func(t *testing.T) {
		track := []models.Position{moving, drifting, unknown}
		assert.Equal(t, track, DropUnderway(track, StoppedFilterDisabled))
	})
}

func TestChronological(t *testing.T) {
	newestFirst := []models.Position{fixAt(3), fixAt(1), fixAt(2), fixAt(0)}

	got := Chronological(newestFirst)

	require.Len(t, got, 4)
	for i := range got {
		assert.Equal(t, origin.Add(time.Duration(i)*time.Hour), got[i].Timestamp)
	}
	assert.Equal(t, origin.Add(3*time.Hour), newestFirst[0].Timestamp, "input must not be reordered")
}

func TestNewestFirst(t *testing.T) {
	page := []models.Position{fixAt(1), fixAt(3), fixAt(0), fixAt(2)}

	got := NewestFirst(page)

	require.Len(t, got, 4)
	for i := range got {
		assert.Equal(t, origin.Add(time.Duration(3-i)*time.Hour), got[i].Timestamp)
	}
	assert.Equal(t, origin.Add(time.Hour), page[0].Timestamp, "input must not be reordered")
}

func TestParseCursor(t *testing.T) {
	got, ok := ParseCursor("2024-03-01T09:00:00Z")
	require.True(t, ok)
	assert.Equal(t, origin.Add(9*time.Hour), got)

	_, ok = ParseCursor("")
	assert.False(t, ok)
	_, ok = ParseCursor("yesterday")
	assert.False(t, ok)
}
