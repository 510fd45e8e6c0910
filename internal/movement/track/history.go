// Package track retrieves a vessel's transponder history and samples it down
// to the positions the reconciliation pipeline needs.
package track

import (
	"context"
	"errors"
	"fmt"
	"time"

	"seawatch/internal/movement/models"
	"seawatch/internal/movement/ports"
	id "seawatch/pkg/domain"
	"seawatch/pkg/platform/sentinel"
)

// CursorLayout is the layout of the opaque paging cursor. The position feed
// encodes the end of the next (earlier) window as an RFC 3339 instant.
const CursorLayout = time.RFC3339

// maxPages bounds a single history walk so a feed that never stops handing
// out cursors cannot pin a run.
const maxPages = 1000

// FetchHistory pages backwards from now until the feed runs dry, hands out a
// cursor it cannot parse, or hands out a cursor at or before stopAt.
// Positions older than stopAt are dropped. The result is newest first.
//
// sentinel.ErrNoMoreData ends the walk normally; any other error is returned.
func FetchHistory(ctx context.Context, source ports.PositionSource, vesselID id.VesselID, stopAt time.Time, pageSize int) ([]models.Position, error) {
	var (
		out    []models.Position
		cursor string
	)
	for range maxPages {
		page, err := source.Page(ctx, vesselID, cursor, pageSize)
		if errors.Is(err, sentinel.ErrNoMoreData) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fetching positions for %s: %w", vesselID, err)
		}
		for _, p := range page.Positions {
			if p.Timestamp.Before(stopAt) {
				continue
			}
			out = append(out, p)
		}

		next, ok := ParseCursor(page.NextCursor)
		if !ok || !next.After(stopAt) {
			break
		}
		cursor = page.NextCursor
	}
	return out, nil
}

// ParseCursor interprets a paging cursor. ok is false for empty or
// malformed cursors.
func ParseCursor(cursor string) (time.Time, bool) {
	if cursor == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(CursorLayout, cursor)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// FormatCursor renders t as a paging cursor.
func FormatCursor(t time.Time) string {
	return t.UTC().Format(CursorLayout)
}
