package positions

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seawatch/internal/movement/providers"
	"seawatch/internal/platform/config"
	"seawatch/pkg/platform/sentinel"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.FeedConfig{
		BaseURL:           srv.URL,
		APIKey:            "secret",
		Timeout:           2 * time.Second,
		RequestsPerSecond: 1000,
		Burst:             10,
		PageSize:          100,
	}, opts...)
}

func captureLogs(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestClient_Page(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes a page and its cursor", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/vessels/244123000/positions", r.URL.Path)
			assert.Equal(t, "50", r.URL.Query().Get("limit"))
			assert.Equal(t, "2024-03-01T00:00:00Z", r.URL.Query().Get("end"))
			assert.Equal(t, "secret", r.Header.Get("X-API-Key"))
			_, _ = w.Write([]byte(`{
				"positions": [
					{"timestamp": "2024-02-29T23:00:00Z", "lat": 51.9, "lon": 4.1, "speed": 0.2, "heading": 90},
					{"timestamp": "2024-02-29T22:00:00Z", "lat": 971.3, "lon": 971.3},
					{"timestamp": "2024-02-29T21:00:00Z", "lat": 51.8, "lon": 4.0, "departed": "2024-02-29T21:30:00+01:00"}
				],
				"next_cursor": "2024-02-29T21:00:00Z"
			}`))
		})

		page, err := client.Page(ctx, "244123000", "2024-03-01T00:00:00Z", 50)

		require.NoError(t, err)
		assert.Equal(t, "2024-02-29T21:00:00Z", page.NextCursor)
		require.Len(t, page.Positions, 3)

		first := page.Positions[0]
		assert.True(t, first.HasFix())
		assert.Equal(t, 0.2, *first.Speed)
		assert.Equal(t, time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC), first.Timestamp)

		assert.False(t, page.Positions[1].HasFix(), "vendor sentinel means no fix")

		require.NotNil(t, page.Positions[2].Departed)
		assert.Equal(t, time.Date(2024, 2, 29, 20, 30, 0, 0, time.UTC), *page.Positions[2].Departed)
	})

	t.Run("first page has no end parameter", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.False(t, r.URL.Query().Has("end"))
			_, _ = w.Write([]byte(`{"positions": [{"timestamp": "2024-02-29T23:00:00Z", "lat": 1, "lon": 2}], "next_cursor": null}`))
		})

		page, err := client.Page(ctx, "244123000", "", 10)

		require.NoError(t, err)
		assert.Empty(t, page.NextCursor)
		assert.Len(t, page.Positions, 1)
	})

	for _, status := range []int{http.StatusNoContent, http.StatusNotFound} {
		t.Run(http.StatusText(status)+" means no more data", func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			})

			_, err := client.Page(ctx, "244123000", "", 10)

			assert.ErrorIs(t, err, sentinel.ErrNoMoreData)
		})
	}

	t.Run("empty page without cursor means no more data", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"positions": []}`))
		})

		_, err := client.Page(ctx, "244123000", "", 10)

		assert.ErrorIs(t, err, sentinel.ErrNoMoreData)
	})

	t.Run("upstream 5xx is a provider outage", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusBadGateway)
		})

		_, err := client.Page(ctx, "244123000", "", 10)

		require.Error(t, err)
		assert.NotErrorIs(t, err, sentinel.ErrNoMoreData)
		assert.Equal(t, providers.ErrorProviderOutage, providers.GetCategory(err))
	})

	t.Run("malformed body is bad data", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"positions": [`))
		})

		_, err := client.Page(ctx, "244123000", "", 10)

		assert.Equal(t, providers.ErrorBadData, providers.GetCategory(err))
	})

	t.Run("logs positions without a fix", func(t *testing.T) {
		var logs bytes.Buffer
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"positions": [
				{"timestamp": "2024-02-29T23:00:00Z", "lat": 51.9, "lon": 4.1},
				{"timestamp": "2024-02-29T22:00:00Z", "lat": 971.1, "lon": 971.1}
			]}`))
		}, WithLogger(captureLogs(&logs)))

		_, err := client.Page(ctx, "244123000", "", 50)

		require.NoError(t, err)
		assert.Contains(t, logs.String(), "positions without a fix")
		assert.Contains(t, logs.String(), "no_fix=1")
	})

	t.Run("logs upstream errors", func(t *testing.T) {
		var logs bytes.Buffer
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}, WithLogger(captureLogs(&logs)))

		_, err := client.Page(ctx, "244123000", "", 50)

		require.Error(t, err)
		assert.Contains(t, logs.String(), "status=502")
	})
}
