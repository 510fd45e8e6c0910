package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seawatch/internal/movement/report"
	"seawatch/internal/movement/report/store"
	id "seawatch/pkg/domain"
	"seawatch/pkg/testutil"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	return testutil.DoRequest(h, testutil.NewRequest(t, http.MethodGet, path))
}

func TestHealth(t *testing.T) {
	w := get(t, NewRouter(Options{}), "/healthz")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReadiness(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	t.Run("all dependencies up", func(t *testing.T) {
		r := NewRouter(Options{Checks: map[string]CheckFunc{"postgres": ok, "redis": ok}})

		w := get(t, r, "/readyz")

		assert.Equal(t, http.StatusOK, w.Code)
		body := testutil.DecodeJSON[readiness](t, w)
		assert.Equal(t, "ok", body.Status)
		assert.False(t, body.CheckedAt.IsZero())
		assert.Equal(t, map[string]string{"postgres": "ok", "redis": "ok"}, body.Checks)
	})

	t.Run("one dependency down", func(t *testing.T) {
		r := NewRouter(Options{Checks: map[string]CheckFunc{"postgres": ok, "kafka": down}})

		w := get(t, r, "/readyz")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		body := testutil.DecodeJSON[readiness](t, w)
		assert.Equal(t, "unavailable", body.Status)
		assert.Equal(t, "unavailable", body.Checks["kafka"])
		assert.Equal(t, "ok", body.Checks["postgres"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	w := get(t, NewRouter(Options{}), "/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetReport(t *testing.T) {
	ctx := context.Background()
	reports := store.NewInMemory()
	screeningID := id.NewScreeningID()
	_, err := reports.GetOrCreate(ctx, screeningID, report.Defaults{
		ShipID: id.NewShipID(),
		IMO:    "9074729",
		Now:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	r := NewRouter(Options{Reports: reports})

	t.Run("existing report", func(t *testing.T) {
		w := get(t, r, "/v1/reports/"+screeningID.String())

		assert.Equal(t, http.StatusOK, w.Code)
		body := testutil.DecodeJSON[report.Report](t, w)
		assert.Equal(t, screeningID, body.ScreeningID)
		assert.Equal(t, id.SeverityUnknown, body.Severity)
	})

	t.Run("unknown report", func(t *testing.T) {
		w := get(t, r, "/v1/reports/"+id.NewScreeningID().String())

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		w := get(t, r, "/v1/reports/not-a-uuid")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRateLimit(t *testing.T) {
	r := NewRouter(Options{RequestsPerMinute: 1})

	first := get(t, r, "/healthz")
	second := get(t, r, "/healthz")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
