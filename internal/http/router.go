// Package http exposes the service's operational endpoints: liveness,
// readiness, Prometheus metrics and a read view of persisted movement
// reports.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"seawatch/internal/movement/report"
	id "seawatch/pkg/domain"
	dErrors "seawatch/pkg/domain-errors"
	"seawatch/pkg/platform/httputil"
	"seawatch/pkg/platform/middleware/requesttime"
	"seawatch/pkg/platform/sentinel"
	"seawatch/pkg/requestcontext"
)

// CheckFunc reports whether one dependency is reachable.
type CheckFunc func(ctx context.Context) error

// ReportReader reads persisted movement reports.
type ReportReader interface {
	Get(ctx context.Context, screeningID id.ScreeningID) (*report.Report, error)
}

// Options configures the router.
type Options struct {
	// Checks are run by /readyz, keyed by dependency name.
	Checks map[string]CheckFunc
	// Reports backs GET /v1/reports/{screening_id}; the route is omitted when nil.
	Reports ReportReader
	// RequestsPerMinute per client IP; zero disables limiting.
	RequestsPerMinute int
	CheckTimeout      time.Duration
	Logger            *slog.Logger
}

// NewRouter builds the ops router.
func NewRouter(opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.CheckTimeout <= 0 {
		opts.CheckTimeout = 2 * time.Second
	}
	h := &handler{opts: opts}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requesttime.Middleware)
	if opts.RequestsPerMinute > 0 {
		r.Use(httprate.LimitByIP(opts.RequestsPerMinute, time.Minute))
	}

	r.Get("/healthz", h.handleHealth)
	r.Get("/readyz", h.handleReady)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	if opts.Reports != nil {
		r.Get("/v1/reports/{screening_id}", h.handleGetReport)
	}
	return r
}

type handler struct {
	opts Options
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type readiness struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	CheckedAt time.Time         `json:"checked_at"`
}

func (h *handler) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.opts.CheckTimeout)
	defer cancel()

	names := make([]string, 0, len(h.opts.Checks))
	for name := range h.opts.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := readiness{
		Status:    "ok",
		Checks:    make(map[string]string, len(names)),
		CheckedAt: requestcontext.Now(ctx),
	}
	status := http.StatusOK
	for _, name := range names {
		if err := h.opts.Checks[name](ctx); err != nil {
			h.opts.Logger.WarnContext(ctx, "readiness check failed", "dependency", name, "error", err)
			resp.Checks[name] = "unavailable"
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}
	httputil.WriteJSON(w, status, resp)
}

func (h *handler) handleGetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	screeningID, err := id.ParseScreeningID(chi.URLParam(r, "screening_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rep, err := h.opts.Reports.Get(ctx, screeningID)
	if errors.Is(err, sentinel.ErrNotFound) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "report not found"))
		return
	}
	if err != nil {
		h.opts.Logger.ErrorContext(ctx, "failed to load report",
			"screening_id", screeningID.String(),
			"request_id", middleware.GetReqID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rep)
}
