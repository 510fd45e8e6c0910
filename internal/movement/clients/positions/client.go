// Package positions is the HTTP client for the transponder position feed.
package positions

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"seawatch/internal/movement/models"
	"seawatch/internal/movement/ports"
	"seawatch/internal/movement/providers"
	"seawatch/internal/platform/config"
	id "seawatch/pkg/domain"
	"seawatch/pkg/platform/sentinel"
)

const (
	maxBody = 16 << 20

	// noFixThreshold: the vendor reports "no fix" as 971.x in either axis.
	noFixThreshold = 971
)

// Client pages positions from the feed. Safe for concurrent use; all callers
// share one token bucket.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client for cfg.
func New(cfg config.FeedConfig, opts ...Option) *Client {
	c := &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), max(cfg.Burst, 1)),
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type positionDTO struct {
	Timestamp time.Time  `json:"timestamp"`
	Latitude  *float64   `json:"lat"`
	Longitude *float64   `json:"lon"`
	Speed     *float64   `json:"speed"`
	Heading   *float64   `json:"heading"`
	Departed  *time.Time `json:"departed"`
}

type pageDTO struct {
	Positions  []positionDTO `json:"positions"`
	NextCursor *string       `json:"next_cursor"`
}

// Page fetches one window of positions ending at endCursor (empty for "now"),
// newest first. It returns sentinel.ErrNoMoreData when the feed has nothing
// in that window.
func (c *Client) Page(ctx context.Context, vesselID id.VesselID, endCursor string, pageSize int) (ports.PositionPage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return ports.PositionPage{}, providers.FromTransport(providers.ProviderPositions, err)
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(pageSize))
	if endCursor != "" {
		q.Set("end", endCursor)
	}
	endpoint := fmt.Sprintf("%s/v1/vessels/%s/positions?%s", c.baseURL, url.PathEscape(vesselID.String()), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.PositionPage{}, providers.NewProviderError(providers.ErrorInternal, providers.ProviderPositions, "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.PositionPage{}, providers.FromTransport(providers.ProviderPositions, err)
	}
	defer resp.Body.Close()

	body, err := providers.ReadBody(providers.ProviderPositions, resp, maxBody)
	if err != nil {
		return ports.PositionPage{}, err
	}
	switch {
	case resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusNotFound:
		return ports.PositionPage{}, sentinel.ErrNoMoreData
	case resp.StatusCode != http.StatusOK:
		c.logger.WarnContext(ctx, "position feed returned an error",
			"vessel_id", vesselID.String(),
			"status", resp.StatusCode,
		)
		return ports.PositionPage{}, providers.FromStatus(providers.ProviderPositions, resp.StatusCode, body)
	}

	page, err := parsePage(vesselID, body)
	if err != nil {
		if providers.GetCategory(err) == providers.ErrorBadData {
			c.logger.WarnContext(ctx, "position feed returned an unreadable page",
				"vessel_id", vesselID.String(),
				"error", err,
			)
		}
		return page, err
	}
	if noFix := countNoFix(page.Positions); noFix > 0 {
		c.logger.DebugContext(ctx, "positions without a fix",
			"vessel_id", vesselID.String(),
			"no_fix", noFix,
			"positions", len(page.Positions),
		)
	}
	return page, nil
}

func parsePage(vesselID id.VesselID, body []byte) (ports.PositionPage, error) {
	var dto pageDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return ports.PositionPage{}, providers.BadData(providers.ProviderPositions, err)
	}
	if len(dto.Positions) == 0 && dto.NextCursor == nil {
		return ports.PositionPage{}, sentinel.ErrNoMoreData
	}

	page := ports.PositionPage{Positions: make([]models.Position, 0, len(dto.Positions))}
	if dto.NextCursor != nil {
		page.NextCursor = *dto.NextCursor
	}
	for _, p := range dto.Positions {
		if p.Timestamp.IsZero() {
			return ports.PositionPage{}, providers.BadData(providers.ProviderPositions, fmt.Errorf("position without timestamp"))
		}
		pos := models.Position{
			VesselID:  vesselID,
			Timestamp: p.Timestamp.UTC(),
			Speed:     p.Speed,
			Heading:   p.Heading,
			Source:    models.SourceTransponder,
		}
		if p.Departed != nil {
			pos.Departed = models.Time(*p.Departed)
		}
		if !isNoFix(p.Latitude) && !isNoFix(p.Longitude) {
			pos.Latitude, pos.Longitude = p.Latitude, p.Longitude
		}
		page.Positions = append(page.Positions, pos)
	}
	return page, nil
}

func countNoFix(positions []models.Position) int {
	n := 0
	for _, p := range positions {
		if !p.HasFix() {
			n++
		}
	}
	return n
}

func isNoFix(v *float64) bool {
	return v == nil || math.Abs(*v) >= noFixThreshold
}
