// Package portcalls is the HTTP client for the shore-reported port-call feed.
package portcalls

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"seawatch/internal/movement/models"
	"seawatch/internal/movement/ports"
	"seawatch/internal/movement/providers"
	"seawatch/internal/platform/config"
	id "seawatch/pkg/domain"
)

const maxBody = 16 << 20

// Client lists port calls for a vessel.
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

type eventDTO struct {
	Entered                   *time.Time `json:"entered"`
	Departed                  *time.Time `json:"departed"`
	IHSPortID                 string     `json:"ihs_port_id"`
	PortName                  string     `json:"port_name"`
	CountryName               string     `json:"country_name"`
	CountryCode               string     `json:"country_code"`
	LastPortOfCall            string     `json:"last_port_of_call"`
	LastPortOfCallCountry     string     `json:"last_port_of_call_country"`
	LastPortOfCallCountryCode string     `json:"last_port_of_call_country_code"`
	DestinationPort           string     `json:"destination_port"`
	MovementType              string     `json:"movement_type"`
}

type listDTO struct {
	PortCalls []eventDTO `json:"port_calls"`
}

// List returns up to limit port calls in the order the feed chooses. An
// unknown vessel is an empty list.
func (c *Client) List(ctx context.Context, imo id.IMO, limit int, order ports.OrderHint) ([]models.PortCallEvent, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, providers.FromTransport(providers.ProviderPortCalls, err)
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if order != ports.OrderNone {
		q.Set("order", string(order))
	}
	endpoint := fmt.Sprintf("%s/v1/vessels/%s/port-calls?%s", c.baseURL, url.PathEscape(imo.String()), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, providers.NewProviderError(providers.ErrorInternal, providers.ProviderPortCalls, "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, providers.FromTransport(providers.ProviderPortCalls, err)
	}
	defer resp.Body.Close()

	body, err := providers.ReadBody(providers.ProviderPortCalls, resp, maxBody)
	if err != nil {
		return nil, err
	}
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNoContent, http.StatusNotFound:
		return nil, nil
	default:
		c.logger.WarnContext(ctx, "port call feed returned an error",
			"imo", imo.String(),
			"status", resp.StatusCode,
			"order", string(order),
		)
		return nil, providers.FromStatus(providers.ProviderPortCalls, resp.StatusCode, body)
	}

	var dto listDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		c.logger.WarnContext(ctx, "port call feed returned an unreadable list",
			"imo", imo.String(),
			"error", err,
		)
		return nil, providers.BadData(providers.ProviderPortCalls, err)
	}
	events := make([]models.PortCallEvent, 0, len(dto.PortCalls))
	for _, e := range dto.PortCalls {
		events = append(events, e.toModel())
	}
	return events, nil
}

func (e eventDTO) toModel() models.PortCallEvent {
	ev := models.PortCallEvent{
		IHSPortID:                 strings.TrimSpace(e.IHSPortID),
		PortName:                  strings.TrimSpace(e.PortName),
		CountryName:               strings.TrimSpace(e.CountryName),
		CountryCode:               strings.TrimSpace(e.CountryCode),
		LastPortOfCall:            strings.TrimSpace(e.LastPortOfCall),
		LastPortOfCallCountry:     strings.TrimSpace(e.LastPortOfCallCountry),
		LastPortOfCallCountryCode: strings.TrimSpace(e.LastPortOfCallCountryCode),
		DestinationPort:           strings.TrimSpace(e.DestinationPort),
		MovementType:              strings.TrimSpace(e.MovementType),
	}
	if e.Entered != nil {
		ev.Entered = models.Time(*e.Entered)
	}
	if e.Departed != nil {
		ev.Departed = models.Time(*e.Departed)
	}
	return ev
}
