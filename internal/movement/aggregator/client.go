// Package aggregator talks to the optional external movement aggregation
// service. The layers compose as cache -> circuit breaker -> HTTP client.
package aggregator

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	json "github.com/goccy/go-json"

	"seawatch/internal/movement/models"
	"seawatch/internal/movement/ports"
	"seawatch/internal/movement/providers"
	id "seawatch/pkg/domain"
)

const maxBody = 32 << 20

// Client is the plain HTTP client for the aggregator.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type portDTO struct {
	Code      string   `json:"code"`
	IHSPortID string   `json:"ihs_port_id"`
	Name      string   `json:"name"`
	Country   string   `json:"country"`
	Latitude  *float64 `json:"lat"`
	Longitude *float64 `json:"lon"`
}

type visitDTO struct {
	Port     portDTO     `json:"port"`
	Entered  *time.Time  `json:"entered"`
	Departed *time.Time  `json:"departed"`
	Severity id.Severity `json:"severity"`
	Category string      `json:"category"`
}

type portCallDTO struct {
	Entered                   *time.Time  `json:"entered"`
	Departed                  *time.Time  `json:"departed"`
	IHSPortID                 string      `json:"ihs_port_id"`
	PortName                  string      `json:"port_name"`
	CountryName               string      `json:"country_name"`
	CountryCode               string      `json:"country_code"`
	LastPortOfCall            string      `json:"last_port_of_call"`
	LastPortOfCallCountry     string      `json:"last_port_of_call_country"`
	LastPortOfCallCountryCode string      `json:"last_port_of_call_country_code"`
	DestinationPort           string      `json:"destination_port"`
	MovementType              string      `json:"movement_type"`
	PortSeverity              id.Severity `json:"port_severity"`
	LastPortOfCallSeverity    id.Severity `json:"last_port_of_call_severity"`
	DestinationSeverity       id.Severity `json:"destination_port_severity"`
}

// movementsDTO is both the wire format and the cached form.
type movementsDTO struct {
	Visits    []visitDTO    `json:"visits"`
	PortCalls []portCallDTO `json:"port_calls"`
}

// Movements fetches the aggregated visits and port calls for q.
func (c *Client) Movements(ctx context.Context, q ports.MovementQuery) (ports.AggregatedMovement, error) {
	params := url.Values{}
	params.Set("since", q.Since.UTC().Format(time.RFC3339))
	if q.VesselID != "" {
		params.Set("vessel_id", q.VesselID.String())
	}
	endpoint := fmt.Sprintf("%s/v1/vessels/%s/movements?%s", c.baseURL, url.PathEscape(q.IMO.String()), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.AggregatedMovement{}, providers.NewProviderError(providers.ErrorInternal, providers.ProviderAggregator, "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.AggregatedMovement{}, providers.FromTransport(providers.ProviderAggregator, err)
	}
	defer resp.Body.Close()

	body, err := providers.ReadBody(providers.ProviderAggregator, resp, maxBody)
	if err != nil {
		return ports.AggregatedMovement{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return ports.AggregatedMovement{}, providers.FromStatus(providers.ProviderAggregator, resp.StatusCode, body)
	}

	var dto movementsDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return ports.AggregatedMovement{}, providers.BadData(providers.ProviderAggregator, err)
	}
	return dto.toModel(), nil
}

func (d movementsDTO) toModel() ports.AggregatedMovement {
	out := ports.AggregatedMovement{
		Visits:    make([]models.Visit, 0, len(d.Visits)),
		PortCalls: make([]models.PortCallEvent, 0, len(d.PortCalls)),
	}
	for _, v := range d.Visits {
		out.Visits = append(out.Visits, models.Visit{
			Port: models.PortMatch{
				Code:      v.Port.Code,
				IHSPortID: v.Port.IHSPortID,
				Name:      v.Port.Name,
				Country:   v.Port.Country,
				Latitude:  v.Port.Latitude,
				Longitude: v.Port.Longitude,
			},
			Entered:  utc(v.Entered),
			Departed: utc(v.Departed),
			Severity: v.Severity,
			Category: v.Category,
		})
	}
	for _, e := range d.PortCalls {
		out.PortCalls = append(out.PortCalls, models.PortCallEvent{
			Entered:                   utc(e.Entered),
			Departed:                  utc(e.Departed),
			IHSPortID:                 e.IHSPortID,
			PortName:                  e.PortName,
			CountryName:               e.CountryName,
			CountryCode:               e.CountryCode,
			LastPortOfCall:            e.LastPortOfCall,
			LastPortOfCallCountry:     e.LastPortOfCallCountry,
			LastPortOfCallCountryCode: e.LastPortOfCallCountryCode,
			DestinationPort:           e.DestinationPort,
			MovementType:              e.MovementType,
			PortSeverity:              e.PortSeverity,
			LastPortOfCallSeverity:    e.LastPortOfCallSeverity,
			DestinationSeverity:       e.DestinationSeverity,
		})
	}
	return out
}

func fromModel(m ports.AggregatedMovement) movementsDTO {
	d := movementsDTO{
		Visits:    make([]visitDTO, 0, len(m.Visits)),
		PortCalls: make([]portCallDTO, 0, len(m.PortCalls)),
	}
	for _, v := range m.Visits {
		d.Visits = append(d.Visits, visitDTO{
			Port: portDTO{
				Code:      v.Port.Code,
				IHSPortID: v.Port.IHSPortID,
				Name:      v.Port.Name,
				Country:   v.Port.Country,
				Latitude:  v.Port.Latitude,
				Longitude: v.Port.Longitude,
			},
			Entered:  v.Entered,
			Departed: v.Departed,
			Severity: v.Severity,
			Category: v.Category,
		})
	}
	for _, e := range m.PortCalls {
		d.PortCalls = append(d.PortCalls, portCallDTO{
			Entered:                   e.Entered,
			Departed:                  e.Departed,
			IHSPortID:                 e.IHSPortID,
			PortName:                  e.PortName,
			CountryName:               e.CountryName,
			CountryCode:               e.CountryCode,
			LastPortOfCall:            e.LastPortOfCall,
			LastPortOfCallCountry:     e.LastPortOfCallCountry,
			LastPortOfCallCountryCode: e.LastPortOfCallCountryCode,
			DestinationPort:           e.DestinationPort,
			MovementType:              e.MovementType,
			PortSeverity:              e.PortSeverity,
			LastPortOfCallSeverity:    e.LastPortOfCallSeverity,
			DestinationSeverity:       e.DestinationSeverity,
		})
	}
	return d
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	return models.Time(*t)
}
