// Package geo resolves positions and identifiers to ports.
package geo

import (
	"context"
	"math"
	"sync"

	"seawatch/internal/movement/models"
	"seawatch/internal/movement/ports"
	dErrors "seawatch/pkg/domain-errors"
	"seawatch/pkg/geodesy"
	textutil "seawatch/pkg/platform/strings"
)

// DefaultRadiusKm is how far from a port a fix may be and still count as
// being at that port.
const DefaultRadiusKm = 10.0

// MemoryResolver resolves against an in-process port list. Used in tests and
// for small reference sets loaded at startup.
type MemoryResolver struct {
	mu       sync.RWMutex
	ports    []models.PortMatch
	radiusKm float64
}

// NewMemoryResolver creates a resolver over portList. Ports without
// coordinates are still found by ByField but never by Nearest.
func NewMemoryResolver(portList []models.PortMatch, radiusKm float64) *MemoryResolver {
	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}
	return &MemoryResolver{ports: portList, radiusKm: radiusKm}
}

// Add registers another port.
func (r *MemoryResolver) Add(p models.PortMatch) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ports = append(r.ports, p)
}

func (r *MemoryResolver) Nearest(_ context.Context, lat, lon float64) (models.PortMatch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nearest(lat, lon), nil
}

func (r *MemoryResolver) nearest(lat, lon float64) models.PortMatch {
	box := geodesy.BoundingBox(lat, lon, r.radiusKm)
	best := models.NoMatch
	bestKm := math.Inf(1)
	for _, p := range r.ports {
		if p.Latitude == nil || p.Longitude == nil {
			continue
		}
		if !box.Contains(*p.Latitude, *p.Longitude) {
			continue
		}
		km := geodesy.DistanceKm(lat, lon, *p.Latitude, *p.Longitude)
		if km <= r.radiusKm && km < bestKm {
			best, bestKm = p, km
		}
	}
	return best
}

func (r *MemoryResolver) ByField(_ context.Context, field ports.PortField, value string) (models.PortMatch, error) {
	match, err := fieldMatcher(field, value)
	if err != nil {
		return models.NoMatch, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.ports {
		if match(p) {
			return p, nil
		}
	}
	return models.NoMatch, nil
}

func (r *MemoryResolver) NearestBatch(_ context.Context, positions []models.Position) ([]models.PortMatch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.PortMatch, len(positions))
	for i, p := range positions {
		if !p.HasFix() {
			continue
		}
		lat, lon := p.LatLon()
		out[i] = r.nearest(lat, lon)
	}
	return out, nil
}

func fieldMatcher(field ports.PortField, value string) (func(models.PortMatch) bool, error) {
	key := textutil.NameKey(value)
	switch field {
	case ports.PortFieldIHSID:
		return func(p models.PortMatch) bool { return key != "" && textutil.NameKey(p.IHSPortID) == key }, nil
	case ports.PortFieldName:
		return func(p models.PortMatch) bool { return key != "" && textutil.NameKey(p.Name) == key }, nil
	case ports.PortFieldCode:
		return func(p models.PortMatch) bool { return key != "" && textutil.NameKey(p.Code) == key }, nil
	default:
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unsupported port field: "+string(field))
	}
}
