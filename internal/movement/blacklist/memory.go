// Package blacklist looks up the risk attached to port and country names.
// Entries are reference data: this module reads them and never writes them
// during a screening run.
package blacklist

import (
	"context"
	"sync"

	"seawatch/internal/movement/models"
	textutil "seawatch/pkg/platform/strings"
)

// MemoryStore keeps entries in process. Names match case-insensitively.
type MemoryStore struct {
	mu        sync.RWMutex
	ports     map[string]models.BlacklistHit
	countries map[string]models.BlacklistHit
}

// NewMemoryStore creates a store seeded with entries.
func NewMemoryStore(entries ...models.BlacklistEntry) *MemoryStore {
	s := &MemoryStore{
		ports:     make(map[string]models.BlacklistHit),
		countries: make(map[string]models.BlacklistHit),
	}
	for _, e := range entries {
		s.Put(e)
	}
	return s
}

// Put adds or replaces an entry.
func (s *MemoryStore) Put(e models.BlacklistEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hit := models.BlacklistHit{Severity: e.Severity, Category: e.Category}
	if key := textutil.NameKey(e.PortName); key != "" {
		s.ports[key] = hit
	}
	if key := textutil.NameKey(e.CountryName); key != "" {
		s.countries[key] = hit
	}
}

// Severity returns the more severe of the port-name and country-name
// entries. Empty names are not looked up.
func (s *MemoryStore) Severity(_ context.Context, portName, countryName string) (models.BlacklistHit, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var hits []models.BlacklistHit
	if hit, ok := s.ports[textutil.NameKey(portName)]; ok {
		hits = append(hits, hit)
	}
	if hit, ok := s.countries[textutil.NameKey(countryName)]; ok {
		hits = append(hits, hit)
	}
	hit, ok := mostSevere(hits)
	return hit, ok, nil
}

// mostSevere picks the highest known severity. Ties keep the first hit, so
// a port entry wins over a country entry of the same level.
func mostSevere(hits []models.BlacklistHit) (models.BlacklistHit, bool) {
	var (
		best  models.BlacklistHit
		found bool
	)
	for _, h := range hits {
		if !h.Severity.IsKnown() {
			continue
		}
		if !found || h.Severity > best.Severity {
			best, found = h, true
		}
	}
	return best, found
}
