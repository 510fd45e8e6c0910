// Package store persists ship check status.
package store

import (
	"context"
	"sync"
	"time"

	"seawatch/internal/screening/models"
	id "seawatch/pkg/domain"
	"seawatch/pkg/platform/sentinel"
)

type checkKey struct {
	screeningID id.ScreeningID
	check       models.CheckName
}

// InMemoryStore keeps ship checks in a map.
type InMemoryStore struct {
	mu     sync.RWMutex
	checks map[checkKey]models.ShipCheck
}

// NewInMemory creates an empty store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{checks: make(map[checkKey]models.ShipCheck)}
}

func (s *InMemoryStore) MarkPending(_ context.Context, screeningID id.ScreeningID, shipID id.ShipID, check models.CheckName, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks[checkKey{screeningID, check}] = models.ShipCheck{
		ScreeningID: screeningID,
		Check:       check,
		ShipID:      shipID,
		Status:      models.CheckStatusPending,
		Severity:    id.SeverityUnknown,
		UpdatedAt:   now,
	}
	return nil
}

func (s *InMemoryStore) MarkDone(_ context.Context, screeningID id.ScreeningID, check models.CheckName, outcome models.Outcome, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := checkKey{screeningID, check}
	c, ok := s.checks[key]
	if !ok {
		return sentinel.ErrNotFound
	}
	c.Status = models.CheckStatusDone
	c.Severity = outcome.Severity
	c.HasReport = outcome.HasReport
	c.UpdatedAt = now
	s.checks[key] = c
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, screeningID id.ScreeningID, check models.CheckName) (*models.ShipCheck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.checks[checkKey{screeningID, check}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &c, nil
}
