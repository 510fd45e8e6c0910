// Package store persists movement reports.
package store

import (
	"context"
	"slices"
	"sync"

	"seawatch/internal/movement/report"
	id "seawatch/pkg/domain"
	"seawatch/pkg/platform/sentinel"
)

// InMemoryStore keeps reports in a map. Returned reports are copies.
type InMemoryStore struct {
	mu      sync.RWMutex
	reports map[id.ScreeningID]report.Report
}

// NewInMemory creates an empty store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{reports: make(map[id.ScreeningID]report.Report)}
}

func (s *InMemoryStore) GetOrCreate(_ context.Context, screeningID id.ScreeningID, defaults report.Defaults) (*report.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[screeningID]
	if !ok {
		r = report.Report{
			ScreeningID:    screeningID,
			ShipID:         defaults.ShipID,
			IMO:            defaults.IMO,
			PortVisits:     []report.VisitRecord{},
			PortCallEvents: []report.PortCallRecord{},
			Severity:       id.SeverityUnknown,
			CreatedAt:      defaults.Now,
			UpdatedAt:      defaults.Now,
		}
		s.reports[screeningID] = r
	}
	return clone(r), nil
}

func (s *InMemoryStore) UpdateMovement(_ context.Context, r *report.Report, fields report.MovementFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.reports[r.ScreeningID]
	if !ok {
		return sentinel.ErrNotFound
	}
	fields.Apply(&stored)
	s.reports[r.ScreeningID] = *clone(stored)
	fields.Apply(r)
	return nil
}

// Get returns the stored report or sentinel.ErrNotFound.
func (s *InMemoryStore) Get(_ context.Context, screeningID id.ScreeningID) (*report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[screeningID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(r), nil
}

func clone(r report.Report) *report.Report {
	r.PortVisits = slices.Clone(r.PortVisits)
	r.PortCallEvents = slices.Clone(r.PortCallEvents)
	r.Warnings = slices.Clone(r.Warnings)
	return &r
}
