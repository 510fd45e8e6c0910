// Package report holds the persisted shape of the movement section of a
// screening report and the conversion from reconciled models into it.
package report

import (
	"strconv"
	"time"

	"seawatch/internal/movement/models"
	id "seawatch/pkg/domain"
)

// TimeLayout is the UTC timestamp layout used in persisted records.
const TimeLayout = "2006-01-02T15:04:05Z"

// Coordinates written when a port location is unknown.
const (
	UnknownLatitude  = "90"
	UnknownLongitude = "180"
)

// Report is the movement section of one screening's report.
type Report struct {
	ScreeningID    id.ScreeningID   `json:"screening_id"`
	ShipID         id.ShipID        `json:"ship_id"`
	IMO            id.IMO           `json:"imo"`
	PortVisits     []VisitRecord    `json:"port_visits"`
	PortCallEvents []PortCallRecord `json:"port_call_events"`
	Severity       id.Severity      `json:"severity"`
	Strategy       string           `json:"strategy,omitempty"`
	Warnings       []string         `json:"warnings,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// Defaults seeds a report that does not exist yet.
type Defaults struct {
	ShipID id.ShipID
	IMO    id.IMO
	Now    time.Time
}

// MovementFields is the update applied once per run.
type MovementFields struct {
	PortVisits     []VisitRecord
	PortCallEvents []PortCallRecord
	Severity       id.Severity
	Strategy       string
	Warnings       []string
	UpdatedAt      time.Time
}

// Apply copies fields onto r.
func (f MovementFields) Apply(r *Report) {
	r.PortVisits = f.PortVisits
	r.PortCallEvents = f.PortCallEvents
	r.Severity = f.Severity
	r.Strategy = f.Strategy
	r.Warnings = f.Warnings
	r.UpdatedAt = f.UpdatedAt
}

// VisitRecord is one persisted port visit.
type VisitRecord struct {
	Entered         *string     `json:"entered"`
	Departed        *string     `json:"departed"`
	PortName        string      `json:"port_name"`
	PortCountryName string      `json:"port_country_name"`
	PortCode        string      `json:"port_code"`
	PortLatitude    string      `json:"port_latitude"`
	PortLongitude   string      `json:"port_longitude"`
	Severity        id.Severity `json:"severity"`
	Category        string      `json:"category"`
}

// PortCallRecord is one persisted port-call event.
type PortCallRecord struct {
	Entered                   *string     `json:"entered"`
	Departed                  *string     `json:"departed"`
	PortName                  string      `json:"port_name"`
	CountryName               string      `json:"country_name"`
	LastPortOfCallName        string      `json:"last_port_of_call_name"`
	LastPortOfCallCountry     string      `json:"last_port_of_call_country"`
	LastPortOfCallCountryCode string      `json:"last_port_of_call_country_code"`
	DestinationPort           string      `json:"destination_port"`
	PortSeverity              id.Severity `json:"port_severity"`
	LastPortOfCallSeverity    id.Severity `json:"last_port_of_call_severity"`
	DestinationPortSeverity   id.Severity `json:"destination_port_severity"`
}

// FromMovement converts a reconciled movement into the update for a report.
func FromMovement(m models.Movement) MovementFields {
	return MovementFields{
		PortVisits:     VisitRecords(m.Visits),
		PortCallEvents: PortCallRecords(m.PortCalls),
		Severity:       m.Severity,
		Strategy:       m.Strategy,
		Warnings:       m.Warnings,
		UpdatedAt:      m.ComputedAt,
	}
}

// VisitRecords serializes visits in order.
func VisitRecords(visits []models.Visit) []VisitRecord {
	out := make([]VisitRecord, 0, len(visits))
	for _, v := range visits {
		out = append(out, VisitRecord{
			Entered:         FormatTime(v.Entered),
			Departed:        FormatTime(v.Departed),
			PortName:        v.Port.Name,
			PortCountryName: v.Port.Country,
			PortCode:        v.Port.Code,
			PortLatitude:    formatCoord(v.Port.Latitude, UnknownLatitude),
			PortLongitude:   formatCoord(v.Port.Longitude, UnknownLongitude),
			Severity:        v.Severity,
			Category:        v.Category,
		})
	}
	return out
}

// PortCallRecords serializes port-call events in order.
func PortCallRecords(events []models.PortCallEvent) []PortCallRecord {
	out := make([]PortCallRecord, 0, len(events))
	for _, e := range events {
		out = append(out, PortCallRecord{
			Entered:                   FormatTime(e.Entered),
			Departed:                  FormatTime(e.Departed),
			PortName:                  e.PortName,
			CountryName:               e.CountryName,
			LastPortOfCallName:        e.LastPortOfCall,
			LastPortOfCallCountry:     e.LastPortOfCallCountry,
			LastPortOfCallCountryCode: e.LastPortOfCallCountryCode,
			DestinationPort:           e.DestinationPort,
			PortSeverity:              e.PortSeverity,
			LastPortOfCallSeverity:    e.LastPortOfCallSeverity,
			DestinationPortSeverity:   e.DestinationSeverity,
		})
	}
	return out
}

// FormatTime renders t in UTC with TimeLayout; nil stays nil.
func FormatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(TimeLayout)
	return &s
}

func formatCoord(v *float64, fallback string) string {
	if v == nil {
		return fallback
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
