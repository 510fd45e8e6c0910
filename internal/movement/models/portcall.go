package models

import (
	"time"

	id "seawatch/pkg/domain"
)

// PortCallEvent is a shore-reported call of a vessel at a port, independent of
// the transponder feed.
type PortCallEvent struct {
	Entered  *time.Time
	Departed *time.Time

	IHSPortID   string
	PortName    string
	CountryName string
	CountryCode string

	LastPortOfCall            string
	LastPortOfCallCountry     string
	LastPortOfCallCountryCode string

	DestinationPort string

	// MovementType is the feed's fallback tag ("In Transit", "Anchored", ...)
	// used as a display placeholder when no port or country is reported.
	MovementType string

	PortSeverity           id.Severity
	LastPortOfCallSeverity id.Severity
	DestinationSeverity    id.Severity
}

// HasLocation reports whether the event names a port or a country.
func (e PortCallEvent) HasLocation() bool {
	return e.PortName != "" || e.CountryName != ""
}

// Severity is the highest of the three derived severities.
func (e PortCallEvent) Severity() id.Severity {
	return id.MaxSeverity(e.PortSeverity, e.LastPortOfCallSeverity, e.DestinationSeverity)
}

// PortCallsSeverity is the maximum severity over events, OK if empty.
func PortCallsSeverity(events []PortCallEvent) id.Severity {
	levels := make([]id.Severity, 0, len(events))
	for _, e := range events {
		levels = append(levels, e.Severity())
	}
	return id.MaxSeverity(levels...)
}
