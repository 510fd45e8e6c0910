package models

import (
	"time"

	id "seawatch/pkg/domain"
)

// Visit is an inferred stay of a vessel at one port. An open visit has a nil
// Departed and is always the most recent visit for its vessel.
type Visit struct {
	Port     PortMatch
	Entered  *time.Time
	Departed *time.Time
	Severity id.Severity
	Category string
}

// IsOpen reports whether the vessel is still considered at the port.
func (v Visit) IsOpen() bool {
	return v.Departed == nil
}

// VisitsSeverity is the maximum severity over visits, OK if empty.
func VisitsSeverity(visits []Visit) id.Severity {
	levels := make([]id.Severity, 0, len(visits))
	for _, v := range visits {
		levels = append(levels, v.Severity)
	}
	return id.MaxSeverity(levels...)
}
