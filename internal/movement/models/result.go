package models

import (
	"time"

	id "seawatch/pkg/domain"
)

// Movement is the reconciled output of one screening run.
type Movement struct {
	Visits     []Visit
	PortCalls  []PortCallEvent
	Severity   id.Severity
	Strategy   string
	Warnings   []string
	Outliers   int
	ComputedAt time.Time
}

// AggregateSeverity combines the visit and port-call aggregates.
func AggregateSeverity(visits []Visit, events []PortCallEvent) id.Severity {
	return id.MaxSeverity(VisitsSeverity(visits), PortCallsSeverity(events))
}
