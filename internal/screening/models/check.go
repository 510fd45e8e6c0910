// Package models holds the screening-side records the runner maintains.
package models

import (
	"time"

	id "seawatch/pkg/domain"
)

// CheckName identifies one compliance check of a ship within a screening.
type CheckName string

// CheckShipMovement is the vessel movement reconciliation check.
const CheckShipMovement CheckName = "ship_movement"

// CheckStatus is the lifecycle of a ship check.
type CheckStatus string

const (
	CheckStatusPending CheckStatus = "PENDING"
	CheckStatusDone    CheckStatus = "DONE"
)

// ShipCheck is the status of one check for one screening.
//
// Invariants:
//   - a DONE check that failed or timed out has SeverityUnknown and no report
//   - a PENDING check always has SeverityUnknown
type ShipCheck struct {
	ScreeningID id.ScreeningID
	Check       CheckName
	ShipID      id.ShipID
	Status      CheckStatus
	Severity    id.Severity
	HasReport   bool
	UpdatedAt   time.Time
}

// Outcome is what a finished run reports back to the check.
type Outcome struct {
	Severity  id.Severity
	HasReport bool
}

// FailedOutcome is recorded when a run fails or exceeds its time limit.
var FailedOutcome = Outcome{Severity: id.SeverityUnknown, HasReport: false}
