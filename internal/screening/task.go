// Package screening runs compliance checks dispatched as tasks. Each task is
// executed at most once at a time per (screening, check), under a soft and a
// hard time limit, and always ends with the ship check marked DONE.
package screening

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"

	"seawatch/internal/movement/orchestrator"
	"seawatch/internal/screening/models"
	id "seawatch/pkg/domain"
	dErrors "seawatch/pkg/domain-errors"
)

// Task is the wire form of a screening check request.
type Task struct {
	ScreeningID string `json:"screening_id" validate:"required,uuid"`
	ShipID      string `json:"ship_id" validate:"required,uuid"`
	IMO         string `json:"imo" validate:"required"`
	VesselID    string `json:"vessel_id" validate:"omitempty,max=64"`
	Check       string `json:"check" validate:"omitempty,oneof=ship_movement"`
}

// Job is a validated Task.
type Job struct {
	Check   models.CheckName
	Request orchestrator.Request
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeTask parses and validates a task payload.
func DecodeTask(raw []byte) (Job, error) {
	var t Task
	if err := json.Unmarshal(raw, &t); err != nil {
		return Job{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "malformed task")
	}
	return t.Job()
}

// Job validates t.
func (t Task) Job() (Job, error) {
	if err := validate.Struct(t); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %s", fe.Field(), fe.Tag()))
			}
			return Job{}, dErrors.New(dErrors.CodeInvalidInput, "invalid task: "+strings.Join(msgs, "; "))
		}
		return Job{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid task")
	}

	screeningID, err := id.ParseScreeningID(t.ScreeningID)
	if err != nil {
		return Job{}, err
	}
	shipID, err := id.ParseShipID(t.ShipID)
	if err != nil {
		return Job{}, err
	}
	imo, err := id.ParseIMO(t.IMO)
	if err != nil {
		return Job{}, err
	}
	check := models.CheckShipMovement
	if t.Check != "" {
		check = models.CheckName(t.Check)
	}
	return Job{
		Check: check,
		Request: orchestrator.Request{
			ScreeningID: screeningID,
			ShipID:      shipID,
			IMO:         imo,
			VesselID:    id.VesselID(strings.TrimSpace(t.VesselID)),
		},
	}, nil
}
