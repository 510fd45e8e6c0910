// Package warmup refreshes the aggregator cache in the background. Runs hand
// requests to a Queue and never see the result; a Worker drains the queue.
package warmup

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"seawatch/internal/movement/ports"
	id "seawatch/pkg/domain"
)

// Message is the wire form of a warm-up request.
type Message struct {
	RequestID   string    `json:"request_id"`
	ScreeningID string    `json:"screening_id"`
	IMO         string    `json:"imo"`
	VesselID    string    `json:"vessel_id,omitempty"`
	Since       time.Time `json:"since"`
}

// NewMessage wraps q with a fresh request id.
func NewMessage(q ports.MovementQuery) Message {
	return Message{
		RequestID:   uuid.NewString(),
		ScreeningID: q.ScreeningID.String(),
		IMO:         q.IMO.String(),
		VesselID:    q.VesselID.String(),
		Since:       q.Since.UTC(),
	}
}

// Query validates m and converts it back.
func (m Message) Query() (ports.MovementQuery, error) {
	imo, err := id.ParseIMO(m.IMO)
	if err != nil {
		return ports.MovementQuery{}, err
	}
	if m.Since.IsZero() {
		return ports.MovementQuery{}, fmt.Errorf("warm-up %s: since is required", m.RequestID)
	}
	q := ports.MovementQuery{
		IMO:      imo,
		VesselID: id.VesselID(m.VesselID),
		Since:    m.Since.UTC(),
	}
	if m.ScreeningID != "" {
		screeningID, err := id.ParseScreeningID(m.ScreeningID)
		if err != nil {
			return ports.MovementQuery{}, err
		}
		q.ScreeningID = screeningID
	}
	return q, nil
}

// Decode parses a Kafka payload.
func Decode(value []byte) (ports.MovementQuery, error) {
	var m Message
	if err := json.Unmarshal(value, &m); err != nil {
		return ports.MovementQuery{}, fmt.Errorf("decode warm-up message: %w", err)
	}
	return m.Query()
}
