package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "seawatch/pkg/domain-errors"
)

// ScreeningID identifies one compliance screening of a ship.
type ScreeningID uuid.UUID

// ShipID identifies a ship record owned by the screening service.
type ShipID uuid.UUID

func (id ScreeningID) String() string { return uuid.UUID(id).String() }
func (id ScreeningID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id ShipID) String() string { return uuid.UUID(id).String() }
func (id ShipID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id ScreeningID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id ShipID) MarshalText() ([]byte, error)      { return uuid.UUID(id).MarshalText() }

func (id *ScreeningID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *ShipID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

// NewScreeningID generates a random ScreeningID.
func NewScreeningID() ScreeningID { return ScreeningID(uuid.New()) }

// NewShipID generates a random ShipID.
func NewShipID() ShipID { return ShipID(uuid.New()) }

// ParseScreeningID parses a non-nil UUID.
func ParseScreeningID(s string) (ScreeningID, error) {
	u, err := parseUUID(s, "screening_id")
	return ScreeningID(u), err
}

// ParseShipID parses a non-nil UUID.
func ParseShipID(s string) (ShipID, error) {
	u, err := parseUUID(s, "ship_id")
	return ShipID(u), err
}

func parseUUID(s, field string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+field)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" must not be nil")
	}
	return u, nil
}

// IMO is a seven digit IMO ship identification number.
//
// Invariants:
//   - exactly 7 ASCII digits (an optional "IMO" prefix is stripped)
//   - the last digit is the weighted checksum of the first six
type IMO string

// ParseIMO validates an IMO number.
func ParseIMO(s string) (IMO, error) {
	v := strings.TrimSpace(s)
	v = strings.TrimSpace(strings.TrimPrefix(strings.ToUpper(v), "IMO"))
	if len(v) != 7 {
		return "", dErrors.New(dErrors.CodeInvalidInput, "imo must have 7 digits")
	}
	sum := 0
	for i := 0; i < 7; i++ {
		c := v[i]
		if c < '0' || c > '9' {
			return "", dErrors.New(dErrors.CodeInvalidInput, "imo must be numeric")
		}
		if i < 6 {
			sum += int(c-'0') * (7 - i)
		}
	}
	if sum%10 != int(v[6]-'0') {
		return "", dErrors.New(dErrors.CodeInvalidInput, "imo checksum mismatch")
	}
	return IMO(v), nil
}

func (i IMO) String() string { return string(i) }
func (i IMO) IsNil() bool    { return i == "" }

// VesselID is the transponder feed's opaque vessel identifier (usually the
// MMSI, sometimes a vendor key).
type VesselID string

// ParseVesselID rejects empty identifiers.
func ParseVesselID(s string) (VesselID, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "vessel_id is required")
	}
	return VesselID(v), nil
}

func (v VesselID) String() string { return string(v) }
