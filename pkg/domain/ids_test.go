package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "seawatch/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the parsing invariant:
// "IDs must be valid, non-empty, non-nil UUIDs"
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseScreeningID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseShipID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseScreeningID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseScreeningID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, ScreeningID(validUUID), id)
	})
}

func TestParseIMO(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    IMO
		wantErr bool
	}{
		{name: "valid number", input: "9074729", want: "9074729"},
		{name: "prefix and spaces stripped", input: " IMO 9074729 ", want: "9074729"},
		{name: "lowercase prefix", input: "imo9074729", want: "9074729"},
		{name: "bad checksum", input: "9074728", wantErr: true},
		{name: "too short", input: "907472", wantErr: true},
		{name: "non numeric", input: "90747A9", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIMO(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseVesselID(t *testing.T) {
	_, err := ParseVesselID("   ")
	require.Error(t, err)

	id, err := ParseVesselID(" 244660000 ")
	require.NoError(t, err)
	assert.Equal(t, VesselID("244660000"), id)
}
