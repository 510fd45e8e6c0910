package report

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seawatch/internal/movement/models"
	id "seawatch/pkg/domain"
)

func TestFormatTime(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, FormatTime(nil))
	})

	t.Run("renders UTC with a Z suffix", func(t *testing.T) {
		ts := time.Date(2024, 3, 9, 23, 30, 15, 999, time.FixedZone("UTC+2", 2*3600))

		got := FormatTime(&ts)

		require.NotNil(t, got)
		assert.Equal(t, "2024-03-09T21:30:15Z", *got)
	})
}

func TestVisitRecords(t *testing.T) {
	entered := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	visits := []models.Visit{
		{
			Port: models.PortMatch{
				Code: "NLRTM", Name: "Rotterdam", Country: "Netherlands",
				Latitude: models.Float(51.95), Longitude: models.Float(4.13),
			},
			Entered:  &entered,
			Departed: models.Time(entered.Add(36 * time.Hour)),
			Severity: id.SeverityOK,
		},
		{
			Port:     models.PortMatch{Name: "Unmapped anchorage"},
			Entered:  models.Time(entered.Add(48 * time.Hour)),
			Severity: id.SeverityWarning,
			Category: "watchlist",
		},
	}

	records := VisitRecords(visits)

	require.Len(t, records, 2)
	assert.Equal(t, "51.95", records[0].PortLatitude)
	assert.Equal(t, "4.13", records[0].PortLongitude)
	assert.Equal(t, "2024-01-02T18:00:00Z", *records[0].Departed)
	assert.Equal(t, UnknownLatitude, records[1].PortLatitude)
	assert.Equal(t, UnknownLongitude, records[1].PortLongitude)
	assert.Nil(t, records[1].Departed, "open visit keeps a null departure")
}

func TestFromMovement(t *testing.T) {
	computed := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	m := models.Movement{
		Visits: []models.Visit{{Port: models.PortMatch{Name: "Aden"}, Severity: id.SeverityWarning}},
		PortCalls: []models.PortCallEvent{{
			PortName:               "Novorossiysk",
			LastPortOfCall:         "Ceyhan",
			PortSeverity:           id.SeverityCritical,
			LastPortOfCallSeverity: id.SeverityOK,
			DestinationSeverity:    id.SeverityOK,
		}},
		Severity:   id.SeverityCritical,
		Strategy:   "local_only",
		Warnings:   []string{"aggregator unavailable"},
		ComputedAt: computed,
	}

	fields := FromMovement(m)

	assert.Equal(t, id.SeverityCritical, fields.Severity)
	assert.Equal(t, computed, fields.UpdatedAt)
	require.Len(t, fields.PortCallEvents, 1)
	assert.Equal(t, "Ceyhan", fields.PortCallEvents[0].LastPortOfCallName)

	t.Run("severities serialize by name", func(t *testing.T) {
		raw, err := json.Marshal(fields.PortCallEvents[0])
		require.NoError(t, err)

		assert.Contains(t, string(raw), `"port_severity":"CRITICAL"`)
		assert.Contains(t, string(raw), `"last_port_of_call_severity":"OK"`)
		assert.Contains(t, string(raw), `"entered":null`)
	})

	t.Run("apply copies every field", func(t *testing.T) {
		var r Report
		fields.Apply(&r)

		assert.Equal(t, fields.PortVisits, r.PortVisits)
		assert.Equal(t, "local_only", r.Strategy)
		assert.Equal(t, []string{"aggregator unavailable"}, r.Warnings)
	})
}
