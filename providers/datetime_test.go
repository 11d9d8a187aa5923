package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppointmentTimeFormats(t *testing.T) {
	want := time.Date(2026, 3, 20, 14, 30, 0, 0, time.UTC)

	inputs := []string{
		"2026-03-20T14:30:00",
		"2026-03-20 14:30:00",
		"2026-03-20T14:30",
		"2026-03-20 14:30",
		"20/03/2026 14:30",
		"2026-03-20T14:30:00Z",
		"2026-03-20T14:30:00.000",
	}
	for _, in := range inputs {
		got, err := parseAppointmentTime(in)
		require.NoError(t, err, "input %q", in)
		assert.True(t, got.Equal(want), "input %q parsed to %v", in, got)
	}
}

func TestParseAppointmentTimeRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "  ", "next tuesday", "2026-13-45T99:99"} {
		_, err := parseAppointmentTime(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestParseDay(t *testing.T) {
	day, err := parseDay("2026-03-20")
	require.NoError(t, err)
	assert.Equal(t, 2026, day.Year())
	assert.Equal(t, time.March, day.Month())
	assert.Equal(t, 20, day.Day())

	_, err = parseDay("20-03-2026")
	assert.Error(t, err)
}

func TestFirstString(t *testing.T) {
	body := map[string]any{
		"patientName": "Jane Doe",
		"phone":       "  +10000000000 ",
		"reason":      "",
		"count":       float64(3),
	}

	assert.Equal(t, "Jane Doe", firstString(body, "patient_name", "patientName", "name"))
	assert.Equal(t, "+10000000000", firstString(body, "phone_number", "phone"))
	assert.Equal(t, "", firstString(body, "reason", "visitReason"))
	assert.Equal(t, "", firstString(body, "count"))
}
