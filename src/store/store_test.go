package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "appointments.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateAndListByDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	day := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	created, err := s.Create(ctx, Appointment{
		PatientName: "Jane Doe",
		PhoneNumber: "+10000000000",
		Reason:      "Checkup",
		StartTime:   day.Add(14*time.Hour + 30*time.Minute),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	// A booking on another day must not show up.
	_, err = s.Create(ctx, Appointment{
		PatientName: "John Roe",
		StartTime:   day.AddDate(0, 0, 1).Add(9 * time.Hour),
	})
	require.NoError(t, err)

	listed, err := s.ListByDate(ctx, day)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Jane Doe", listed[0].PatientName)
	assert.Equal(t, "+10000000000", listed[0].PhoneNumber)
	assert.Equal(t, "Checkup", listed[0].Reason)
	assert.False(t, listed[0].Canceled)
}

func TestListByDateOrdersByStartTime(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	day := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	_, err := s.Create(ctx, Appointment{PatientName: "Late", StartTime: day.Add(16 * time.Hour)})
	require.NoError(t, err)
	_, err = s.Create(ctx, Appointment{PatientName: "Early", StartTime: day.Add(9 * time.Hour)})
	require.NoError(t, err)

	listed, err := s.ListByDate(ctx, day)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Early", listed[0].PatientName)
	assert.Equal(t, "Late", listed[1].PatientName)
}

func TestCancelByPatientDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	day := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	_, err := s.Create(ctx, Appointment{PatientName: "Jane Doe", StartTime: day.Add(10 * time.Hour)})
	require.NoError(t, err)
	_, err = s.Create(ctx, Appointment{PatientName: "Jane Doe", StartTime: day.Add(15 * time.Hour)})
	require.NoError(t, err)
	_, err = s.Create(ctx, Appointment{PatientName: "John Roe", StartTime: day.Add(11 * time.Hour)})
	require.NoError(t, err)

	canceled, err := s.CancelByPatientDate(ctx, "Jane Doe", day)
	require.NoError(t, err)
	require.Len(t, canceled, 2)
	for _, a := range canceled {
		assert.True(t, a.Canceled)
		assert.Equal(t, "Jane Doe", a.PatientName)
	}

	// Only John's booking remains visible.
	listed, err := s.ListByDate(ctx, day)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "John Roe", listed[0].PatientName)

	// Canceling again finds nothing.
	again, err := s.CancelByPatientDate(ctx, "Jane Doe", day)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestPurgeCanceled(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	oldDay := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	recentDay := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	_, err := s.Create(ctx, Appointment{PatientName: "Old", StartTime: oldDay.Add(10 * time.Hour)})
	require.NoError(t, err)
	_, err = s.Create(ctx, Appointment{PatientName: "Recent", StartTime: recentDay.Add(10 * time.Hour)})
	require.NoError(t, err)

	_, err = s.CancelByPatientDate(ctx, "Old", oldDay)
	require.NoError(t, err)
	_, err = s.CancelByPatientDate(ctx, "Recent", recentDay)
	require.NoError(t, err)

	purged, err := s.PurgeCanceled(ctx, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	// Purging again removes nothing.
	purged, err = s.PurgeCanceled(ctx, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, purged)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("", zerolog.Nop())
	assert.Error(t, err)
}
