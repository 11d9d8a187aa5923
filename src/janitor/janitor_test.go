package janitor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcare/socket/src/hub"
	"github.com/smartcare/socket/src/service"
	"github.com/smartcare/socket/src/store"
	"github.com/smartcare/socket/src/types"
)

type idleConn struct{}

func (idleConn) WriteJSON(any) error { return nil }

func (idleConn) ReadText() (string, error) { return "", errors.New("closed") }

func (idleConn) SetWriteDeadline(time.Time) error { return nil }

func (idleConn) Close() error { return nil }

func newFixture(t *testing.T) (*Janitor, *hub.Hub, *store.Store) {
	t.Helper()
	h := hub.New(zerolog.Nop(), time.Second)
	t.Cleanup(h.Shutdown)

	st, err := store.Open(filepath.Join(t.TempDir(), "janitor.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	n := service.NewNotifier(h, zerolog.Nop())
	return New(h, st, n, 30, zerolog.Nop()), h, st
}

func TestSweepConnectionsEvictsDead(t *testing.T) {
	j, h, _ := newFixture(t)

	deadKey := types.ClientKey{Host: "10.0.0.2", Port: 2}
	_, err := h.Connect(idleConn{}, types.ClientKey{Host: "10.0.0.1", Port: 1})
	require.NoError(t, err)
	_, err = h.Connect(idleConn{}, deadKey)
	require.NoError(t, err)

	client, ok := h.Client(deadKey)
	require.True(t, ok)
	client.MarkClosed()

	j.SweepConnections()
	assert.Equal(t, 1, h.Count())
}

func TestPurgeCanceledRemovesOldRows(t *testing.T) {
	j, _, st := newFixture(t)
	ctx := context.Background()

	oldDay := time.Now().AddDate(0, -3, 0)
	_, err := st.Create(ctx, store.Appointment{PatientName: "Old", StartTime: oldDay})
	require.NoError(t, err)
	_, err = st.CancelByPatientDate(ctx, "Old", oldDay)
	require.NoError(t, err)

	j.PurgeCanceled()

	purged, err := st.PurgeCanceled(ctx, time.Now())
	require.NoError(t, err)
	assert.Zero(t, purged, "janitor should already have purged the old row")
}

func TestStartRejectsBadSchedule(t *testing.T) {
	j, _, _ := newFixture(t)
	assert.Error(t, j.Start("not a schedule", "@daily"))
}
