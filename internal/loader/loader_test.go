package loader

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-dashboard-backend/config"
	"fleet-dashboard-backend/internal/fleet"
)

// mockSource is a mock implementation of the Source interface.
type mockSource struct {
	LoadTablesFunc func(ctx context.Context) (*fleet.Tables, error)
	calls          atomic.Int32
}

func (m *mockSource) LoadTables(ctx context.Context) (*fleet.Tables, error) {
	m.calls.Add(1)
	return m.LoadTablesFunc(ctx)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testTables(t *testing.T) *fleet.Tables {
	t.Helper()
	tables, err := fleet.NewTables(fleet.Tables{
		Equipment: []fleet.Equipment{
			{ID: "E1", EquipmentModelID: "M1", Name: "CA-0001"},
			{ID: "E2", EquipmentModelID: "M404", Name: "Ghost"},
		},
		Models: []fleet.EquipmentModel{{ID: "M1", Name: "Caminhão", HourlyEarnings: []fleet.HourlyEarning{
			{EquipmentStateID: "S1", Value: 50},
		}}},
		States: []fleet.EquipmentState{
			{ID: "S1", Name: "Operando", Color: "#2ecc71"},
			{ID: "S2", Name: "Parado", Color: "#f1c40f"},
		},
		Positions: []fleet.PositionHistory{{EquipmentID: "E1", Positions: []fleet.PositionSample{
			{Date: "2024-01-01T00:00", Lat: 1, Lon: 1},
		}}},
		StateHistories: []fleet.StateHistory{{EquipmentID: "E1", States: []fleet.StateHistoryEntry{
			{EquipmentStateID: "S2", Date: "2024-01-01T00:00"},
		}}},
	})
	require.NoError(t, err)
	return tables
}

func TestService_LoadOnce(t *testing.T) {
	tables := testTables(t)
	source := &mockSource{LoadTablesFunc: func(ctx context.Context) (*fleet.Tables, error) { return tables, nil }}
	cfg := config.Default().Data
	svc := NewService(&cfg, source, quietLogger())

	assert.Nil(t, svc.Snapshot())

	var hookCalls int
	svc.OnReload(func(*Snapshot) { hookCalls++ })

	require.NoError(t, svc.LoadOnce(context.Background()))

	snap := svc.Snapshot()
	require.NotNil(t, snap)
	require.Len(t, snap.Results, 2)
	require.Len(t, snap.Views, 1)
	assert.Equal(t, "E1", snap.Views[0].ID)
	assert.Equal(t, "S1", snap.Views[0].CurrentState.ID)

	failures := snap.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "E2", failures[0].Equipment.ID)
	assert.ErrorIs(t, failures[0].Err, fleet.ErrNotFound)

	r, ok := snap.Find("E2")
	assert.True(t, ok)
	assert.Error(t, r.Err)
	_, ok = snap.Find("E404")
	assert.False(t, ok)

	assert.Equal(t, 1, hookCalls)
}

func TestService_LoadOnceKeepsPreviousSnapshotOnError(t *testing.T) {
	tables := testTables(t)
	fail := false
	source := &mockSource{LoadTablesFunc: func(ctx context.Context) (*fleet.Tables, error) {
		if fail {
			return nil, errors.New("database unavailable")
		}
		return tables, nil
	}}
	cfg := config.Default().Data
	svc := NewService(&cfg, source, quietLogger())

	require.NoError(t, svc.LoadOnce(context.Background()))
	first := svc.Snapshot()

	fail = true
	assert.Error(t, svc.LoadOnce(context.Background()))
	assert.Same(t, first, svc.Snapshot())
}

func TestService_LoadOnceInterruptedKeepsPreviousSnapshot(t *testing.T) {
	tables := testTables(t)
	source := &mockSource{LoadTablesFunc: func(ctx context.Context) (*fleet.Tables, error) { return tables, nil }}
	cfg := config.Default().Data
	svc := NewService(&cfg, source, quietLogger())

	var hookCalls int
	svc.OnReload(func(*Snapshot) { hookCalls++ })

	require.NoError(t, svc.LoadOnce(context.Background()))
	first := svc.Snapshot()
	require.Len(t, first.Views, 1)

	cfg.PositionFetchDelay = 200 * time.Millisecond
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := svc.LoadOnce(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Same(t, first, svc.Snapshot())
	assert.Equal(t, 1, hookCalls)
}

func TestService_StateFromHistory(t *testing.T) {
	tables := testTables(t)
	source := &mockSource{LoadTablesFunc: func(ctx context.Context) (*fleet.Tables, error) { return tables, nil }}
	cfg := config.Default().Data
	cfg.CurrentState = config.CurrentStateFromHistory
	svc := NewService(&cfg, source, quietLogger())

	require.NoError(t, svc.LoadOnce(context.Background()))
	assert.Equal(t, "S2", svc.Snapshot().Views[0].CurrentState.ID)
}

func TestService_RunReloads(t *testing.T) {
	tables := testTables(t)
	source := &mockSource{LoadTablesFunc: func(ctx context.Context) (*fleet.Tables, error) { return tables, nil }}
	cfg := config.Default().Data
	cfg.ReloadInterval = 10 * time.Millisecond
	svc := NewService(&cfg, source, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return source.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loader did not stop after cancellation")
	}
	assert.NotNil(t, svc.Snapshot())
}

func TestService_RunLoadsOnceWithoutInterval(t *testing.T) {
	tables := testTables(t)
	source := &mockSource{LoadTablesFunc: func(ctx context.Context) (*fleet.Tables, error) { return tables, nil }}
	cfg := config.Default().Data
	svc := NewService(&cfg, source, quietLogger())

	svc.Run(context.Background())
	assert.Equal(t, int32(1), source.calls.Load())
}
