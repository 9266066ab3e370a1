package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/connectivity"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/service"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSync implements the parts of ClientSyncService the view uses.
type fakeSync struct {
	service.ClientSyncService

	status    models.SyncStatus
	pending   int
	conflicts []models.Conflict

	syncCalls int
	resolved  map[string]bool
}

func (f *fakeSync) Status() models.SyncStatus { return f.status }

func (f *fakeSync) SyncAll(context.Context) { f.syncCalls++ }

func (f *fakeSync) PendingCount(context.Context) int { return f.pending }

func (f *fakeSync) Conflicts(context.Context) []models.Conflict { return f.conflicts }

func (f *fakeSync) ResolveConflict(_ context.Context, key string, keepLocal bool) error {
	if f.resolved == nil {
		f.resolved = map[string]bool{}
	}
	f.resolved[key] = keepLocal
	return nil
}

func newTestModel(t *testing.T, sync *fakeSync, conn models.ConnectionStatus) (statusModel, chan models.SyncStatus) {
	t.Helper()
	statusCh := make(chan models.SyncStatus, 1)
	m := newStatusModel(context.Background(), sync, connectivity.NewManualMonitor(conn),
		models.NewAppBuildInfo("1.0.0", "2026-03-01", "abc123"), statusCh, nil, nil)
	return m, statusCh
}

func pressKey(m statusModel, r rune) (statusModel, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return next.(statusModel), cmd
}

func TestStatusModel_SyncKeyRunsPass(t *testing.T) {
	sync := &fakeSync{status: models.SyncIdle, pending: 2}
	m, _ := newTestModel(t, sync, models.StatusOnline)

	m, cmd := pressKey(m, 's')
	require.NotNil(t, cmd)
	msg := cmd()

	assert.Equal(t, 1, sync.syncCalls)
	assert.IsType(t, syncDoneMsg{}, msg)

	_, refresh := m.Update(msg)
	require.NotNil(t, refresh)
	assert.Equal(t, countsMsg{pending: 2}, refresh())
}

func TestStatusModel_SyncKeyOffline(t *testing.T) {
	sync := &fakeSync{status: models.SyncIdle}
	m, _ := newTestModel(t, sync, models.StatusOffline)

	m, cmd := pressKey(m, 's')

	assert.Nil(t, cmd)
	assert.Zero(t, sync.syncCalls)
	assert.Contains(t, m.View(), "offline")
}

func TestStatusModel_QuitKey(t *testing.T) {
	m, _ := newTestModel(t, &fakeSync{}, models.StatusOnline)

	_, cmd := pressKey(m, 'q')
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestStatusModel_StreamsUpdateView(t *testing.T) {
	m, statusCh := newTestModel(t, &fakeSync{status: models.SyncIdle}, models.StatusOffline)

	next, _ := m.Update(connectivityMsg(models.StatusOnline))
	m = next.(statusModel)
	next, _ = m.Update(syncProgressMsg(models.SyncProgress{Total: 5, Completed: 2, Failed: 1, CurrentEntityType: "booking"}))
	m = next.(statusModel)
	next, cmd := m.Update(syncStatusMsg(models.SyncError))
	m = next.(statusModel)

	view := m.View()
	assert.Contains(t, view, "online")
	assert.Contains(t, view, "3/5")
	assert.Contains(t, view, "booking")
	assert.Contains(t, view, "error")

	// the status wait loop is re-armed
	require.NotNil(t, cmd)
	statusCh <- models.SyncCompleted
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	var got []tea.Msg
	for _, c := range batch {
		if c != nil {
			got = append(got, c())
		}
	}
	assert.Contains(t, got, tea.Msg(syncStatusMsg(models.SyncCompleted)))
}

func TestStatusModel_ResolveOldestConflict(t *testing.T) {
	conflicts := []models.Conflict{{
		Key:        "customer:c1:1",
		Mutation:   models.PendingMutation{EntityType: "customer", EntityID: "c1"},
		DetectedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}}
	sync := &fakeSync{conflicts: conflicts}
	m, _ := newTestModel(t, sync, models.StatusOnline)

	next, _ := m.Update(countsMsg{pending: 0, conflicts: conflicts})
	m = next.(statusModel)
	assert.Contains(t, m.View(), "Oldest conflict: customer c1")

	m, cmd := pressKey(m, 'k')
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, conflictResolvedMsg{key: "customer:c1:1"}, msg)
	assert.True(t, sync.resolved["customer:c1:1"])

	next, _ = m.Update(msg)
	assert.Contains(t, next.(statusModel).View(), "resolved")
}

func TestStatusModel_BuildInfoToggle(t *testing.T) {
	m, _ := newTestModel(t, &fakeSync{}, models.StatusOnline)

	m, _ = pressKey(m, 'i')
	view := m.View()
	assert.Contains(t, view, "1.0.0")
	assert.Contains(t, view, "abc123")

	m, _ = pressKey(m, 'i')
	assert.Contains(t, m.View(), "TENANT SYNC")
}

func TestWaitFor_ClosedChannel(t *testing.T) {
	ch := make(chan int)
	close(ch)

	cmd := waitFor(ch, func(v int) tea.Msg { return v })
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
	assert.Nil(t, waitFor[int](nil, func(v int) tea.Msg { return v }))
}
