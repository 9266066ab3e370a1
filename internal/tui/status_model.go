package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/connectivity"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/service"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

const maxBarWidth = 60

// statusModel is the bubbletea model of the status view. The subscription
// channels are owned by [TUI], which cancels them when the program exits.
type statusModel struct {
	ctx  context.Context
	sync service.ClientSyncService
	info models.AppBuildInfo

	statusCh   <-chan models.SyncStatus
	progressCh <-chan models.SyncProgress
	connCh     <-chan models.ConnectionStatus

	conn      models.ConnectionStatus
	status    models.SyncStatus
	progress  models.SyncProgress
	pending   int
	conflicts []models.Conflict

	notice   string
	showInfo bool

	bar     progress.Model
	spinner spinner.Model
}

func newStatusModel(
	ctx context.Context,
	sync service.ClientSyncService,
	monitor connectivity.Monitor,
	info models.AppBuildInfo,
	statusCh <-chan models.SyncStatus,
	progressCh <-chan models.SyncProgress,
	connCh <-chan models.ConnectionStatus,
) statusModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return statusModel{
		ctx:        ctx,
		sync:       sync,
		info:       info,
		statusCh:   statusCh,
		progressCh: progressCh,
		connCh:     connCh,
		conn:       monitor.Status(),
		status:     sync.Status(),
		bar:        progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		spinner:    s,
	}
}

func (m statusModel) Init() tea.Cmd {
	return tea.Batch(
		waitFor(m.statusCh, func(s models.SyncStatus) tea.Msg { return syncStatusMsg(s) }),
		waitFor(m.progressCh, func(p models.SyncProgress) tea.Msg { return syncProgressMsg(p) }),
		waitFor(m.connCh, func(c models.ConnectionStatus) tea.Msg { return connectivityMsg(c) }),
		m.cmdRefreshCounts(),
		m.spinner.Tick,
	)
}

func (m statusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKeys(msg)

	case tea.WindowSizeMsg:
		m.bar.Width = min(maxBarWidth, max(10, msg.Width-24))
		return m, nil

	case syncStatusMsg:
		m.status = models.SyncStatus(msg)
		cmds := []tea.Cmd{waitFor(m.statusCh, func(s models.SyncStatus) tea.Msg { return syncStatusMsg(s) })}
		if m.status != models.SyncSyncing {
			cmds = append(cmds, m.cmdRefreshCounts())
		}
		return m, tea.Batch(cmds...)

	case syncProgressMsg:
		m.progress = models.SyncProgress(msg)
		return m, waitFor(m.progressCh, func(p models.SyncProgress) tea.Msg { return syncProgressMsg(p) })

	case connectivityMsg:
		m.conn = models.ConnectionStatus(msg)
		return m, waitFor(m.connCh, func(c models.ConnectionStatus) tea.Msg { return connectivityMsg(c) })

	case countsMsg:
		m.pending, m.conflicts = msg.pending, msg.conflicts
		return m, nil

	case syncDoneMsg:
		return m, m.cmdRefreshCounts()

	case conflictResolvedMsg:
		if msg.err != nil {
			m.notice = "could not resolve conflict: " + msg.err.Error()
		} else {
			m.notice = "conflict " + msg.key + " resolved"
		}
		return m, m.cmdRefreshCounts()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m statusModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit

	case key.Matches(msg, keys.info):
		m.showInfo = !m.showInfo
		return m, nil

	case key.Matches(msg, keys.sync):
		if m.conn != models.StatusOnline {
			m.notice = "offline: changes stay queued until the backend is reachable"
			return m, nil
		}
		m.notice = ""
		return m, m.cmdSync()

	case key.Matches(msg, keys.keepLocal), key.Matches(msg, keys.keepServer):
		if len(m.conflicts) == 0 {
			return m, nil
		}
		return m, m.cmdResolve(m.conflicts[0].Key, key.Matches(msg, keys.keepLocal))
	}

	return m, nil
}

func (m statusModel) View() string {
	if m.showInfo {
		return appStyle.Render(renderBuildInfo(m.info) + "\n\n" + helpStyle.Render("i: back"))
	}

	var b strings.Builder

	b.WriteString(row("Connection:", m.viewConnection()))
	b.WriteString("\n")
	b.WriteString(row("Status:", m.viewBanner()))
	b.WriteString("\n\n")
	b.WriteString(m.viewProgress())
	b.WriteString("\n\n")
	b.WriteString(row("Pending:", fmt.Sprintf("%d", m.pending)))
	b.WriteString("\n")
	b.WriteString(row("Failed:", fmt.Sprintf("%d", m.progress.Failed)))
	b.WriteString("\n")
	b.WriteString(row("Conflicts:", fmt.Sprintf("%d", len(m.conflicts))))

	if len(m.conflicts) > 0 {
		c := m.conflicts[0]
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("Oldest conflict: %s %s (detected %s)",
			c.Mutation.EntityType,
			fitText(c.Mutation.EntityID, 36),
			c.DetectedAt.Local().Format("2006-01-02 15:04:05"),
		))
	}

	if m.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(m.notice)
	}

	return renderPage("TENANT SYNC", b.String(), m.viewHelp())
}

func (m statusModel) viewConnection() string {
	if m.conn == models.StatusOnline {
		return onlineStyle.Render("● online")
	}
	return offlineStyle.Render("○ offline")
}

func (m statusModel) viewBanner() string {
	switch m.status {
	case models.SyncSyncing:
		return busyBanner.Render(m.spinner.View() + " syncing")
	case models.SyncCompleted:
		return okBanner.Render("completed")
	case models.SyncError:
		return errorBanner.Render("error")
	default:
		return idleBanner.Render("idle")
	}
}

func (m statusModel) viewProgress() string {
	p := m.progress
	percent := 0.0
	if p.Total > 0 {
		percent = float64(p.Completed+p.Failed) / float64(p.Total)
	}

	line := fmt.Sprintf("%s  %d/%d", m.bar.ViewAs(percent), p.Completed+p.Failed, p.Total)
	if p.CurrentEntityType != "" {
		line += "  " + p.CurrentEntityType
	}
	return line
}

func (m statusModel) viewHelp() string {
	bindings := []key.Binding{keys.sync}
	if len(m.conflicts) > 0 {
		bindings = append(bindings, keys.keepLocal, keys.keepServer)
	}
	bindings = append(bindings, keys.info, keys.quit)

	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return strings.Join(parts, "  ")
}

func (m statusModel) cmdSync() tea.Cmd {
	return func() tea.Msg {
		m.sync.SyncAll(m.ctx)
		return syncDoneMsg{}
	}
}

func (m statusModel) cmdRefreshCounts() tea.Cmd {
	return func() tea.Msg {
		return countsMsg{
			pending:   m.sync.PendingCount(m.ctx),
			conflicts: m.sync.Conflicts(m.ctx),
		}
	}
}

func (m statusModel) cmdResolve(key string, keepLocal bool) tea.Cmd {
	return func() tea.Msg {
		return conflictResolvedMsg{key: key, err: m.sync.ResolveConflict(m.ctx, key, keepLocal)}
	}
}

// waitFor reads one value from ch. A closed channel ends the wait loop.
func waitFor[T any](ch <-chan T, wrap func(T) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		v, ok := <-ch
		if !ok {
			return nil
		}
		return wrap(v)
	}
}
