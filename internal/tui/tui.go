package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/service"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

type TUI struct {
	services *service.ClientServices
	info     models.AppBuildInfo
	logger   *logger.Logger
}

func New(services *service.ClientServices, info models.AppBuildInfo, logger *logger.Logger) (*TUI, error) {
	if services == nil || services.SyncService == nil || services.Monitor == nil {
		return nil, errors.New("tui: sync service and connectivity monitor are required")
	}
	return &TUI{services: services, info: info, logger: logger}, nil
}

// Run shows the status view until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	statusCh, cancelStatus := t.services.SyncService.SubscribeStatus()
	defer cancelStatus()
	progressCh, cancelProgress := t.services.SyncService.SubscribeProgress()
	defer cancelProgress()
	connCh, cancelConn := t.services.Monitor.Subscribe()
	defer cancelConn()

	model := newStatusModel(ctx, t.services.SyncService, t.services.Monitor, t.info, statusCh, progressCh, connCh)

	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("status view: %w", err)
	}

	t.logger.Info().Str("func", "TUI.Run").Msg("status view closed")
	return nil
}
