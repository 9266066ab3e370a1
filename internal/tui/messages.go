package tui

import "github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"

type syncStatusMsg models.SyncStatus

type syncProgressMsg models.SyncProgress

type connectivityMsg models.ConnectionStatus

type countsMsg struct {
	pending   int
	conflicts []models.Conflict
}

type syncDoneMsg struct{}

type conflictResolvedMsg struct {
	key string
	err error
}
