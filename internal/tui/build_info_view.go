// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

func renderBuildInfo(info models.AppBuildInfo) string {
	var b strings.Builder

	b.WriteString("Tenant sync client\n\n")
	b.WriteString(row("Version:", valueOrNA(info.BuildVersion())))
	b.WriteString("\n")
	b.WriteString(row("Date:", valueOrNA(info.BuildDate())))
	b.WriteString("\n")
	b.WriteString(row("Commit:", valueOrNA(info.BuildCommit())))

	return overlayBoxStyle.Render(b.String())
}
