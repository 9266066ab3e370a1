package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle   = lipgloss.NewStyle().Padding(1, 2)
	titleStyle = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Faint(true)
	labelStyle = lipgloss.NewStyle().Width(12)

	onlineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	offlineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	bannerStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true)
	idleBanner  = bannerStyle.Foreground(lipgloss.Color("245"))
	busyBanner  = bannerStyle.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33"))
	okBanner    = bannerStyle.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("42"))
	errorBanner = bannerStyle.Foreground(lipgloss.Color("231")).Background(lipgloss.Color("160"))

	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)
