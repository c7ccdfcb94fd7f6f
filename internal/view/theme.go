package view

import "github.com/charmbracelet/lipgloss"

var (
	colorText    lipgloss.Color = "#cdd6f4"
	colorMuted   lipgloss.Color = "#a6adc8"
	colorBorder  lipgloss.Color = "#585b70"
	colorAccent  lipgloss.Color = "#89b4fa"
	colorSuccess lipgloss.Color = "#a6e3a1"
	colorError   lipgloss.Color = "#f38ba8"
	colorYellow  lipgloss.Color = "#f9e2af"
	colorPeach   lipgloss.Color = "#fab387"
)

var (
	dateStyle     = lipgloss.NewStyle().Foreground(colorMuted).Width(7)
	typeStyle     = lipgloss.NewStyle().Foreground(colorPeach).Width(12)
	titleStyle    = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	scheduleStyle = lipgloss.NewStyle().Foreground(colorText)
	durationStyle = lipgloss.NewStyle().Foreground(colorMuted)
	priceStyle    = lipgloss.NewStyle().Foreground(colorSuccess)
	offerStyle    = lipgloss.NewStyle().Foreground(colorMuted).PaddingLeft(7)
	favoriteStyle = lipgloss.NewStyle().Foreground(colorYellow)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)

	formStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)
	labelStyle       = lipgloss.NewStyle().Foreground(colorMuted).Width(14)
	focusLabelStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Width(14)
	errorStyle       = lipgloss.NewStyle().Foreground(colorError)
	helpStyle        = lipgloss.NewStyle().Foreground(colorBorder)
	checkedStyle     = lipgloss.NewStyle().Foreground(colorSuccess)
	offerCursorStyle = lipgloss.NewStyle().Underline(true)

	infoStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorBorder).
			Padding(0, 1)
	routeStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
)
