package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext  lipgloss.Color = "#a6adc8"
	colorOverlay  lipgloss.Color = "#6c7086"
	colorSurface  lipgloss.Color = "#313244"
	colorAccent   lipgloss.Color = "#f5c2e7"
	colorFocus    lipgloss.Color = "#b4befe"
	colorSuccess  lipgloss.Color = "#a6e3a1"
	colorError    lipgloss.Color = "#f38ba8"
	colorWarning  lipgloss.Color = "#f9e2af"
	colorMichelin lipgloss.Color = "#f38ba8"
	colorBeard    lipgloss.Color = "#fab387"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	labelStyle    = lipgloss.NewStyle().Foreground(colorSubtext)
	valueStyle    = lipgloss.NewStyle().Foreground(colorText)
	dimStyle      = lipgloss.NewStyle().Foreground(colorOverlay)
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorFocus)
	openStyle     = lipgloss.NewStyle().Foreground(colorSuccess)
	closedStyle   = lipgloss.NewStyle().Foreground(colorError)
	starStyle     = lipgloss.NewStyle().Foreground(colorWarning)
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorFocus).MarginTop(1)
	footerStyle   = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface).Padding(0, 2)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	sidebarStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorOverlay).Padding(0, 1)
	dialogStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(1, 2)
	searchStyle   = lipgloss.NewStyle().Foreground(colorFocus).Underline(true)
	michelinStyle = lipgloss.NewStyle().Foreground(colorMichelin)
	beardStyle    = lipgloss.NewStyle().Foreground(colorBeard)
)
