package view

import (
	"github.com/charmbracelet/lipgloss"
)

var colorSuccess = lipgloss.Color("#00B785")
var colorFailed = lipgloss.Color("#E1244C")

var styleTitle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
var styleSuccess = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
var styleFailed = lipgloss.NewStyle().Foreground(colorFailed).Bold(true)
var styleLoading = lipgloss.NewStyle().Foreground(lipgloss.Color("#e08dff"))
var styleHighlight = lipgloss.NewStyle().Foreground(lipgloss.Color("#407FF8")).Bold(true)
var styleHeading = lipgloss.NewStyle().Bold(true).MarginTop(1)
var styleListItem = lipgloss.NewStyle().Padding(0, 2)
var styleNotSet = lipgloss.NewStyle().Foreground(lipgloss.Color("#5D689C"))
