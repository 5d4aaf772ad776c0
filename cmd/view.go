package cmd

import (
	"github.com/charmbracelet/lipgloss"
)

var styleErrorWrapper = lipgloss.NewStyle().Padding(0, 0).BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#E1244C"))
var styleErrorHeadingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E1244C")).Bold(true)
var styleErrorBodyStyle = lipgloss.NewStyle().PaddingLeft(3).Foreground(lipgloss.Color("#E1244C")).Width(80).MaxWidth(80)

var styleCommand = lipgloss.NewStyle().Foreground(lipgloss.Color("#407FF8")).Bold(true)
var styleCommandBlock = lipgloss.NewStyle().Margin(1, 0).PaddingLeft(2)
var styleInfoBox = lipgloss.NewStyle().
	Padding(0, 1).
	Margin(1, 0).
	BorderStyle(lipgloss.RoundedBorder()).
	Width(80)

func renderError(err error) string {
	return styleErrorWrapper.Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			styleErrorHeadingStyle.Render("💥 AN ERROR OCCURRED WHILE HANDLING YOUR COMMAND"),
			styleErrorBodyStyle.Render(err.Error()),
		),
	)
}

func renderHint(text string, commands ...string) string {
	rendered := make([]string, len(commands))
	for i := range commands {
		rendered[i] = styleCommand.Render(commands[i])
	}

	return styleInfoBox.Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			text,
			styleCommandBlock.Render(lipgloss.JoinVertical(lipgloss.Left, rendered...)),
		),
	)
}
