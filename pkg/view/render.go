package view

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/mittwald/lcms-probe/pkg/probe"
)

const (
	Title          = "Legal Case Management System"
	LoadingText    = "Connecting to backend..."
	ConnectedText  = "✅ Connected to backend!"
	SampleDataText = "Sample Data:"
)

// Render draws the titled probe section. The output depends on nothing but
// the given state.
func Render(state probe.State) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		styleTitle.Render(Title),
		renderBody(state),
	)
}

func renderBody(state probe.State) string {
	switch state.Phase {
	case probe.PhaseSuccess:
		return renderSuccess(state)
	case probe.PhaseFailure:
		return styleFailed.Render(probe.FailureMessage)
	default:
		return styleLoading.Render(LoadingText)
	}
}

func renderSuccess(state probe.State) string {
	lines := []string{
		styleSuccess.Render(ConnectedText),
		state.Message,
		styleHeading.Render(SampleDataText),
	}

	// items never move, so the position is a sufficient key
	for i := range state.Data {
		lines = append(lines, styleListItem.Render("• "+state.Data[i]))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderProbes lists the backing-service probe results in name order.
func RenderProbes(results map[string]*probe.ProbeResult) string {
	if len(results) == 0 {
		return styleNotSet.Render("no backing services configured")
	}

	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, styleListItem.Render(probeLine(name, results[name])))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func probeLine(name string, result *probe.ProbeResult) string {
	if result.OK {
		return lipgloss.JoinHorizontal(lipgloss.Left,
			styleSuccess.Render("▶︎"), " ",
			styleHighlight.Render(name), " (",
			styleSuccess.Render("ok"), ")",
		)
	}

	return lipgloss.JoinHorizontal(lipgloss.Left,
		styleFailed.Render("◼︎"), " ",
		styleHighlight.Render(name), " (",
		styleFailed.Render("failing"), fmt.Sprintf("; reason=%s", result.Message), ")",
	)
}
