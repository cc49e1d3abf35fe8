package planner

import (
	"fmt"
	"strings"

	"github.com/doriginvision/hanzi-tidy/internal/tui/components"
	"github.com/doriginvision/hanzi-tidy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// truncate shortens s to width terminal cells. Hanzi occupy two cells each.
func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// View renders the planner.
func (m *Model) View() string {
	sections := []string{
		m.theme.HeaderStyle().Width(m.width).Render("Hanzi Tidy"),
		m.rootLine(),
	}

	if m.mode == modeInput {
		sections = append(sections, m.input.View())
		if m.inputErr != nil {
			sections = append(sections, m.errorLine(m.inputErr.Error()))
		}
	}

	sections = append(sections, m.preview.View())
	sections = append(sections, m.statsPanel())

	switch {
	case m.mode == modeConfirm:
		prompt := fmt.Sprintf("Rename %d file(s)? This cannot be undone. [y/n]", m.result.Len())
		sections = append(sections, m.theme.BadgeStyle(theme.BadgeWarning).Render(prompt))
	case m.renaming:
		ratio := 0.0
		if m.total > 0 {
			ratio = float64(m.done) / float64(m.total)
		}
		sections = append(sections, m.progress.ViewAs(ratio))
	}

	sections = append(sections, m.theme.StatusBarStyle().Width(m.width).Render(m.statusText()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) rootLine() string {
	root := m.session.Root()
	if root == "" {
		root = "(no directory)"
	}
	return truncate(m.theme.Icon("folder")+" "+root, m.width)
}

func (m *Model) errorLine(text string) string {
	return m.theme.BadgeStyle(theme.BadgeError).Render(m.theme.Icon("error") + " " + text)
}

func (m *Model) statsPanel() string {
	var lines []string
	switch {
	case m.scanning:
		lines = append(lines, fmt.Sprintf("Scanning... %d files visited", m.visited))
	case m.scanErr != nil:
		lines = append(lines, m.errorLine(m.scanErr.Error()))
	case m.result != nil:
		line := fmt.Sprintf("%s %d files visited, %d to rename",
			m.theme.Icon("stats"), m.visited, m.result.Len())
		if hint := components.ScrollHint(m.preview); hint != "" {
			line += "  " + m.theme.MutedStyle().Render(hint)
		}
		lines = append(lines, line)
	}

	if m.renameErr != nil {
		lines = append(lines, m.errorLine(m.renameErr.Error()))
	}
	if m.report != nil {
		lines = append(lines, m.reportLines()...)
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}

	panel := m.theme.PanelStyle()
	width := max(m.width-panel.GetHorizontalFrameSize(), 0)
	return panel.Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) reportLines() []string {
	failed := m.report.Failed()
	lines := []string{fmt.Sprintf("%s Renamed %d of %d", m.theme.Icon("success"), m.report.Succeeded(), m.report.Len())}
	if len(failed) == 0 {
		return lines
	}
	lines = append(lines, fmt.Sprintf("%s %d failed", m.theme.Icon("error"), len(failed)))
	// Keep the panel short; the rest is in the operation journal
	const shown = 3
	for i, res := range failed {
		if i == shown {
			lines = append(lines, fmt.Sprintf("  ... and %d more", len(failed)-shown))
			break
		}
		lines = append(lines, truncate("  "+res.Err.Error(), m.width-4))
	}
	return lines
}

func (m *Model) statusText() string {
	switch {
	case m.mode == modeInput:
		return "enter: open  esc: cancel"
	case m.mode == modeConfirm:
		return "y: rename  n: cancel"
	case m.busy():
		return "working...  ctrl+c: quit"
	case m.result.Len() > 0:
		return "enter: rename  o: open  r: rescan  ↑/↓: scroll  q: quit"
	default:
		return "o: open  r: rescan  q: quit"
	}
}
