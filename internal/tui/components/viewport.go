package components

import (
	"fmt"

	"github.com/doriginvision/hanzi-tidy/internal/tui/theme"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// NewViewport constructs a viewport padded like a theme panel, without the
// panel border.
func NewViewport(width, height int, th theme.Theme) *viewport.Model {
	vp := viewport.New(width, max(height, 1))
	vp.Style = th.PanelStyle().
		BorderStyle(lipgloss.Border{}).
		BorderForeground(lipgloss.Color(""))
	vp.MouseWheelDelta = 3
	return &vp
}

// ScrollHint describes how far a viewport is scrolled, or "" when all of its
// content fits.
func ScrollHint(vp *viewport.Model) string {
	if vp.TotalLineCount() <= vp.Height {
		return ""
	}
	return fmt.Sprintf("%3.f%%", vp.ScrollPercent()*100)
}
