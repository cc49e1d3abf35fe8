package components

import (
	"strings"
	"testing"

	"github.com/doriginvision/hanzi-tidy/internal/tui/theme"
)

func TestNewViewportDimensions(t *testing.T) {
	vp := NewViewport(40, 0, theme.Default())
	if vp.Width != 40 || vp.Height != 1 {
		t.Errorf("NewViewport(40, 0) size = %dx%d, want 40x1", vp.Width, vp.Height)
	}
	if got := vp.Style.GetHorizontalPadding(); got != 2 {
		t.Errorf("horizontal padding = %d, want 2", got)
	}
}

func TestScrollHint(t *testing.T) {
	vp := NewViewport(20, 3, theme.Default())

	vp.SetContent("one\ntwo")
	if got := ScrollHint(vp); got != "" {
		t.Errorf("ScrollHint(fits) = %q, want empty", got)
	}

	vp.SetContent(strings.Repeat("line\n", 10) + "last")
	if got := ScrollHint(vp); got != "  0%" {
		t.Errorf("ScrollHint(top) = %q, want %q", got, "  0%")
	}
	vp.GotoBottom()
	if got := ScrollHint(vp); got != "100%" {
		t.Errorf("ScrollHint(bottom) = %q, want %q", got, "100%")
	}
}
