package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestWithIconSetCopies(t *testing.T) {
	icons := IconSet{"image": "pic"}
	th := New(WithIconSet(icons))

	icons["image"] = "mutated"

	if got := th.Icon("image"); got != "pic" {
		t.Errorf("Icon(%q) = %q, want %q", "image", got, "pic")
	}
}

func TestIconLookupOrder(t *testing.T) {
	th := Theme{
		icons:    IconSet{"primary": "icon"},
		fallback: IconSet{"fallback": "fallback-icon"},
	}

	tests := []struct {
		key  string
		want string
	}{
		{"primary", "icon"},
		{"fallback", "fallback-icon"},
		{"missing", ""},
	}
	for _, tc := range tests {
		if got := th.Icon(tc.key); got != tc.want {
			t.Errorf("Icon(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestLimitedTerminalUsesASCII(t *testing.T) {
	t.Setenv("SSH_TTY", "/dev/pts/1")
	th := New()
	if got := th.Icon("arrow"); got != "->" {
		t.Errorf("Icon(arrow) over SSH = %q, want %q", got, "->")
	}
}

func TestWithColors(t *testing.T) {
	colors := Colors{Primary: lipgloss.Color("#111111"), Accent: lipgloss.Color("#222222")}
	th := New(WithColors(colors))

	if th.Colors() != colors {
		t.Errorf("Colors() = %+v, want %+v", th.Colors(), colors)
	}
	from, to := th.ProgressGradient()
	if from != "#111111" || to != "#222222" {
		t.Errorf("ProgressGradient() = (%s, %s), want (#111111, #222222)", from, to)
	}
}

func TestBadgeStyleBackgrounds(t *testing.T) {
	th := Default()
	c := th.Colors()
	tests := []struct {
		kind BadgeKind
		want lipgloss.TerminalColor
	}{
		{BadgeInfo, c.Primary},
		{BadgeSuccess, c.Success},
		{BadgeError, c.Error},
		{BadgeWarning, c.Accent},
		{BadgeMuted, c.Muted},
	}
	for _, tc := range tests {
		if got := th.BadgeStyle(tc.kind).GetBackground(); got != tc.want {
			t.Errorf("BadgeStyle(%d) background = %v, want %v", tc.kind, got, tc.want)
		}
	}
}
