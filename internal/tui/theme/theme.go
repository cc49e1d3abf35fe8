package theme

import (
	"maps"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
)

// IconSet maps semantic icon names to glyphs.
type IconSet map[string]string

// Colors holds the palette shared by every view.
type Colors struct {
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Error      lipgloss.Color
}

// BadgeKind enumerates supported badge style variants.
type BadgeKind int

const (
	BadgeInfo BadgeKind = iota
	BadgeSuccess
	BadgeError
	BadgeWarning
	BadgeMuted
)

// Theme bundles palette, panel border and icons.
type Theme struct {
	colors   Colors
	border   lipgloss.Border
	icons    IconSet
	fallback IconSet
}

// Option configures a Theme during construction.
type Option func(*Theme)

// WithColors overrides the palette.
func WithColors(colors Colors) Option {
	return func(t *Theme) {
		t.colors = colors
	}
}

// WithIconSet overrides the icons; the set is copied.
func WithIconSet(set IconSet) Option {
	return func(t *Theme) {
		t.icons = maps.Clone(set)
	}
}

// New constructs a Theme with optional overrides applied.
func New(opts ...Option) Theme {
	t := Theme{
		colors: Colors{
			Primary:    lipgloss.Color("#9c2b27"),
			Accent:     lipgloss.Color("#d9a441"),
			Background: lipgloss.Color("#fbf6ee"),
			Muted:      lipgloss.Color("#8a8178"),
			Success:    lipgloss.Color("#4f9a6b"),
			Error:      lipgloss.Color("#e0474c"),
		},
		border:   lipgloss.RoundedBorder(),
		icons:    defaultIconSet(),
		fallback: maps.Clone(asciiIcons),
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Default returns the default Theme configuration.
func Default() Theme {
	return New()
}

// Colors exposes the palette.
func (t Theme) Colors() Colors {
	return t.colors
}

// Icon returns the themed icon, the ASCII fallback, or "".
func (t Theme) Icon(name string) string {
	if icon, ok := t.icons[name]; ok {
		return icon
	}
	return t.fallback[name]
}

func (t Theme) HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Background(t.colors.Primary).
		Foreground(t.colors.Background).
		Align(lipgloss.Center)
}

func (t Theme) StatusBarStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(t.colors.Accent).
		Foreground(t.colors.Primary).
		Padding(0, 1)
}

func (t Theme) PanelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(t.border).
		BorderForeground(t.colors.Accent).
		Padding(0, 1)
}

func (t Theme) PanelTitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Underline(true)
}

func (t Theme) MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.colors.Muted)
}

// BadgeStyle returns the badge style for the requested variant.
func (t Theme) BadgeStyle(kind BadgeKind) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(t.colors.Background)

	switch kind {
	case BadgeSuccess:
		return base.Background(t.colors.Success)
	case BadgeError:
		return base.Background(t.colors.Error)
	case BadgeWarning:
		return base.Background(t.colors.Accent).Foreground(t.colors.Primary)
	case BadgeMuted:
		return base.Background(t.colors.Muted)
	default:
		return base.Background(t.colors.Primary)
	}
}

// ProgressGradient returns the two colors used by progress bars.
func (t Theme) ProgressGradient() (string, string) {
	return string(t.colors.Primary), string(t.colors.Accent)
}

func defaultIconSet() IconSet {
	if isLimitedTerminal() {
		return maps.Clone(asciiIcons)
	}
	return maps.Clone(emojiIcons)
}

// isLimitedTerminal detects environments where ASCII icons are preferable.
func isLimitedTerminal() bool {
	if os.Getenv("SSH_CLIENT") != "" || os.Getenv("SSH_TTY") != "" || os.Getenv("SSH_CONNECTION") != "" {
		return true
	}
	return runtime.GOOS == "windows"
}

var emojiIcons = IconSet{
	"folder":  "📁",
	"image":   "🖼",
	"arrow":   "→",
	"success": "✅",
	"error":   "❌",
	"warning": "⚠",
	"stats":   "📊",
}

var asciiIcons = IconSet{
	"folder":  "[D]",
	"image":   "[I]",
	"arrow":   "->",
	"success": "[v]",
	"error":   "[!]",
	"warning": "[?]",
	"stats":   "[#]",
}
