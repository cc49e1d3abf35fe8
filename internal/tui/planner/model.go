// Package planner is the interactive front end: it shows the rename plan for
// the current root, lets the user pick another directory, and runs the
// confirmed batch with live progress.
package planner

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/doriginvision/hanzi-tidy/internal/core"
	"github.com/doriginvision/hanzi-tidy/internal/source"
	"github.com/doriginvision/hanzi-tidy/internal/tui/components"
	"github.com/doriginvision/hanzi-tidy/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type mode int

const (
	modeBrowse mode = iota
	modeInput
	modeConfirm
)

// chrome is the number of rows taken by everything except the preview.
const chrome = 9

// scanProgressMsg carries the running count of files visited.
type scanProgressMsg struct{ visited int }

// scanDoneMsg delivers the outcome of a scan.
type scanDoneMsg struct {
	result *core.ScanResult
	err    error
}

// renameProgressMsg reports one finished entry of the batch.
type renameProgressMsg struct{ done, total int }

// renameDoneMsg delivers the final report of a batch.
type renameDoneMsg struct {
	report core.RenameReport
	err    error
}

// Model drives a core.Session from the terminal.
type Model struct {
	session *core.Session
	theme   theme.Theme

	ctx    context.Context
	cancel context.CancelFunc
	msgCh  chan tea.Msg

	mode     mode
	input    textinput.Model
	inputErr error
	preview  *viewport.Model
	progress progress.Model

	width  int
	height int

	scanning bool
	visited  int
	result   *core.ScanResult
	scanErr  error

	renaming  bool
	done      int
	total     int
	report    *core.RenameReport
	renameErr error
}

// New returns a Model bound to session. The first scan starts on Init.
func New(session *core.Session, th theme.Theme) *Model {
	in := textinput.New()
	in.Prompt = th.Icon("folder") + " "
	in.Placeholder = "type, paste or drop a directory"

	from, to := th.ProgressGradient()
	p := progress.New(progress.WithGradient(from, to))
	p.Width = 50

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		session:  session,
		theme:    th,
		ctx:      ctx,
		cancel:   cancel,
		msgCh:    make(chan tea.Msg, 64),
		input:    in,
		progress: p,
		width:    80,
		height:   24,
	}
	m.preview = components.NewViewport(m.width, m.height-chrome, th)
	return m
}

// Init kicks off the initial scan.
func (m *Model) Init() tea.Cmd {
	return m.startScan()
}

func (m *Model) waitForMsg() tea.Cmd { return func() tea.Msg { return <-m.msgCh } }

func (m *Model) busy() bool { return m.scanning || m.renaming }

func (m *Model) startScan() tea.Cmd {
	m.scanning = true
	m.visited = 0
	m.scanErr = nil
	go func() {
		res, err := m.session.Scan(m.ctx, core.WithProgress(func(visited int) {
			select {
			case m.msgCh <- scanProgressMsg{visited: visited}:
			default:
			}
		}))
		m.msgCh <- scanDoneMsg{result: res, err: err}
	}()
	return m.waitForMsg()
}

func (m *Model) startRename() tea.Cmd {
	m.renaming = true
	m.done, m.total = 0, m.result.Len()
	res := m.result
	go func() {
		report, err := m.session.ConfirmRename(res, core.WithRenameProgress(func(done, total int, _ core.RenameResult) {
			select {
			case m.msgCh <- renameProgressMsg{done: done, total: total}:
			default:
			}
		}))
		m.msgCh <- renameDoneMsg{report: report, err: err}
	}()
	return m.waitForMsg()
}

// chooseRoot resolves text from the path input or a paste and rescans.
func (m *Model) chooseRoot(text string) tea.Cmd {
	dir, err := source.Dropped(text).Directory()
	if err != nil {
		m.inputErr = err
		return nil
	}
	m.inputErr = nil
	m.mode = modeBrowse
	m.input.Blur()
	m.input.Reset()
	m.session.SetRoot(dir)
	m.result = nil
	m.report = nil
	m.renameErr = nil
	m.refreshPreview()
	return m.startScan()
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	return m, tea.Quit
}

// Update processes Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.progress.Width = max(msg.Width-4, 10)
		m.input.Width = max(msg.Width-6, 10)
		m.preview.Width = msg.Width
		m.preview.Height = max(msg.Height-chrome, 3)
		m.refreshPreview()
		return m, nil
	case scanProgressMsg:
		m.visited = msg.visited
		return m, m.waitForMsg()
	case scanDoneMsg:
		m.scanning = false
		m.result, m.scanErr = msg.result, msg.err
		if msg.result != nil {
			m.visited = msg.result.FilesVisited
		}
		m.refreshPreview()
		return m, nil
	case renameProgressMsg:
		m.done, m.total = msg.done, msg.total
		return m, m.waitForMsg()
	case renameDoneMsg:
		m.renaming = false
		m.renameErr = msg.err
		if msg.err == nil {
			m.report = &msg.report
		}
		// The on-disk state changed; show what is left to rename
		return m, m.startScan()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	switch m.mode {
	case modeInput:
		switch msg.Type {
		case tea.KeyEnter:
			return m, m.chooseRoot(m.input.Value())
		case tea.KeyEsc:
			m.mode = modeBrowse
			m.inputErr = nil
			m.input.Blur()
			m.input.Reset()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case modeConfirm:
		switch msg.String() {
		case "y", "Y":
			m.mode = modeBrowse
			return m, m.startRename()
		case "n", "N", "esc":
			m.mode = modeBrowse
		}
		return m, nil
	}

	if msg.Paste && !m.busy() {
		return m, m.chooseRoot(string(msg.Runes))
	}

	switch msg.String() {
	case "q", "esc":
		return m.quit()
	case "o":
		if !m.busy() {
			m.mode = modeInput
			m.inputErr = nil
			return m, m.input.Focus()
		}
	case "r":
		if !m.busy() {
			m.report = nil
			m.renameErr = nil
			return m, m.startScan()
		}
	case "enter":
		if !m.busy() && m.result.Len() > 0 {
			m.mode = modeConfirm
		}
	default:
		vp, cmd := m.preview.Update(msg)
		*m.preview = vp
		return m, cmd
	}
	return m, nil
}

// previewLines renders each plan entry relative to the scanned root.
func (m *Model) previewLines() []string {
	if m.result == nil {
		return nil
	}
	arrow := " " + m.theme.Icon("arrow") + " "
	lines := make([]string, 0, m.result.Len())
	for _, e := range m.result.Entries {
		lines = append(lines, relativeTo(m.result.Root, e.Original)+arrow+filepath.Base(e.Target))
	}
	return lines
}

func (m *Model) refreshPreview() {
	lines := m.previewLines()
	width := m.preview.Width - m.preview.Style.GetHorizontalFrameSize()
	for i, line := range lines {
		lines[i] = truncate(line, width)
	}
	m.preview.SetContent(strings.Join(lines, "\n"))
}

func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

// Result returns the most recent scan result.
func (m *Model) Result() *core.ScanResult { return m.result }

// Report returns the report of the last rename batch, if any.
func (m *Model) Report() *core.RenameReport { return m.report }
