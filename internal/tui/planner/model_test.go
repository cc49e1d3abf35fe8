package planner

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/doriginvision/hanzi-tidy/internal/core"
	"github.com/doriginvision/hanzi-tidy/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/google/go-cmp/cmp"
	"github.com/mattn/go-runewidth"
)

func writeFiles(t *testing.T, root string, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("os.MkdirAll(%s) error = %v", rel, err)
		}
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatalf("os.WriteFile(%s) error = %v", rel, err)
		}
	}
}

func startPlanner(t *testing.T, root string) (*Model, *teatest.TestModel) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	session := core.NewSession(root, core.WithStderr(&bytes.Buffer{}))
	model := New(session, theme.Default())
	tm := teatest.NewTestModel(t, model, teatest.WithInitialTermSize(120, 30))
	t.Cleanup(func() {
		_ = tm.Quit()
	})
	return model, tm
}

func waitForOutput(t *testing.T, tm *teatest.TestModel, contains string) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte(contains))
	}, teatest.WithDuration(3*time.Second), teatest.WithCheckInterval(25*time.Millisecond))
}

func finalPlanner(t *testing.T, tm *teatest.TestModel) *Model {
	t.Helper()
	final := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second))
	model, ok := final.(*Model)
	if !ok {
		t.Fatalf("Final model type = %T, want *Model", final)
	}
	return model
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPlannerConfirmRenamesAndRescans(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "北京/IMG_001.jpg", "上海/IMG_002.png", "北京/note.txt")
	_, tm := startPlanner(t, root)

	waitForOutput(t, tm, "2 to rename")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitForOutput(t, tm, "cannot be undone")
	tm.Send(runes("y"))
	waitForOutput(t, tm, "Renamed 2 of 2")
	waitForOutput(t, tm, "0 to rename")
	tm.Send(runes("q"))
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final := finalPlanner(t, tm)
	if final.Report() == nil || final.Report().Succeeded() != 2 {
		t.Fatalf("Report() = %+v, want 2 renamed", final.Report())
	}
	if got := final.Result().Len(); got != 0 {
		t.Errorf("rescan Result().Len() = %d, want 0", got)
	}
	for _, rel := range []string{"北京/北京_IMG_001.jpg", "上海/上海_IMG_002.png", "北京/note.txt"} {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
			t.Errorf("os.Stat(%s) error = %v", rel, err)
		}
	}
}

func TestPlannerDeclineLeavesFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "北京/IMG_001.jpg")
	_, tm := startPlanner(t, root)

	waitForOutput(t, tm, "1 to rename")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitForOutput(t, tm, "cannot be undone")
	tm.Send(runes("n"))
	waitForOutput(t, tm, "enter: rename")
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final := finalPlanner(t, tm)
	if final.Report() != nil {
		t.Errorf("Report() = %+v, want nil after declining", final.Report())
	}
	if _, err := os.Stat(filepath.Join(root, "北京", "IMG_001.jpg")); err != nil {
		t.Errorf("original file missing after declining: %v", err)
	}
}

func TestPlannerEnterWithNothingToRename(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "photos/IMG_001.jpg")
	_, tm := startPlanner(t, root)

	waitForOutput(t, tm, "0 to rename")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Send(runes("q"))
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	if final := finalPlanner(t, tm); final.mode != modeBrowse {
		t.Errorf("mode = %v, want browse when the plan is empty", final.mode)
	}
}

func TestPlannerOpenDirectory(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFiles(t, first, "北京/a.png")
	writeFiles(t, second, "上海/b.jpg", "上海/c.jpeg", "广州/d.png")
	_, tm := startPlanner(t, first)

	waitForOutput(t, tm, "1 to rename")
	tm.Send(runes("o"))
	waitForOutput(t, tm, "esc: cancel")
	tm.Type(second)
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitForOutput(t, tm, "3 to rename")
	tm.Send(runes("q"))
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final := finalPlanner(t, tm)
	if diff := cmp.Diff(second, final.Result().Root); diff != "" {
		t.Errorf("Result().Root diff (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(second, final.session.Root()); diff != "" {
		t.Errorf("session root diff (-want +got):\n%s", diff)
	}
}

func TestPlannerOpenRejectsMissingDirectory(t *testing.T) {
	root := t.TempDir()
	_, tm := startPlanner(t, root)

	waitForOutput(t, tm, "0 to rename")
	tm.Send(runes("o"))
	tm.Type(filepath.Join(root, "missing"))
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitForOutput(t, tm, "no such file")
	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})
	waitForOutput(t, tm, "o: open")
	tm.Send(runes("q"))
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final := finalPlanner(t, tm)
	if final.session.Root() != root {
		t.Errorf("session root = %q, want unchanged %q", final.session.Root(), root)
	}
	if final.inputErr != nil {
		t.Errorf("inputErr = %v, want cleared after esc", final.inputErr)
	}
}

func TestPlannerPasteChangesRoot(t *testing.T) {
	first := t.TempDir()
	dropped := t.TempDir()
	writeFiles(t, dropped, "北京/a.png", "北京/b.png")
	_, tm := startPlanner(t, first)

	waitForOutput(t, tm, "0 to rename")
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("'" + dropped + "' "), Paste: true})
	waitForOutput(t, tm, "2 to rename")
	tm.Send(runes("q"))
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	if got := finalPlanner(t, tm).session.Root(); got != dropped {
		t.Errorf("session root = %q, want %q", got, dropped)
	}
}

func TestPlannerScanFailure(t *testing.T) {
	root := filepath.Join(t.TempDir(), "gone")
	_, tm := startPlanner(t, root)

	waitForOutput(t, tm, "scan "+root)
	tm.Send(runes("q"))
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final := finalPlanner(t, tm)
	if final.scanErr == nil {
		t.Fatal("scanErr = nil, want scan failure for a missing root")
	}
	if final.Result() != nil {
		t.Errorf("Result() = %+v, want nil after a failed scan", final.Result())
	}
}

func TestPlannerQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{name: "q", msg: runes("q")},
		{name: "esc", msg: tea.KeyMsg{Type: tea.KeyEsc}},
		{name: "ctrl_c", msg: tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, tm := startPlanner(t, t.TempDir())
			waitForOutput(t, tm, "0 to rename")
			tm.Send(tc.msg)
			tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

			if err := finalPlanner(t, tm).ctx.Err(); err == nil {
				t.Error("ctx.Err() = nil, want context canceled on quit")
			}
		})
	}
}

func TestTruncateWideRunes(t *testing.T) {
	if got := truncate("北京_a.png", 20); got != "北京_a.png" {
		t.Errorf("truncate(short) = %q, want unchanged", got)
	}
	got := truncate("北京北京北京", 7)
	if w := runewidth.StringWidth(got); w > 7 {
		t.Errorf("truncate width = %d, want <= 7 (%q)", w, got)
	}
	if !strings.HasPrefix(got, "北京") {
		t.Errorf("truncate = %q, want prefix 北京", got)
	}
}

func TestPreviewLinesRelativeToRoot(t *testing.T) {
	root := t.TempDir()
	m := New(core.NewSession(root), theme.New(theme.WithIconSet(theme.IconSet{"arrow": "->"})))
	m.result = &core.ScanResult{
		Root: root,
		Entries: []core.PlanEntry{{
			Original: filepath.Join(root, "北京", "a.png"),
			Target:   filepath.Join(root, "北京", "北京_a.png"),
		}},
	}

	want := []string{filepath.Join("北京", "a.png") + " -> 北京_a.png"}
	if diff := cmp.Diff(want, m.previewLines()); diff != "" {
		t.Errorf("previewLines diff (-want +got):\n%s", diff)
	}
}

func TestPlannerRescanClearsReport(t *testing.T) {
	root := t.TempDir()
	m := New(core.NewSession(root), theme.Default())
	t.Cleanup(m.cancel)
	m.report = &core.RenameReport{Results: []core.RenameResult{{Status: core.StatusRenamed}}}
	m.renameErr = core.ErrStaleResult

	_, cmd := m.Update(runes("r"))
	if cmd == nil {
		t.Fatal("Update(r) cmd = nil, want a scan")
	}
	if m.report != nil || m.renameErr != nil {
		t.Errorf("after rescan report = %+v, renameErr = %v; want both cleared", m.report, m.renameErr)
	}

	// Drain until the scan completes
	for {
		msg := cmd()
		m.Update(msg)
		if _, ok := msg.(scanDoneMsg); ok {
			break
		}
		cmd = m.waitForMsg()
	}
	if m.scanErr != nil || m.Result().Len() != 0 {
		t.Errorf("rescan = (%+v, %v), want empty result", m.Result(), m.scanErr)
	}
}
