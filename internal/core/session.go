package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/doriginvision/hanzi-tidy/internal/log"
	"golang.org/x/sync/semaphore"
)

// State is the position of a Session in the scan/rename cycle.
type State int

const (
	StateIdle State = iota
	StateScanning
	StateScanFailed
	StateScanned
	StateRenaming
	StateReportReady
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScanning:
		return "scanning"
	case StateScanFailed:
		return "scan failed"
	case StateScanned:
		return "scanned"
	case StateRenaming:
		return "renaming"
	case StateReportReady:
		return "report ready"
	default:
		return "unknown"
	}
}

// Session holds the current root for a front end and runs scans and rename
// batches against it, one at a time.
type Session struct {
	mu    sync.Mutex
	root  string
	state State

	// busy admits a single scan or rename batch
	busy *semaphore.Weighted

	maxDepth int
	args     []string
	stderr   io.Writer
	now      func() time.Time
}

// SessionOption configures a Session during construction.
type SessionOption func(*Session)

// WithSessionMaxDepth sets the walk depth used by Scan.
func WithSessionMaxDepth(depth int) SessionOption {
	return func(s *Session) {
		s.maxDepth = depth
	}
}

// WithCommandArgs sets the arguments recorded in the operation journal.
func WithCommandArgs(args []string) SessionOption {
	return func(s *Session) {
		s.args = args
	}
}

// WithStderr redirects journal warnings.
func WithStderr(w io.Writer) SessionOption {
	return func(s *Session) {
		s.stderr = w
	}
}

// NewSession returns an idle session rooted at root.
func NewSession(root string, opts ...SessionOption) *Session {
	s := &Session{
		busy:   semaphore.NewWeighted(1),
		stderr: os.Stderr,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.SetRoot(root)
	return s
}

// SetRoot changes the directory the next Scan walks and returns the session
// to idle. Results of earlier scans become stale.
func (s *Session) SetRoot(path string) {
	if path != "" {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.root = path
	s.state = StateIdle
}

// Root returns the current root directory.
func (s *Session) Root() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Scan walks the current root and builds a fresh plan. On failure the
// returned result is nil and the session is left in StateScanFailed.
func (s *Session) Scan(ctx context.Context, opts ...ScanOption) (*ScanResult, error) {
	if !s.busy.TryAcquire(1) {
		return nil, ErrBusy
	}
	defer s.busy.Release(1)

	root := s.Root()
	if root == "" {
		s.setState(StateScanFailed)
		return nil, ErrNoRoot
	}
	s.setState(StateScanning)

	opts = append([]ScanOption{WithMaxDepth(s.maxDepth)}, opts...)
	candidates, visited, err := SelectCandidates(ctx, root, opts...)
	if err != nil {
		s.setState(StateScanFailed)
		return nil, err
	}
	entries, err := BuildPlan(candidates)
	if err != nil {
		s.setState(StateScanFailed)
		return nil, err
	}

	s.setState(StateScanned)
	return &ScanResult{
		Root:         root,
		Entries:      entries,
		FilesVisited: visited,
		ScannedAt:    s.now(),
	}, nil
}

// PreviewText renders the human readable listing of a scan result.
func (s *Session) PreviewText(r *ScanResult) string {
	return PreviewText(r)
}

// ConfirmRename executes the plan held by r. A nil or empty result is a no-op
// returning an empty report. The caller rescans afterwards to see the new
// on-disk state.
func (s *Session) ConfirmRename(r *ScanResult, opts ...RenameOption) (RenameReport, error) {
	if r.Len() == 0 {
		return RenameReport{}, nil
	}
	if !s.busy.TryAcquire(1) {
		return RenameReport{}, ErrBusy
	}
	defer s.busy.Release(1)

	if r.Root != s.Root() {
		return RenameReport{}, ErrStaleResult
	}
	s.setState(StateRenaming)

	if err := log.StartSession(r.Root, s.args); err != nil {
		fmt.Fprintf(s.stderr, "Warning: Failed to start operation log: %v\n", err)
	}
	report := ApplyRenames(r.Entries, opts...)
	if err := log.EndSession(); err != nil {
		fmt.Fprintf(s.stderr, "Warning: Failed to save operation log: %v\n", err)
	}

	s.setState(StateReportReady)
	return report, nil
}
