// Package log keeps the operation journal: every rename batch is recorded as
// one JSON file under ~/.hanzi-tidy/logs.
package log

import (
	"fmt"
	"os"
	"sync"
	"time"
)

type OperationType string

const (
	OpRename OperationType = "rename"
)

type OperationLog struct {
	ID         string        `json:"id"`
	Timestamp  time.Time     `json:"timestamp"`
	Type       OperationType `json:"type"`
	SourcePath string        `json:"source_path"`
	DestPath   string        `json:"dest_path,omitempty"`
	Success    bool          `json:"success"`
	Error      string        `json:"error,omitempty"`
}

type SessionMetadata struct {
	CommandArgs   []string  `json:"command_args"`
	Root          string    `json:"root"`
	Timestamp     time.Time `json:"timestamp"`
	SessionID     string    `json:"session_id"`
	TotalOps      int       `json:"total_operations"`
	SuccessfulOps int       `json:"successful_operations"`
	FailedOps     int       `json:"failed_operations"`
}

// LogSession is one rename batch.
type LogSession struct {
	Metadata   SessionMetadata `json:"metadata"`
	Operations []OperationLog  `json:"operations"`
}

// record appends op and keeps the counters in step.
func (s *LogSession) record(op OperationLog) {
	op.ID = fmt.Sprintf("%s_%d", s.Metadata.SessionID, len(s.Operations))
	s.Operations = append(s.Operations, op)
	s.Metadata.TotalOps++
	if op.Success {
		s.Metadata.SuccessfulOps++
	} else {
		s.Metadata.FailedOps++
	}
}

// The journal holds at most one open batch at a time.
var (
	mu      sync.Mutex
	current *LogSession
	enabled = true
)

// Initialize turns the journal on or off and prunes files older than
// retentionDays.
func Initialize(enable bool, retentionDays int) {
	mu.Lock()
	defer mu.Unlock()

	enabled = enable
	if !enabled {
		return
	}
	if err := pruneLogs(retentionDays); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to clean up old logs: %v\n", err)
	}
}

// StartSession opens a journal session for one rename batch under root.
func StartSession(root string, args []string) error {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return nil
	}
	now := time.Now()
	current = &LogSession{
		Metadata: SessionMetadata{
			CommandArgs: append([]string(nil), args...),
			Root:        root,
			Timestamp:   now,
			SessionID:   now.Format("20060102_150405.000"),
		},
		Operations: []OperationLog{},
	}
	return nil
}

// LogRename records one rename attempt in the open session, if any.
func LogRename(sourcePath, destPath string, success bool, err error) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || current == nil {
		return
	}
	op := OperationLog{
		Timestamp:  time.Now(),
		Type:       OpRename,
		SourcePath: sourcePath,
		DestPath:   destPath,
		Success:    success,
	}
	if err != nil {
		op.Error = err.Error()
	}
	current.record(op)
}

// EndSession writes the open session to disk and closes it.
func EndSession() error {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || current == nil {
		return nil
	}
	s := current
	current = nil
	return saveSession(s)
}
