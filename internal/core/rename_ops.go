package core

import (
	"os"

	"github.com/doriginvision/hanzi-tidy/internal/log"
)

// RenameStatus is the outcome of one rename attempt.
type RenameStatus int

const (
	StatusRenamed RenameStatus = iota // File moved to its target
	StatusFailed                      // Rename refused or failed; see RenameResult.Err
)

func (s RenameStatus) String() string {
	switch s {
	case StatusRenamed:
		return "renamed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RenameResult records what happened to a single plan entry. Err is a
// *RenameFailure whenever Status is StatusFailed.
type RenameResult struct {
	Entry  PlanEntry
	Status RenameStatus
	Err    error
}

// RenameReport collects the per-entry outcomes of one batch, in plan order.
type RenameReport struct {
	Results []RenameResult
}

// Len returns the number of attempted entries.
func (r RenameReport) Len() int { return len(r.Results) }

// Succeeded counts the entries that were renamed.
func (r RenameReport) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == StatusRenamed {
			n++
		}
	}
	return n
}

// Failed returns the entries that could not be renamed.
func (r RenameReport) Failed() []RenameResult {
	var failed []RenameResult
	for _, res := range r.Results {
		if res.Status == StatusFailed {
			failed = append(failed, res)
		}
	}
	return failed
}

// RenameOption tunes an ApplyRenames call.
type RenameOption func(*renameOptions)

type renameOptions struct {
	progress func(done, total int, res RenameResult)
}

// WithRenameProgress registers a callback run after every attempted entry.
func WithRenameProgress(fn func(done, total int, res RenameResult)) RenameOption {
	return func(o *renameOptions) {
		o.progress = fn
	}
}

// RenameEntry moves one file to its target. An existing target is never
// overwritten. Every attempt is recorded in the operation journal.
func RenameEntry(e PlanEntry) RenameResult {
	fail := func(err error) RenameResult {
		log.LogRename(e.Original, e.Target, false, err)
		return RenameResult{Entry: e, Status: StatusFailed, Err: &RenameFailure{Entry: e, Err: err}}
	}

	if _, err := os.Lstat(e.Target); err == nil {
		return fail(ErrTargetExists)
	} else if !os.IsNotExist(err) {
		return fail(err)
	}
	if err := os.Rename(e.Original, e.Target); err != nil {
		return fail(err)
	}
	log.LogRename(e.Original, e.Target, true, nil)
	return RenameResult{Entry: e, Status: StatusRenamed}
}

// ApplyRenames attempts every entry of plan in order. A failing entry never
// stops the batch and nothing is rolled back. An empty plan touches nothing.
func ApplyRenames(plan []PlanEntry, opts ...RenameOption) RenameReport {
	var o renameOptions
	for _, opt := range opts {
		opt(&o)
	}

	report := RenameReport{Results: make([]RenameResult, 0, len(plan))}
	for i, e := range plan {
		res := RenameEntry(e)
		report.Results = append(report.Results, res)
		if o.progress != nil {
			o.progress(i+1, len(plan), res)
		}
	}
	return report
}
