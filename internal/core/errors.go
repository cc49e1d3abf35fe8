package core

import (
	"errors"
	"fmt"
)

var (
	// ErrTargetExists is reported when a rename would overwrite an existing entry.
	ErrTargetExists = errors.New("destination already exists")
	// ErrBusy is returned when a scan or rename batch is already running.
	ErrBusy = errors.New("another scan or rename is in progress")
	// ErrNoRoot is returned by Scan before a root directory has been set.
	ErrNoRoot = errors.New("no root directory selected")
	// ErrStaleResult is returned when a scan result belongs to a root other
	// than the session's current one.
	ErrStaleResult = errors.New("scan result does not match the current root")
	// ErrDepthLimit is wrapped by a ScanError when a directory below the
	// maximum depth still has entries.
	ErrDepthLimit = errors.New("directory below maximum depth")
)

// ScanError reports that the tree under Root could not be walked. The
// candidate list of a failed scan is absent, not empty.
type ScanError struct {
	Root string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan %s: %v", e.Root, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

// MalformedPathError reports a path without both a parent directory and a
// file name component.
type MalformedPathError struct {
	Path string
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("malformed path %q: need a parent directory and a file name", e.Path)
}

// RenameFailure is the per-entry error of a rename batch.
type RenameFailure struct {
	Entry PlanEntry
	Err   error
}

func (e *RenameFailure) Error() string {
	return fmt.Sprintf("%s -> %s: %v", e.Entry.Original, e.Entry.Target, e.Err)
}

func (e *RenameFailure) Unwrap() error { return e.Err }
