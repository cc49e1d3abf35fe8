package core

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/doriginvision/hanzi-tidy/internal/media"
)

// Candidate is an image file whose parent directory name carries Hanzi while
// its own name does not.
type Candidate struct {
	Path       string
	ParentName string
	Name       string
}

// PlanEntry pairs a candidate's current path with its proposed path.
type PlanEntry struct {
	Original string
	Target   string
}

// ScanResult is the outcome of one successful scan. It is never reused across
// scans; callers rescan after every rename batch.
type ScanResult struct {
	Root         string
	Entries      []PlanEntry
	FilesVisited int
	ScannedAt    time.Time
}

// Len returns the number of planned renames; zero for a nil result.
func (r *ScanResult) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Entries)
}

// splitPath returns the named components of a cleaned path, leaving out the
// volume and the root separator.
func splitPath(p string) []string {
	p = filepath.Clean(p)
	p = p[len(filepath.VolumeName(p)):]
	var parts []string
	for _, part := range strings.Split(p, string(filepath.Separator)) {
		if part != "" && part != "." {
			parts = append(parts, part)
		}
	}
	return parts
}

// TargetPath computes the rename target for original: the parent directory's
// Hanzi, an underscore, then the unchanged file name, in the same directory.
//
//	/photos/北京/IMG_001.jpg -> /photos/北京/北京_IMG_001.jpg
func TargetPath(original string) (string, error) {
	parts := splitPath(original)
	if len(parts) < 2 {
		return "", &MalformedPathError{Path: original}
	}
	name := parts[len(parts)-1]
	parent := parts[len(parts)-2]
	return filepath.Join(filepath.Dir(filepath.Clean(original)), media.ExtractHanzi(parent)+"_"+name), nil
}

// BuildPlan maps candidates to plan entries in order.
func BuildPlan(candidates []Candidate) ([]PlanEntry, error) {
	entries := make([]PlanEntry, 0, len(candidates))
	for _, c := range candidates {
		target, err := TargetPath(c.Path)
		if err != nil {
			return nil, err
		}
		entries = append(entries, PlanEntry{Original: c.Path, Target: target})
	}
	return entries, nil
}

// PreviewText renders one "<original> -> <target>" line per entry. A nil
// result renders as the empty string.
func PreviewText(r *ScanResult) string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	for _, e := range r.Entries {
		b.WriteString(e.Original)
		b.WriteString(" -> ")
		b.WriteString(e.Target)
		b.WriteByte('\n')
	}
	return b.String()
}
