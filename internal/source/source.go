// Package source resolves the directory a scan starts from. Front ends pick a
// DirectorySource (a command-line argument, the configured default, text
// dropped onto the terminal) and the planner only ever sees the path.
package source

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotDirectory is returned when the chosen path exists but is not a directory.
	ErrNotDirectory = errors.New("not a directory")
	// ErrNoDirectory is returned when a source yields nothing usable.
	ErrNoDirectory = errors.New("no directory chosen")
)

// DirectorySource yields an absolute path to an existing directory.
type DirectorySource interface {
	Directory() (string, error)
}

// Func adapts a function to DirectorySource.
type Func func() (string, error)

func (f Func) Directory() (string, error) { return f() }

// Static returns a source for a fixed path.
func Static(path string) DirectorySource {
	return Func(func() (string, error) {
		if path == "" {
			return "", ErrNoDirectory
		}
		return checkDir(path)
	})
}

// Home returns a source for the user's home directory.
func Home() DirectorySource {
	return Func(func() (string, error) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return checkDir(home)
	})
}

// Dropped returns a source for text a terminal inserts when items are dragged
// onto it or pasted. The last dropped item that is a directory wins; files
// are ignored.
func Dropped(text string) DirectorySource {
	return Func(func() (string, error) {
		// A typed path may hold unescaped spaces
		if typed := strings.TrimSpace(text); typed != "" {
			if dir, err := checkDir(typed); err == nil {
				return dir, nil
			}
		}
		items := SplitDropped(text)
		if len(items) == 0 {
			return "", ErrNoDirectory
		}
		var last string
		var firstErr error
		for _, item := range items {
			dir, err := checkDir(item)
			if err == nil {
				last = dir
				continue
			}
			if firstErr == nil {
				firstErr = err
			}
		}
		if last != "" {
			return last, nil
		}
		return "", firstErr
	})
}

// First tries each source in order and returns the first directory found.
// When every source fails the last error is returned.
func First(sources ...DirectorySource) DirectorySource {
	return Func(func() (string, error) {
		err := ErrNoDirectory
		for _, s := range sources {
			dir, serr := s.Directory()
			if serr == nil {
				return dir, nil
			}
			err = serr
		}
		return "", err
	})
}

func checkDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: %w", abs, ErrNotDirectory)
	}
	return abs, nil
}

// SplitDropped breaks dropped text into paths. It understands one path per
// line, single or double quoted paths, backslash-escaped spaces and file://
// URIs, which covers what common terminal emulators emit on drop.
func SplitDropped(text string) []string {
	var (
		items   []string
		cur     strings.Builder
		quote   rune
		escaped bool
		started bool
	)
	flush := func() {
		if started {
			items = append(items, decodeItem(cur.String()))
		}
		cur.Reset()
		started = false
	}

	for _, r := range text {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\\' && filepath.Separator == '/':
			escaped = true
			started = true
		case r == '\'' || r == '"':
			quote = r
			started = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	flush()

	var out []string
	for _, item := range items {
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func decodeItem(item string) string {
	if !strings.HasPrefix(item, "file://") {
		return item
	}
	u, err := url.Parse(item)
	if err != nil || u.Path == "" {
		return item
	}
	return filepath.FromSlash(u.Path)
}
