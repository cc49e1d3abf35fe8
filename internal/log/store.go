package log

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// fileLayout names journal files so that lexical order is chronological.
const fileLayout = "2006-01-02_150405.000"

// LogDir returns the directory holding journal files.
func LogDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".hanzi-tidy", "logs"), nil
}

func saveSession(s *LogSession) error {
	dir, err := LogDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	name := time.Now().Format(fileLayout) + ".json"
	return writeSessionTo(s, filepath.Join(dir, name))
}

func writeSessionTo(s *LogSession, path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write log file: %w", err)
	}
	return nil
}

func readSession(path string) (*LogSession, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}
	var s LogSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return &s, nil
}

// listLogFiles returns journal files newest first. A missing directory has
// no files.
func listLogFiles() ([]string, error) {
	dir, err := LogDir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list log files: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), ".json") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(files)
	slices.Reverse(files)
	return files, nil
}

// pruneLogs removes journal files last modified before the retention window.
// The caller holds mu.
func pruneLogs(retentionDays int) error {
	files, err := listLogFiles()
	if err != nil {
		return err
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(f); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to remove old log file %s: %v\n", f, err)
		}
	}
	return nil
}
