package log

import (
	"fmt"
	"time"
)

// SessionSummary pairs a journal session with display helpers for listings.
type SessionSummary struct {
	Session      *LogSession
	FilePath     string
	RelativeTime string
}

// GetSessionSummaries lists readable journal sessions, newest first, at most
// limit of them when limit is positive. Unreadable files are skipped.
func GetSessionSummaries(limit int) ([]SessionSummary, error) {
	files, err := listLogFiles()
	if err != nil {
		return nil, err
	}

	var summaries []SessionSummary
	for _, f := range files {
		if limit > 0 && len(summaries) == limit {
			break
		}
		s, err := readSession(f)
		if err != nil {
			continue
		}
		summaries = append(summaries, SessionSummary{
			Session:      s,
			FilePath:     f,
			RelativeTime: formatRelativeTime(s.Metadata.Timestamp),
		})
	}
	return summaries, nil
}

var relativeUnits = []struct {
	size time.Duration
	name string
}{
	{24 * time.Hour, "day"},
	{time.Hour, "hour"},
	{time.Minute, "minute"},
}

// formatRelativeTime renders t as "3 hours ago", or as a date after a week.
func formatRelativeTime(t time.Time) string {
	age := time.Since(t)
	if age >= 7*24*time.Hour {
		return t.Format("Jan 2, 2006")
	}
	for _, u := range relativeUnits {
		if n := int(age / u.size); n > 0 {
			if n == 1 {
				return fmt.Sprintf("1 %s ago", u.name)
			}
			return fmt.Sprintf("%d %ss ago", n, u.name)
		}
	}
	return "just now"
}
