package domain

import (
	"time"
)

// SessionRecord is one completed interval kept in history.
type SessionRecord struct {
	ID        string    `json:"id"`
	Mode      Mode      `json:"type"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	GitBranch string    `json:"gitBranch,omitempty"`
	GitCommit string    `json:"gitCommit,omitempty"`
}

// NewSessionRecord builds a history entry from an expiry event.
func NewSessionRecord(ev IntervalExpired) SessionRecord {
	return SessionRecord{
		ID:        generateID(),
		Mode:      ev.Previous,
		StartTime: ev.StartedAt,
		EndTime:   ev.ExpiredAt,
	}
}

// SetGitContext stores git information for the record.
func (r *SessionRecord) SetGitContext(branch, commit string) {
	r.GitBranch = branch
	r.GitCommit = commit
}

// DailyStats aggregates completed intervals for a day.
type DailyStats struct {
	Date           time.Time
	FocusSessions  int
	BreaksTaken    int
	TotalFocusTime time.Duration
}

// Snapshot captures everything a status view needs.
type Snapshot struct {
	Settings    TimerSettings
	Session     *SessionState
	Tasks       []Task
	FocusedTask *Task
	Deadlines   []Deadline
	TodayStats  DailyStats
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
