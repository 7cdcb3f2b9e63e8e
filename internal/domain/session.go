package domain

import "time"

// SessionState is the transient state of the running timer.
type SessionState struct {
	Mode                   Mode `json:"mode"`
	TimeLeftSeconds        int  `json:"timeLeftSeconds"`
	IsRunning              bool `json:"isRunning"`
	CompletedFocusSessions int  `json:"completedFocusSessions"`
}

// NewSessionState returns an idle Focus interval at full length.
func NewSessionState(settings TimerSettings) SessionState {
	return SessionState{
		Mode:            ModeFocus,
		TimeLeftSeconds: settings.DurationSeconds(ModeFocus),
	}
}

// Remaining returns the time left as a duration.
func (s SessionState) Remaining() time.Duration {
	return time.Duration(s.TimeLeftSeconds) * time.Second
}

// Progress returns the elapsed fraction (0.0 to 1.0) of the current interval.
func (s SessionState) Progress(settings TimerSettings) float64 {
	total := settings.DurationSeconds(s.Mode)
	if total <= 0 {
		return 0
	}
	p := float64(total-s.TimeLeftSeconds) / float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Transition describes where the cycle goes when an interval runs out.
type Transition struct {
	Next      Mode
	AutoStart bool
	Completed int
}

// NextTransition computes the mode that follows an expired interval.
// completed is the Focus counter before the interval ended.
func NextTransition(current Mode, completed int, settings TimerSettings) Transition {
	if current != ModeFocus {
		return Transition{Next: ModeFocus, AutoStart: settings.AutoStartFocus, Completed: completed}
	}

	completed++
	next := ModeShortBreak
	if settings.SessionsUntilLongBreak > 0 && completed%settings.SessionsUntilLongBreak == 0 {
		next = ModeLongBreak
	}
	return Transition{Next: next, AutoStart: settings.AutoStartBreaks, Completed: completed}
}

// StrictLocked reports whether an active Focus countdown must not be paused.
func StrictLocked(mode Mode, running, strictFocusMode bool) bool {
	return mode == ModeFocus && running && strictFocusMode
}

// SessionRing returns the position within the long-break cycle for display.
func SessionRing(completed, sessionsUntilLongBreak int) (done, total int) {
	if sessionsUntilLongBreak <= 0 {
		return 0, 0
	}
	return completed % sessionsUntilLongBreak, sessionsUntilLongBreak
}

// IntervalExpired is emitted once per interval that counts down to zero.
type IntervalExpired struct {
	Previous  Mode
	Next      Mode
	PlaySound bool
	AutoStart bool
	Completed int
	StartedAt time.Time
	ExpiredAt time.Time
}
