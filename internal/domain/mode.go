package domain

import "fmt"

// Mode is one of the three intervals of the focus cycle.
type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
)

// Modes lists the modes in the order they are presented.
var Modes = []Mode{ModeFocus, ModeShortBreak, ModeLongBreak}

// ParseMode accepts the canonical names plus a few short aliases.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "focus", "work", "f":
		return ModeFocus, nil
	case "short_break", "short", "s":
		return ModeShortBreak, nil
	case "long_break", "long", "l":
		return ModeLongBreak, nil
	}
	return "", fmt.Errorf("%w %q: must be one of focus, short_break, long_break", ErrInvalidMode, s)
}

// Label returns a human-readable label.
func (m Mode) Label() string {
	switch m {
	case ModeFocus:
		return "Focus"
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}

// IsBreak returns true for either break mode.
func (m Mode) IsBreak() bool {
	return m == ModeShortBreak || m == ModeLongBreak
}
