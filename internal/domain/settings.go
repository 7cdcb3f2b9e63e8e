package domain

import "fmt"

// DefaultThemeID is used when a stored settings blob carries no theme.
const DefaultThemeID = "graphite-focus"

// TimerSettings holds the user-editable timer configuration.
// Durations are whole minutes.
type TimerSettings struct {
	FocusDuration          int    `json:"focusDuration"`
	ShortBreakDuration     int    `json:"shortBreakDuration"`
	LongBreakDuration      int    `json:"longBreakDuration"`
	SessionsUntilLongBreak int    `json:"sessionsUntilLongBreak"`
	SoundEnabled           bool   `json:"soundEnabled"`
	AutoStartBreaks        bool   `json:"autoStartBreaks"`
	AutoStartFocus         bool   `json:"autoStartFocus"`
	StrictFocusMode        bool   `json:"strictFocusMode"`
	ThemeID                string `json:"themeId"`
}

// DefaultSettings returns the first-launch settings.
func DefaultSettings() TimerSettings {
	return TimerSettings{
		FocusDuration:          25,
		ShortBreakDuration:     5,
		LongBreakDuration:      15,
		SessionsUntilLongBreak: 4,
		SoundEnabled:           true,
		ThemeID:                DefaultThemeID,
	}
}

// Upper bounds for the numeric settings. An interval is at most one day.
const (
	MaxDurationMinutes        = 24 * 60
	MaxSessionsUntilLongBreak = 100
)

// Validate checks the numeric ranges and the theme reference.
func (s TimerSettings) Validate() error {
	checks := []struct {
		name  string
		value int
		max   int
	}{
		{"focusDuration", s.FocusDuration, MaxDurationMinutes},
		{"shortBreakDuration", s.ShortBreakDuration, MaxDurationMinutes},
		{"longBreakDuration", s.LongBreakDuration, MaxDurationMinutes},
		{"sessionsUntilLongBreak", s.SessionsUntilLongBreak, MaxSessionsUntilLongBreak},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidSettingValue, c.name, c.value)
		}
		if c.value > c.max {
			return fmt.Errorf("%w: %s must be at most %d, got %d", ErrInvalidSettingValue, c.name, c.max, c.value)
		}
	}
	if _, ok := LookupTheme(s.ThemeID); !ok {
		return fmt.Errorf("%w: unknown theme %q", ErrInvalidSettingValue, s.ThemeID)
	}
	return nil
}

// DurationMinutes returns the configured length of the given mode.
func (s TimerSettings) DurationMinutes(m Mode) int {
	switch m {
	case ModeShortBreak:
		return s.ShortBreakDuration
	case ModeLongBreak:
		return s.LongBreakDuration
	default:
		return s.FocusDuration
	}
}

// DurationSeconds returns the full countdown for the given mode.
func (s TimerSettings) DurationSeconds(m Mode) int {
	return s.DurationMinutes(m) * 60
}

// SettingsPatch is a partial settings update. Nil fields are left unchanged.
type SettingsPatch struct {
	FocusDuration          *int    `json:"focusDuration,omitempty"`
	ShortBreakDuration     *int    `json:"shortBreakDuration,omitempty"`
	LongBreakDuration      *int    `json:"longBreakDuration,omitempty"`
	SessionsUntilLongBreak *int    `json:"sessionsUntilLongBreak,omitempty"`
	SoundEnabled           *bool   `json:"soundEnabled,omitempty"`
	AutoStartBreaks        *bool   `json:"autoStartBreaks,omitempty"`
	AutoStartFocus         *bool   `json:"autoStartFocus,omitempty"`
	StrictFocusMode        *bool   `json:"strictFocusMode,omitempty"`
	ThemeID                *string `json:"themeId,omitempty"`
}

// Apply merges the patch over s and returns the result.
func (p SettingsPatch) Apply(s TimerSettings) TimerSettings {
	if p.FocusDuration != nil {
		s.FocusDuration = *p.FocusDuration
	}
	if p.ShortBreakDuration != nil {
		s.ShortBreakDuration = *p.ShortBreakDuration
	}
	if p.LongBreakDuration != nil {
		s.LongBreakDuration = *p.LongBreakDuration
	}
	if p.SessionsUntilLongBreak != nil {
		s.SessionsUntilLongBreak = *p.SessionsUntilLongBreak
	}
	if p.SoundEnabled != nil {
		s.SoundEnabled = *p.SoundEnabled
	}
	if p.AutoStartBreaks != nil {
		s.AutoStartBreaks = *p.AutoStartBreaks
	}
	if p.AutoStartFocus != nil {
		s.AutoStartFocus = *p.AutoStartFocus
	}
	if p.StrictFocusMode != nil {
		s.StrictFocusMode = *p.StrictFocusMode
	}
	if p.ThemeID != nil {
		s.ThemeID = *p.ThemeID
	}
	return s
}

// SetsDurationFor reports whether the patch carries a duration for mode m.
func (p SettingsPatch) SetsDurationFor(m Mode) bool {
	switch m {
	case ModeFocus:
		return p.FocusDuration != nil
	case ModeShortBreak:
		return p.ShortBreakDuration != nil
	case ModeLongBreak:
		return p.LongBreakDuration != nil
	}
	return false
}

// IsEmpty returns true if the patch changes nothing.
func (p SettingsPatch) IsEmpty() bool {
	return p == SettingsPatch{}
}
