package domain

import (
	"errors"
	"math"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.FocusDuration != 25 || s.ShortBreakDuration != 5 || s.LongBreakDuration != 15 || s.SessionsUntilLongBreak != 4 {
		t.Errorf("unexpected default durations: %+v", s)
	}
	if !s.SoundEnabled || s.AutoStartBreaks || s.AutoStartFocus || s.StrictFocusMode {
		t.Errorf("unexpected default flags: %+v", s)
	}
	if s.ThemeID != "graphite-focus" {
		t.Errorf("ThemeID = %q, want graphite-focus", s.ThemeID)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestTimerSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TimerSettings)
	}{
		{"zero focus", func(s *TimerSettings) { s.FocusDuration = 0 }},
		{"negative short", func(s *TimerSettings) { s.ShortBreakDuration = -5 }},
		{"zero long", func(s *TimerSettings) { s.LongBreakDuration = 0 }},
		{"zero cycle", func(s *TimerSettings) { s.SessionsUntilLongBreak = 0 }},
		{"unknown theme", func(s *TimerSettings) { s.ThemeID = "neon" }},
		{"focus over a day", func(s *TimerSettings) { s.FocusDuration = MaxDurationMinutes + 1 }},
		{"long break overflows seconds", func(s *TimerSettings) { s.LongBreakDuration = math.MaxInt64 / 30 }},
		{"cycle too long", func(s *TimerSettings) { s.SessionsUntilLongBreak = MaxSessionsUntilLongBreak + 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			if err := s.Validate(); !errors.Is(err, ErrInvalidSettingValue) {
				t.Errorf("Validate() error = %v, want ErrInvalidSettingValue", err)
			}
		})
	}
}

func TestTimerSettings_ValidateAcceptsBounds(t *testing.T) {
	s := DefaultSettings()
	s.FocusDuration = MaxDurationMinutes
	s.ShortBreakDuration = 1
	s.SessionsUntilLongBreak = MaxSessionsUntilLongBreak
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
	if got := s.DurationSeconds(ModeFocus); got != MaxDurationMinutes*60 {
		t.Errorf("DurationSeconds() = %d, want %d", got, MaxDurationMinutes*60)
	}
}

func TestSettingsPatch_Apply(t *testing.T) {
	strict := true
	patch := SettingsPatch{FocusDuration: intPtr(50), StrictFocusMode: &strict}

	got := patch.Apply(DefaultSettings())
	if got.FocusDuration != 50 {
		t.Errorf("FocusDuration = %d, want 50", got.FocusDuration)
	}
	if !got.StrictFocusMode {
		t.Error("StrictFocusMode should be applied")
	}
	if got.ShortBreakDuration != 5 {
		t.Errorf("untouched fields must keep their value, ShortBreakDuration = %d", got.ShortBreakDuration)
	}
}

func TestSettingsPatch_SetsDurationFor(t *testing.T) {
	patch := SettingsPatch{LongBreakDuration: intPtr(20)}
	if patch.SetsDurationFor(ModeFocus) {
		t.Error("patch does not touch focus")
	}
	if !patch.SetsDurationFor(ModeLongBreak) {
		t.Error("patch sets the long break")
	}
	if (SettingsPatch{}).IsEmpty() != true {
		t.Error("zero patch should be empty")
	}
}

func TestParseMode(t *testing.T) {
	for _, in := range []string{"focus", "short", "long_break"} {
		if _, err := ParseMode(in); err != nil {
			t.Errorf("ParseMode(%q) error = %v", in, err)
		}
	}
	if _, err := ParseMode("nap"); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("ParseMode(nap) error = %v, want ErrInvalidMode", err)
	}
}

func TestResolveTheme(t *testing.T) {
	if got := ResolveTheme("carbon-zen"); got.Name != "Carbon Zen" {
		t.Errorf("ResolveTheme(carbon-zen) = %q", got.Name)
	}
	if got := ResolveTheme("missing"); got.ID != Themes[0].ID {
		t.Errorf("unknown theme should fall back to %q, got %q", Themes[0].ID, got.ID)
	}
}
