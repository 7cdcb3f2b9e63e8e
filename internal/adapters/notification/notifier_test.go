package notification

import (
	"testing"

	"github.com/xvierd/striktflow/internal/config"
	"github.com/xvierd/striktflow/internal/domain"
)

func TestNotifier_Disabled(t *testing.T) {
	n := New(&config.NotificationConfig{Enabled: false}, nil)
	called := false
	n.notify = func(string, string) error { called = true; return nil }

	n.OnIntervalExpired(domain.IntervalExpired{Previous: domain.ModeFocus, Next: domain.ModeShortBreak})
	if called {
		t.Error("disabled notifier should not notify")
	}
	if New(nil, nil).IsEnabled() {
		t.Error("nil config should be disabled")
	}
}

func TestNotifier_OnIntervalExpired(t *testing.T) {
	n := New(&config.NotificationConfig{Enabled: true}, nil)
	var gotTitle, gotMessage string
	n.notify = func(title, message string) error {
		gotTitle, gotMessage = title, message
		return nil
	}

	n.OnIntervalExpired(domain.IntervalExpired{Previous: domain.ModeFocus, Next: domain.ModeLongBreak, Completed: 4})
	if gotTitle != "Focus complete" {
		t.Errorf("title = %q", gotTitle)
	}
	if gotMessage != "Session 4 done. Time for a long break." {
		t.Errorf("message = %q", gotMessage)
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name        string
		ev          domain.IntervalExpired
		wantTitle   string
		wantMessage string
	}{
		{
			name:        "focus to short break",
			ev:          domain.IntervalExpired{Previous: domain.ModeFocus, Next: domain.ModeShortBreak, Completed: 1},
			wantTitle:   "Focus complete",
			wantMessage: "Session 1 done. Time for a short break.",
		},
		{
			name:        "break with auto start",
			ev:          domain.IntervalExpired{Previous: domain.ModeShortBreak, Next: domain.ModeFocus, AutoStart: true},
			wantTitle:   "Break over",
			wantMessage: "Ready to focus? Starting automatically.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, message := Message(tt.ev)
			if title != tt.wantTitle || message != tt.wantMessage {
				t.Errorf("Message() = %q, %q; want %q, %q", title, message, tt.wantTitle, tt.wantMessage)
			}
		})
	}
}
