// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gen2brain/beeep"
	"github.com/xvierd/striktflow/internal/config"
	"github.com/xvierd/striktflow/internal/domain"
	"github.com/xvierd/striktflow/internal/ports"
)

// Notifier handles desktop notifications. It observes the session
// controller and announces every finished interval.
type Notifier struct {
	cfg    *config.NotificationConfig
	logger *log.Logger
	notify func(title, message string) error
}

var (
	_ ports.Notifier        = (*Notifier)(nil)
	_ ports.SessionObserver = (*Notifier)(nil)
)

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig, logger *log.Logger) *Notifier {
	return &Notifier{cfg: cfg, logger: logger, notify: func(title, message string) error {
		return beeep.Notify(title, message, "")
	}}
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}
	return n.notify(title, message)
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}

// OnTick implements ports.SessionObserver.
func (n *Notifier) OnTick(domain.SessionState) {}

// OnIntervalExpired implements ports.SessionObserver.
func (n *Notifier) OnIntervalExpired(ev domain.IntervalExpired) {
	title, message := Message(ev)
	if err := n.Notify(title, message); err != nil && n.logger != nil {
		n.logger.Debug("notification failed", "err", err)
	}
}

// Message returns the notification text for a finished interval.
func Message(ev domain.IntervalExpired) (title, message string) {
	if ev.Previous == domain.ModeFocus {
		title = "Focus complete"
		message = fmt.Sprintf("Session %d done. Time for a %s.", ev.Completed, strings.ToLower(ev.Next.Label()))
	} else {
		title = "Break over"
		message = "Ready to focus?"
	}
	if ev.AutoStart {
		message += " Starting automatically."
	}
	return title, message
}
