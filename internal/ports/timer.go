package ports

import (
	"github.com/xvierd/striktflow/internal/domain"
)

// TickSource is a periodic callback source with a cancellation handle.
// This is a driven port (implemented by adapters).
type TickSource interface {
	// Start begins invoking fn once per period. Any previously started
	// loop is cancelled first, so at most one loop is ever active.
	Start(fn func())

	// Stop cancels the active loop, if any. It is safe to call from
	// inside fn.
	Stop()
}

// AudioCue plays the short sounds that accompany timer events.
// This is a driven port (implemented by adapters).
type AudioCue interface {
	// PlayTick plays the short click used when a countdown starts.
	PlayTick()

	// PlayChime plays the chord used when an interval expires.
	PlayChime()
}

// SessionObserver receives controller events.
// This is a driving port (called by the application layer).
type SessionObserver interface {
	// OnTick is called after every processed tick with the seconds left.
	OnTick(state domain.SessionState)

	// OnIntervalExpired is called once per interval that reaches zero.
	OnIntervalExpired(event domain.IntervalExpired)
}

// ObserverFuncs adapts plain functions to SessionObserver. Nil fields are
// skipped.
type ObserverFuncs struct {
	Tick    func(domain.SessionState)
	Expired func(domain.IntervalExpired)
}

// OnTick implements SessionObserver.
func (o ObserverFuncs) OnTick(state domain.SessionState) {
	if o.Tick != nil {
		o.Tick(state)
	}
}

// OnIntervalExpired implements SessionObserver.
func (o ObserverFuncs) OnIntervalExpired(event domain.IntervalExpired) {
	if o.Expired != nil {
		o.Expired(event)
	}
}

// Notifier shows desktop notifications.
// This is a driven port (implemented by adapters).
type Notifier interface {
	Notify(title, message string) error
}
