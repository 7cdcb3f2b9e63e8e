package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/xvierd/striktflow/internal/domain"
	"github.com/xvierd/striktflow/internal/ports"
)

// SettingsSaver persists settings after an accepted update.
type SettingsSaver interface {
	Save(ctx context.Context, settings domain.TimerSettings)
}

// SessionController owns the timer settings and the live session state.
// All commands and ticks are serialized by one mutex; observers and audio
// cues run after the mutex is released.
type SessionController struct {
	mu       sync.Mutex
	settings domain.TimerSettings
	state    domain.SessionState

	// runGen identifies the tick source started last. Callbacks carrying
	// an older generation are dropped.
	runGen        uint64
	intervalStart time.Time

	ticks     ports.TickSource
	cues      ports.AudioCue
	saver     SettingsSaver
	observers []ports.SessionObserver
	logger    *log.Logger
	now       func() time.Time
}

// NewSessionController creates an idle controller at the start of a Focus
// interval. cues and saver may be nil.
func NewSessionController(settings domain.TimerSettings, ticks ports.TickSource, cues ports.AudioCue, saver SettingsSaver, logger *log.Logger) *SessionController {
	return &SessionController{
		settings: settings,
		state:    domain.NewSessionState(settings),
		ticks:    ticks,
		cues:     cues,
		saver:    saver,
		logger:   orDiscard(logger),
		now:      time.Now,
	}
}

// SetClock replaces the wall clock used to stamp intervals.
func (c *SessionController) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// AddObserver registers an observer for tick and expiry events.
func (c *SessionController) AddObserver(o ports.SessionObserver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

// State returns a copy of the current session state.
func (c *SessionController) State() domain.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Settings returns a copy of the current settings.
func (c *SessionController) Settings() domain.TimerSettings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// StrictLocked reports whether interactive surfaces must refuse to pause.
func (c *SessionController) StrictLocked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.StrictLocked(c.state.Mode, c.state.IsRunning, c.settings.StrictFocusMode)
}

// Guard returns ErrStrictFocusLocked while strict focus forbids user
// interruptions.
func (c *SessionController) Guard() error {
	if c.StrictLocked() {
		return domain.ErrStrictFocusLocked
	}
	return nil
}

// SessionRing returns the position in the long-break cycle.
func (c *SessionController) SessionRing() (done, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.SessionRing(c.state.CompletedFocusSessions, c.settings.SessionsUntilLongBreak)
}

// SwitchMode moves to mode at its full duration, paused.
func (c *SessionController) SwitchMode(mode domain.Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
	c.state.Mode = mode
	c.state.TimeLeftSeconds = c.settings.DurationSeconds(mode)
	c.intervalStart = time.Time{}
	c.logger.Debug("mode switched", "mode", mode)
}

// ToggleRunning starts or pauses the countdown and reports whether it is
// now running.
func (c *SessionController) ToggleRunning() bool {
	c.mu.Lock()
	running := !c.state.IsRunning
	playTick := false
	if running {
		if c.intervalStart.IsZero() {
			c.intervalStart = c.now()
		}
		c.startLocked()
		playTick = c.settings.SoundEnabled
	} else {
		c.stopLocked()
	}
	c.mu.Unlock()

	c.logger.Debug("timer toggled", "running", running)
	if playTick && c.cues != nil {
		c.cues.PlayTick()
	}
	return running
}

// ResetCurrentInterval pauses and restores the full duration of the
// current mode. The completed counter is kept.
func (c *SessionController) ResetCurrentInterval() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
	c.state.TimeLeftSeconds = c.settings.DurationSeconds(c.state.Mode)
	c.intervalStart = time.Time{}
}

// ApplySettingsUpdate validates and applies patch. An invalid patch is
// rejected as a whole and the prior settings are kept. While idle, a patch
// that sets the active mode's duration restarts the countdown from it.
func (c *SessionController) ApplySettingsUpdate(ctx context.Context, patch domain.SettingsPatch) error {
	c.mu.Lock()
	merged := patch.Apply(c.settings)
	if err := merged.Validate(); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("failed to update settings: %w", err)
	}
	c.settings = merged
	if !c.state.IsRunning && patch.SetsDurationFor(c.state.Mode) {
		c.state.TimeLeftSeconds = merged.DurationSeconds(c.state.Mode)
		c.intervalStart = time.Time{}
	}
	c.mu.Unlock()

	if c.saver != nil {
		c.saver.Save(ctx, merged)
	}
	return nil
}

// Tick advances the countdown by one second.
func (c *SessionController) Tick() {
	c.mu.Lock()
	c.tickLocked()
}

// Close stops the tick source.
func (c *SessionController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// tickFrom handles a callback from the tick source started with gen.
func (c *SessionController) tickFrom(gen uint64) {
	c.mu.Lock()
	if gen != c.runGen {
		c.mu.Unlock()
		return
	}
	c.tickLocked()
}

// tickLocked runs one tick with c.mu held and releases it before
// notifying observers.
func (c *SessionController) tickLocked() {
	if !c.state.IsRunning {
		c.mu.Unlock()
		return
	}

	if c.state.TimeLeftSeconds > 0 {
		c.state.TimeLeftSeconds--
	}
	ticked := c.state

	var expired *domain.IntervalExpired
	if c.state.TimeLeftSeconds == 0 {
		ev := c.expireLocked()
		expired = &ev
	}
	observers := append([]ports.SessionObserver(nil), c.observers...)
	c.mu.Unlock()

	for _, o := range observers {
		o.OnTick(ticked)
	}
	if expired == nil {
		return
	}

	c.logger.Info("interval finished", "mode", expired.Previous, "next", expired.Next, "completed", expired.Completed)
	if expired.PlaySound && c.cues != nil {
		c.cues.PlayChime()
	}
	for _, o := range observers {
		o.OnIntervalExpired(*expired)
	}
}

// expireLocked performs the transition out of an interval that reached 0.
func (c *SessionController) expireLocked() domain.IntervalExpired {
	now := c.now()
	started := c.intervalStart
	if started.IsZero() {
		started = now.Add(-time.Duration(c.settings.DurationSeconds(c.state.Mode)) * time.Second)
	}

	tr := domain.NextTransition(c.state.Mode, c.state.CompletedFocusSessions, c.settings)
	ev := domain.IntervalExpired{
		Previous:  c.state.Mode,
		Next:      tr.Next,
		PlaySound: c.settings.SoundEnabled,
		AutoStart: tr.AutoStart,
		Completed: tr.Completed,
		StartedAt: started,
		ExpiredAt: now,
	}

	c.stopLocked()
	c.state = domain.SessionState{
		Mode:                   tr.Next,
		TimeLeftSeconds:        c.settings.DurationSeconds(tr.Next),
		CompletedFocusSessions: tr.Completed,
	}
	c.intervalStart = time.Time{}
	if tr.AutoStart {
		c.intervalStart = now
		c.startLocked()
	}
	return ev
}

// startLocked marks the session running and starts a fresh tick source.
func (c *SessionController) startLocked() {
	c.state.IsRunning = true
	c.runGen++
	gen := c.runGen
	if c.ticks != nil {
		c.ticks.Start(func() { c.tickFrom(gen) })
	}
}

// stopLocked marks the session paused and cancels the tick source.
func (c *SessionController) stopLocked() {
	c.state.IsRunning = false
	c.runGen++
	if c.ticks != nil {
		c.ticks.Stop()
	}
}
