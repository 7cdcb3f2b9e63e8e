package tui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/striktflow/internal/domain"
	"github.com/xvierd/striktflow/internal/ports"
)

// Timer runs the interactive timer as a Bubbletea program. Controller
// events reach the program through Send.
type Timer struct {
	ctrl    Controller
	focused FocusFunc
	inline  bool
	options []tea.ProgramOption

	mu      sync.RWMutex
	program *tea.Program
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewTimer creates a TUI timer adapter. Inline timers render under the
// prompt instead of using the alternate screen.
func NewTimer(ctrl Controller, focused FocusFunc, inline bool, options ...tea.ProgramOption) *Timer {
	t := &Timer{
		ctrl:    ctrl,
		focused: focused,
		inline:  inline,
		options: options,
	}
	ctrl.AddObserver(ports.ObserverFuncs{
		Tick: func(state domain.SessionState) {
			t.send(stateMsg{state: state})
		},
		Expired: func(ev domain.IntervalExpired) {
			t.send(expiredMsg{event: ev})
		},
	})
	return t
}

// Run starts the timer interface and blocks until the user quits or ctx
// is cancelled.
func (t *Timer) Run(ctx context.Context) error {
	var model tea.Model
	opts := append([]tea.ProgramOption(nil), t.options...)
	if t.inline {
		model = NewInlineModel(t.ctrl, t.focused)
	} else {
		model = NewModel(t.ctrl, t.focused)
		opts = append(opts, tea.WithAltScreen())
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(model, opts...)
	t.mu.Lock()
	t.program = program
	t.cancel = cancel
	t.mu.Unlock()

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		<-ctx.Done()
		program.Quit()
	}()

	_, err := program.Run()

	t.mu.Lock()
	t.program = nil
	t.cancel = nil
	t.mu.Unlock()

	cancel()
	t.wg.Wait()

	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// Stop quits a running timer interface.
func (t *Timer) Stop() {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.cancel != nil {
		t.cancel()
	}
}

func (t *Timer) send(msg tea.Msg) {
	t.mu.RLock()
	program := t.program
	t.mu.RUnlock()
	if program != nil {
		program.Send(msg)
	}
}
