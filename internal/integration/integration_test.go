package integration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/xvierd/striktflow/internal/adapters/storage"
	"github.com/xvierd/striktflow/internal/domain"
	"github.com/xvierd/striktflow/internal/services"
)

// app wires the services the way the CLI does, on one store.
type app struct {
	store     *storage.Degrading
	settings  *services.SettingsService
	tasks     *services.TaskService
	deadlines *services.DeadlineService
	history   *services.HistoryService
	state     *services.StateService
}

// openApp opens the database at dbPath and loads every service from it.
func openApp(t *testing.T, dbPath string) *app {
	t.Helper()

	primary, err := storage.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	store := storage.NewDegrading(primary, nil)

	ctx := context.Background()
	a := &app{
		store:     store,
		settings:  services.NewSettingsService(store, nil),
		tasks:     services.NewTaskService(store, nil),
		deadlines: services.NewDeadlineService(store, nil),
		history:   services.NewHistoryService(store, nil, "", nil),
	}
	a.tasks.Load(ctx)
	a.deadlines.Load(ctx)
	a.state = services.NewStateService(a.settings, a.tasks, a.deadlines, a.history)
	return a
}

func (a *app) close(t *testing.T) {
	t.Helper()
	if err := a.store.Close(); err != nil {
		t.Errorf("failed to close storage: %v", err)
	}
}

// newController builds a controller driven by explicit Tick calls.
func (a *app) newController(ctx context.Context) *services.SessionController {
	c := services.NewSessionController(a.settings.Load(ctx), nil, nil, a.settings, nil)
	c.AddObserver(a.history)
	a.state.SetController(c)
	return c
}

// TestFullFocusCycle runs a focus interval and a break to completion and
// checks that the history and stats survive a restart.
func TestFullFocusCycle(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "striktflow.db")
	ctx := context.Background()

	a := openApp(t, dbPath)
	one, off := 1, false
	if _, err := a.settings.Update(ctx, domain.SettingsPatch{
		FocusDuration:      &one,
		ShortBreakDuration: &one,
		SoundEnabled:       &off,
	}); err != nil {
		t.Fatalf("failed to update settings: %v", err)
	}

	c := a.newController(ctx)
	c.ToggleRunning()
	for i := 0; i < 60; i++ {
		c.Tick()
	}

	s := c.State()
	if s.Mode != domain.ModeShortBreak {
		t.Fatalf("Mode = %v, want short_break", s.Mode)
	}
	if s.CompletedFocusSessions != 1 {
		t.Errorf("CompletedFocusSessions = %d, want 1", s.CompletedFocusSessions)
	}
	if s.IsRunning {
		t.Error("break should wait for the user without auto-start")
	}

	c.ToggleRunning()
	for i := 0; i < 60; i++ {
		c.Tick()
	}
	if got := c.State().Mode; got != domain.ModeFocus {
		t.Fatalf("Mode = %v, want focus", got)
	}
	c.Close()
	a.close(t)

	reopened := openApp(t, dbPath)
	defer reopened.close(t)

	records := reopened.history.Recent(ctx, 0)
	if len(records) != 2 {
		t.Fatalf("history entries = %d, want 2", len(records))
	}
	if records[0].Mode != domain.ModeShortBreak || records[1].Mode != domain.ModeFocus {
		t.Errorf("history order = %v, %v; want newest first", records[0].Mode, records[1].Mode)
	}

	stats := reopened.history.GetDailyStats(ctx, time.Now())
	if stats.FocusSessions != 1 || stats.BreaksTaken != 1 {
		t.Errorf("stats = %+v, want 1 focus session and 1 break", stats)
	}

	if got := reopened.settings.Load(ctx).FocusDuration; got != 1 {
		t.Errorf("FocusDuration after restart = %d, want 1", got)
	}
}

// TestStrictFocusThroughState checks that the state provider refuses to
// interrupt a running strict focus interval.
func TestStrictFocusThroughState(t *testing.T) {
	ctx := context.Background()
	a := openApp(t, filepath.Join(t.TempDir(), "striktflow.db"))
	defer a.close(t)

	on := true
	if _, err := a.state.UpdateSettings(ctx, domain.SettingsPatch{StrictFocusMode: &on}); err != nil {
		t.Fatalf("failed to enable strict focus: %v", err)
	}
	c := a.newController(ctx)
	defer c.Close()

	if _, err := a.state.StartTimer(ctx); err != nil {
		t.Fatalf("StartTimer() error = %v", err)
	}
	if _, err := a.state.PauseTimer(ctx); err == nil {
		t.Error("PauseTimer() should be refused during strict focus")
	}
	if _, err := a.state.SwitchMode(ctx, domain.ModeLongBreak); err == nil {
		t.Error("SwitchMode() should be refused during strict focus")
	}
	if !c.State().IsRunning {
		t.Error("timer should still be running")
	}
}

// TestTasksAndDeadlinesPersist checks the planner data round trips through
// the database file.
func TestTasksAndDeadlinesPersist(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "striktflow.db")
	ctx := context.Background()

	a := openApp(t, dbPath)
	task, err := a.state.CreateTask(ctx, "Draft outline")
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if _, err := a.state.CreateTask(ctx, "Email editor"); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	query := task.ID
	if _, err := a.state.FocusTask(ctx, &query); err != nil {
		t.Fatalf("FocusTask() error = %v", err)
	}
	if _, err := a.state.ToggleTask(ctx, "Email editor"); err != nil {
		t.Fatalf("ToggleTask() error = %v", err)
	}
	if _, err := a.state.AddDeadline(ctx, "Manuscript", "2032-03-01"); err != nil {
		t.Fatalf("AddDeadline() error = %v", err)
	}
	a.close(t)

	reopened := openApp(t, dbPath)
	defer reopened.close(t)

	snap, err := reopened.state.GetCurrentState(ctx)
	if err != nil {
		t.Fatalf("GetCurrentState() error = %v", err)
	}
	if len(snap.Tasks) != 2 {
		t.Fatalf("tasks = %d, want 2", len(snap.Tasks))
	}
	if !snap.Tasks[1].Completed {
		t.Error("toggled task should stay completed")
	}
	if snap.FocusedTask == nil || snap.FocusedTask.ID != task.ID {
		t.Errorf("FocusedTask = %+v, want %s", snap.FocusedTask, task.ID)
	}
	if len(snap.Deadlines) != 1 || snap.Deadlines[0].Name != "Manuscript" {
		t.Errorf("Deadlines = %+v", snap.Deadlines)
	}
}
