package services

import (
	"context"
	"time"

	"github.com/xvierd/striktflow/internal/domain"
	"github.com/xvierd/striktflow/internal/ports"
)

// StateService implements the MCPStateProvider interface by composing the
// other services. The controller is optional; without one, timer commands
// report that no timer is running in this process.
type StateService struct {
	settings   *SettingsService
	tasks      *TaskService
	deadlines  *DeadlineService
	history    *HistoryService
	controller *SessionController
	now        func() time.Time
}

// NewStateService creates a new state service.
func NewStateService(settings *SettingsService, tasks *TaskService, deadlines *DeadlineService, history *HistoryService) *StateService {
	return &StateService{
		settings:  settings,
		tasks:     tasks,
		deadlines: deadlines,
		history:   history,
		now:       time.Now,
	}
}

// SetController attaches the in-process timer.
func (s *StateService) SetController(controller *SessionController) {
	s.controller = controller
}

// GetCurrentState implements ports.MCPStateProvider.
func (s *StateService) GetCurrentState(ctx context.Context) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{
		Tasks:       s.tasks.ListTasks(),
		FocusedTask: s.tasks.FocusedTask(),
		Deadlines:   s.deadlines.ListDeadlines(),
	}
	if s.controller != nil {
		state := s.controller.State()
		snap.Session = &state
		snap.Settings = s.controller.Settings()
	} else {
		snap.Settings = s.settings.Load(ctx)
	}
	if s.history != nil {
		snap.TodayStats = s.history.GetDailyStats(ctx, s.now())
	}
	return snap, nil
}

// ListTasks implements ports.MCPStateProvider.
func (s *StateService) ListTasks(_ context.Context) ([]domain.Task, error) {
	return s.tasks.ListTasks(), nil
}

// CreateTask implements ports.MCPStateProvider.
func (s *StateService) CreateTask(ctx context.Context, text string) (*domain.Task, error) {
	return s.tasks.AddTask(ctx, text)
}

// ToggleTask implements ports.MCPStateProvider.
func (s *StateService) ToggleTask(ctx context.Context, query string) (*domain.Task, error) {
	task, err := s.tasks.ResolveTask(query)
	if err != nil {
		return nil, err
	}
	return s.tasks.ToggleTask(ctx, task.ID)
}

// FocusTask implements ports.MCPStateProvider. A nil query clears focus.
func (s *StateService) FocusTask(ctx context.Context, query *string) (*domain.Task, error) {
	if query == nil {
		return nil, s.tasks.SetFocus(ctx, nil)
	}
	task, err := s.tasks.ResolveTask(*query)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.SetFocus(ctx, &task.ID); err != nil {
		return nil, err
	}
	return task, nil
}

// ListDeadlines implements ports.MCPStateProvider.
func (s *StateService) ListDeadlines(_ context.Context) ([]domain.Deadline, error) {
	upcoming := s.deadlines.Upcoming(s.now())
	result := make([]domain.Deadline, len(upcoming))
	for i, u := range upcoming {
		result[i] = u.Deadline
	}
	return result, nil
}

// AddDeadline implements ports.MCPStateProvider.
func (s *StateService) AddDeadline(ctx context.Context, name, date string) (*domain.Deadline, error) {
	return s.deadlines.AddDeadline(ctx, name, date)
}

// DeleteDeadline implements ports.MCPStateProvider.
func (s *StateService) DeleteDeadline(ctx context.Context, query string) error {
	d, err := s.deadlines.ResolveDeadline(query)
	if err != nil {
		return err
	}
	return s.deadlines.DeleteDeadline(ctx, d.ID)
}

// UpdateSettings implements ports.MCPStateProvider.
func (s *StateService) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (domain.TimerSettings, error) {
	if s.controller != nil {
		if err := s.controller.ApplySettingsUpdate(ctx, patch); err != nil {
			return s.controller.Settings(), err
		}
		return s.controller.Settings(), nil
	}
	return s.settings.Update(ctx, patch)
}

// StartTimer implements ports.MCPStateProvider.
func (s *StateService) StartTimer(_ context.Context) (domain.SessionState, error) {
	if s.controller == nil {
		return domain.SessionState{}, ErrNoTimer
	}
	if !s.controller.State().IsRunning {
		s.controller.ToggleRunning()
	}
	return s.controller.State(), nil
}

// PauseTimer implements ports.MCPStateProvider. Strict focus refuses.
func (s *StateService) PauseTimer(_ context.Context) (domain.SessionState, error) {
	if s.controller == nil {
		return domain.SessionState{}, ErrNoTimer
	}
	if err := s.controller.Guard(); err != nil {
		return s.controller.State(), err
	}
	if s.controller.State().IsRunning {
		s.controller.ToggleRunning()
	}
	return s.controller.State(), nil
}

// ResetTimer implements ports.MCPStateProvider. Strict focus refuses.
func (s *StateService) ResetTimer(_ context.Context) (domain.SessionState, error) {
	if s.controller == nil {
		return domain.SessionState{}, ErrNoTimer
	}
	if err := s.controller.Guard(); err != nil {
		return s.controller.State(), err
	}
	s.controller.ResetCurrentInterval()
	return s.controller.State(), nil
}

// SwitchMode implements ports.MCPStateProvider. Strict focus refuses.
func (s *StateService) SwitchMode(_ context.Context, mode domain.Mode) (domain.SessionState, error) {
	if s.controller == nil {
		return domain.SessionState{}, ErrNoTimer
	}
	if err := s.controller.Guard(); err != nil {
		return s.controller.State(), err
	}
	s.controller.SwitchMode(mode)
	return s.controller.State(), nil
}

// GetRecentSessions implements ports.MCPStateProvider.
func (s *StateService) GetRecentSessions(ctx context.Context, limit int) ([]domain.SessionRecord, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.Recent(ctx, limit), nil
}

// Ensure StateService implements MCPStateProvider.
var _ ports.MCPStateProvider = (*StateService)(nil)
