package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/striktflow/internal/domain"
)

func newTestStateService(t *testing.T) *StateService {
	t.Helper()
	ctx := context.Background()
	store := setupTestStorage(t)

	tasks := NewTaskService(store, nil)
	tasks.Load(ctx)
	deadlines := NewDeadlineService(store, nil)
	deadlines.Load(ctx)

	return NewStateService(NewSettingsService(store, nil), tasks, deadlines, NewHistoryService(store, nil, ".", nil))
}

func TestStateService_WithoutController(t *testing.T) {
	ctx := context.Background()
	svc := newTestStateService(t)

	snap, err := svc.GetCurrentState(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap.Session)
	assert.Equal(t, domain.DefaultSettings(), snap.Settings)

	_, err = svc.StartTimer(ctx)
	assert.ErrorIs(t, err, ErrNoTimer)

	settings, err := svc.UpdateSettings(ctx, domain.SettingsPatch{FocusDuration: intPtr(45)})
	require.NoError(t, err)
	assert.Equal(t, 45, settings.FocusDuration)
}

func TestStateService_TasksAndFocus(t *testing.T) {
	ctx := context.Background()
	svc := newTestStateService(t)

	task, err := svc.CreateTask(ctx, "Draft outline")
	require.NoError(t, err)

	focused, err := svc.FocusTask(ctx, strPtr("draft"))
	require.NoError(t, err)
	assert.Equal(t, task.ID, focused.ID)

	toggled, err := svc.ToggleTask(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	snap, _ := svc.GetCurrentState(ctx)
	require.NotNil(t, snap.FocusedTask)
	assert.Equal(t, task.ID, snap.FocusedTask.ID)

	_, err = svc.FocusTask(ctx, nil)
	require.NoError(t, err)
	snap, _ = svc.GetCurrentState(ctx)
	assert.Nil(t, snap.FocusedTask)
}

func TestStateService_Deadlines(t *testing.T) {
	ctx := context.Background()
	svc := newTestStateService(t)

	_, err := svc.AddDeadline(ctx, "Late", "2027-01-01")
	require.NoError(t, err)
	_, err = svc.AddDeadline(ctx, "Early", "2026-12-01")
	require.NoError(t, err)

	list, _ := svc.ListDeadlines(ctx)
	require.Len(t, list, 2)
	assert.Equal(t, "Early", list[0].Name)

	require.NoError(t, svc.DeleteDeadline(ctx, "late"))
	list, _ = svc.ListDeadlines(ctx)
	assert.Len(t, list, 1)
}

func TestStateService_TimerCommands(t *testing.T) {
	ctx := context.Background()
	svc := newTestStateService(t)

	settings := domain.DefaultSettings()
	settings.StrictFocusMode = true
	c, _, _, _, _ := newTestController(settings)
	svc.SetController(c)

	state, err := svc.StartTimer(ctx)
	require.NoError(t, err)
	assert.True(t, state.IsRunning)

	_, err = svc.PauseTimer(ctx)
	assert.ErrorIs(t, err, domain.ErrStrictFocusLocked)
	_, err = svc.SwitchMode(ctx, domain.ModeShortBreak)
	assert.ErrorIs(t, err, domain.ErrStrictFocusLocked)
	_, err = svc.ResetTimer(ctx)
	assert.ErrorIs(t, err, domain.ErrStrictFocusLocked)

	_, err = svc.UpdateSettings(ctx, domain.SettingsPatch{StrictFocusMode: boolPtr(false)})
	require.NoError(t, err)

	state, err = svc.PauseTimer(ctx)
	require.NoError(t, err)
	assert.False(t, state.IsRunning)

	state, err = svc.SwitchMode(ctx, domain.ModeLongBreak)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeLongBreak, state.Mode)

	snap, _ := svc.GetCurrentState(ctx)
	require.NotNil(t, snap.Session)
	assert.Equal(t, domain.ModeLongBreak, snap.Session.Mode)
}
