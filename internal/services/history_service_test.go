package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/striktflow/internal/domain"
)

func expiry(mode domain.Mode, end time.Time, length time.Duration) domain.IntervalExpired {
	return domain.IntervalExpired{
		Previous:  mode,
		StartedAt: end.Add(-length),
		ExpiredAt: end,
	}
}

func TestHistoryService_RecordAndStats(t *testing.T) {
	ctx := context.Background()
	store := setupTestStorage(t)
	svc := NewHistoryService(store, fakeGit{available: true}, ".", nil)

	day := time.Date(2026, 3, 10, 10, 0, 0, 0, time.Local)
	focus, err := svc.Record(ctx, expiry(domain.ModeFocus, day, 25*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "main", focus.GitBranch)
	assert.Equal(t, "abc1234", focus.GitCommit)

	brk, _ := svc.Record(ctx, expiry(domain.ModeShortBreak, day.Add(5*time.Minute), 5*time.Minute))
	assert.Empty(t, brk.GitBranch, "breaks are not tagged")

	_, _ = svc.Record(ctx, expiry(domain.ModeFocus, day.Add(-24*time.Hour), 25*time.Minute))

	stats := svc.GetDailyStats(ctx, day)
	assert.Equal(t, 1, stats.FocusSessions)
	assert.Equal(t, 1, stats.BreaksTaken)
	assert.Equal(t, 25*time.Minute, stats.TotalFocusTime)

	recent := NewHistoryService(store, nil, ".", nil).Recent(ctx, 2)
	require.Len(t, recent, 2)
	assert.Equal(t, domain.ModeFocus, recent[0].Mode, "most recently recorded first")
	assert.True(t, recent[0].EndTime.Before(recent[1].EndTime))
}

func TestHistoryService_Capped(t *testing.T) {
	ctx := context.Background()
	svc := NewHistoryService(setupTestStorage(t), nil, ".", nil)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)
	for i := 0; i < MaxHistoryEntries+10; i++ {
		_, _ = svc.Record(ctx, expiry(domain.ModeFocus, start.Add(time.Duration(i)*time.Hour), time.Minute))
	}

	all := svc.Recent(ctx, 0)
	assert.Len(t, all, MaxHistoryEntries)
}

func TestHistoryService_ObservesController(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.FocusDuration = 1
	c, ticks, _, _, _ := newTestController(settings)

	history := NewHistoryService(setupTestStorage(t), nil, ".", nil)
	c.AddObserver(history)

	c.ToggleRunning()
	ticks.fire(60)

	recent := history.Recent(context.Background(), 10)
	require.Len(t, recent, 1)
	assert.Equal(t, domain.ModeFocus, recent[0].Mode)
}
