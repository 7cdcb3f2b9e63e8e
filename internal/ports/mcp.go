package ports

import (
	"context"

	"github.com/xvierd/striktflow/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}

// MCPStateProvider defines the interface for accessing and changing
// application state from MCP tools.
// This is a driven port (implemented by services).
type MCPStateProvider interface {
	// GetCurrentState returns a snapshot of settings, session, tasks and
	// deadlines.
	GetCurrentState(ctx context.Context) (*domain.Snapshot, error)

	// ListTasks returns every task in insertion order.
	ListTasks(ctx context.Context) ([]domain.Task, error)

	// CreateTask adds a pending task.
	CreateTask(ctx context.Context, text string) (*domain.Task, error)

	// ToggleTask flips the completed flag of the task matching query.
	ToggleTask(ctx context.Context, query string) (*domain.Task, error)

	// FocusTask focuses the task matching query, or clears focus on nil.
	FocusTask(ctx context.Context, query *string) (*domain.Task, error)

	// ListDeadlines returns deadlines sorted by date.
	ListDeadlines(ctx context.Context) ([]domain.Deadline, error)

	// AddDeadline adds a named deadline on a YYYY-MM-DD date.
	AddDeadline(ctx context.Context, name, date string) (*domain.Deadline, error)

	// DeleteDeadline removes the deadline matching query.
	DeleteDeadline(ctx context.Context, query string) error

	// UpdateSettings applies a partial settings update.
	UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (domain.TimerSettings, error)

	// StartTimer starts the countdown if it is paused.
	StartTimer(ctx context.Context) (domain.SessionState, error)

	// PauseTimer pauses the countdown if it is running.
	PauseTimer(ctx context.Context) (domain.SessionState, error)

	// ResetTimer restores the full duration of the current mode.
	ResetTimer(ctx context.Context) (domain.SessionState, error)

	// SwitchMode moves to another mode, paused.
	SwitchMode(ctx context.Context, mode domain.Mode) (domain.SessionState, error)

	// GetRecentSessions returns finished intervals, newest first.
	GetRecentSessions(ctx context.Context, limit int) ([]domain.SessionRecord, error)
}
