// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xvierd/striktflow/internal/domain"
	"github.com/xvierd/striktflow/internal/ports"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server        *server.MCPServer
	stateProvider ports.MCPStateProvider
	ctx           context.Context
	cancel        context.CancelFunc
	now           func() time.Time
}

// NewServer creates a new MCP server instance.
func NewServer(stateProvider ports.MCPStateProvider, version string) *Server {
	s := &Server{
		stateProvider: stateProvider,
		now:           time.Now,
	}

	s.server = server.NewMCPServer(
		"striktflow",
		version,
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_current_state",
			mcp.WithDescription("Get the timer state, settings, focused task, tasks, deadlines and today's stats"),
		),
		s.handleGetCurrentState,
	)

	s.server.AddTool(
		mcp.NewTool(
			"list_tasks",
			mcp.WithDescription("List tasks, optionally filtered by status"),
			mcp.WithString(
				"status",
				mcp.Description("Filter tasks by status"),
				mcp.Enum("pending", "completed"),
			),
		),
		s.handleListTasks,
	)

	s.server.AddTool(
		mcp.NewTool(
			"create_task",
			mcp.WithDescription("Create a new task"),
			mcp.WithString("text", mcp.Required(), mcp.Description("The text of the task")),
		),
		s.handleCreateTask,
	)

	s.server.AddTool(
		mcp.NewTool(
			"toggle_task",
			mcp.WithDescription("Toggle a task between pending and completed"),
			mcp.WithString("task", mcp.Required(), mcp.Description("Task id, id prefix or text")),
		),
		s.handleToggleTask,
	)

	s.server.AddTool(
		mcp.NewTool(
			"focus_task",
			mcp.WithDescription("Set the task shown under the timer. Omit task to clear the focus"),
			mcp.WithString("task", mcp.Description("Task id, id prefix or text")),
		),
		s.handleFocusTask,
	)

	s.server.AddTool(
		mcp.NewTool(
			"list_deadlines",
			mcp.WithDescription("List deadlines sorted by date with days left"),
		),
		s.handleListDeadlines,
	)

	s.server.AddTool(
		mcp.NewTool(
			"add_deadline",
			mcp.WithDescription("Add a named deadline"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Name of the deadline")),
			mcp.WithString("date", mcp.Required(), mcp.Description("Due date as YYYY-MM-DD")),
		),
		s.handleAddDeadline,
	)

	s.server.AddTool(
		mcp.NewTool(
			"delete_deadline",
			mcp.WithDescription("Delete a deadline"),
			mcp.WithString("deadline", mcp.Required(), mcp.Description("Deadline id, id prefix or name")),
		),
		s.handleDeleteDeadline,
	)

	s.server.AddTool(
		mcp.NewTool(
			"update_settings",
			mcp.WithDescription("Change timer settings. Only the given fields change; an invalid value rejects the whole update"),
			mcp.WithNumber("focus_duration", mcp.Description("Focus length in minutes")),
			mcp.WithNumber("short_break_duration", mcp.Description("Short break length in minutes")),
			mcp.WithNumber("long_break_duration", mcp.Description("Long break length in minutes")),
			mcp.WithNumber("sessions_until_long_break", mcp.Description("Focus sessions per long break")),
			mcp.WithBoolean("sound_enabled", mcp.Description("Play sounds")),
			mcp.WithBoolean("auto_start_breaks", mcp.Description("Start breaks automatically")),
			mcp.WithBoolean("auto_start_focus", mcp.Description("Start focus automatically after a break")),
			mcp.WithBoolean("strict_focus_mode", mcp.Description("Forbid pausing a running focus interval")),
			mcp.WithString("theme_id", mcp.Description("Colour theme id")),
		),
		s.handleUpdateSettings,
	)

	s.server.AddTool(
		mcp.NewTool("start_timer", mcp.WithDescription("Start the countdown")),
		s.handleStartTimer,
	)
	s.server.AddTool(
		mcp.NewTool("pause_timer", mcp.WithDescription("Pause the countdown. Refused during strict focus")),
		s.handlePauseTimer,
	)
	s.server.AddTool(
		mcp.NewTool("reset_timer", mcp.WithDescription("Restart the current interval from its full length")),
		s.handleResetTimer,
	)
	s.server.AddTool(
		mcp.NewTool(
			"switch_mode",
			mcp.WithDescription("Switch to another interval, paused"),
			mcp.WithString(
				"mode",
				mcp.Required(),
				mcp.Enum(string(domain.ModeFocus), string(domain.ModeShortBreak), string(domain.ModeLongBreak)),
			),
		),
		s.handleSwitchMode,
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_recent_sessions",
			mcp.WithDescription("Get recently finished intervals, newest first"),
			mcp.WithNumber("limit", mcp.Description("Maximum number of sessions (default: 10)")),
		),
		s.handleGetRecentSessions,
	)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func taskData(t domain.Task) map[string]interface{} {
	return map[string]interface{}{
		"id":        t.ID,
		"text":      t.Text,
		"completed": t.Completed,
	}
}

func sessionData(state domain.SessionState, settings domain.TimerSettings) map[string]interface{} {
	return map[string]interface{}{
		"mode":                     string(state.Mode),
		"time_left_seconds":        state.TimeLeftSeconds,
		"is_running":               state.IsRunning,
		"completed_focus_sessions": state.CompletedFocusSessions,
		"progress":                 state.Progress(settings),
		"strict_locked":            domain.StrictLocked(state.Mode, state.IsRunning, settings.StrictFocusMode),
	}
}

// handleGetCurrentState handles the get_current_state tool.
func (s *Server) handleGetCurrentState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := s.stateProvider.GetCurrentState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current state: %w", err)
	}

	tasks := make([]map[string]interface{}, 0, len(snap.Tasks))
	for _, t := range snap.Tasks {
		tasks = append(tasks, taskData(t))
	}

	result := map[string]interface{}{
		"settings":     snap.Settings,
		"session":      nil,
		"focused_task": nil,
		"tasks":        tasks,
		"deadlines":    s.deadlineList(snap.Deadlines),
		"today_stats": map[string]interface{}{
			"focus_sessions":   snap.TodayStats.FocusSessions,
			"breaks_taken":     snap.TodayStats.BreaksTaken,
			"total_focus_time": snap.TodayStats.TotalFocusTime.String(),
		},
	}
	if snap.Session != nil {
		result["session"] = sessionData(*snap.Session, snap.Settings)
	}
	if snap.FocusedTask != nil {
		result["focused_task"] = taskData(*snap.FocusedTask)
	}

	return jsonResult(result)
}

// handleListTasks handles the list_tasks tool.
func (s *Server) handleListTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := request.GetString("status", "")

	tasks, err := s.stateProvider.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	filtered := []map[string]interface{}{}
	for _, task := range tasks {
		if (status == "pending" && task.Completed) || (status == "completed" && !task.Completed) {
			continue
		}
		filtered = append(filtered, taskData(task))
	}

	result := map[string]interface{}{
		"tasks":       filtered,
		"total_count": len(filtered),
	}
	if status != "" {
		result["filter_status"] = status
	}
	return jsonResult(result)
}

// handleCreateTask handles the create_task tool.
func (s *Server) handleCreateTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text is required: " + err.Error()), nil
	}

	task, err := s.stateProvider.CreateTask(ctx, text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create task: %v", err)), nil
	}
	return jsonResult(taskData(*task))
}

// handleToggleTask handles the toggle_task tool.
func (s *Server) handleToggleTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("task")
	if err != nil {
		return mcp.NewToolResultError("task is required: " + err.Error()), nil
	}

	task, err := s.stateProvider.ToggleTask(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to toggle task: %v", err)), nil
	}
	return jsonResult(taskData(*task))
}

// handleFocusTask handles the focus_task tool.
func (s *Server) handleFocusTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var query *string
	if q := request.GetString("task", ""); q != "" {
		query = &q
	}

	task, err := s.stateProvider.FocusTask(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to focus task: %v", err)), nil
	}
	if task == nil {
		return jsonResult(map[string]interface{}{"focused_task": nil})
	}
	return jsonResult(map[string]interface{}{"focused_task": taskData(*task)})
}

func (s *Server) deadlineList(deadlines []domain.Deadline) []map[string]interface{} {
	now := s.now()
	list := make([]map[string]interface{}, 0, len(deadlines))
	for _, d := range deadlines {
		list = append(list, map[string]interface{}{
			"id":        d.ID,
			"name":      d.Name,
			"date":      d.Date,
			"days_left": d.DaysLeft(now),
		})
	}
	return list
}

// handleListDeadlines handles the list_deadlines tool.
func (s *Server) handleListDeadlines(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deadlines, err := s.stateProvider.ListDeadlines(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list deadlines: %w", err)
	}
	return jsonResult(map[string]interface{}{
		"deadlines":   s.deadlineList(deadlines),
		"total_count": len(deadlines),
	})
}

// handleAddDeadline handles the add_deadline tool.
func (s *Server) handleAddDeadline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required: " + err.Error()), nil
	}
	date, err := request.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date is required: " + err.Error()), nil
	}

	d, err := s.stateProvider.AddDeadline(ctx, name, date)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add deadline: %v", err)), nil
	}
	return jsonResult(s.deadlineList([]domain.Deadline{*d})[0])
}

// handleDeleteDeadline handles the delete_deadline tool.
func (s *Server) handleDeleteDeadline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("deadline")
	if err != nil {
		return mcp.NewToolResultError("deadline is required: " + err.Error()), nil
	}

	if err := s.stateProvider.DeleteDeadline(ctx, query); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete deadline: %v", err)), nil
	}
	return mcp.NewToolResultText("deadline deleted"), nil
}

// settingsPatch builds a patch from the arguments that are present.
// Values of the wrong type are rejected rather than coerced.
func settingsPatch(request mcp.CallToolRequest) (domain.SettingsPatch, error) {
	args := request.GetArguments()
	var patch domain.SettingsPatch

	ints := []struct {
		key string
		dst **int
	}{
		{"focus_duration", &patch.FocusDuration},
		{"short_break_duration", &patch.ShortBreakDuration},
		{"long_break_duration", &patch.LongBreakDuration},
		{"sessions_until_long_break", &patch.SessionsUntilLongBreak},
	}
	for _, f := range ints {
		raw, ok := args[f.key]
		if !ok {
			continue
		}
		v, err := wholeNumber(f.key, raw)
		if err != nil {
			return patch, err
		}
		*f.dst = &v
	}

	bools := []struct {
		key string
		dst **bool
	}{
		{"sound_enabled", &patch.SoundEnabled},
		{"auto_start_breaks", &patch.AutoStartBreaks},
		{"auto_start_focus", &patch.AutoStartFocus},
		{"strict_focus_mode", &patch.StrictFocusMode},
	}
	for _, f := range bools {
		raw, ok := args[f.key]
		if !ok {
			continue
		}
		v, ok := raw.(bool)
		if !ok {
			return patch, fmt.Errorf("%w: %s must be true or false, got %v", domain.ErrInvalidSettingValue, f.key, raw)
		}
		*f.dst = &v
	}

	if raw, ok := args["theme_id"]; ok {
		theme, ok := raw.(string)
		if !ok {
			return patch, fmt.Errorf("%w: theme_id must be a string, got %v", domain.ErrInvalidSettingValue, raw)
		}
		patch.ThemeID = &theme
	}
	return patch, nil
}

// wholeNumber accepts JSON numbers without a fractional part.
func wholeNumber(key string, raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v == math.Trunc(v) && math.Abs(v) <= 1<<53 {
			return int(v), nil
		}
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), nil
		}
	}
	return 0, fmt.Errorf("%w: %s must be a whole number, got %v", domain.ErrInvalidSettingValue, key, raw)
}

// handleUpdateSettings handles the update_settings tool.
func (s *Server) handleUpdateSettings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	patch, err := settingsPatch(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if patch.IsEmpty() {
		return mcp.NewToolResultError("no settings given"), nil
	}

	settings, err := s.stateProvider.UpdateSettings(ctx, patch)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update settings: %v", err)), nil
	}
	return jsonResult(settings)
}

func (s *Server) timerResult(ctx context.Context, state domain.SessionState, err error, action string) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to %s: %v", action, err)), nil
	}
	snap, snapErr := s.stateProvider.GetCurrentState(ctx)
	settings := domain.DefaultSettings()
	if snapErr == nil {
		settings = snap.Settings
	}
	return jsonResult(sessionData(state, settings))
}

// handleStartTimer handles the start_timer tool.
func (s *Server) handleStartTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.stateProvider.StartTimer(ctx)
	return s.timerResult(ctx, state, err, "start timer")
}

// handlePauseTimer handles the pause_timer tool.
func (s *Server) handlePauseTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.stateProvider.PauseTimer(ctx)
	return s.timerResult(ctx, state, err, "pause timer")
}

// handleResetTimer handles the reset_timer tool.
func (s *Server) handleResetTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.stateProvider.ResetTimer(ctx)
	return s.timerResult(ctx, state, err, "reset timer")
}

// handleSwitchMode handles the switch_mode tool.
func (s *Server) handleSwitchMode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("mode")
	if err != nil {
		return mcp.NewToolResultError("mode is required: " + err.Error()), nil
	}
	mode, err := domain.ParseMode(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	state, err := s.stateProvider.SwitchMode(ctx, mode)
	return s.timerResult(ctx, state, err, "switch mode")
}

// handleGetRecentSessions handles the get_recent_sessions tool.
func (s *Server) handleGetRecentSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 10)

	records, err := s.stateProvider.GetRecentSessions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent sessions: %w", err)
	}

	sessions := make([]map[string]interface{}, 0, len(records))
	for _, r := range records {
		data := map[string]interface{}{
			"id":       r.ID,
			"type":     string(r.Mode),
			"started":  r.StartTime.Format("2006-01-02T15:04:05"),
			"ended":    r.EndTime.Format("2006-01-02T15:04:05"),
			"duration": r.EndTime.Sub(r.StartTime).Round(time.Second).String(),
		}
		if r.GitBranch != "" {
			data["git_branch"] = r.GitBranch
		}
		if r.GitCommit != "" {
			data["git_commit"] = r.GitCommit
		}
		sessions = append(sessions, data)
	}

	return jsonResult(map[string]interface{}{
		"sessions":       sessions,
		"total_sessions": len(sessions),
	})
}
