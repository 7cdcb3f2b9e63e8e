package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/xvierd/striktflow/internal/domain"
)

// mockStateProvider is a mock implementation of ports.MCPStateProvider for testing.
type mockStateProvider struct {
	snapshot  *domain.Snapshot
	tasks     []domain.Task
	deadlines []domain.Deadline
	records   []domain.SessionRecord
	lastPatch domain.SettingsPatch
	timerErr  error
	cleared   bool
}

func (m *mockStateProvider) GetCurrentState(ctx context.Context) (*domain.Snapshot, error) {
	if m.snapshot == nil {
		return &domain.Snapshot{Settings: domain.DefaultSettings()}, nil
	}
	return m.snapshot, nil
}

func (m *mockStateProvider) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return m.tasks, nil
}

func (m *mockStateProvider) CreateTask(ctx context.Context, text string) (*domain.Task, error) {
	return domain.NewTask(text)
}

func (m *mockStateProvider) ToggleTask(ctx context.Context, query string) (*domain.Task, error) {
	for _, t := range m.tasks {
		if t.ID == query {
			t.Toggle()
			return &t, nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (m *mockStateProvider) FocusTask(ctx context.Context, query *string) (*domain.Task, error) {
	if query == nil {
		m.cleared = true
		return nil, nil
	}
	return m.ToggleTask(ctx, *query)
}

func (m *mockStateProvider) ListDeadlines(ctx context.Context) ([]domain.Deadline, error) {
	return m.deadlines, nil
}

func (m *mockStateProvider) AddDeadline(ctx context.Context, name, date string) (*domain.Deadline, error) {
	return domain.NewDeadline(name, date)
}

func (m *mockStateProvider) DeleteDeadline(ctx context.Context, query string) error {
	return domain.ErrDeadlineNotFound
}

func (m *mockStateProvider) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (domain.TimerSettings, error) {
	m.lastPatch = patch
	settings := patch.Apply(domain.DefaultSettings())
	return settings, settings.Validate()
}

func (m *mockStateProvider) StartTimer(ctx context.Context) (domain.SessionState, error) {
	s := domain.NewSessionState(domain.DefaultSettings())
	s.IsRunning = true
	return s, m.timerErr
}

func (m *mockStateProvider) PauseTimer(ctx context.Context) (domain.SessionState, error) {
	return domain.NewSessionState(domain.DefaultSettings()), m.timerErr
}

func (m *mockStateProvider) ResetTimer(ctx context.Context) (domain.SessionState, error) {
	return domain.NewSessionState(domain.DefaultSettings()), m.timerErr
}

func (m *mockStateProvider) SwitchMode(ctx context.Context, mode domain.Mode) (domain.SessionState, error) {
	s := domain.NewSessionState(domain.DefaultSettings())
	s.Mode = mode
	return s, m.timerErr
}

func (m *mockStateProvider) GetRecentSessions(ctx context.Context, limit int) ([]domain.SessionRecord, error) {
	if len(m.records) > limit {
		return m.records[:limit], nil
	}
	return m.records, nil
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

// decode unmarshals the text content of a successful result.
func decode(t *testing.T, result *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	if result == nil {
		t.Fatal("nil result")
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %+v", result.Content)
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want mcp.TextContent", result.Content[0])
	}
	var out map[string]interface{}
	if err := json.Unmarshal([]byte(text.Text), &out); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	return out
}

func TestNewServer(t *testing.T) {
	mock := &mockStateProvider{}
	server := NewServer(mock, "test")

	if server == nil {
		t.Fatal("NewServer() returned nil")
	}
	if server.stateProvider != mock {
		t.Error("NewServer() did not set state provider correctly")
	}
	if server.server == nil {
		t.Error("NewServer() did not create MCP server")
	}
}

func TestServer_IsRunning(t *testing.T) {
	server := NewServer(&mockStateProvider{}, "test")

	if server.IsRunning() {
		t.Error("IsRunning() should return false before Start()")
	}
}

func TestServer_handleGetCurrentState(t *testing.T) {
	task, _ := domain.NewTask("Write chapter")
	settings := domain.DefaultSettings()
	settings.StrictFocusMode = true
	session := domain.NewSessionState(settings)
	session.IsRunning = true

	mock := &mockStateProvider{
		snapshot: &domain.Snapshot{
			Settings:    settings,
			Session:     &session,
			Tasks:       []domain.Task{*task},
			FocusedTask: task,
			TodayStats: domain.DailyStats{
				FocusSessions:  2,
				BreaksTaken:    1,
				TotalFocusTime: 50 * time.Minute,
			},
		},
	}

	server := NewServer(mock, "test")
	result, err := server.handleGetCurrentState(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handleGetCurrentState() error = %v", err)
	}

	out := decode(t, result)
	sess := out["session"].(map[string]interface{})
	if sess["strict_locked"] != true {
		t.Errorf("strict_locked = %v, want true", sess["strict_locked"])
	}
	focused := out["focused_task"].(map[string]interface{})
	if focused["text"] != "Write chapter" {
		t.Errorf("focused_task = %v", focused)
	}
	stats := out["today_stats"].(map[string]interface{})
	if stats["focus_sessions"] != float64(2) {
		t.Errorf("focus_sessions = %v", stats["focus_sessions"])
	}
}

func TestServer_handleGetCurrentState_NoSession(t *testing.T) {
	server := NewServer(&mockStateProvider{}, "test")

	result, err := server.handleGetCurrentState(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handleGetCurrentState() error = %v", err)
	}
	out := decode(t, result)
	if out["session"] != nil {
		t.Errorf("session = %v, want nil", out["session"])
	}
}

func TestServer_handleListTasks_WithStatusFilter(t *testing.T) {
	task1, _ := domain.NewTask("Task 1")
	task2, _ := domain.NewTask("Task 2")
	task2.Toggle()

	server := NewServer(&mockStateProvider{tasks: []domain.Task{*task1, *task2}}, "test")

	tests := []struct {
		status string
		want   float64
	}{
		{"", 2},
		{"pending", 1},
		{"completed", 1},
	}
	for _, tt := range tests {
		t.Run("status="+tt.status, func(t *testing.T) {
			args := map[string]interface{}{}
			if tt.status != "" {
				args["status"] = tt.status
			}
			result, err := server.handleListTasks(context.Background(), callRequest(args))
			if err != nil {
				t.Fatalf("handleListTasks() error = %v", err)
			}
			if got := decode(t, result)["total_count"]; got != tt.want {
				t.Errorf("total_count = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestServer_handleCreateTask_MissingText(t *testing.T) {
	server := NewServer(&mockStateProvider{}, "test")

	result, err := server.handleCreateTask(context.Background(), callRequest(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handleCreateTask() error = %v", err)
	}
	if !result.IsError {
		t.Error("handleCreateTask() should return error for missing text")
	}
}

func TestServer_handleCreateTask_EmptyText(t *testing.T) {
	server := NewServer(&mockStateProvider{}, "test")

	result, err := server.handleCreateTask(context.Background(), callRequest(map[string]interface{}{"text": "   "}))
	if err != nil {
		t.Fatalf("handleCreateTask() error = %v", err)
	}
	if !result.IsError {
		t.Error("handleCreateTask() should reject blank text")
	}
}

func TestServer_handleFocusTask_Clear(t *testing.T) {
	mock := &mockStateProvider{}
	server := NewServer(mock, "test")

	result, err := server.handleFocusTask(context.Background(), callRequest(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handleFocusTask() error = %v", err)
	}
	if decode(t, result)["focused_task"] != nil {
		t.Error("focused_task should be nil after clearing")
	}
	if !mock.cleared {
		t.Error("provider was not asked to clear focus")
	}
}

func TestServer_handleAddDeadline(t *testing.T) {
	server := NewServer(&mockStateProvider{}, "test")
	server.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local) }

	result, err := server.handleAddDeadline(context.Background(), callRequest(map[string]interface{}{
		"name": "Exam",
		"date": "2026-03-13",
	}))
	if err != nil {
		t.Fatalf("handleAddDeadline() error = %v", err)
	}
	if got := decode(t, result)["days_left"]; got != float64(3) {
		t.Errorf("days_left = %v, want 3", got)
	}

	result, _ = server.handleAddDeadline(context.Background(), callRequest(map[string]interface{}{
		"name": "Exam",
		"date": "next week",
	}))
	if !result.IsError {
		t.Error("invalid date should be an error result")
	}
}

func TestServer_handleUpdateSettings(t *testing.T) {
	mock := &mockStateProvider{}
	server := NewServer(mock, "test")

	result, err := server.handleUpdateSettings(context.Background(), callRequest(map[string]interface{}{
		"focus_duration":    float64(50),
		"strict_focus_mode": true,
	}))
	if err != nil {
		t.Fatalf("handleUpdateSettings() error = %v", err)
	}
	out := decode(t, result)
	if out["focusDuration"] != float64(50) || out["strictFocusMode"] != true {
		t.Errorf("settings = %v", out)
	}
	if mock.lastPatch.ShortBreakDuration != nil || mock.lastPatch.SoundEnabled != nil {
		t.Error("absent arguments must not be part of the patch")
	}

	result, _ = server.handleUpdateSettings(context.Background(), callRequest(map[string]interface{}{}))
	if !result.IsError {
		t.Error("empty update should be an error result")
	}

	result, _ = server.handleUpdateSettings(context.Background(), callRequest(map[string]interface{}{
		"long_break_duration": float64(0),
	}))
	if !result.IsError {
		t.Error("invalid value should be an error result")
	}
}

func TestServer_handleUpdateSettingsRejectsMistypedValues(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"fractional minutes", map[string]interface{}{"focus_duration": 25.9}},
		{"text minutes", map[string]interface{}{"short_break_duration": "abc"}},
		{"huge float", map[string]interface{}{"long_break_duration": 1e300}},
		{"text flag", map[string]interface{}{"sound_enabled": "yes"}},
		{"numeric theme", map[string]interface{}{"theme_id": float64(3)}},
		{"one bad among good", map[string]interface{}{"focus_duration": float64(30), "sessions_until_long_break": 2.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockStateProvider{}
			server := NewServer(mock, "test")

			result, err := server.handleUpdateSettings(context.Background(), callRequest(tt.args))
			if err != nil {
				t.Fatalf("handleUpdateSettings() error = %v", err)
			}
			if !result.IsError {
				t.Fatal("mistyped value should be an error result")
			}
			if !mock.lastPatch.IsEmpty() {
				t.Errorf("no patch should reach the provider, got %+v", mock.lastPatch)
			}
		})
	}
}

func TestWholeNumber(t *testing.T) {
	for _, raw := range []interface{}{float64(25), 25, int64(25), json.Number("25")} {
		got, err := wholeNumber("focus_duration", raw)
		if err != nil || got != 25 {
			t.Errorf("wholeNumber(%#v) = %d, %v; want 25", raw, got, err)
		}
	}
	if _, err := wholeNumber("focus_duration", 25.5); !errors.Is(err, domain.ErrInvalidSettingValue) {
		t.Errorf("wholeNumber(25.5) error = %v, want ErrInvalidSettingValue", err)
	}
}

func TestServer_TimerTools(t *testing.T) {
	mock := &mockStateProvider{}
	server := NewServer(mock, "test")
	ctx := context.Background()

	result, err := server.handleStartTimer(ctx, mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handleStartTimer() error = %v", err)
	}
	if decode(t, result)["is_running"] != true {
		t.Error("start_timer should report running")
	}

	result, _ = server.handleSwitchMode(ctx, callRequest(map[string]interface{}{"mode": "long_break"}))
	if decode(t, result)["mode"] != "long_break" {
		t.Error("switch_mode should report the new mode")
	}

	result, _ = server.handleSwitchMode(ctx, callRequest(map[string]interface{}{"mode": "nap"}))
	if !result.IsError {
		t.Error("unknown mode should be an error result")
	}

	mock.timerErr = domain.ErrStrictFocusLocked
	result, _ = server.handlePauseTimer(ctx, mcp.CallToolRequest{})
	if !result.IsError {
		t.Error("pause during strict focus should be an error result")
	}
}

func TestServer_handleGetRecentSessions(t *testing.T) {
	end := time.Date(2026, 3, 10, 10, 0, 0, 0, time.Local)
	records := []domain.SessionRecord{
		{ID: "1", Mode: domain.ModeFocus, StartTime: end.Add(-25 * time.Minute), EndTime: end, GitBranch: "main"},
		{ID: "2", Mode: domain.ModeShortBreak, StartTime: end, EndTime: end.Add(5 * time.Minute)},
	}
	server := NewServer(&mockStateProvider{records: records}, "test")

	result, err := server.handleGetRecentSessions(context.Background(), callRequest(map[string]interface{}{"limit": float64(1)}))
	if err != nil {
		t.Fatalf("handleGetRecentSessions() error = %v", err)
	}
	out := decode(t, result)
	if out["total_sessions"] != float64(1) {
		t.Errorf("total_sessions = %v, want 1", out["total_sessions"])
	}
	first := out["sessions"].([]interface{})[0].(map[string]interface{})
	if first["duration"] != "25m0s" || first["git_branch"] != "main" {
		t.Errorf("session = %v", first)
	}
}

func TestServer_Stop(t *testing.T) {
	server := NewServer(&mockStateProvider{}, "test")

	// Stop before Start should not panic
	if err := server.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}
