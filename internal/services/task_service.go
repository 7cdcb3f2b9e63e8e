package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/sahilm/fuzzy"
	"github.com/xvierd/striktflow/internal/domain"
	"github.com/xvierd/striktflow/internal/ports"
)

// TaskService handles task-related use cases and owns the pointer to the
// focused task.
type TaskService struct {
	store  ports.KeyValueStore
	logger *log.Logger

	mu        sync.RWMutex
	tasks     []domain.Task
	focusedID string
}

// NewTaskService creates a new task service. Call Load before use.
func NewTaskService(store ports.KeyValueStore, logger *log.Logger) *TaskService {
	return &TaskService{store: store, logger: orDiscard(logger)}
}

// Load reads the task list and focused pointer from the store. A pointer to
// a task that no longer exists is dropped, but only when the list itself
// was read; otherwise the stored pointer is left alone.
func (s *TaskService) Load(ctx context.Context) {
	var tasks []domain.Task
	loaded := loadJSON(ctx, s.store, s.logger, ports.KeyTasks, &tasks)

	focused := ""
	raw, ok, err := s.store.Load(ctx, ports.KeyFocusedTaskID)
	if err != nil {
		s.logger.Warn("failed to load focused task", "err", err)
	} else if ok {
		focused = string(raw)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
	s.focusedID = ""
	if focused != "" && s.indexLocked(focused) >= 0 {
		s.focusedID = focused
	} else if focused != "" && loaded {
		s.logger.Debug("dropping focus on missing task", "id", focused)
		s.persistFocusLocked(ctx)
	}
}

// AddTask creates a new pending task at the end of the list.
func (s *TaskService) AddTask(ctx context.Context, text string) (*domain.Task, error) {
	task, err := domain.NewTask(text)
	if err != nil {
		return nil, fmt.Errorf("invalid task: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, *task)
	s.persistTasksLocked(ctx)
	return task, nil
}

// ToggleTask flips the completed flag of the task with id.
func (s *TaskService) ToggleTask(ctx context.Context, id string) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return nil, fmt.Errorf("failed to toggle task %s: %w", id, domain.ErrTaskNotFound)
	}
	s.tasks[i].Toggle()
	s.persistTasksLocked(ctx)
	task := s.tasks[i]
	return &task, nil
}

// DeleteTask removes a task and clears the focus if it pointed at it.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("failed to delete task %s: %w", id, domain.ErrTaskNotFound)
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.persistTasksLocked(ctx)

	if s.focusedID == id {
		s.focusedID = ""
		s.persistFocusLocked(ctx)
	}
	return nil
}

// ListTasks returns a copy of all tasks in insertion order.
func (s *TaskService) ListTasks() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Task(nil), s.tasks...)
}

// SetFocus points the focus at id, or clears it when id is nil. An unknown
// id is rejected and the prior focus is kept.
func (s *TaskService) SetFocus(ctx context.Context, id *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == nil {
		s.focusedID = ""
		s.persistFocusLocked(ctx)
		return nil
	}
	if s.indexLocked(*id) < 0 {
		return fmt.Errorf("failed to focus task %s: %w", *id, domain.ErrInvalidReference)
	}
	s.focusedID = *id
	s.persistFocusLocked(ctx)
	return nil
}

// FocusedTask returns the focused task, or nil.
func (s *TaskService) FocusedTask() *domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.focusedID == "" {
		return nil
	}
	i := s.indexLocked(s.focusedID)
	if i < 0 {
		return nil
	}
	task := s.tasks[i]
	return &task
}

// FindTasks does a fuzzy search for tasks by text, best match first.
func (s *TaskService) FindTasks(query string) []domain.Task {
	tasks := s.ListTasks()

	texts := make([]string, len(tasks))
	for i, task := range tasks {
		texts[i] = task.Text
	}

	var result []domain.Task
	for _, match := range fuzzy.Find(query, texts) {
		if match.Score > 0 {
			result = append(result, tasks[match.Index])
		}
	}
	return result
}

// ResolveTask finds a task by exact id, unique id prefix, or text.
func (s *TaskService) ResolveTask(query string) (*domain.Task, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrTaskNotFound
	}

	tasks := s.ListTasks()
	var prefixed []domain.Task
	for _, task := range tasks {
		if task.ID == query {
			return &task, nil
		}
		if strings.HasPrefix(task.ID, query) {
			prefixed = append(prefixed, task)
		}
	}
	if len(prefixed) == 1 {
		return &prefixed[0], nil
	}

	for _, task := range tasks {
		if strings.EqualFold(task.Text, query) {
			return &task, nil
		}
	}
	if matches := s.FindTasks(query); len(matches) > 0 {
		return &matches[0], nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrTaskNotFound, query)
}

func (s *TaskService) indexLocked(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskService) persistTasksLocked(ctx context.Context) {
	tasks := s.tasks
	if tasks == nil {
		tasks = []domain.Task{}
	}
	saveJSON(ctx, s.store, s.logger, ports.KeyTasks, tasks)
}

// persistFocusLocked stores the focused id as a plain string and deletes
// the key when focus is cleared.
func (s *TaskService) persistFocusLocked(ctx context.Context) {
	var err error
	if s.focusedID == "" {
		err = s.store.Delete(ctx, ports.KeyFocusedTaskID)
	} else {
		err = s.store.Save(ctx, ports.KeyFocusedTaskID, []byte(s.focusedID))
	}
	if err != nil {
		s.logger.Warn("failed to persist focused task", "err", err)
	}
}
