// Package domain contains the core entities of StriktFlow: timer settings,
// the session state machine rules, tasks, deadlines and themes.
// It is independent of any storage or UI framework.
package domain

import "strings"

// Task is a to-do item that can be flagged as the current focus.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// NewTask creates a pending task with trimmed text.
func NewTask(text string) (*Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyTaskText
	}
	return &Task{
		ID:   generateID(),
		Text: text,
	}, nil
}

// Toggle flips the completed flag.
func (t *Task) Toggle() {
	t.Completed = !t.Completed
}
