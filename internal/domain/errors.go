package domain

import "errors"

// Common domain errors.
var (
	ErrInvalidSettingValue    = errors.New("invalid setting value")
	ErrInvalidReference       = errors.New("invalid reference")
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
	ErrTaskNotFound           = errors.New("task not found")
	ErrDeadlineNotFound       = errors.New("deadline not found")
	ErrEmptyTaskText          = errors.New("task text cannot be empty")
	ErrEmptyDeadlineName      = errors.New("deadline name cannot be empty")
	ErrInvalidDate            = errors.New("invalid date")
	ErrInvalidMode            = errors.New("invalid mode")
	ErrStrictFocusLocked      = errors.New("strict focus is active")
)
