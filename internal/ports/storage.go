// Package ports defines the interfaces (driven and driving ports)
// for StriktFlow following hexagonal architecture principles.
// These interfaces define the contracts between the services layer and
// external infrastructure.
package ports

import (
	"context"
)

// Keys under which the services persist their JSON blobs.
const (
	KeySettings      = "striktflow_settings"
	KeyDeadlines     = "striktflow_deadlines"
	KeyTasks         = "striktflow_tasks"
	KeyFocusedTaskID = "striktflow_focused_task_id"
	KeyHistory       = "striktflow_history"
)

// KeyValueStore is the durable local store the services persist into.
// This is a driven port (implemented by adapters).
type KeyValueStore interface {
	// Load returns the value stored under key. A missing key is not an
	// error: ok is false and value is nil.
	Load(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Save stores value under key, replacing any previous value.
	Save(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying resources.
	Close() error
}
