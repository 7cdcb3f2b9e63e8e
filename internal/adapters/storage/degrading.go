package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/xvierd/striktflow/internal/domain"
	"github.com/xvierd/striktflow/internal/ports"
)

// Degrading wraps a primary store with an in-memory mirror. Every value
// read from or written to the primary is mirrored. After the first primary
// failure the store logs once and serves the rest of the process from the
// mirror, so a broken disk never stops the timer.
type Degrading struct {
	primary ports.KeyValueStore
	mirror  *MemoryStore
	logger  *log.Logger

	mu       sync.Mutex
	degraded bool
}

var _ ports.KeyValueStore = (*Degrading)(nil)

// NewDegrading wraps primary.
func NewDegrading(primary ports.KeyValueStore, logger *log.Logger) *Degrading {
	return &Degrading{
		primary: primary,
		mirror:  NewMemoryStore(),
		logger:  logger,
	}
}

// Degraded reports whether the primary store has been abandoned.
func (d *Degrading) Degraded() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.degraded
}

// Load reads from the primary and falls back to the mirror.
func (d *Degrading) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if !d.Degraded() {
		value, ok, err := d.primary.Load(ctx, key)
		if err == nil {
			if ok {
				_ = d.mirror.Save(ctx, key, value)
			}
			return value, ok, nil
		}
		d.degrade("load", key, err)
	}
	return d.mirror.Load(ctx, key)
}

// Save writes to the mirror, then to the primary while it is healthy.
func (d *Degrading) Save(ctx context.Context, key string, value []byte) error {
	_ = d.mirror.Save(ctx, key, value)
	if d.Degraded() {
		return nil
	}
	if err := d.primary.Save(ctx, key, value); err != nil {
		d.degrade("save", key, err)
	}
	return nil
}

// Delete removes key from the mirror and the primary.
func (d *Degrading) Delete(ctx context.Context, key string) error {
	_ = d.mirror.Delete(ctx, key)
	if d.Degraded() {
		return nil
	}
	if err := d.primary.Delete(ctx, key); err != nil {
		d.degrade("delete", key, err)
	}
	return nil
}

// Close closes the primary store.
func (d *Degrading) Close() error {
	return d.primary.Close()
}

func (d *Degrading) degrade(op, key string, err error) {
	d.mu.Lock()
	first := !d.degraded
	d.degraded = true
	d.mu.Unlock()

	if first && d.logger != nil {
		d.logger.Warn("storage unavailable, continuing in memory",
			"op", op, "key", key, "err", errors.Join(domain.ErrPersistenceUnavailable, err))
	}
}
