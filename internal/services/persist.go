// Package services implements the application layer (use cases)
// following hexagonal architecture principles.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/xvierd/striktflow/internal/logging"
	"github.com/xvierd/striktflow/internal/ports"
)

// ErrNoTimer is returned by timer commands when no controller runs in
// this process.
var ErrNoTimer = errors.New("no timer running in this process")

// loadJSON decodes the blob stored under key into dst. It reports false
// when the key is missing or the blob cannot be used; the reason is logged.
func loadJSON(ctx context.Context, store ports.KeyValueStore, logger *log.Logger, key string, dst any) bool {
	raw, ok, err := store.Load(ctx, key)
	if err != nil {
		logger.Warn("failed to load, using defaults", "key", key, "err", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		logger.Warn("discarding unreadable value", "key", key, "err", err)
		return false
	}
	return true
}

// saveJSON encodes v under key. Failures are logged and swallowed: the
// in-memory state stays authoritative for the rest of the session.
func saveJSON(ctx context.Context, store ports.KeyValueStore, logger *log.Logger, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		logger.Error("failed to encode", "key", key, "err", err)
		return
	}
	if err := store.Save(ctx, key, raw); err != nil {
		logger.Warn("failed to persist", "key", key, "err", fmt.Errorf("failed to save %s: %w", key, err))
	}
}

// orDiscard returns logger, or a logger that drops everything when nil.
func orDiscard(logger *log.Logger) *log.Logger {
	if logger != nil {
		return logger
	}
	return logging.Discard()
}
