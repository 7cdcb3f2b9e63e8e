package storage

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// flakyStore fails every operation once broken is set.
type flakyStore struct {
	*MemoryStore
	broken bool
	calls  int
}

var errDisk = errors.New("disk I/O error")

func (f *flakyStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	f.calls++
	if f.broken {
		return nil, false, errDisk
	}
	return f.MemoryStore.Load(ctx, key)
}

func (f *flakyStore) Save(ctx context.Context, key string, value []byte) error {
	f.calls++
	if f.broken {
		return errDisk
	}
	return f.MemoryStore.Save(ctx, key, value)
}

func (f *flakyStore) Delete(ctx context.Context, key string) error {
	f.calls++
	if f.broken {
		return errDisk
	}
	return f.MemoryStore.Delete(ctx, key)
}

func TestDegrading_HealthyPassesThrough(t *testing.T) {
	ctx := context.Background()
	primary := &flakyStore{MemoryStore: NewMemoryStore()}
	store := NewDegrading(primary, nil)

	if err := store.Save(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	value, ok, _ := primary.MemoryStore.Load(ctx, "k")
	if !ok || string(value) != "v" {
		t.Errorf("primary value = %q, %v", value, ok)
	}
	if store.Degraded() {
		t.Error("store degraded without a failure")
	}
}

func TestDegrading_FallsBackAfterFailure(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	logger := log.New(&logs)

	primary := &flakyStore{MemoryStore: NewMemoryStore()}
	_ = primary.MemoryStore.Save(ctx, "settings", []byte("persisted"))
	store := NewDegrading(primary, logger)

	// Read once while healthy so the value is mirrored.
	if value, _, _ := store.Load(ctx, "settings"); string(value) != "persisted" {
		t.Fatalf("Load() = %q", value)
	}

	primary.broken = true

	if err := store.Save(ctx, "tasks", []byte("[]")); err != nil {
		t.Fatalf("Save() should swallow primary errors, got %v", err)
	}
	if !store.Degraded() {
		t.Fatal("store should be degraded after a failed save")
	}

	callsAfterDegrade := primary.calls
	value, ok, err := store.Load(ctx, "tasks")
	if err != nil || !ok || string(value) != "[]" {
		t.Errorf("Load(tasks) = %q, %v, %v", value, ok, err)
	}
	value, _, _ = store.Load(ctx, "settings")
	if string(value) != "persisted" {
		t.Errorf("Load(settings) = %q, want mirrored value", value)
	}
	_ = store.Save(ctx, "tasks", []byte("[1]"))
	if primary.calls != callsAfterDegrade {
		t.Error("primary should not be called once degraded")
	}

	if n := strings.Count(logs.String(), "storage unavailable"); n != 1 {
		t.Errorf("logged %d warnings, want exactly 1", n)
	}
}

func TestDegrading_LoadFailureDegrades(t *testing.T) {
	ctx := context.Background()
	primary := &flakyStore{MemoryStore: NewMemoryStore(), broken: true}
	store := NewDegrading(primary, nil)

	value, ok, err := store.Load(ctx, "missing")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ok || value != nil {
		t.Errorf("Load() = %q, %v", value, ok)
	}
	if !store.Degraded() {
		t.Error("expected degraded after failed load")
	}
}
