package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/xvierd/striktflow/internal/adapters/storage"
	"github.com/xvierd/striktflow/internal/domain"
	"github.com/xvierd/striktflow/internal/ports"
)

func setupTestStorage(t *testing.T) ports.KeyValueStore {
	t.Helper()
	store, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("Failed to create test storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// manualTicks is a TickSource driven by the test.
type manualTicks struct {
	mu      sync.Mutex
	fn      func()
	starts  int
	stops   int
	history []func()
}

func (m *manualTicks) Start(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fn = fn
	m.starts++
	m.history = append(m.history, fn)
}

func (m *manualTicks) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fn = nil
	m.stops++
}

// fire invokes the active callback n times.
func (m *manualTicks) fire(n int) {
	for i := 0; i < n; i++ {
		m.mu.Lock()
		fn := m.fn
		m.mu.Unlock()
		if fn == nil {
			return
		}
		fn()
	}
}

func (m *manualTicks) active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fn != nil
}

// recorder collects controller events.
type recorder struct {
	mu      sync.Mutex
	ticks   []int
	expired []domain.IntervalExpired
}

func (r *recorder) OnTick(s domain.SessionState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, s.TimeLeftSeconds)
}

func (r *recorder) OnIntervalExpired(ev domain.IntervalExpired) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expired = append(r.expired, ev)
}

// cueCounter counts audio requests.
type cueCounter struct {
	mu     sync.Mutex
	ticks  int
	chimes int
}

func (c *cueCounter) PlayTick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ticks++
}

func (c *cueCounter) PlayChime() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chimes++
}

// savedSettings records what the controller persisted.
type savedSettings struct {
	saved []domain.TimerSettings
}

func (s *savedSettings) Save(_ context.Context, settings domain.TimerSettings) {
	s.saved = append(s.saved, settings)
}

var errBroken = errors.New("storage broken")

// brokenStore fails every operation.
type brokenStore struct{}

func (brokenStore) Load(context.Context, string) ([]byte, bool, error) { return nil, false, errBroken }
func (brokenStore) Save(context.Context, string, []byte) error        { return errBroken }
func (brokenStore) Delete(context.Context, string) error              { return errBroken }
func (brokenStore) Close() error                                      { return nil }

// fakeGit reports a fixed repository context.
type fakeGit struct {
	available bool
}

func (f fakeGit) Detect(context.Context, string) (*ports.GitInfo, error) {
	return &ports.GitInfo{Branch: "main", Commit: "abc1234"}, nil
}

func (f fakeGit) IsAvailable(string) bool { return f.available }

func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }
