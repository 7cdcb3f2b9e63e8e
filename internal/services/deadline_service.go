package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/xvierd/striktflow/internal/domain"
	"github.com/xvierd/striktflow/internal/ports"
)

// DeadlineService manages the list of named deadlines.
type DeadlineService struct {
	store  ports.KeyValueStore
	logger *log.Logger

	mu        sync.RWMutex
	deadlines []domain.Deadline
}

// UpcomingDeadline is a deadline together with its countdown.
type UpcomingDeadline struct {
	domain.Deadline
	DaysLeft int `json:"daysLeft"`
}

// NewDeadlineService creates a new deadline service. Call Load before use.
func NewDeadlineService(store ports.KeyValueStore, logger *log.Logger) *DeadlineService {
	return &DeadlineService{store: store, logger: orDiscard(logger)}
}

// Load reads the deadline list from the store.
func (s *DeadlineService) Load(ctx context.Context) {
	var deadlines []domain.Deadline
	loadJSON(ctx, s.store, s.logger, ports.KeyDeadlines, &deadlines)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.deadlines = deadlines
}

// AddDeadline validates and appends a deadline.
func (s *DeadlineService) AddDeadline(ctx context.Context, name, date string) (*domain.Deadline, error) {
	deadline, err := domain.NewDeadline(name, date)
	if err != nil {
		return nil, fmt.Errorf("invalid deadline: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.deadlines = append(s.deadlines, *deadline)
	s.persistLocked(ctx)
	return deadline, nil
}

// DeleteDeadline removes the deadline with id.
func (s *DeadlineService) DeleteDeadline(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.deadlines {
		if s.deadlines[i].ID == id {
			s.deadlines = append(s.deadlines[:i], s.deadlines[i+1:]...)
			s.persistLocked(ctx)
			return nil
		}
	}
	return fmt.Errorf("failed to delete deadline %s: %w", id, domain.ErrDeadlineNotFound)
}

// ListDeadlines returns the deadlines in insertion order.
func (s *DeadlineService) ListDeadlines() []domain.Deadline {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Deadline(nil), s.deadlines...)
}

// Upcoming returns all deadlines sorted by date with their days left.
func (s *DeadlineService) Upcoming(now time.Time) []UpcomingDeadline {
	deadlines := s.ListDeadlines()
	result := make([]UpcomingDeadline, 0, len(deadlines))
	for _, d := range deadlines {
		result = append(result, UpcomingDeadline{Deadline: d, DaysLeft: d.DaysLeft(now)})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result
}

// ResolveDeadline finds a deadline by exact id, unique id prefix, or name.
func (s *DeadlineService) ResolveDeadline(query string) (*domain.Deadline, error) {
	query = strings.TrimSpace(query)
	deadlines := s.ListDeadlines()

	var prefixed []domain.Deadline
	for _, d := range deadlines {
		if d.ID == query {
			return &d, nil
		}
		if query != "" && strings.HasPrefix(d.ID, query) {
			prefixed = append(prefixed, d)
		}
	}
	if len(prefixed) == 1 {
		return &prefixed[0], nil
	}
	for _, d := range deadlines {
		if strings.EqualFold(d.Name, query) {
			return &d, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrDeadlineNotFound, query)
}

func (s *DeadlineService) persistLocked(ctx context.Context) {
	deadlines := s.deadlines
	if deadlines == nil {
		deadlines = []domain.Deadline{}
	}
	saveJSON(ctx, s.store, s.logger, ports.KeyDeadlines, deadlines)
}
