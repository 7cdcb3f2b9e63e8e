package services

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/xvierd/striktflow/internal/domain"
	"github.com/xvierd/striktflow/internal/ports"
)

// MaxHistoryEntries bounds the stored history; older entries are dropped.
const MaxHistoryEntries = 500

// HistoryService records finished intervals. It is registered as a
// controller observer.
type HistoryService struct {
	store       ports.KeyValueStore
	gitDetector ports.GitDetector
	workingDir  string
	logger      *log.Logger

	mu      sync.Mutex
	records []domain.SessionRecord
	loaded  bool
}

var _ ports.SessionObserver = (*HistoryService)(nil)

// NewHistoryService creates a new history service. gitDetector may be nil.
func NewHistoryService(store ports.KeyValueStore, gitDetector ports.GitDetector, workingDir string, logger *log.Logger) *HistoryService {
	return &HistoryService{
		store:       store,
		gitDetector: gitDetector,
		workingDir:  workingDir,
		logger:      orDiscard(logger),
	}
}

// OnTick implements ports.SessionObserver.
func (s *HistoryService) OnTick(domain.SessionState) {}

// OnIntervalExpired implements ports.SessionObserver.
func (s *HistoryService) OnIntervalExpired(ev domain.IntervalExpired) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := s.Record(ctx, ev); err != nil {
		s.logger.Warn("failed to record interval", "err", err)
	}
}

// Record appends an entry for ev. Focus intervals are tagged with the git
// branch and commit of the working directory when available.
func (s *HistoryService) Record(ctx context.Context, ev domain.IntervalExpired) (domain.SessionRecord, error) {
	record := domain.NewSessionRecord(ev)

	if ev.Previous == domain.ModeFocus && s.gitDetector != nil && s.gitDetector.IsAvailable(s.workingDir) {
		info, err := s.gitDetector.Detect(ctx, s.workingDir)
		if err == nil && info != nil {
			record.SetGitContext(info.Branch, info.Commit)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
	s.records = append(s.records, record)
	if len(s.records) > MaxHistoryEntries {
		s.records = s.records[len(s.records)-MaxHistoryEntries:]
	}
	saveJSON(ctx, s.store, s.logger, ports.KeyHistory, s.records)
	return record, nil
}

// Recent returns up to n records, newest first. n <= 0 returns all.
func (s *HistoryService) Recent(ctx context.Context, n int) []domain.SessionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)

	count := len(s.records)
	if n > 0 && n < count {
		count = n
	}
	result := make([]domain.SessionRecord, 0, count)
	for i := len(s.records) - 1; i >= 0 && len(result) < count; i-- {
		result = append(result, s.records[i])
	}
	return result
}

// GetDailyStats aggregates the records that ended on the same day as day.
func (s *HistoryService) GetDailyStats(ctx context.Context, day time.Time) domain.DailyStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)

	y, m, d := day.Local().Date()
	stats := domain.DailyStats{Date: time.Date(y, m, d, 0, 0, 0, 0, time.Local)}
	for _, r := range s.records {
		if !domain.SameDay(r.EndTime, day) {
			continue
		}
		if r.Mode == domain.ModeFocus {
			stats.FocusSessions++
			stats.TotalFocusTime += r.EndTime.Sub(r.StartTime)
		} else {
			stats.BreaksTaken++
		}
	}
	return stats
}

func (s *HistoryService) loadLocked(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true
	var records []domain.SessionRecord
	if loadJSON(ctx, s.store, s.logger, ports.KeyHistory, &records) {
		s.records = records
	}
}
