package services

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/xvierd/striktflow/internal/domain"
	"github.com/xvierd/striktflow/internal/ports"
)

// SettingsService loads and persists the user's timer settings.
type SettingsService struct {
	store  ports.KeyValueStore
	logger *log.Logger
}

// NewSettingsService creates a new settings service.
func NewSettingsService(store ports.KeyValueStore, logger *log.Logger) *SettingsService {
	return &SettingsService{store: store, logger: orDiscard(logger)}
}

// Load returns the stored settings, or the defaults when nothing usable is
// stored. Fields absent from the stored blob keep their default values.
func (s *SettingsService) Load(ctx context.Context) domain.TimerSettings {
	settings := domain.DefaultSettings()
	if !loadJSON(ctx, s.store, s.logger, ports.KeySettings, &settings) {
		return domain.DefaultSettings()
	}

	if settings.ThemeID == "" {
		settings.ThemeID = domain.DefaultThemeID
	}
	if _, ok := domain.LookupTheme(settings.ThemeID); !ok {
		settings.ThemeID = domain.ResolveTheme(settings.ThemeID).ID
	}
	if err := settings.Validate(); err != nil {
		s.logger.Warn("stored settings are invalid, using defaults", "err", err)
		return domain.DefaultSettings()
	}
	return settings
}

// Save persists settings. Failures are logged, never returned.
func (s *SettingsService) Save(ctx context.Context, settings domain.TimerSettings) {
	saveJSON(ctx, s.store, s.logger, ports.KeySettings, settings)
}

// Update applies patch to the stored settings and persists the result.
// An invalid patch is rejected as a whole.
func (s *SettingsService) Update(ctx context.Context, patch domain.SettingsPatch) (domain.TimerSettings, error) {
	current := s.Load(ctx)
	merged := patch.Apply(current)
	if err := merged.Validate(); err != nil {
		return current, fmt.Errorf("failed to update settings: %w", err)
	}
	s.Save(ctx, merged)
	return merged, nil
}
