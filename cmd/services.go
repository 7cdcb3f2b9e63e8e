package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/xvierd/striktflow/internal/adapters/audio"
	"github.com/xvierd/striktflow/internal/adapters/clock"
	"github.com/xvierd/striktflow/internal/adapters/git"
	"github.com/xvierd/striktflow/internal/adapters/notification"
	"github.com/xvierd/striktflow/internal/adapters/storage"
	"github.com/xvierd/striktflow/internal/config"
	"github.com/xvierd/striktflow/internal/logging"
	"github.com/xvierd/striktflow/internal/ports"
	"github.com/xvierd/striktflow/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	config    *config.Config
	logger    *log.Logger
	logOut    io.WriteCloser
	storage   *storage.Degrading
	settings  *services.SettingsService
	tasks     *services.TaskService
	deadlines *services.DeadlineService
	history   *services.HistoryService
	state     *services.StateService
	git       ports.GitDetector
	notifier  *notification.Notifier
	cues      ports.AudioCue
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices(ctx context.Context) error {
	// Load configuration
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		cfg = config.DefaultConfig()
	}
	app.config = cfg

	// Initialize logging
	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	out, err := logging.OpenOutput(cfg.Log.File)
	if err != nil {
		return err
	}
	app.logOut = out
	app.logger, err = logging.New(out, level)
	if err != nil {
		return err
	}
	if cfgErr != nil {
		app.logger.Warn("using default configuration", "err", cfgErr)
	}

	// Initialize storage
	primary, err := openStore(cfg)
	if err != nil {
		app.logger.Warn("storage unavailable, continuing in memory", "err", err)
		primary = storage.NewMemoryStore()
	}
	app.storage = storage.NewDegrading(primary, app.logger)

	// Initialize adapters
	app.git = git.NewDetector()
	app.notifier = notification.New(&cfg.Notifications, app.logger)
	app.cues = audio.NewPlayer(app.logger)

	// Initialize services
	workingDir, _ := os.Getwd()
	app.settings = services.NewSettingsService(app.storage, app.logger)
	app.tasks = services.NewTaskService(app.storage, app.logger)
	app.deadlines = services.NewDeadlineService(app.storage, app.logger)
	app.history = services.NewHistoryService(app.storage, app.git, workingDir, app.logger)
	app.state = services.NewStateService(app.settings, app.tasks, app.deadlines, app.history)

	app.tasks.Load(ctx)
	app.deadlines.Load(ctx)

	return nil
}

// openStore opens the configured primary key-value store.
func openStore(cfg *config.Config) (ports.KeyValueStore, error) {
	if cfg.Storage.Backend == "memory" {
		return storage.NewMemoryStore(), nil
	}

	path := dbPath
	if path == "" {
		path = config.GetDBPath(cfg)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	store, err := storage.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return store, nil
}

// newController builds a session controller from the persisted settings
// and subscribes history and notifications to it.
func newController(ctx context.Context) *services.SessionController {
	settings := app.settings.Load(ctx)
	ticker := clock.NewTicker(time.Duration(app.config.UI.TickInterval))

	ctrl := services.NewSessionController(settings, ticker, app.cues, app.settings, app.logger)
	ctrl.AddObserver(app.history)
	ctrl.AddObserver(app.notifier)
	app.state.SetController(ctrl)
	return ctrl
}

// cleanupServices closes all resources.
func cleanupServices() error {
	var err error
	if app.storage != nil {
		err = app.storage.Close()
		app.storage = nil
	}
	if app.logOut != nil {
		_ = app.logOut.Close()
		app.logOut = nil
	}
	return err
}

// setupSignalHandler returns a context that is cancelled on interrupt
// signals.
func setupSignalHandler(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
