// Package internal provides the App struct that wires all components of
// tarefa together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tarefalabs/tarefa/internal/cli"
	"github.com/tarefalabs/tarefa/internal/core"
	"github.com/tarefalabs/tarefa/internal/observability"
	"github.com/tarefalabs/tarefa/internal/storage"
)

// App holds all service dependencies for tarefa.
type App struct {
	BasePath string

	// Configuration
	Config *core.Config

	// Storage layer
	Tasks   storage.TaskStore
	Filters storage.FilterStore

	// Core services
	TaskMgr core.TaskManager
	IDGen   core.TaskIDGenerator
	Syncer  core.SyncNotifier

	// Observability
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
}

// NewApp creates and wires all components. basePath is the directory
// where all data is stored (typically ~/.tarefa or the directory
// containing .tarefarc).
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	cfg, err := core.LoadConfig(basePath)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	app.Config = cfg

	// --- Storage layer ---
	app.Tasks = storage.NewTaskStore(basePath)
	app.Filters = storage.NewFilterStore(basePath)

	// --- Observability ---
	eventLogPath := filepath.Join(basePath, ".tarefa_events.jsonl")
	if err := os.MkdirAll(basePath, 0o750); err == nil {
		if log, logErr := observability.NewJSONLEventLog(eventLogPath); logErr == nil {
			app.EventLog = log
			app.MetricsCalc = observability.NewMetricsCalculator(log)
		}
		// Non-fatal: observability stays disabled if the log can't be created.
	}

	// --- Core services ---
	app.IDGen = core.NewTaskIDGenerator(basePath, cfg.TaskIDPrefix, cfg.TaskIDPadWidth)

	if cfg.SyncEnabled && cfg.SyncCommand != "" {
		app.Syncer = &syncEventNotifier{
			next:   core.NewCommandSyncNotifier(cfg.SyncCommand, basePath),
			events: app.EventLog,
		}
	} else {
		// No hook configured: nothing fires, so nothing is recorded either.
		app.Syncer = core.NoopSyncNotifier{}
	}

	app.TaskMgr = core.NewTaskManager(app.Tasks, app.IDGen, app.Syncer, observability.NewRecorder(app.EventLog))

	// --- CLI layer ---
	cli.BasePath = basePath
	cli.Cfg = cfg
	cli.TaskMgr = app.TaskMgr
	cli.Tasks = app.Tasks
	cli.Filters = app.Filters
	cli.Syncer = app.Syncer
	cli.EventLog = app.EventLog
	cli.MetricsCalc = app.MetricsCalc

	return app, nil
}

// syncEventNotifier wraps the command hook and records a sync.triggered
// event each time it fires. Only a real hook is wrapped; with sync
// disabled the event would count triggers that did nothing.
type syncEventNotifier struct {
	next   core.SyncNotifier
	events observability.EventLog
}

func (n *syncEventNotifier) Notify() {
	observability.NewRecorder(n.events).Record("sync.triggered", "sync trigger fired", nil)
	n.next.Notify()
}

// ResolveBasePath determines the tarefa home directory: the TAREFA_HOME
// environment variable when set, otherwise the nearest ancestor of the
// working directory containing a .tarefarc, otherwise ~/.tarefa.
func ResolveBasePath() string {
	if home := os.Getenv("TAREFA_HOME"); home != "" {
		return home
	}

	dir, err := os.Getwd()
	if err == nil {
		for {
			if _, statErr := os.Stat(filepath.Join(dir, ".tarefarc")); statErr == nil {
				return dir
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".tarefa")
	}
	cwd, _ := os.Getwd()
	return cwd
}
