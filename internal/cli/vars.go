package cli

import (
	"github.com/tarefalabs/tarefa/internal/core"
	"github.com/tarefalabs/tarefa/internal/observability"
	"github.com/tarefalabs/tarefa/internal/storage"
)

// Service instances shared by the commands, set during app initialization.
var (
	BasePath    string
	Cfg         *core.Config
	TaskMgr     core.TaskManager
	Tasks       storage.TaskStore
	Filters     storage.FilterStore
	Syncer      core.SyncNotifier
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
)
