package core

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/tarefalabs/tarefa/pkg/models"
)

// Config holds system-wide settings read from the .tarefarc file.
type Config struct {
	// DefaultUser is the user whose tasks commands operate on when no
	// --user flag is given.
	DefaultUser string
	// DefaultPriority is assigned to new tasks created without --priority.
	DefaultPriority models.Priority
	// TaskIDPrefix and TaskIDPadWidth control generated task IDs.
	TaskIDPrefix   string
	TaskIDPadWidth int
	// SyncEnabled gates the sync trigger; SyncCommand is the shell command
	// the trigger runs when enabled.
	SyncEnabled bool
	SyncCommand string
}

// DefaultConfig returns the settings used when no .tarefarc exists.
func DefaultConfig() *Config {
	return &Config{
		DefaultUser:     "local",
		DefaultPriority: models.PriorityMedium,
		TaskIDPrefix:    "TAR",
		TaskIDPadWidth:  5,
		SyncEnabled:     false,
		SyncCommand:     "",
	}
}

// LoadConfig reads the .tarefarc YAML file from basePath using Viper.
// A missing file yields the defaults; a malformed one is an error.
func LoadConfig(basePath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName(".tarefarc")
	v.SetConfigType("yaml")
	v.AddConfigPath(basePath)

	v.SetDefault("defaults.user", cfg.DefaultUser)
	v.SetDefault("defaults.priority", string(cfg.DefaultPriority))
	v.SetDefault("task_id.prefix", cfg.TaskIDPrefix)
	v.SetDefault("task_id.pad_width", cfg.TaskIDPadWidth)
	v.SetDefault("sync.enable", cfg.SyncEnabled)
	v.SetDefault("sync.command", cfg.SyncCommand)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading .tarefarc: %w", err)
	}

	cfg.DefaultUser = v.GetString("defaults.user")
	cfg.DefaultPriority = models.Priority(v.GetString("defaults.priority"))
	cfg.TaskIDPrefix = v.GetString("task_id.prefix")
	cfg.TaskIDPadWidth = v.GetInt("task_id.pad_width")
	cfg.SyncEnabled = v.GetBool("sync.enable")
	cfg.SyncCommand = v.GetString("sync.command")

	if !cfg.DefaultPriority.Valid() {
		return nil, fmt.Errorf("reading .tarefarc: unknown default priority %q", cfg.DefaultPriority)
	}
	return cfg, nil
}
