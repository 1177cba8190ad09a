package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// userFlag holds the persistent --user override; empty means the
// configured default user.
var userFlag string

var rootCmd = &cobra.Command{
	Use:   "tarefa",
	Short: "tarefa - local-first task manager",
	Long: `tarefa is a local-first task manager. Tasks live on this machine,
partitioned per user, and every edit is tracked with a dirty flag so an
external synchronizer can pick it up later.

It provides commands for creating and editing tasks, filtering and
ordering the task list, and inspecting the sync queue.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tarefa %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&userFlag, "user", "", "user whose tasks to operate on (default from .tarefarc)")
	rootCmd.AddCommand(versionCmd)
}

// currentUser resolves the user the command operates on: the --user flag
// when given, otherwise the configured default.
func currentUser() string {
	if userFlag != "" {
		return userFlag
	}
	if Cfg != nil && Cfg.DefaultUser != "" {
		return Cfg.DefaultUser
	}
	return "local"
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
