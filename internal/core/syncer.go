package core

import (
	"os/exec"
	"runtime"
)

// SyncNotifier is the external synchronization trigger: a zero-argument
// notification invoked after a successful local save of a dirty task. The
// core fires it and moves on; no result is consumed and local filtering
// and display never depend on it.
type SyncNotifier interface {
	Notify()
}

// NoopSyncNotifier discards notifications. Used when no sync hook is
// configured or sync is disabled.
type NoopSyncNotifier struct{}

// Notify does nothing.
func (NoopSyncNotifier) Notify() {}

// CommandSyncNotifier launches a configured shell command as the sync
// hook. The command is started in the background and never awaited, so a
// slow or failing synchronizer cannot stall an edit.
type CommandSyncNotifier struct {
	// Command is the shell command line to run, e.g. "tarefa-syncd push".
	Command string
	// Dir is the working directory for the hook (typically the base path).
	Dir string
}

// NewCommandSyncNotifier creates a notifier that runs command from dir.
func NewCommandSyncNotifier(command, dir string) *CommandSyncNotifier {
	return &CommandSyncNotifier{Command: command, Dir: dir}
}

// Notify starts the hook command, fire-and-forget. Start failures are
// swallowed: sync is best-effort and the local save already succeeded.
func (n *CommandSyncNotifier) Notify() {
	if n.Command == "" {
		return
	}

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/C", n.Command)
	} else {
		cmd = exec.Command("sh", "-c", n.Command)
	}
	cmd.Dir = n.Dir

	if err := cmd.Start(); err != nil {
		return
	}
	go func() { _ = cmd.Wait() }()
}
