package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tarefalabs/tarefa/internal/observability"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Inspect and drive the sync queue",
	Long: `Commands around the dirty-flag sync queue.

tarefa only marks records as needing sync; the synchronizer itself is an
external program. 'sync pending' lists the queue, 'sync run' fires the
configured trigger by hand, and 'sync ack' clears the flag once a record
reached the remote system.`,
}

var syncPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List tasks waiting for synchronization",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Tasks == nil {
			return fmt.Errorf("task store not initialized")
		}
		dirty, err := Tasks.ListDirty(currentUser())
		if err != nil {
			return err
		}
		if len(dirty) == 0 {
			fmt.Println("Nothing to sync.")
			return nil
		}

		fmt.Printf("%d task(s) pending sync:\n", len(dirty))
		for _, t := range dirty {
			fmt.Printf("  %s  %s (updated %s)\n", t.ID, t.Title, t.UpdatedAt.Format(time.RFC3339))
		}
		return nil
	},
}

var syncAckCmd = &cobra.Command{
	Use:   "ack <task-id>",
	Short: "Clear the dirty flag after a task reached the remote system",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Tasks == nil {
			return fmt.Errorf("task store not initialized")
		}
		user := currentUser()
		if err := Tasks.MarkSynced(args[0], user); err != nil {
			return err
		}
		if EventLog != nil {
			_ = EventLog.Write(observability.Event{
				Time:    time.Now().UTC(),
				Level:   "INFO",
				Type:    "sync.confirmed",
				Message: fmt.Sprintf("task %s synced", args[0]),
				Data:    map[string]any{"task_id": args[0], "user_id": user},
			})
		}
		fmt.Printf("Task %s marked as synced.\n", args[0])
		return nil
	},
}

var syncRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Fire the configured sync trigger",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Syncer == nil {
			return fmt.Errorf("sync trigger not initialized")
		}
		if Cfg == nil || !Cfg.SyncEnabled || Cfg.SyncCommand == "" {
			fmt.Println("Sync is disabled; set sync.enable and sync.command in .tarefarc.")
			return nil
		}
		Syncer.Notify()
		fmt.Println("Sync trigger fired.")
		return nil
	},
}

func init() {
	syncCmd.AddCommand(syncPendingCmd)
	syncCmd.AddCommand(syncAckCmd)
	syncCmd.AddCommand(syncRunCmd)
	rootCmd.AddCommand(syncCmd)
}
