package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tarefalabs/tarefa/internal/core"
	"github.com/tarefalabs/tarefa/pkg/models"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks (add, edit, list, done, reopen, rm)",
	Long: `Unified task commands.

Create new tasks, edit existing ones, mark them done or reopen them,
and remove them. Every mutation marks the task dirty for the external
synchronizer.`,
}

// Flag values for "task add" and "task edit".
var (
	taskTitleFlag    string
	taskDescFlag     string
	taskDueFlag      string
	taskPriorityFlag string
	taskTagsFlag     []string
)

func addDraftFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&taskTitleFlag, "title", "", "task title")
	cmd.Flags().StringVar(&taskDescFlag, "desc", "", "task description")
	cmd.Flags().StringVar(&taskDueFlag, "due", "", "due date (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&taskPriorityFlag, "priority", "", "priority: BAIXA, MÉDIA or ALTA")
	cmd.Flags().StringSliceVar(&taskTagsFlag, "tags", nil, "comma-separated tags (uppercased, no spaces)")
}

// parseDueDate accepts a bare date or a full RFC3339 timestamp. A bare
// date lands at end-of-day so "due today" stays valid all day, matching
// how due dates are compared against start-of-day boundaries.
func parseDueDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing due date %q (want YYYY-MM-DD or RFC3339)", value)
	}
	return core.EndOfDay(t), nil
}

var taskAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new task",
	Long: `Create a new task. --title and --due are required; priority defaults
to the configured default. Tags are uppercased and deduplicated; tags
containing spaces are rejected.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}
		if taskDueFlag == "" {
			return fmt.Errorf("--due is required")
		}
		due, err := parseDueDate(taskDueFlag)
		if err != nil {
			return err
		}

		priority := models.Priority(strings.ToUpper(taskPriorityFlag))
		if taskPriorityFlag == "" {
			priority = Cfg.DefaultPriority
		}

		task, err := TaskMgr.CreateTask(currentUser(), core.TaskDraft{
			Title:       taskTitleFlag,
			Description: taskDescFlag,
			DueDate:     due,
			Priority:    priority,
			Tags:        taskTagsFlag,
		})
		if err != nil {
			return fmt.Errorf("adding task: %w", err)
		}

		fmt.Printf("Created task %s\n", task.ID)
		fmt.Printf("  Title:    %s\n", task.Title)
		fmt.Printf("  Due:      %s\n", task.DueDate.Format("2006-01-02"))
		fmt.Printf("  Priority: %s\n", task.Priority)
		if len(task.Tags) > 0 {
			fmt.Printf("  Tags:     %s\n", strings.Join(task.Tags, ", "))
		}
		return nil
	},
}

var taskEditCmd = &cobra.Command{
	Use:   "edit <task-id>",
	Short: "Edit an existing task",
	Long: `Edit a task's title, description, due date, priority or tags.
Flags that are not given keep the stored value. A successful edit stamps
the update time, marks the task dirty, and fires the sync trigger.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}
		user := currentUser()
		existing, err := TaskMgr.GetTask(user, args[0])
		if err != nil {
			return err
		}

		draft := core.TaskDraft{
			Title:       existing.Title,
			Description: existing.Description,
			DueDate:     existing.DueDate,
			Priority:    existing.Priority,
			Tags:        existing.Tags,
		}
		if cmd.Flags().Changed("title") {
			draft.Title = taskTitleFlag
		}
		if cmd.Flags().Changed("desc") {
			draft.Description = taskDescFlag
		}
		if cmd.Flags().Changed("due") {
			due, err := parseDueDate(taskDueFlag)
			if err != nil {
				return err
			}
			draft.DueDate = due
		}
		if cmd.Flags().Changed("priority") {
			draft.Priority = models.Priority(strings.ToUpper(taskPriorityFlag))
		}
		if cmd.Flags().Changed("tags") {
			draft.Tags = taskTagsFlag
		}

		task, err := TaskMgr.UpdateTask(user, args[0], draft)
		if err != nil {
			return err
		}
		fmt.Printf("Updated task %s\n", task.ID)
		return nil
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}
		task, err := TaskMgr.CompleteTask(currentUser(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Completed task %s: %s\n", task.ID, task.Title)
		return nil
	},
}

var taskReopenCmd = &cobra.Command{
	Use:   "reopen <task-id>",
	Short: "Reopen a completed task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}
		task, err := TaskMgr.ReopenTask(currentUser(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Reopened task %s: %s\n", task.ID, task.Title)
		return nil
	},
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <task-id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}
		if err := TaskMgr.DeleteTask(currentUser(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted task %s\n", args[0])
		return nil
	},
}

var taskShowCmd = &cobra.Command{
	Use:   "show <task-id>",
	Short: "Show a single task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}
		task, err := TaskMgr.GetTask(currentUser(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s  %s\n", task.ID, task.Title)
		if task.Description != "" {
			fmt.Printf("  Description: %s\n", task.Description)
		}
		fmt.Printf("  Due:         %s\n", task.DueDate.Format("2006-01-02 15:04"))
		fmt.Printf("  Priority:    %s\n", task.Priority)
		if len(task.Tags) > 0 {
			fmt.Printf("  Tags:        %s\n", strings.Join(task.Tags, ", "))
		}
		fmt.Printf("  Completed:   %v\n", task.IsCompleted)
		fmt.Printf("  Updated:     %s\n", task.UpdatedAt.Format(time.RFC3339))
		fmt.Printf("  Needs sync:  %v\n", task.NeedsSync)
		return nil
	},
}

var taskTagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the tags in use across the user's tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}
		tags, err := TaskMgr.AvailableTags(currentUser())
		if err != nil {
			return err
		}
		if len(tags) == 0 {
			fmt.Println("No tags in use.")
			return nil
		}
		for _, tag := range tags {
			fmt.Println(tag)
		}
		return nil
	},
}

func init() {
	addDraftFlags(taskAddCmd)
	addDraftFlags(taskEditCmd)

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskEditCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskReopenCmd)
	taskCmd.AddCommand(taskRmCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskTagsCmd)
	rootCmd.AddCommand(taskCmd)
}
