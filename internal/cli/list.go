package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/tarefalabs/tarefa/internal/core"
	"github.com/tarefalabs/tarefa/pkg/models"
)

// Flag values for "task list".
var (
	listOrderFlag string
	listTagsFlag  []string
	listFromFlag  string
	listToFlag    string
	listSavedFlag bool
	listAllFlag   bool
)

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, optionally filtered and ordered",
	Long: `List the user's tasks.

With --saved the last filter applied through 'tarefa filter' is used.
Ad-hoc criteria can be given instead: --order for priority ordering,
--tag (repeatable; a task matches when it carries at least one of the
given tags), and --from/--to for an inclusive due-date range. Date
bounds snap to day boundaries: --from to 00:00:00 and --to to 23:59:59.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}
		user := currentUser()

		filter, err := resolveListFilter(user)
		if err != nil {
			return err
		}

		tasks, err := TaskMgr.ListTasks(user, filter)
		if err != nil {
			return err
		}
		if !listAllFlag {
			tasks = withoutCompleted(tasks)
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}
		renderTaskTable(tasks)
		if filter.IsActive() {
			fmt.Printf("%d active filter criteria\n", filter.ActiveCount())
		}
		return nil
	},
}

// resolveListFilter builds the filter descriptor from --saved or from the
// ad-hoc flags. Combining --saved with ad-hoc criteria is rejected so the
// command never silently merges two filter sources.
func resolveListFilter(user string) (models.FilterOptions, error) {
	adHoc := listOrderFlag != "" || len(listTagsFlag) > 0 || listFromFlag != "" || listToFlag != ""
	if listSavedFlag && adHoc {
		return models.FilterOptions{}, fmt.Errorf("--saved cannot be combined with --order/--tag/--from/--to")
	}

	if listSavedFlag {
		saved, err := Filters.LoadFilter(user)
		if err != nil {
			return models.FilterOptions{}, err
		}
		if saved == nil {
			return models.EmptyFilter(), nil
		}
		return *saved, nil
	}

	filter := models.EmptyFilter()
	switch listOrderFlag {
	case "":
	case string(models.SortHighToLow):
		filter.OrderBy = models.SortHighToLow
	case string(models.SortLowToHigh):
		filter.OrderBy = models.SortLowToHigh
	default:
		return models.FilterOptions{}, fmt.Errorf("unknown order %q (want high-to-low or low-to-high)", listOrderFlag)
	}

	for _, raw := range listTagsFlag {
		tag, err := core.NormalizeTag(raw)
		if err != nil {
			return models.FilterOptions{}, err
		}
		filter.Tags = append(filter.Tags, tag)
	}

	if listFromFlag != "" {
		from, err := parseDate(listFromFlag)
		if err != nil {
			return models.FilterOptions{}, err
		}
		start := core.StartOfDay(from)
		filter.DateFrom = &start
	}
	if listToFlag != "" {
		to, err := parseDate(listToFlag)
		if err != nil {
			return models.FilterOptions{}, err
		}
		end := core.EndOfDay(to)
		filter.DateTo = &end
	}
	return filter, nil
}

// parseDate parses a bare YYYY-MM-DD date in the local timezone.
func parseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q (want YYYY-MM-DD)", value)
	}
	return t, nil
}

func withoutCompleted(tasks []models.Task) []models.Task {
	var open []models.Task
	for _, t := range tasks {
		if !t.IsCompleted {
			open = append(open, t)
		}
	}
	return open
}

// renderTaskTable prints the tasks as a table, priority colored the way
// the app has always colored its chips.
func renderTaskTable(tasks []models.Task) {
	w := table.NewWriter()
	w.SetOutputMirror(os.Stdout)
	w.SetStyle(table.StyleRounded)
	w.Style().Options.SeparateRows = false

	w.AppendHeader(table.Row{"ID", "Title", "Priority", "Due", "Tags", "Status"})
	for _, t := range tasks {
		status := "open"
		if t.IsCompleted {
			status = "done"
		}
		if t.NeedsSync {
			status += " *"
		}
		w.AppendRow(table.Row{
			t.ID,
			t.Title,
			colorPriority(t.Priority),
			t.DueDate.Format("2006-01-02"),
			strings.Join(t.Tags, ", "),
			status,
		})
	}
	w.Render()
}

func colorPriority(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return text.FgRed.Sprint(string(p))
	case models.PriorityMedium:
		return text.FgYellow.Sprint(string(p))
	case models.PriorityLow:
		return text.FgGreen.Sprint(string(p))
	default:
		return string(p)
	}
}

func init() {
	taskListCmd.Flags().StringVar(&listOrderFlag, "order", "", "priority ordering: high-to-low or low-to-high")
	taskListCmd.Flags().StringSliceVar(&listTagsFlag, "tag", nil, "keep tasks carrying at least one of these tags")
	taskListCmd.Flags().StringVar(&listFromFlag, "from", "", "inclusive due-date lower bound (YYYY-MM-DD)")
	taskListCmd.Flags().StringVar(&listToFlag, "to", "", "inclusive due-date upper bound (YYYY-MM-DD)")
	taskListCmd.Flags().BoolVar(&listSavedFlag, "saved", false, "use the last filter applied via 'tarefa filter'")
	taskListCmd.Flags().BoolVar(&listAllFlag, "all", false, "include completed tasks")
}
