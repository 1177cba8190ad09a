package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tarefalabs/tarefa/pkg/models"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Edit, show or clear the saved task filter",
	Long: `Open the interactive filter picker. The picker offers a priority
ordering, the tags collected from the user's tasks, and an inclusive
due-date range. Applying saves the filter for 'tarefa task list --saved';
cancelling leaves the saved filter untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil || Filters == nil {
			return fmt.Errorf("filter services not initialized")
		}
		user := currentUser()

		availableTags, err := TaskMgr.AvailableTags(user)
		if err != nil {
			return err
		}
		current, err := Filters.LoadFilter(user)
		if err != nil {
			return err
		}

		applied, err := runFilterPicker(availableTags, current)
		if err != nil {
			return err
		}
		if applied == nil {
			fmt.Println("Cancelled; saved filter unchanged.")
			return nil
		}

		if err := Filters.SaveFilter(user, *applied); err != nil {
			return err
		}
		printFilter(*applied)
		return nil
	},
}

var filterShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved filter as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Filters == nil {
			return fmt.Errorf("filter store not initialized")
		}
		saved, err := Filters.LoadFilter(currentUser())
		if err != nil {
			return err
		}
		if saved == nil {
			fmt.Println("No saved filter.")
			return nil
		}

		data, err := json.MarshalIndent(saved, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling filter: %w", err)
		}
		fmt.Println(string(data))
		return nil
	},
}

var filterClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the saved filter",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Filters == nil {
			return fmt.Errorf("filter store not initialized")
		}
		if err := Filters.ClearFilter(currentUser()); err != nil {
			return err
		}
		fmt.Println("Saved filter cleared.")
		return nil
	},
}

func printFilter(f models.FilterOptions) {
	if !f.IsActive() {
		fmt.Println("Applied empty filter (no criteria).")
		return
	}
	fmt.Println("Applied filter:")
	if f.OrderBy != models.SortNone {
		fmt.Printf("  Order:  %s\n", f.OrderBy)
	}
	if len(f.Tags) > 0 {
		fmt.Printf("  Tags:   %s\n", strings.Join(f.Tags, ", "))
	}
	if f.DateFrom != nil {
		fmt.Printf("  From:   %s\n", f.DateFrom.Format("2006-01-02"))
	}
	if f.DateTo != nil {
		fmt.Printf("  To:     %s\n", f.DateTo.Format("2006-01-02"))
	}
}

func init() {
	filterCmd.AddCommand(filterShowCmd)
	filterCmd.AddCommand(filterClearCmd)
	rootCmd.AddCommand(filterCmd)
}
