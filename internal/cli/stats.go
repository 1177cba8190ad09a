package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statsSinceFlag string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show activity metrics derived from the event log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if MetricsCalc == nil {
			return fmt.Errorf("metrics not available (event log disabled)")
		}

		since := time.Time{}
		if statsSinceFlag != "" {
			day, err := parseDate(statsSinceFlag)
			if err != nil {
				return err
			}
			since = day
		}

		m, err := MetricsCalc.Calculate(since)
		if err != nil {
			return err
		}

		fmt.Printf("Events:          %d\n", m.EventCount)
		fmt.Printf("Tasks created:   %d\n", m.TasksCreated)
		fmt.Printf("Tasks updated:   %d\n", m.TasksUpdated)
		fmt.Printf("Tasks completed: %d\n", m.TasksCompleted)
		fmt.Printf("Tasks deleted:   %d\n", m.TasksDeleted)
		fmt.Printf("Syncs triggered: %d\n", m.SyncsTriggered)
		fmt.Printf("Syncs confirmed: %d\n", m.SyncsConfirmed)
		if m.OldestEvent != nil && m.NewestEvent != nil {
			fmt.Printf("Window:          %s .. %s\n",
				m.OldestEvent.Format(time.RFC3339), m.NewestEvent.Format(time.RFC3339))
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsSinceFlag, "since", "", "only count events on or after this date (YYYY-MM-DD)")
	rootCmd.AddCommand(statsCmd)
}
