package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// defaultTarefarc is the starter configuration written by 'tarefa init'.
const defaultTarefarc = `defaults:
  user: local
  priority: MÉDIA
task_id:
  prefix: TAR
  pad_width: 5
sync:
  enable: false
  command: ""
`

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a tarefa data directory",
	Long: `Initialize a directory as a tarefa home: writes a starter .tarefarc
and creates the users/ directory. Safe to run on an existing home --
files that already exist are skipped and not overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		basePath := BasePath
		if len(args) > 0 {
			basePath = args[0]
		}
		absPath, err := filepath.Abs(basePath)
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}

		if err := os.MkdirAll(filepath.Join(absPath, "users"), 0o750); err != nil {
			return fmt.Errorf("creating users directory: %w", err)
		}

		rcPath := filepath.Join(absPath, ".tarefarc")
		if _, err := os.Stat(rcPath); err == nil {
			fmt.Printf("%s already exists, skipping\n", rcPath)
			return nil
		}
		if err := os.WriteFile(rcPath, []byte(defaultTarefarc), 0o600); err != nil {
			return fmt.Errorf("writing .tarefarc: %w", err)
		}

		fmt.Printf("Initialized tarefa home at %s\n", absPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
