package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eqwho/eqwho-go/pkg/eqwho"
)

var (
	// export flags
	exportLogDir string
	exportAll    bool
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the latest /who roster as tab-separated rows",
	Long: `Export the players of the most recent /who result as tab-separated
rows, ready to paste into a spreadsheet.

Each row is: 0<TAB>name<TAB>level<TAB>class. Anonymous players get
level 0 and class Unknown; era class titles are normalized to base
class names (e.g. Phantasmist becomes Enchanter).

Examples:
  # Export the latest roster from the newest character log
  eqwho export

  # Export from a specific file
  eqwho export ~/EverQuest/Logs/eqlog_Accosted_project1999.txt

  # Export every /who result in the file
  eqwho export --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportLogDir, "log-dir", "d", "",
		"EverQuest log directory (auto-detected if not specified)")
	exportCmd.Flags().BoolVar(&exportAll, "all", false,
		"Export every /who result in the file, not just the latest")
}

func runExport(cmd *cobra.Command, args []string) error {
	var explicit string
	if len(args) > 0 {
		explicit = args[0]
	}
	logFile, err := resolveLogFile(explicit, exportLogDir)
	if err != nil {
		return err
	}

	// Setup context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var latest eqwho.Snapshot
	var found bool
	for snap, err := range eqwho.ParseFile(ctx, logFile) {
		if err != nil {
			return err
		}
		latest = snap
		found = true

		if exportAll {
			if err := OutputRows(snap, os.Stdout); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
		}
	}

	if exportAll {
		return nil
	}
	if !found {
		return fmt.Errorf("no /who results found in %s", logFile)
	}

	rows := eqwho.ExportRows(latest)
	if rows == "" {
		return fmt.Errorf("latest /who result in %s: %w", logFile, eqwho.ErrNoEntries)
	}
	fmt.Println(rows)
	return nil
}
