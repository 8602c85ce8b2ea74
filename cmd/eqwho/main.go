package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eqwho/eqwho-go/pkg/eqwho"
)

var (
	// Version information (set by ldflags)
	version = "dev"
	commit  = "none"
	date    = "unknown"

	// Global flags
	verbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "eqwho",
	Short: "EverQuest /who log tracker",
	Long: `eqwho tracks /who results in EverQuest log files.

It watches a per-character log file for /who command output, captures
each result as a snapshot, and can scan historical results or export a
roster as tab-separated rows for spreadsheets.

Enable logging in game with /log first; EverQuest only writes the log
file when logging is on.`,
	SilenceUsage: true, // Don't show usage on error
}

func init() {
	// Global flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose logging")

	// Add subcommands
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("eqwho %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

// resolveLogFile picks the log file to operate on: an explicit path wins,
// otherwise the most recently modified eqlog file in the given (or
// auto-detected) directory.
func resolveLogFile(explicit, dir string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return eqwho.FindLatestLogFile(dir)
}
