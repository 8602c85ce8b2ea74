package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eqwho/eqwho-go/pkg/eqwho"
)

var (
	// scan flags
	scanLogDir      string
	scanFormat      string
	scanMinutesBack int
	scanSince       string
)

var scanCmd = &cobra.Command{
	Use:   "scan [file]",
	Short: "Scan a log file for historical /who snapshots",
	Long: `Scan an EverQuest log file and output the /who results recorded
within a time window, oldest first.

Unlike 'watch', this command processes the existing file contents
without real-time following.

Common windows: 15 (quarter hour), 60 (hour), 180, 360, 1440 (day).

Examples:
  # Last hour of /who results from the newest character log
  eqwho scan

  # A wider window from a specific file
  eqwho scan --minutes-back 1440 ~/EverQuest/Logs/eqlog_Accosted_project1999.txt

  # Everything since an absolute timestamp
  eqwho scan --since "2024-10-16T12:00:00Z"

  # Human-readable output
  eqwho scan --format pretty`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanLogDir, "log-dir", "d", "",
		"EverQuest log directory (auto-detected if not specified)")
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "jsonl",
		"Output format: jsonl, pretty, rows")
	scanCmd.Flags().IntVarP(&scanMinutesBack, "minutes-back", "m", 60,
		"Include /who results from the last N minutes")
	scanCmd.Flags().StringVar(&scanSince, "since", "",
		"Include /who results at/after timestamp (RFC3339 format, e.g., 2024-10-16T12:00:00Z)")

	registerFormatCompletion(scanCmd, "format")
}

func runScan(cmd *cobra.Command, args []string) error {
	if !ValidFormats[scanFormat] {
		return fmt.Errorf("invalid format %q: must be one of: jsonl, pretty, rows", scanFormat)
	}

	cutoff, err := scanCutoff(scanSince, scanMinutesBack, cmd.Flags().Changed("minutes-back"))
	if err != nil {
		return err
	}

	var explicit string
	if len(args) > 0 {
		explicit = args[0]
	}
	logFile, err := resolveLogFile(explicit, scanLogDir)
	if err != nil {
		return err
	}

	// Setup context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snaps, err := eqwho.ScanSince(ctx, logFile, cutoff)
	if err != nil {
		return err
	}

	for _, snap := range snaps {
		if err := OutputSnapshot(scanFormat, snap, os.Stdout); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}

	return nil
}

// scanCutoff derives the window start from --since or --minutes-back.
// minutesBackSet reports whether --minutes-back was given explicitly.
func scanCutoff(since string, minutesBack int, minutesBackSet bool) (time.Time, error) {
	if since != "" {
		if minutesBackSet {
			return time.Time{}, fmt.Errorf("--minutes-back and --since cannot be used together")
		}
		t, err := time.Parse(time.RFC3339, since)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --since format: %w (expected RFC3339, e.g., 2024-10-16T12:00:00Z)", err)
		}
		return t, nil
	}

	if minutesBack <= 0 {
		return time.Time{}, fmt.Errorf("--minutes-back must be positive")
	}
	return time.Now().Add(-time.Duration(minutesBack) * time.Minute), nil
}
