package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eqwho/eqwho-go/pkg/eqwho"
)

var (
	// watch flags
	watchLogFile     string
	watchLogDir      string
	watchFormat      string
	watchMinutesBack int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Monitor a log file and output /who snapshots",
	Long: `Monitor an EverQuest log file in real-time and output each /who
result as it is captured.

Only /who results written after the watch starts are captured; use
--minutes-back to also load recent historical results first. Duplicate
results (same text and timestamp, e.g. from scrollback re-logging) are
suppressed.

Snapshots are output as JSON Lines by default (one JSON object per
line), which makes it easy to process with tools like jq.

Examples:
  # Watch the most recently played character (auto-detect log directory)
  eqwho watch

  # Watch a specific log file
  eqwho watch --log-file ~/EverQuest/Logs/eqlog_Accosted_project1999.txt

  # Specify the log directory, pick the newest character log in it
  eqwho watch --log-dir ~/EverQuest/Logs

  # Load the last hour of results before following
  eqwho watch --minutes-back 60

  # Human-readable output
  eqwho watch --format pretty

  # Pipe to jq for filtering
  eqwho watch | jq 'select(.location == "Kael Drakkal")'`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchLogFile, "log-file", "l", "",
		"Log file to watch (newest eqlog file picked if not specified)")
	watchCmd.Flags().StringVarP(&watchLogDir, "log-dir", "d", "",
		"EverQuest log directory (auto-detected if not specified)")
	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", "jsonl",
		"Output format: jsonl, pretty, rows")
	watchCmd.Flags().IntVarP(&watchMinutesBack, "minutes-back", "m", 0,
		"Also load /who results from the last N minutes before following")

	registerFormatCompletion(watchCmd, "format")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if !ValidFormats[watchFormat] {
		return fmt.Errorf("invalid format %q: must be one of: jsonl, pretty, rows", watchFormat)
	}
	if watchMinutesBack < 0 {
		return fmt.Errorf("--minutes-back must be non-negative")
	}

	logFile, err := resolveLogFile(watchLogFile, watchLogDir)
	if err != nil {
		return err
	}

	// Setup context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var sessionOpts []eqwho.SessionOption
	if verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		sessionOpts = append(sessionOpts, eqwho.WithLogger(logger))
	}

	session, err := eqwho.NewSession(sessionOpts...)
	if err != nil {
		return err
	}
	defer session.Close()

	if err := session.SelectFile(logFile); err != nil {
		return err
	}

	if watchMinutesBack > 0 {
		n, err := session.LoadHistorical(ctx, watchMinutesBack)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "loaded %d historical snapshot(s) from the last %s\n",
			n, eqwho.FormatSpan(watchMinutesBack))
		for _, snap := range session.Snapshots() {
			if err := OutputSnapshot(watchFormat, snap, os.Stdout); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
		}
	}

	snaps, errs, err := session.StartMonitoring(ctx)
	if err != nil {
		return err
	}

	// Output loop
	for {
		select {
		case snap, ok := <-snaps:
			if !ok {
				return nil // Channel closed
			}
			if err := OutputSnapshot(watchFormat, snap, os.Stdout); err != nil {
				return fmt.Errorf("output error: %w", err)
			}

		case err, ok := <-errs:
			if !ok {
				return nil // Channel closed
			}
			// Always output errors to stderr
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)

		case <-ctx.Done():
			return nil
		}
	}
}
