package eqwho

import (
	"bufio"
	"context"
	"errors"
	"iter"
	"os"
	"sort"
	"time"

	"github.com/eqwho/eqwho-go/internal/parser"
)

// ParseText segments text into roster snapshots. The returned sequence is
// lazy, finite, and restartable: the same input always yields the same
// output. Unrecognized lines are carried in snapshot bodies; a record
// still pending at end of input is discarded, never emitted partially.
func ParseText(text string) iter.Seq[Snapshot] {
	return parser.Parse(text)
}

// ParseTimestamp best-effort parses a log timestamp string. It never
// fails: unparsable input falls back to the current time, so a record is
// never rejected solely because its timestamp is malformed.
func ParseTimestamp(s string) time.Time {
	return parser.ParseTimestamp(s)
}

// ParseFile parses a log file from the beginning and returns an iterator
// over roster snapshots, independent of any live tail offset. The file is
// opened lazily on first iteration, so the returned iterator is cheap to
// create but must be consumed to release resources.
//
// The iterator yields (Snapshot, error) pairs. File open errors and read
// errors are yielded once and stop iteration; context cancellation yields
// ctx.Err() and stops. Parse anomalies are never errors: unmatched lines
// are skipped per the grammar.
func ParseFile(ctx context.Context, path string) iter.Seq2[Snapshot, error] {
	if path == "" {
		return func(yield func(Snapshot, error) bool) {
			yield(Snapshot{}, errors.New("eqwho: path required"))
		}
	}

	return func(yield func(Snapshot, error) bool) {
		file, err := os.Open(path)
		if err != nil {
			yield(Snapshot{}, err)
			return
		}
		defer file.Close()

		scanner := bufio.NewScanner(file)
		// Increase buffer size for long lines
		buf := make([]byte, 0, 64*1024)
		scanner.Buffer(buf, 512*1024)

		var asm parser.Assembler
		for scanner.Scan() {
			if err := ctx.Err(); err != nil {
				yield(Snapshot{}, err)
				return
			}

			snap, ok := asm.Feed(scanner.Text())
			if !ok {
				continue
			}
			if !yield(snap, nil) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			yield(Snapshot{}, err)
		}
	}
}

// ScanSince reads the entire file and returns the roster snapshots whose
// parsed timestamp is at or after cutoff, sorted ascending by parsed time
// regardless of file order (out-of-order log writes are tolerated).
// Records with unparsable timestamps sort as "now" and are therefore
// always included for any reasonable cutoff.
func ScanSince(ctx context.Context, path string, cutoff time.Time) ([]Snapshot, error) {
	var snaps []Snapshot
	for snap, err := range ParseFile(ctx, path) {
		if err != nil {
			return nil, err
		}
		if snap.Time.Before(cutoff) {
			continue
		}
		snaps = append(snaps, snap)
	}

	sort.SliceStable(snaps, func(i, j int) bool {
		return snaps[i].Time.Before(snaps[j].Time)
	})
	return snaps, nil
}
