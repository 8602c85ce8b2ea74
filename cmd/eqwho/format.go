package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/eqwho/eqwho-go/pkg/eqwho"
)

// ValidFormats maps accepted --format values.
var ValidFormats = map[string]bool{
	"jsonl":  true,
	"pretty": true,
	"rows":   true,
}

// FormatNames returns the valid format names in display order.
func FormatNames() []string {
	return []string{"jsonl", "pretty", "rows"}
}

// OutputSnapshot writes a snapshot to w in the given format.
func OutputSnapshot(format string, snap eqwho.Snapshot, w io.Writer) error {
	switch format {
	case "jsonl":
		return OutputJSON(snap, w)
	case "pretty":
		return OutputPretty(snap, w)
	case "rows":
		return OutputRows(snap, w)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// OutputJSON writes a snapshot as a single JSON line.
func OutputJSON(snap eqwho.Snapshot, w io.Writer) error {
	return json.NewEncoder(w).Encode(snap)
}

// OutputPretty writes a human-readable summary: the snapshot's display
// label followed by one indented line per parsed player.
func OutputPretty(snap eqwho.Snapshot, w io.Writer) error {
	if _, err := fmt.Fprintln(w, snap.DisplayLabel); err != nil {
		return err
	}
	for _, entry := range eqwho.Entries(snap) {
		if _, err := fmt.Fprintf(w, "  %s, level %d %s\n",
			entry.Name, entry.Level, entry.Class); err != nil {
			return err
		}
	}
	return nil
}

// OutputRows writes the tab-separated roster rows, one player per line.
// A snapshot with no parseable players produces no output.
func OutputRows(snap eqwho.Snapshot, w io.Writer) error {
	rows := eqwho.ExportRows(snap)
	if rows == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, rows)
	return err
}
