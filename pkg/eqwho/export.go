package eqwho

import (
	"fmt"
	"strings"

	"github.com/eqwho/eqwho-go/internal/classmap"
	"github.com/eqwho/eqwho-go/internal/parser"
)

// Entries extracts the player rows from a snapshot's raw text. Marker
// lines, separators, and the closing summary are skipped; a leading
// bracketed timestamp is stripped from entry lines; classes of leveled
// entries are normalized while anonymous entries keep the literal
// "Unknown". Lines matching no entry pattern are silently skipped.
//
// Entries are recomputed from RawText on each call, never cached.
func Entries(snap Snapshot) []PlayerEntry {
	var entries []PlayerEntry
	for _, raw := range strings.Split(snap.RawText, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" ||
			strings.Contains(line, parser.StartMarker) ||
			strings.HasPrefix(line, "---") ||
			strings.HasPrefix(line, "There are") {
			continue
		}

		line = parser.StripTimestampPrefix(line)

		entry, kind := parser.ParseEntry(line)
		switch kind {
		case parser.LineLeveledEntry:
			entry.Class = classmap.Normalize(entry.Class)
		case parser.LineAnonymousEntry:
			// Class is forced to the literal "Unknown"; normalization is
			// bypassed for anonymous players.
		default:
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// ExportRows renders a snapshot in the tab-separated roster format
// consumed by guild-management tools: one line per player,
// "0\t<Name>\t<Level>\t<Class>", joined by newlines with no trailing
// newline. A snapshot with no parseable entries yields the empty string,
// which callers treat as "nothing to export" rather than an error.
func ExportRows(snap Snapshot) string {
	entries := Entries(snap)
	if len(entries) == 0 {
		return ""
	}

	rows := make([]string, len(entries))
	for i, e := range entries {
		rows[i] = fmt.Sprintf("0\t%s\t%d\t%s", e.Name, e.Level, e.Class)
	}
	return strings.Join(rows, "\n")
}
