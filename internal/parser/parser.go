// Package parser implements the /who snapshot grammar: segmenting log text
// into roster snapshots between a start and an end marker line, and
// extracting player entries from snapshot bodies.
package parser

import (
	"iter"
	"regexp"
	"strings"

	"github.com/eqwho/eqwho-go/pkg/eqwho/snapshot"
)

// StartMarker opens a roster snapshot when it appears anywhere in a line.
const StartMarker = "Players on EverQuest:"

// End marker substrings. A line closes a pending snapshot when it contains
// both.
const (
	endMarkerCount = "There are"
	endMarkerZone  = "players in"
)

var (
	timestampPrefixRe = regexp.MustCompile(`^\[([^\]]+)\]`)
	locationRe        = regexp.MustCompile(`There are \d+ players in (.+)\.`)
	countRe           = regexp.MustCompile(`There are (\d+) players`)
)

// LineKind tags the role a trimmed log line plays in the snapshot grammar.
type LineKind int

const (
	// LineUnrecognized matches none of the known patterns. Not an error:
	// unrecognized lines are carried in snapshot bodies verbatim and
	// skipped during export.
	LineUnrecognized LineKind = iota

	// LineStartMarker opens a snapshot.
	LineStartMarker

	// LineEndMarker closes a snapshot ("There are N players in Zone.").
	LineEndMarker

	// LineLeveledEntry is a "[<level> <class title>] <name> ..." player row.
	LineLeveledEntry

	// LineAnonymousEntry is an "[ANONYMOUS] <name>" player row.
	LineAnonymousEntry
)

// Classify reports which grammar alternative a line matches. Attempts are
// ordered: marker lines win over entry patterns.
func Classify(line string) LineKind {
	switch {
	case strings.Contains(line, StartMarker):
		return LineStartMarker
	case isEndMarker(line):
		return LineEndMarker
	case leveledEntryRe.MatchString(line):
		return LineLeveledEntry
	case anonymousEntryRe.MatchString(line):
		return LineAnonymousEntry
	}
	return LineUnrecognized
}

func isEndMarker(line string) bool {
	return strings.Contains(line, endMarkerCount) && strings.Contains(line, endMarkerZone)
}

// Assembler is the snapshot segmentation state machine. Feed it one line
// at a time; it emits a snapshot whenever an end marker closes a pending
// record. The live monitoring path keeps one Assembler across poll
// deliveries so a snapshot split between reads is still captured.
type Assembler struct {
	pending   bool
	timestamp string
	lines     []string
}

// Feed consumes one raw log line. The line is trimmed of surrounding
// whitespace; blank lines are skipped and never open or close a record.
// Returns the completed snapshot and true when the line closed one.
func (a *Assembler) Feed(raw string) (snapshot.Snapshot, bool) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return snapshot.Snapshot{}, false
	}

	switch Classify(line) {
	case LineStartMarker:
		// A new start marker discards any unterminated record.
		a.pending = true
		a.timestamp = startTimestamp(line)
		a.lines = []string{line}
		return snapshot.Snapshot{}, false

	case LineEndMarker:
		if !a.pending {
			return snapshot.Snapshot{}, false
		}
		a.lines = append(a.lines, line)
		snap := build(a.timestamp, a.lines)
		a.Reset()
		return snap, true

	default:
		// Entry and unrecognized lines alike are carried verbatim in the
		// pending record's body.
		if a.pending {
			a.lines = append(a.lines, line)
		}
		return snapshot.Snapshot{}, false
	}
}

// Reset discards any pending record.
func (a *Assembler) Reset() {
	a.pending = false
	a.timestamp = ""
	a.lines = nil
}

// Parse segments text into roster snapshots. The returned sequence is lazy,
// finite, and restartable: the same input always yields the same output.
// A record still pending at end of input is not emitted.
func Parse(text string) iter.Seq[snapshot.Snapshot] {
	return func(yield func(snapshot.Snapshot) bool) {
		var asm Assembler
		for _, line := range strings.Split(text, "\n") {
			if snap, ok := asm.Feed(line); ok {
				if !yield(snap) {
					return
				}
			}
		}
	}
}

// startTimestamp extracts the bracketed timestamp prefix from a start
// marker line, substituting the formatted wall clock when absent.
func startTimestamp(line string) string {
	if m := timestampPrefixRe.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return timeNow().Format(TimestampLayout)
}

// build assembles the emitted snapshot from the accumulated lines.
// Location and player count are derived from the raw text so they remain
// re-derivable from RawText alone.
func build(timestamp string, lines []string) snapshot.Snapshot {
	raw := strings.Join(lines, "\n")

	location := snapshot.UnknownLocation
	if m := locationRe.FindStringSubmatch(raw); m != nil {
		location = m[1]
	}

	count := snapshot.UnknownCount
	if m := countRe.FindStringSubmatch(raw); m != nil {
		count = m[1]
	}

	return snapshot.Snapshot{
		Timestamp:    timestamp,
		Time:         ParseTimestamp(timestamp),
		RawText:      raw,
		Location:     location,
		PlayerCount:  count,
		DisplayLabel: "[" + timestamp + "] " + count + " players in " + location,
	}
}
