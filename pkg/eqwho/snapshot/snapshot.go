// Package snapshot defines the roster snapshot entity produced by /who
// log parsing.
//
// This package is separated from the main eqwho package to avoid import
// cycles between pkg/eqwho and internal/parser.
package snapshot

import "time"

// UnknownLocation is the location recorded when the closing summary line
// carries no recognizable zone name.
const UnknownLocation = "Unknown"

// UnknownCount is the player count recorded when the closing summary line
// carries no count.
const UnknownCount = "?"

// Snapshot is one captured /who result: the full text between the
// "Players on EverQuest:" marker and the "There are ... players in ..."
// summary line.
type Snapshot struct {
	// Timestamp is the log-supplied time string, taken verbatim from the
	// bracketed prefix of the start marker line.
	Timestamp string `json:"timestamp"`

	// Time is the best-effort parsed value of Timestamp. It is used only
	// for ordering and cutoff filtering, never for display.
	Time time.Time `json:"time"`

	// RawText is the unmodified multi-line span of the snapshot,
	// start marker through summary line inclusive.
	RawText string `json:"raw_text"`

	// Location is the zone name from the summary line, or UnknownLocation.
	Location string `json:"location"`

	// PlayerCount is the count digits from the summary line, or UnknownCount.
	PlayerCount string `json:"player_count"`

	// DisplayLabel is the derived listing summary, computed once at creation.
	DisplayLabel string `json:"display_label"`
}

// Same reports whether two snapshots are duplicates. Identity is full
// raw-text plus timestamp equality; two distinct in-game snapshots that
// happen to render identical text are treated as one.
func (s Snapshot) Same(other Snapshot) bool {
	return s.RawText == other.RawText && s.Timestamp == other.Timestamp
}

// PlayerEntry is one player row extracted from a snapshot's raw text
// during export. Entries are transient: they are recomputed from RawText
// on each export and never persisted.
type PlayerEntry struct {
	Name  string `json:"name"`
	Level int    `json:"level"` // 0 when unknown (anonymous players)
	Class string `json:"class"` // already normalized
}
