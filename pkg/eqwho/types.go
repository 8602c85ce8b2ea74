package eqwho

import (
	"github.com/eqwho/eqwho-go/internal/classmap"
	"github.com/eqwho/eqwho-go/internal/parser"
	"github.com/eqwho/eqwho-go/pkg/eqwho/snapshot"
)

// Re-export entity types for convenience. Users can import just
// "github.com/eqwho/eqwho-go/pkg/eqwho" and use eqwho.Snapshot etc.

// Snapshot is one captured /who roster result.
type Snapshot = snapshot.Snapshot

// PlayerEntry is one player row extracted from a snapshot during export.
type PlayerEntry = snapshot.PlayerEntry

// TimestampLayout is the EverQuest log timestamp format,
// e.g. "Wed Oct 16 14:23:45 2024".
const TimestampLayout = parser.TimestampLayout

// NormalizeClass maps a free-form class token (base name, level title, or
// abbreviation) to its canonical class name. Unrecognized tokens pass
// through unchanged.
func NormalizeClass(raw string) string {
	return classmap.Normalize(raw)
}
