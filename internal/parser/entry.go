package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/eqwho/eqwho-go/pkg/eqwho/snapshot"
)

// Player entry patterns, attempted in order. The name capture takes the
// first token after the bracket; trailing race and guild annotations
// ("(Dark Elf) <Denial>") are ignored.
var (
	leveledEntryRe   = regexp.MustCompile(`^\[(\d+)\s+([A-Za-z ]+)\]\s+([A-Za-z0-9_]+)`)
	anonymousEntryRe = regexp.MustCompile(`^\[ANONYMOUS\]\s+([A-Za-z0-9_]+)`)
)

// AnonymousClass is the class recorded for anonymous players. It is a
// literal, not a normalization result: anonymous entries bypass the alias
// table entirely.
const AnonymousClass = "Unknown"

// StripTimestampPrefix removes a leading bracketed timestamp from a line
// when it is followed by a second bracketed segment ("[ts] [60 ...]"),
// leaving bare entry lines untouched.
func StripTimestampPrefix(line string) string {
	if strings.HasPrefix(line, "[") && strings.Contains(line, "] [") {
		if _, rest, ok := strings.Cut(line, "] "); ok {
			return rest
		}
	}
	return line
}

// ParseEntry extracts a player entry from a snapshot body line. The class
// is returned as written in the log; normalization is the exporter's job.
// Anonymous entries carry level 0 and AnonymousClass. Lines matching
// neither pattern return LineUnrecognized and are silently skipped by
// callers.
func ParseEntry(line string) (snapshot.PlayerEntry, LineKind) {
	if m := leveledEntryRe.FindStringSubmatch(line); m != nil {
		level, _ := strconv.Atoi(m[1])
		return snapshot.PlayerEntry{
			Name:  m[3],
			Level: level,
			Class: strings.TrimSpace(m[2]),
		}, LineLeveledEntry
	}
	if m := anonymousEntryRe.FindStringSubmatch(line); m != nil {
		return snapshot.PlayerEntry{
			Name:  m[1],
			Level: 0,
			Class: AnonymousClass,
		}, LineAnonymousEntry
	}
	return snapshot.PlayerEntry{}, LineUnrecognized
}
