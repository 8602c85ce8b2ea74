package parser

import (
	"strconv"
	"time"
)

// TimestampLayout is the EverQuest log timestamp format,
// e.g. "Wed Oct 16 14:23:45 2024".
const TimestampLayout = "Mon Jan 2 15:04:05 2006"

// timeNow is stubbed in tests.
var timeNow = time.Now

// ParseTimestamp best-effort parses a log timestamp string. Parsing never
// rejects a record: when the primary layout fails, the current year is
// assumed; when that fails too, the current wall clock is returned so the
// record still sorts as recent.
func ParseTimestamp(s string) time.Time {
	if t, err := time.ParseInLocation(TimestampLayout, s, time.Local); err == nil {
		return t
	}
	withYear := s + " " + strconv.Itoa(timeNow().Year())
	if t, err := time.ParseInLocation(TimestampLayout, withYear, time.Local); err == nil {
		return t
	}
	return timeNow()
}
