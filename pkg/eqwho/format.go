package eqwho

import "fmt"

// FormatFileSize renders a byte count in human-readable form: "0 B",
// "512.0 B", "1.5 KB", "2.3 MB".
func FormatFileSize(size int64) string {
	if size == 0 {
		return "0 B"
	}

	units := []string{"B", "KB", "MB", "GB"}
	value := float64(size)
	i := 0
	for value >= 1024 && i < len(units)-1 {
		value /= 1024
		i++
	}
	return fmt.Sprintf("%.1f %s", value, units[i])
}

// FormatSpan renders a minute count as a human-readable duration
// description: "45 minutes", "1 hour", "3 days".
func FormatSpan(minutes int) string {
	plural := func(n int, unit string) string {
		if n == 1 {
			return fmt.Sprintf("%d %s", n, unit)
		}
		return fmt.Sprintf("%d %ss", n, unit)
	}

	switch {
	case minutes < 60:
		return plural(minutes, "minute")
	case minutes < 24*60:
		return plural(minutes/60, "hour")
	default:
		return plural(minutes/(24*60), "day")
	}
}
