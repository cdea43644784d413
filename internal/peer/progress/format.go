package progress

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatBytes renders a byte count for humans ("16 MiB").
func FormatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

// FormatRate renders bytes per second.
func FormatRate(rate float64) string {
	if rate <= 0 {
		return "0 B/s"
	}
	return humanize.IBytes(uint64(rate)) + "/s"
}

// FormatETA renders the remaining time, or "unknown" when it cannot be estimated.
func FormatETA(s Snapshot) string {
	if !s.ETAKnown {
		return "unknown"
	}
	return FormatDuration(s.ETA)
}

// FormatDuration renders durations as "1h 2m", "3m 4s" or "5s".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d.Seconds())
	h, m, sec := total/3600, (total%3600)/60, total%60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, sec)
	default:
		return fmt.Sprintf("%ds", sec)
	}
}
