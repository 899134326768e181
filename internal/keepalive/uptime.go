// Package keepalive keeps the process warm on free-tier hosting: a
// periodic self-ping so the platform does not idle the dyno, and a
// scheduler that probes the Telegram API and reports stats to the admin.
package keepalive

import (
	"fmt"
	"strings"
	"time"
)

// FormatUptime renders a duration as "1д 2ч 3м 4с", dropping leading
// zero units.
func FormatUptime(d time.Duration) string {
	seconds := int64(d.Seconds())
	if seconds < 0 {
		seconds = 0
	}

	days := seconds / (3600 * 24)
	seconds -= days * 3600 * 24
	hours := seconds / 3600
	seconds -= hours * 3600
	minutes := seconds / 60
	seconds -= minutes * 60

	var sb strings.Builder
	if days > 0 {
		fmt.Fprintf(&sb, "%dд ", days)
	}
	if hours > 0 {
		fmt.Fprintf(&sb, "%dч ", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(&sb, "%dм ", minutes)
	}
	fmt.Fprintf(&sb, "%dс", seconds)
	return sb.String()
}
