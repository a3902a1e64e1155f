// Package format renders durations, timestamps and counters for reports.
package format

import (
	"fmt"
	"math"

	"github.com/forPelevin/bvs/internal/types"
)

// Duration renders seconds as "12.5秒", "1分30秒" or "1小时1分钟". Each unit is
// floored independently; seconds are dropped at hour granularity.
func Duration(seconds float64) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%.1f秒", seconds)
	case seconds < 3600:
		minutes := int(seconds / 60)
		secs := int(math.Mod(seconds, 60))
		return fmt.Sprintf("%d分%d秒", minutes, secs)
	default:
		hours := int(seconds / 3600)
		minutes := int(math.Mod(seconds, 3600) / 60)
		return fmt.Sprintf("%d小时%d分钟", hours, minutes)
	}
}

// Timestamp renders seconds as MM:SS, truncating fractions.
func Timestamp(seconds float64) string {
	minutes := int(seconds / 60)
	secs := int(math.Mod(seconds, 60))
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// SRTTimestamp renders seconds as HH:MM:SS,mmm.
func SRTTimestamp(seconds float64) string {
	// Whole-millisecond offsets divided by 1000 can land just below the
	// intended value; the epsilon keeps 1.001 at 1001ms.
	ms := int64(math.Floor(seconds*1000 + 1e-6))
	hours := ms / 3_600_000
	ms -= hours * 3_600_000
	minutes := ms / 60_000
	ms -= minutes * 60_000
	secs := ms / 1000
	ms -= secs * 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, ms)
}

// Count abbreviates counts of ten thousand and above as "1.5万". Unknown
// counts pass through as their raw sentinel.
func Count(c types.Count) string {
	if c.Known && c.Float() >= 10_000 {
		return fmt.Sprintf("%.1f万", c.Float()/10_000)
	}
	return c.String()
}
