package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatBytes formats a byte count for build summaries.
// e.g., 512 → "512 B", 1536 → "1.5 KB", 2621440 → "2.5 MB"
func FormatBytes(n int64) string {
	v := float64(n)
	switch {
	case v >= 1<<20:
		return formatWithDecimals(v/(1<<20)) + " MB"
	case v >= 1<<10:
		return formatWithDecimals(v/(1<<10)) + " KB"
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// FormatPct formats a whole percentage, e.g. 55 → "55%".
func FormatPct(pct int) string {
	return strconv.Itoa(pct) + "%"
}

// formatWithDecimals formats a number with up to 2 decimal places,
// removing trailing zeros.
func formatWithDecimals(n float64) string {
	s := fmt.Sprintf("%.2f", n)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
