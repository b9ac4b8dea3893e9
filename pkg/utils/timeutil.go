// Package utils holds small helpers shared by the CLI and the HTTP server.
package utils

import (
	"time"
)

// ICT is Indochina Time (UTC+7), the zone the proposal is presented in.
var ICT *time.Location

func init() {
	var err error
	ICT, err = time.LoadLocation("Asia/Ho_Chi_Minh")
	if err != nil {
		// Fallback: create fixed zone if tz database is not available
		ICT = time.FixedZone("ICT", 7*60*60)
	}
}

// NowICT returns the current time in ICT.
func NowICT() time.Time {
	return time.Now().In(ICT)
}

// ToICT converts a time.Time to ICT.
func ToICT(t time.Time) time.Time {
	return t.In(ICT)
}

// ParseDateICT parses a date string in "2006-01-02" format and returns it in ICT.
func ParseDateICT(dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, ICT)
}

// FormatDateICT formats a time.Time to "2006-01-02" in ICT.
func FormatDateICT(t time.Time) string {
	return t.In(ICT).Format("2006-01-02")
}

// FormatDateTimeICT formats a time.Time to "2006-01-02 15:04:05 ICT".
func FormatDateTimeICT(t time.Time) string {
	return t.In(ICT).Format("2006-01-02 15:04:05") + " ICT"
}

// FormatVietnameseDate formats a date for the page footer's update line,
// e.g. "ngày 14 tháng 10 năm 2026".
func FormatVietnameseDate(t time.Time) string {
	t = t.In(ICT)
	return "ngày " + itoa(t.Day()) + " tháng " + itoa(int(t.Month())) + " năm " + itoa(t.Year())
}

// Uptime returns the time elapsed since start, rounded to the second.
func Uptime(start time.Time) time.Duration {
	return time.Since(start).Round(time.Second)
}
