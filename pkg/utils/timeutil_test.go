package utils

import (
	"testing"
	"time"
)

func TestNowICT(t *testing.T) {
	now := NowICT()
	if now.Location().String() != "Asia/Ho_Chi_Minh" && now.Location().String() != "ICT" {
		t.Errorf("NowICT() location = %s, want Asia/Ho_Chi_Minh or ICT", now.Location().String())
	}
	_, offset := now.Zone()
	if offset != 7*60*60 {
		t.Errorf("NowICT() offset = %d, want +7h", offset)
	}
}

func TestToICT(t *testing.T) {
	utc := time.Date(2026, 10, 14, 20, 0, 0, 0, time.UTC)
	got := ToICT(utc)
	if got.Day() != 15 || got.Hour() != 3 {
		t.Errorf("ToICT(%v) = %v, want 2026-10-15 03:00", utc, got)
	}
}

func TestParseDateICT(t *testing.T) {
	d, err := ParseDateICT("2026-10-14")
	if err != nil {
		t.Fatalf("ParseDateICT failed: %v", err)
	}
	if d.Year() != 2026 || d.Month() != 10 || d.Day() != 14 {
		t.Errorf("ParseDateICT = %v, want 2026-10-14", d)
	}
	if _, err := ParseDateICT("14/10/2026"); err == nil {
		t.Error("ParseDateICT should reject non-ISO dates")
	}
}

func TestFormatDateICT(t *testing.T) {
	d := time.Date(2026, 10, 14, 10, 30, 0, 0, ICT)
	if got := FormatDateICT(d); got != "2026-10-14" {
		t.Errorf("FormatDateICT = %s, want 2026-10-14", got)
	}
	if got := FormatDateTimeICT(d); got != "2026-10-14 10:30:00 ICT" {
		t.Errorf("FormatDateTimeICT = %s", got)
	}
}

func TestFormatVietnameseDate(t *testing.T) {
	d := time.Date(2026, 3, 5, 9, 0, 0, 0, ICT)
	if got := FormatVietnameseDate(d); got != "ngày 5 tháng 3 năm 2026" {
		t.Errorf("FormatVietnameseDate = %q", got)
	}
}

func TestUptime(t *testing.T) {
	start := time.Now().Add(-90 * time.Second)
	got := Uptime(start)
	if got < 89*time.Second || got > 91*time.Second {
		t.Errorf("Uptime = %v, want ~90s", got)
	}
}
