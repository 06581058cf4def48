package clock

import (
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	ts := time.Date(2026, time.March, 9, 7, 5, 59, 0, time.UTC)
	if got := Time(ts); got != "07:05" {
		t.Fatalf("Time() = %q, want %q", got, "07:05")
	}
	if got := Date(ts); got != "Monday, March 9" {
		t.Fatalf("Date() = %q, want %q", got, "Monday, March 9")
	}
	if got := Time(ts.Add(13 * time.Hour)); got != "20:05" {
		t.Fatalf("Time() = %q, want 24-hour clock", got)
	}
}
