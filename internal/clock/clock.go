// Package clock formats the lock-screen clock.
package clock

import "time"

const (
	TimeLayout = "15:04"
	DateLayout = "Monday, January 2"
	// Tick is how often renderers refresh the clock.
	Tick = time.Second
)

func Time(t time.Time) string {
	return t.Format(TimeLayout)
}

func Date(t time.Time) string {
	return t.Format(DateLayout)
}
