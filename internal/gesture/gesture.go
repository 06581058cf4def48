// Package gesture classifies single-finger touches into swipes and taps.
package gesture

import (
	"math"
	"sync"
	"time"
)

const (
	// SwipeThreshold is the minimum travel, in touch units, of a swipe.
	SwipeThreshold = 50.0
	// DoubleTapWindow is the maximum gap between the two taps of a double tap.
	DoubleTapWindow = 300 * time.Millisecond
)

type Kind int

const (
	None Kind = iota
	Horizontal
	Vertical
)

func (k Kind) String() string {
	switch k {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "none"
	}
}

type Direction int

const (
	NoDirection Direction = iota
	Next
	Previous
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Next:
		return "next"
	case Previous:
		return "previous"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "none"
	}
}

// Result is the outcome of one touch.
type Result struct {
	Kind      Kind
	Direction Direction
}

// Classify resolves a touch from start to end. Dragging left (finger moves
// toward smaller x) advances to the next item; dragging down gives Down.
func Classify(startX, startY, endX, endY float64) Result {
	diffX := startX - endX
	diffY := startY - endY
	ax, ay := math.Abs(diffX), math.Abs(diffY)

	switch {
	case ax > ay && ax > SwipeThreshold:
		if diffX > 0 {
			return Result{Kind: Horizontal, Direction: Next}
		}
		return Result{Kind: Horizontal, Direction: Previous}
	case ay > ax && ay > SwipeThreshold:
		if diffY < 0 {
			return Result{Kind: Vertical, Direction: Down}
		}
		return Result{Kind: Vertical, Direction: Up}
	default:
		return Result{}
	}
}

// Interpreter holds the start sample of the touch in progress.
type Interpreter struct {
	mu       sync.Mutex
	tracking bool
	startX   float64
	startY   float64
}

// Start records a touch start, replacing any unfinished one.
func (in *Interpreter) Start(x, y float64) {
	in.mu.Lock()
	in.tracking = true
	in.startX, in.startY = x, y
	in.mu.Unlock()
}

// End resolves the touch started by Start. An End without a Start is a no-op.
func (in *Interpreter) End(x, y float64) Result {
	in.mu.Lock()
	if !in.tracking {
		in.mu.Unlock()
		return Result{}
	}
	sx, sy := in.startX, in.startY
	in.tracking = false
	in.mu.Unlock()
	return Classify(sx, sy, x, y)
}

// Tracking reports whether a touch is in progress.
func (in *Interpreter) Tracking() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.tracking
}

// IsDoubleTap reports whether a tap at now completes a double tap begun at
// last. A zero last never does.
func IsDoubleTap(last, now time.Time) bool {
	if last.IsZero() {
		return false
	}
	gap := now.Sub(last)
	return gap >= 0 && gap < DoubleTapWindow
}
