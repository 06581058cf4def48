package main

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
)

func TestGestureSurfaceReportsDragEnds(t *testing.T) {
	var starts, ends []fyne.Position
	s := newGestureSurface(
		func(x, y float32) { starts = append(starts, fyne.NewPos(x, y)) },
		func(x, y float32) { ends = append(ends, fyne.NewPos(x, y)) },
		nil,
	)

	s.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(190, 100)},
		Dragged:    fyne.NewDelta(-10, 0),
	})
	s.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(120, 104)},
		Dragged:    fyne.NewDelta(-70, 4),
	})
	s.DragEnd()

	if len(starts) != 1 || starts[0] != fyne.NewPos(200, 100) {
		t.Fatalf("starts = %v, want one at (200,100)", starts)
	}
	if len(ends) != 1 || ends[0] != fyne.NewPos(120, 104) {
		t.Fatalf("ends = %v, want one at (120,104)", ends)
	}

	// A stray DragEnd without a drag is ignored.
	s.DragEnd()
	if len(ends) != 1 {
		t.Fatalf("unexpected extra end: %v", ends)
	}
}

func TestGestureSurfaceTap(t *testing.T) {
	taps := 0
	s := newGestureSurface(nil, nil, func() { taps++ })
	s.Tapped(&fyne.PointEvent{})
	s.Tapped(&fyne.PointEvent{})
	if taps != 2 {
		t.Fatalf("taps = %d, want 2", taps)
	}
}

func TestSwatchSelection(t *testing.T) {
	test.NewTempApp(t)
	var picked string
	sw := newSwatch("#FCD34D", nil, func(h string) { picked = h })
	sw.Tapped(&fyne.PointEvent{})
	if picked != "#FCD34D" {
		t.Fatalf("picked = %q", picked)
	}
	sw.SetSelected(true)
	if !sw.selected || sw.rect.StrokeWidth != 3 {
		t.Fatalf("selected swatch should have a thick stroke")
	}
	sw.SetSelected(false)
	if sw.selected || sw.rect.StrokeWidth != 1 {
		t.Fatalf("deselected swatch should have a thin stroke")
	}
}
