package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// gestureSurface sits behind the widget content and turns drags and taps on
// its empty parts into touches. Buttons on top keep their own taps.
type gestureSurface struct {
	widget.BaseWidget

	onStart func(x, y float32)
	onEnd   func(x, y float32)
	onTap   func()

	dragging bool
	last     fyne.Position
}

func newGestureSurface(onStart, onEnd func(x, y float32), onTap func()) *gestureSurface {
	s := &gestureSurface{onStart: onStart, onEnd: onEnd, onTap: onTap}
	s.ExtendBaseWidget(s)
	return s
}

func (s *gestureSurface) Tapped(_ *fyne.PointEvent) {
	if s.onTap != nil {
		s.onTap()
	}
}

func (s *gestureSurface) Dragged(e *fyne.DragEvent) {
	if !s.dragging {
		s.dragging = true
		start := e.Position.Subtract(e.Dragged)
		if s.onStart != nil {
			s.onStart(start.X, start.Y)
		}
	}
	s.last = e.Position
}

func (s *gestureSurface) DragEnd() {
	if !s.dragging {
		return
	}
	s.dragging = false
	if s.onEnd != nil {
		s.onEnd(s.last.X, s.last.Y)
	}
}

func (s *gestureSurface) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(color.Transparent))
}

// swatch is a tappable color chip for the text color palette.
type swatch struct {
	widget.BaseWidget
	hex      string
	rect     *canvas.Rectangle
	selected bool
	action   func(hex string)
}

func newSwatch(hex string, c color.Color, action func(string)) *swatch {
	r := canvas.NewRectangle(c)
	r.CornerRadius = 14
	r.StrokeColor = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x40}
	r.StrokeWidth = 1
	s := &swatch{hex: hex, rect: r, action: action}
	s.ExtendBaseWidget(s)
	return s
}

func (s *swatch) SetSelected(on bool) {
	if s.selected == on {
		return
	}
	s.selected = on
	if on {
		s.rect.StrokeWidth = 3
		s.rect.StrokeColor = color.White
	} else {
		s.rect.StrokeWidth = 1
		s.rect.StrokeColor = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x40}
	}
	canvas.Refresh(s.rect)
}

func (s *swatch) Tapped(_ *fyne.PointEvent) {
	if s.action != nil {
		s.action(s.hex)
	}
}

func (s *swatch) MinSize() fyne.Size {
	return fyne.NewSize(28, 28)
}

func (s *swatch) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.rect)
}
