package main

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/promise/internal/style"
)

// Line height relative to the font size, as on the card the widget mimics.
const lineSpacing = 1.28

// wrapWords breaks text into lines no wider than maxWidth. A single word
// wider than maxWidth gets a line of its own.
func wrapWords(text string, maxWidth float32, measure func(string) float32) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if measure(candidate) <= maxWidth {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = w
	}
	return append(lines, line)
}

func textStyleFor(f style.FontStyle) fyne.TextStyle {
	if f == style.Serif {
		return fyne.TextStyle{Italic: true}
	}
	return fyne.TextStyle{Bold: true}
}

// quoteText draws word-wrapped text in an arbitrary color and size. Labels
// only take theme colors, which the palette does not map onto.
type quoteText struct {
	widget.BaseWidget

	text     string
	settings style.Settings
	baseSize float32
	width    float32
}

func newQuoteText(baseSize float32) *quoteText {
	q := &quoteText{baseSize: baseSize, settings: style.Default()}
	q.ExtendBaseWidget(q)
	return q
}

func (q *quoteText) Set(text string, s style.Settings) {
	q.text = text
	q.settings = s
	q.Refresh()
}

func (q *quoteText) fontSize() float32 {
	return q.baseSize * float32(q.settings.TextSize)
}

func (q *quoteText) lines() []string {
	width := q.width
	if width <= 0 {
		width = 300
	}
	size := q.fontSize()
	ts := textStyleFor(q.settings.Font)
	return wrapWords(q.text, width, func(s string) float32 {
		return fyne.MeasureText(s, size, ts).Width
	})
}

func (q *quoteText) CreateRenderer() fyne.WidgetRenderer {
	r := &quoteTextRenderer{q: q}
	r.rebuild()
	return r
}

type quoteTextRenderer struct {
	q       *quoteText
	objects []fyne.CanvasObject
}

func (r *quoteTextRenderer) rebuild() {
	q := r.q
	c := color.Color(style.RGBA(q.settings.TextColor))
	ts := textStyleFor(q.settings.Font)
	lines := q.lines()
	r.objects = make([]fyne.CanvasObject, 0, len(lines))
	for _, l := range lines {
		t := canvas.NewText(l, c)
		t.TextSize = q.fontSize()
		t.TextStyle = ts
		t.Alignment = fyne.TextAlignCenter
		r.objects = append(r.objects, t)
	}
}

func (r *quoteTextRenderer) Layout(s fyne.Size) {
	if s.Width != r.q.width {
		r.q.width = s.Width
		r.rebuild()
	}
	lh := r.q.fontSize() * lineSpacing
	for i, o := range r.objects {
		o.Move(fyne.NewPos(0, float32(i)*lh))
		o.Resize(fyne.NewSize(s.Width, lh))
	}
}

func (r *quoteTextRenderer) MinSize() fyne.Size {
	lh := r.q.fontSize() * lineSpacing
	return fyne.NewSize(r.q.fontSize()*4, float32(len(r.objects))*lh)
}

func (r *quoteTextRenderer) Refresh() {
	r.rebuild()
	r.Layout(r.q.Size())
	for _, o := range r.objects {
		canvas.Refresh(o)
	}
}

func (r *quoteTextRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *quoteTextRenderer) Destroy() {}
