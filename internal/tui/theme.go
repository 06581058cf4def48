package tui

import (
	"fmt"
	"image"
	"image/color"

	"github.com/charmbracelet/lipgloss"

	"github.com/oukeidos/promise/internal/style"
)

// Theme defines the fixed chrome colors. Quote text takes its color from the
// session style settings instead.
type Theme struct {
	Surface string
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Danger  string
}

var defaultTheme = Theme{
	Surface: "#1E293B",
	Text:    "#F8FAFC",
	Muted:   "#94A3B8",
	Faint:   "#475569",
	Accent:  "#FCD34D",
	Danger:  "#F87171",
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text       lipgloss.Style
	MutedText  lipgloss.Style
	FaintText  lipgloss.Style
	AccentText lipgloss.Style
	DangerText lipgloss.Style

	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Card      lipgloss.Style
	Toast     lipgloss.Style
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),
		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),
		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),
		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),
		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Text)).
			Foreground(lipgloss.Color(t.Surface)).
			Bold(true).
			Padding(0, 1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Faint)).
			Padding(1, 3).
			Align(lipgloss.Center),
		Toast: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 2),
	}
}

// quoteStyle renders quote text the way the style settings ask: serif is
// shown in italics, sans in bold.
func quoteStyle(s style.Settings) lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(lipgloss.Color(s.TextColor))
	if s.Font == style.Serif {
		return st.Italic(true)
	}
	return st.Bold(true)
}

// quoteWidth shrinks the wrap width as the text size grows so that larger
// settings read as larger text in a fixed-cell terminal.
func quoteWidth(avail int, textSize float64) int {
	if textSize <= 0 {
		textSize = 1
	}
	w := int(float64(avail) / textSize)
	if w < 16 {
		w = 16
	}
	if w > avail && avail > 0 {
		w = avail
	}
	return w
}

// backdrop samples img on a coarse grid and returns its darkened average
// color, so the card sits on a tint of the current background image.
func backdrop(img image.Image) (lipgloss.Color, bool) {
	if img == nil {
		return "", false
	}
	b := img.Bounds()
	if b.Empty() {
		return "", false
	}
	const grid = 16
	var r, g, bl, n uint64
	for i := 0; i < grid; i++ {
		for j := 0; j < grid; j++ {
			x := b.Min.X + (b.Dx()*i)/grid
			y := b.Min.Y + (b.Dy()*j)/grid
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			r += uint64(c.R)
			g += uint64(c.G)
			bl += uint64(c.B)
			n++
		}
	}
	// Same dimming as the dark overlay behind the card.
	dim := func(v uint64) uint64 { return v / n * 7 / 10 }
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", dim(r), dim(g), dim(bl))), true
}
