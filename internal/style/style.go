// Package style holds the per-session personalization of the quote text.
package style

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

type FontStyle string

const (
	Serif FontStyle = "serif"
	Sans  FontStyle = "sans"
)

// Label is the name shown on the font toggle.
func (f FontStyle) Label() string {
	switch f {
	case Serif:
		return "Classic"
	case Sans:
		return "Modern"
	default:
		return string(f)
	}
}

const (
	MinTextSize  = 0.8
	MaxTextSize  = 1.6
	TextSizeStep = 0.1

	DefaultTextColor = "#FFFFFF"
)

var (
	ErrTextSizeOutOfRange = fmt.Errorf("text size must be between %.1f and %.1f", MinTextSize, MaxTextSize)
	ErrUnknownFont        = errors.New("unknown font style")
	ErrInvalidColor       = errors.New("text color must be #RGB or #RRGGBB")
)

// Palette lists the preset text colors offered by the style panel.
var Palette = []string{
	"#FFFFFF", "#E2E8F0", "#94A3B8", "#FECACA", "#F87171",
	"#FDBA74", "#FB923C", "#FEF3C7", "#FCD34D", "#FACC15",
	"#BEF264", "#86EFAC", "#4ADE80", "#34D399", "#5EEAD4",
	"#67E8F9", "#93C5FD", "#818CF8", "#C084FC", "#F472B6",
}

// Settings is the personalization state. The zero value is not valid; use Default.
type Settings struct {
	Font      FontStyle
	TextSize  float64
	TextColor string
}

func Default() Settings {
	return Settings{Font: Sans, TextSize: 1.0, TextColor: DefaultTextColor}
}

func ValidateFont(f FontStyle) error {
	if f != Serif && f != Sans {
		return fmt.Errorf("%w: %q", ErrUnknownFont, f)
	}
	return nil
}

// ValidateTextSize rejects NaN and values outside [MinTextSize, MaxTextSize].
func ValidateTextSize(v float64) error {
	if math.IsNaN(v) || v < MinTextSize || v > MaxTextSize {
		return ErrTextSizeOutOfRange
	}
	return nil
}

// SnapTextSize rounds v to the slider step. The result is the nearest float64
// to the decimal value, so SnapTextSize(MaxTextSize) == MaxTextSize.
func SnapTextSize(v float64) float64 {
	return math.Round(v/TextSizeStep) / (1 / TextSizeStep)
}

// NormalizeColor upper-cases a hex color and expands the short form.
func NormalizeColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return "", ErrInvalidColor
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return "", ErrInvalidColor
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return "", ErrInvalidColor
	}
	return "#" + strings.ToUpper(hex), nil
}

// RGBA parses a hex color for renderers. Invalid input yields opaque white.
func RGBA(s string) color.NRGBA {
	n, err := NormalizeColor(s)
	if err != nil {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	v, _ := strconv.ParseUint(n[1:], 16, 32)
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
