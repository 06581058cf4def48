package style

import (
	"errors"
	"image/color"
	"math"
	"testing"
)

func TestDefault(t *testing.T) {
	s := Default()
	if s.Font != Sans || s.TextSize != 1.0 || s.TextColor != "#FFFFFF" {
		t.Fatalf("Default() = %+v", s)
	}
}

func TestValidateTextSize(t *testing.T) {
	tests := []struct {
		v  float64
		ok bool
	}{
		{0.8, true},
		{1.0, true},
		{1.6, true},
		{0.79, false},
		{1.61, false},
		{-1, false},
		{math.NaN(), false},
		{math.Inf(1), false},
	}
	for _, tt := range tests {
		err := ValidateTextSize(tt.v)
		if (err == nil) != tt.ok {
			t.Fatalf("ValidateTextSize(%v) err = %v, want ok=%v", tt.v, err, tt.ok)
		}
		if err != nil && !errors.Is(err, ErrTextSizeOutOfRange) {
			t.Fatalf("unexpected error type: %v", err)
		}
	}
}

func TestSnapTextSize(t *testing.T) {
	if got := SnapTextSize(1.26); math.Abs(got-1.3) > 1e-9 {
		t.Fatalf("SnapTextSize(1.26) = %v, want 1.3", got)
	}
	if got := SnapTextSize(1.5 + TextSizeStep); got != MaxTextSize {
		t.Fatalf("SnapTextSize(1.5+step) = %v, want exactly %v", got, MaxTextSize)
	}
}

func TestValidateFont(t *testing.T) {
	if err := ValidateFont(Serif); err != nil {
		t.Fatalf("serif rejected: %v", err)
	}
	if err := ValidateFont("mono"); !errors.Is(err, ErrUnknownFont) {
		t.Fatalf("mono err = %v, want ErrUnknownFont", err)
	}
	if Serif.Label() != "Classic" || Sans.Label() != "Modern" {
		t.Fatalf("unexpected labels %q %q", Serif.Label(), Sans.Label())
	}
}

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		in, want string
		ok       bool
	}{
		{"#ffffff", "#FFFFFF", true},
		{"#abc", "#AABBCC", true},
		{" #F472B6 ", "#F472B6", true},
		{"", "", false},
		{"red", "", false},
		{"#12345", "", false},
		{"#GGGGGG", "", false},
	}
	for _, tt := range tests {
		got, err := NormalizeColor(tt.in)
		if (err == nil) != tt.ok {
			t.Fatalf("NormalizeColor(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("NormalizeColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPalette(t *testing.T) {
	if len(Palette) != 20 {
		t.Fatalf("len(Palette) = %d, want 20", len(Palette))
	}
	for _, c := range Palette {
		if _, err := NormalizeColor(c); err != nil {
			t.Fatalf("palette color %q invalid: %v", c, err)
		}
	}
}

func TestRGBA(t *testing.T) {
	if got := RGBA("#F87171"); got != (color.NRGBA{R: 0xF8, G: 0x71, B: 0x71, A: 0xff}) {
		t.Fatalf("RGBA = %+v", got)
	}
	if got := RGBA("nope"); got != (color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
		t.Fatalf("RGBA(invalid) = %+v", got)
	}
}
