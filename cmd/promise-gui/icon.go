package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/oukeidos/promise/internal/logger"
)

const iconSize = 128

var (
	iconOnce sync.Once
	iconRes  fyne.Resource
)

// appIcon draws the launcher icon: a dusk gradient with a pale quote bar.
func appIcon() fyne.Resource {
	iconOnce.Do(func() {
		var buf bytes.Buffer
		if err := png.Encode(&buf, drawIcon(iconSize)); err != nil {
			logger.Warn("Icon encode failed", "error", err)
			iconRes = theme.InfoIcon()
			return
		}
		iconRes = fyne.NewStaticResource("icon.png", buf.Bytes())
	})
	return iconRes
}

func drawIcon(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	top := color.NRGBA{R: 0x31, G: 0x2E, B: 0x81, A: 0xFF}
	bottom := color.NRGBA{R: 0xF4, G: 0x72, B: 0xB6, A: 0xFF}
	for y := 0; y < size; y++ {
		c := lerp(top, bottom, float64(y)/float64(size-1))
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	bar := color.NRGBA{R: 0xFE, G: 0xF3, B: 0xC7, A: 0xFF}
	for y := size * 9 / 20; y < size*11/20; y++ {
		for x := size / 4; x < size*3/4; x++ {
			img.SetNRGBA(x, y, bar)
		}
	}
	return img
}

func lerp(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 0xFF}
}
