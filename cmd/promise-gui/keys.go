package main

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/promise/internal/auth"
)

// saveGeminiKey stores key through saveFn. It reports false without calling
// saveFn when key is blank.
func saveGeminiKey(key string, saveFn func(key string) error) (bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return false, nil
	}
	if err := saveFn(key); err != nil {
		return false, fmt.Errorf("failed to save Gemini key: %w", err)
	}
	return true, nil
}

func resetGeminiKey(deleteFn func() error) error {
	if err := deleteFn(); err != nil {
		return fmt.Errorf("failed to delete Gemini key: %w", err)
	}
	return nil
}

func (a *promiseApp) refreshKeyStatus() {
	if a.settingsKeyStatus == nil {
		return
	}
	key, _ := auth.GetKey(false)
	switch {
	case key != "":
		a.settingsKeyStatus.SetText("Saved in keychain")
	case a.sessionKey != "":
		a.settingsKeyStatus.SetText("Used for this session only")
	default:
		a.settingsKeyStatus.SetText("Not saved; built-in quotes only")
	}
}

// pillButton is a large flat button for the first-run key screen.
type pillButton struct {
	widget.BaseWidget
	label  *canvas.Text
	fill   *canvas.Rectangle
	action func()
}

func newPillButton(label string, fill color.Color, action func()) *pillButton {
	t := canvas.NewText(label, color.Black)
	t.TextSize = 20
	t.TextStyle = fyne.TextStyle{Bold: true}
	t.Alignment = fyne.TextAlignCenter

	r := canvas.NewRectangle(fill)
	r.CornerRadius = 8

	b := &pillButton{label: t, fill: r, action: action}
	b.ExtendBaseWidget(b)
	return b
}

func (b *pillButton) Tapped(_ *fyne.PointEvent) {
	if b.action != nil {
		b.action()
	}
}

func (b *pillButton) MinSize() fyne.Size { return fyne.NewSize(85, 50) }

func (b *pillButton) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(b.fill, container.NewCenter(b.label)))
}

func (a *promiseApp) createApiKeyView() fyne.CanvasObject {
	input := widget.NewPasswordEntry()
	input.SetPlaceHolder("GEMINI API KEY")

	title := canvas.NewText("SET API KEY", color.White)
	title.TextSize = 26
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter

	hint := widget.NewLabelWithStyle("Without a key the widget shows its built-in quotes.", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	hint.Wrapping = fyne.TextWrapWord

	accent := theme.Color(theme.ColorNamePrimary)
	saveBtn := newPillButton("SAVE", accent, func() {
		saved, err := saveGeminiKey(input.Text, auth.SaveKey)
		if !saved || err != nil {
			a.flashRed()
			return
		}
		a.sessionKey = strings.TrimSpace(input.Text)
		a.syncMainKeyState()
		a.refreshKeyStatus()
		input.SetText("")
	})

	onceBtn := newPillButton("ONCE", color.NRGBA{R: 200, G: 200, B: 200, A: 255}, func() {
		key := strings.TrimSpace(input.Text)
		if key == "" {
			a.flashRed()
			return
		}
		a.sessionKey = key
		a.syncMainKeyState()
		input.SetText("")
	})

	skipBtn := newPillButton("SKIP", color.NRGBA{R: 120, G: 120, B: 120, A: 255}, func() {
		a.skipKey = true
		a.syncMainKeyState()
	})

	btns := container.NewGridWithColumns(3, saveBtn, onceBtn, skipBtn)

	card := container.NewVBox(
		container.NewCenter(title),
		input,
		container.NewPadded(btns),
		hint,
	)

	bg := canvas.NewRectangle(color.NRGBA{R: 0x0F, G: 0x17, B: 0x2A, A: 0xFF})
	return container.NewStack(bg, container.NewCenter(container.NewPadded(card)))
}

const flashTime = 150 * time.Millisecond

// flashRed pulses the error overlay once.
func (a *promiseApp) flashRed() {
	if a.isAnimating {
		return
	}
	a.isAnimating = true
	a.errorOverlay.Show()

	anim := canvas.NewColorRGBAAnimation(
		color.NRGBA{R: 255, A: 0},
		color.NRGBA{R: 255, A: 120},
		flashTime,
		func(c color.Color) {
			a.errorOverlay.FillColor = c
			canvas.Refresh(a.errorOverlay)
		},
	)
	anim.AutoReverse = true
	anim.Start()

	a.safeGo("app.flash_red", func() {
		time.Sleep(2*flashTime + 20*time.Millisecond)
		a.safeDo("app.flash_red.end", func() {
			a.errorOverlay.FillColor = color.Transparent
			a.errorOverlay.Hide()
			a.isAnimating = false
		})
	})
}
