package main

import (
	"fmt"
	"net/url"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/promise/internal/auth"
	"github.com/oukeidos/promise/internal/metadata"
	"github.com/oukeidos/promise/internal/quote"
	"github.com/oukeidos/promise/internal/style"
	"github.com/oukeidos/promise/internal/version"
)

const githubURL = "https://github.com/oukeidos/promise"

var fontChoices = []style.FontStyle{style.Serif, style.Sans}

func fontFromLabel(label string) (style.FontStyle, bool) {
	for _, f := range fontChoices {
		if f.Label() == label {
			return f, true
		}
	}
	return "", false
}

func (a *promiseApp) buildStylePanel() *fyne.Container {
	labels := make([]string, len(fontChoices))
	for i, f := range fontChoices {
		labels[i] = f.Label()
	}
	a.fontRadio = widget.NewRadioGroup(labels, func(sel string) {
		if a.syncing || a.ctrl == nil {
			return
		}
		if f, ok := fontFromLabel(sel); ok {
			if err := a.ctrl.SetFontStyle(f); err != nil {
				a.Notify(err.Error())
			}
		}
	})
	a.fontRadio.Horizontal = true
	a.fontRadio.Required = true

	a.sizeLabel = widget.NewLabel("1.0x")
	a.sizeSlider = widget.NewSlider(style.MinTextSize, style.MaxTextSize)
	a.sizeSlider.Step = style.TextSizeStep
	a.sizeSlider.OnChanged = func(v float64) {
		if a.syncing || a.ctrl == nil {
			return
		}
		if err := a.ctrl.SetTextSize(style.SnapTextSize(v)); err != nil {
			a.Notify(err.Error())
		}
	}

	swatchGrid := container.NewGridWithColumns(10)
	a.swatches = a.swatches[:0]
	for _, hex := range style.Palette {
		sw := newSwatch(hex, style.RGBA(hex), func(h string) {
			if a.ctrl == nil {
				return
			}
			if err := a.ctrl.SetTextColor(h); err != nil {
				a.Notify(err.Error())
			}
		})
		a.swatches = append(a.swatches, sw)
		swatchGrid.Add(sw)
	}

	return container.NewVBox(
		widget.NewLabelWithStyle("Font", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		a.fontRadio,
		container.NewBorder(nil, nil,
			widget.NewLabelWithStyle("Size", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			a.sizeLabel, a.sizeSlider),
		widget.NewLabelWithStyle("Color", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		swatchGrid,
	)
}

func (a *promiseApp) showSettingsWindow() {
	if a.currentSettingsWin != nil {
		a.currentSettingsWin.RequestFocus()
		return
	}

	w := fyne.CurrentApp().NewWindow("Settings")
	a.currentSettingsWin = w
	w.SetOnClosed(func() {
		a.currentSettingsWin = nil
		a.settingsKeyStatus = nil
	})

	// --- Key ---
	entry := widget.NewPasswordEntry()
	entry.SetPlaceHolder("Enter new key")
	a.settingsKeyStatus = widget.NewLabel("")
	a.refreshKeyStatus()

	keyTab := container.NewPadded(container.NewVBox(
		widget.NewLabelWithStyle("Gemini API Key", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewForm(
			widget.NewFormItem("Key", container.NewVBox(entry, a.settingsKeyStatus)),
		),
		widget.NewButton("Save Key to Keychain", func() {
			saved, err := saveGeminiKey(entry.Text, auth.SaveKey)
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			if !saved {
				dialog.ShowInformation("Nothing Saved", "Enter a key first.", w)
				return
			}
			a.sessionKey = strings.TrimSpace(entry.Text)
			entry.SetText("")
			a.syncMainKeyState()
			a.refreshKeyStatus()
			dialog.ShowInformation("Saved", "The API key has been stored in your keychain.", w)
		}),
		widget.NewSeparator(),
		widget.NewButtonWithIcon("Reset Key", theme.DeleteIcon(), func() {
			dialog.ShowConfirm("Reset", "Delete the saved key from your keychain?", func(ok bool) {
				if !ok {
					return
				}
				err := resetGeminiKey(auth.DeleteKey)
				a.refreshKeyStatus()
				if err != nil {
					dialog.ShowError(err, w)
					return
				}
				a.sessionKey = ""
				a.skipKey = false
				a.syncMainKeyState()
				a.refreshKeyStatus()
				dialog.ShowInformation("Reset Complete", "The saved key was deleted from your keychain.", w)
			}, w)
		}),
	))

	// --- Model ---
	modelSelect := widget.NewSelect(metadata.GeminiModelIDs(), func(id string) {
		if id == a.config.Model {
			return
		}
		a.config.Model = normalizeGeminiModel(id)
		saveConfig(a.prefs, a.config)
		dialog.ShowInformation("Model Changed", "The new model is used from the next launch.", w)
	})
	modelSelect.SetSelected(a.config.Model)
	var modelNotes []fyne.CanvasObject
	for _, m := range metadata.GeminiModels {
		note := m.Label
		if m.Preview {
			note += " - may be withdrawn without notice"
		}
		modelNotes = append(modelNotes, widget.NewLabel(note))
	}
	modelTab := container.NewPadded(container.NewVBox(
		widget.NewLabelWithStyle("Quote Model", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		modelSelect,
		container.NewVBox(modelNotes...),
	))

	tabs := container.NewAppTabs(
		container.NewTabItem("Key", keyTab),
		container.NewTabItem("Model", modelTab),
		container.NewTabItem("About", buildAboutTab()),
	)
	w.SetContent(tabs)
	w.Resize(fyne.NewSize(420, 360))
	w.Show()
}

func buildAboutTab() fyne.CanvasObject {
	return container.NewPadded(container.NewVScroll(container.NewVBox(
		widget.NewLabelWithStyle("About", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewForm(
			widget.NewFormItem("App", widget.NewLabel(version.Name)),
			widget.NewFormItem("Version", widget.NewLabel(version.Version)),
			widget.NewFormItem("Commit", widget.NewLabel(version.Commit)),
			widget.NewFormItem("Build", widget.NewLabel(version.BuildDate)),
			widget.NewFormItem("Links", container.NewHBox(newHyperlink("GitHub", githubURL))),
		),
	)))
}

func newHyperlink(label, raw string) *widget.Hyperlink {
	u, _ := url.Parse(raw)
	return widget.NewHyperlink(label, u)
}

// favoriteLabel is the one-line list entry for a pinned quote.
func favoriteLabel(q quote.Quote) string {
	text := q.Text
	if r := []rune(text); len(r) > 48 {
		text = string(r[:47]) + "…"
	}
	return fmt.Sprintf("%s · %s", text, q.Reference)
}

func (a *promiseApp) showFavoritesWindow() {
	if a.currentFavoritesWin != nil {
		a.currentFavoritesWin.RequestFocus()
		return
	}
	if a.ctrl == nil {
		return
	}
	w := fyne.CurrentApp().NewWindow("Favorites")
	a.currentFavoritesWin = w
	w.SetOnClosed(func() {
		a.currentFavoritesWin = nil
	})

	list := container.NewVBox()
	var rebuild func()
	rebuild = func() {
		list.RemoveAll()
		if a.ctrl == nil {
			list.Add(widget.NewLabel("No session running."))
			return
		}
		favs := a.ctrl.Snapshot().Favorites
		if len(favs) == 0 {
			list.Add(widget.NewLabel("No favorites yet. Tap + on a quote to pin it."))
			return
		}
		for _, f := range favs {
			show := widget.NewButton(favoriteLabel(f.Quote), func() {
				if a.ctrl != nil && a.ctrl.ShowFavorite(f.ID) {
					w.Close()
				}
			})
			show.Alignment = widget.ButtonAlignLeading
			remove := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				if a.ctrl != nil {
					a.ctrl.RemoveFavorite(f.ID)
				}
				rebuild()
			})
			list.Add(container.NewBorder(nil, nil, nil, remove, show))
		}
	}
	rebuild()

	w.SetContent(container.NewBorder(
		widget.NewLabelWithStyle("Saved quotes", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(layout.NewSpacer(), widget.NewButton("Close", w.Close)),
		nil, nil,
		container.NewVScroll(list),
	))
	w.Resize(fyne.NewSize(420, 420))
	w.Show()
}
