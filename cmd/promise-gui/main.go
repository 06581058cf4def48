package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/promise/internal/auth"
	"github.com/oukeidos/promise/internal/background"
	"github.com/oukeidos/promise/internal/clock"
	"github.com/oukeidos/promise/internal/fetcher"
	"github.com/oukeidos/promise/internal/gemini"
	"github.com/oukeidos/promise/internal/httpclient"
	"github.com/oukeidos/promise/internal/logger"
	"github.com/oukeidos/promise/internal/quote"
	"github.com/oukeidos/promise/internal/session"
	"github.com/oukeidos/promise/internal/style"
	"github.com/oukeidos/promise/internal/version"
)

// promiseTheme pins the dark variant; the widget always sits on a dimmed photo.
type promiseTheme struct{ fyne.Theme }

func (t promiseTheme) Color(n fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(n, theme.VariantDark)
}

type AppState int

const (
	StateWidget AppState = iota
	StateNoKey
)

const (
	quoteBaseSize = 22
	toastDuration = 2 * time.Second
	lockHintTime  = 3 * time.Second
)

var shadeColor = color.NRGBA{R: 0, G: 0, B: 0, A: 0x99}

type promiseApp struct {
	window  fyne.Window
	prefs   fyne.Preferences
	config  AppConfig
	state   AppState
	content *fyne.Container

	widgetView   fyne.CanvasObject
	apiKeyView   fyne.CanvasObject
	errorOverlay *canvas.Rectangle

	// Runtime data. Everything below is touched on the UI goroutine only.
	appCtx     context.Context
	appCancel  context.CancelFunc
	ctx        context.Context
	cancel     context.CancelFunc
	ctrl       *session.Controller
	bg         *background.Preloader
	unsub      func()
	closeGen   func() error
	sessionKey string
	skipKey    bool
	imageBase  string
	syncing    bool
	wasLocked  bool
	toastSeq   uint64
	hintSeq    uint64

	isAnimating         bool
	currentSettingsWin  fyne.Window
	currentFavoritesWin fyne.Window
	settingsKeyStatus   *widget.Label
	panicNoticeOnce     sync.Once

	// Widget parts
	bgImage    *canvas.Image
	timeText   *canvas.Text
	dateText   *canvas.Text
	tabs       map[quote.Category]*widget.Button
	quote      *quoteText
	rule       *canvas.Rectangle
	reference  *canvas.Text
	loading    *widget.ProgressBarInfinite
	errLabel   *widget.Label
	controls   *fyne.Container
	stylePanel *fyne.Container
	fontRadio  *widget.RadioGroup
	sizeSlider *widget.Slider
	sizeLabel  *widget.Label
	swatches   []*swatch
	favBtn     *widget.Button
	lockHint   fyne.CanvasObject
	toast      fyne.CanvasObject
	toastLabel *widget.Label
	scroll     *container.Scroll
}

func newPromiseApp(w fyne.Window, prefs fyne.Preferences) *promiseApp {
	a := &promiseApp{window: w, prefs: prefs, imageBase: background.DefaultBaseURL}
	a.appCtx, a.appCancel = context.WithCancel(context.Background())
	a.config = loadConfig(prefs)
	a.setupUI()

	a.syncMainKeyState()
	a.safeGo("clock.loop", a.runClock)
	return a
}

func (a *promiseApp) setupUI() {
	a.widgetView = a.buildWidgetView()
	a.apiKeyView = a.createApiKeyView()

	a.errorOverlay = canvas.NewRectangle(color.Transparent)
	a.errorOverlay.Hide()

	a.content = container.NewStack(
		a.widgetView,
		a.apiKeyView,
		a.errorOverlay,
	)
	a.window.SetContent(a.content)
}

func (a *promiseApp) buildWidgetView() fyne.CanvasObject {
	base := canvas.NewRectangle(color.NRGBA{R: 0x0F, G: 0x17, B: 0x2A, A: 0xFF})
	a.bgImage = canvas.NewImageFromImage(nil)
	a.bgImage.FillMode = canvas.ImageFillStretch
	a.bgImage.ScaleMode = canvas.ImageScaleSmooth
	a.bgImage.Hide()
	shade := canvas.NewRectangle(shadeColor)

	textColor := style.RGBA(a.config.TextColor)
	a.timeText = canvas.NewText("--:--", textColor)
	a.timeText.TextSize = 64
	a.timeText.Alignment = fyne.TextAlignCenter
	a.dateText = canvas.NewText("", textColor)
	a.dateText.TextSize = 18
	a.dateText.Alignment = fyne.TextAlignCenter
	clockBox := container.NewVBox(a.timeText, a.dateText)

	a.quote = newQuoteText(quoteBaseSize)
	a.rule = canvas.NewRectangle(color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x80})
	a.rule.SetMinSize(fyne.NewSize(48, 2))
	a.reference = canvas.NewText("", color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xCC})
	a.reference.TextSize = 14
	a.reference.TextStyle = fyne.TextStyle{Bold: true}
	a.reference.Alignment = fyne.TextAlignCenter
	a.loading = widget.NewProgressBarInfinite()
	a.errLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	a.errLabel.Wrapping = fyne.TextWrapWord
	a.errLabel.Importance = widget.DangerImportance
	a.errLabel.Hide()

	cardBg := canvas.NewRectangle(color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x1A})
	cardBg.CornerRadius = 24
	cardBg.StrokeColor = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x33}
	cardBg.StrokeWidth = 1
	card := container.NewStack(cardBg, container.NewPadded(container.NewPadded(container.NewVBox(
		a.quote,
		container.NewCenter(a.rule),
		a.reference,
		a.loading,
		a.errLabel,
	))))

	a.controls = a.buildControls()

	body := container.NewVBox(
		container.NewPadded(clockBox),
		layout.NewSpacer(),
		card,
		a.controls,
	)
	surface := newGestureSurface(a.onTouchStart, a.onTouchEnd, a.onTap)
	a.scroll = container.NewVScroll(container.NewStack(surface, container.NewPadded(body)))

	hint := canvas.NewText("Double tap to unlock", color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x99})
	hint.TextSize = 13
	hint.Alignment = fyne.TextAlignCenter
	a.lockHint = container.NewVBox(layout.NewSpacer(), container.NewPadded(hint))
	a.lockHint.Hide()

	a.toastLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	toastBg := canvas.NewRectangle(color.NRGBA{R: 0x1E, G: 0x29, B: 0x3B, A: 0xEE})
	toastBg.CornerRadius = 16
	a.toast = container.NewVBox(layout.NewSpacer(), container.NewCenter(container.NewStack(toastBg, container.NewPadded(a.toastLabel))), layout.NewSpacer())
	a.toast.Hide()

	return container.NewStack(base, a.bgImage, shade, a.scroll, a.lockHint, a.toast)
}

func (a *promiseApp) buildControls() *fyne.Container {
	a.tabs = make(map[quote.Category]*widget.Button, len(quote.Order))
	tabRow := container.NewGridWithColumns(len(quote.Order))
	for _, c := range quote.Order {
		b := widget.NewButton(c.Label(), func() {
			if a.ctrl != nil {
				a.ctrl.SelectCategory(a.ctx, c)
			}
		})
		b.Importance = widget.LowImportance
		a.tabs[c] = b
		tabRow.Add(b)
	}

	refreshBtn := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), func() {
		if a.ctrl != nil {
			a.ctrl.Refresh(a.ctx)
		}
	})
	shareBtn := widget.NewButtonWithIcon("", theme.MailForwardIcon(), func() {
		if a.ctrl != nil {
			a.ctrl.Share()
		}
	})
	a.favBtn = widget.NewButtonWithIcon("", theme.ContentAddIcon(), a.toggleFavorite)
	favListBtn := widget.NewButtonWithIcon("", theme.ListIcon(), a.showFavoritesWindow)
	styleBtn := widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), func() {
		if a.stylePanel.Visible() {
			a.stylePanel.Hide()
		} else {
			a.stylePanel.Show()
		}
		a.scroll.Refresh()
	})
	lockBtn := widget.NewButtonWithIcon("", theme.VisibilityOffIcon(), func() {
		if a.ctrl != nil {
			a.ctrl.EnterLockMode()
		}
	})
	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), a.showSettingsWindow)
	actions := container.NewGridWithColumns(7, refreshBtn, shareBtn, a.favBtn, favListBtn, styleBtn, lockBtn, settingsBtn)

	a.stylePanel = a.buildStylePanel()
	a.stylePanel.Hide()

	footer := canvas.NewText(strings.ToUpper(quote.ShareTitle), color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x4D})
	footer.TextSize = 10
	footer.Alignment = fyne.TextAlignCenter

	return container.NewVBox(tabRow, actions, a.stylePanel, footer)
}

func (a *promiseApp) syncMainKeyState() {
	key, _ := auth.GetKey(false)
	if a.sessionKey != "" {
		key = a.sessionKey
	}
	if key == "" && !a.skipKey {
		a.stopSession()
		a.setState(StateNoKey)
		return
	}
	a.startSession(key)
	a.setState(StateWidget)
}

// startSession replaces the running controller with one that uses key, or
// the built-in quotes when key is blank.
func (a *promiseApp) startSession(key string) {
	a.stopSession()
	a.ctx, a.cancel = context.WithCancel(a.appCtx)

	var src *fetcher.Fetcher
	if key == "" {
		src = fetcher.New(nil)
	} else {
		client, err := gemini.NewClient(a.ctx, key, a.config.Model)
		if err != nil {
			logger.Error("Gemini client setup failed; using built-in quotes", "error", err)
			src = fetcher.New(nil)
		} else {
			a.closeGen = client.Close
			src = fetcher.New(client)
		}
	}

	a.bg = background.New(background.Options{
		BaseURL: a.imageBase,
		Client:  httpclient.GetDefaultClient(),
	})
	a.ctrl = session.New(session.Options{
		Quotes:     src,
		Background: a.bg,
		Clipboard:  appClipboard{fyne.CurrentApp()},
		Notifier:   a,
		Initial:    a.config.Category,
	})
	a.applyStoredStyle()
	ctrl := a.ctrl
	a.unsub = ctrl.Subscribe(func(s session.Snapshot) {
		a.safeDo("session.render", func() {
			if a.ctrl == ctrl {
				a.render(s)
			}
		})
	})
	a.render(ctrl.Snapshot())
	ctrl.Start(a.ctx)
}

func (a *promiseApp) stopSession() {
	if a.ctrl == nil {
		return
	}
	a.unsub()
	a.cancel()
	ctrl, bg, closeGen := a.ctrl, a.bg, a.closeGen
	a.ctrl, a.bg, a.closeGen, a.unsub = nil, nil, nil, nil
	a.safeGo("session.stop", func() {
		ctrl.Wait()
		bg.Wait()
		if closeGen != nil {
			if err := closeGen(); err != nil {
				logger.Warn("Closing Gemini client failed", "error", err)
			}
		}
	})
}

func (a *promiseApp) applyStoredStyle() {
	if err := a.ctrl.SetFontStyle(a.config.Font); err != nil {
		logger.Warn("Stored font rejected", "error", err)
	}
	if err := a.ctrl.SetTextSize(a.config.TextSize); err != nil {
		logger.Warn("Stored text size rejected", "error", err)
	}
	if err := a.ctrl.SetTextColor(a.config.TextColor); err != nil {
		logger.Warn("Stored text color rejected", "error", err)
	}
}

func (a *promiseApp) render(s session.Snapshot) {
	a.syncing = true
	defer func() { a.syncing = false }()

	if s.Background.Image != nil {
		a.bgImage.Image = s.Background.Image
		a.bgImage.Show()
	} else {
		a.bgImage.Hide()
	}
	a.bgImage.Refresh()

	for c, b := range a.tabs {
		if c == s.Category {
			b.Importance = widget.HighImportance
		} else {
			b.Importance = widget.LowImportance
		}
		b.Refresh()
	}

	textColor := style.RGBA(s.Style.TextColor)
	a.timeText.Color = textColor
	a.dateText.Color = textColor
	a.timeText.Refresh()
	a.dateText.Refresh()

	if s.Status == session.StatusLoading || !s.HasQuote() {
		a.loading.Show()
		a.loading.Start()
		a.quote.Hide()
		a.rule.Hide()
		a.reference.Hide()
	} else {
		a.loading.Stop()
		a.loading.Hide()
		a.quote.Set("“"+s.Quote.Text+"”", s.Style)
		a.quote.Show()
		a.rule.Show()
		a.reference.Text = strings.ToUpper(s.Quote.Reference)
		a.reference.Show()
		a.reference.Refresh()
	}
	if s.Status == session.StatusError {
		a.errLabel.SetText(s.Err)
		a.errLabel.Show()
	} else {
		a.errLabel.Hide()
	}

	if s.Locked {
		a.scroll.Direction = container.ScrollNone
		a.controls.Hide()
		if !a.wasLocked {
			a.flashLockHint()
		}
	} else {
		a.scroll.Direction = container.ScrollVerticalOnly
		a.controls.Show()
		a.lockHint.Hide()
	}
	a.wasLocked = s.Locked

	if s.IsFavorite() {
		a.favBtn.SetIcon(theme.ConfirmIcon())
	} else {
		a.favBtn.SetIcon(theme.ContentAddIcon())
	}

	a.fontRadio.SetSelected(s.Style.Font.Label())
	a.sizeSlider.SetValue(s.Style.TextSize)
	a.sizeLabel.SetText(fmt.Sprintf("%.1fx", s.Style.TextSize))
	for _, sw := range a.swatches {
		sw.SetSelected(sw.hex == s.Style.TextColor)
	}

	a.rememberSession(s)
	a.scroll.Refresh()
}

// rememberSession persists the category and style so the next launch
// opens where this one left off.
func (a *promiseApp) rememberSession(s session.Snapshot) {
	next := a.config
	next.Category = s.Category
	next.Font = s.Style.Font
	next.TextSize = s.Style.TextSize
	next.TextColor = s.Style.TextColor
	if next == a.config {
		return
	}
	a.config = next
	saveConfig(a.prefs, a.config)
}

func (a *promiseApp) atTop() bool {
	return a.scroll == nil || a.scroll.Offset.Y <= 0
}

func (a *promiseApp) onTouchStart(x, y float32) {
	if a.ctrl != nil {
		a.ctrl.TouchStart(float64(x), float64(y))
	}
}

func (a *promiseApp) onTouchEnd(x, y float32) {
	if a.ctrl == nil {
		return
	}
	r := a.ctrl.TouchEnd(a.ctx, float64(x), float64(y), a.atTop())
	logger.Debug("Touch resolved", "kind", r.Kind, "direction", r.Direction)
}

func (a *promiseApp) onTap() {
	if a.ctrl != nil {
		a.ctrl.Tap()
	}
}

func (a *promiseApp) toggleFavorite() {
	if a.ctrl == nil {
		return
	}
	saved, err := a.ctrl.ToggleFavorite()
	switch {
	case err != nil:
		a.Notify("Nothing to save yet")
	case saved:
		a.Notify("Saved to favorites")
	default:
		a.Notify("Removed from favorites")
	}
}

// Notify shows message as a toast. It is safe to call from any goroutine.
func (a *promiseApp) Notify(message string) {
	a.safeDo("toast.show", func() {
		a.toastSeq++
		seq := a.toastSeq
		a.toastLabel.SetText(message)
		a.toast.Show()
		a.content.Refresh()
		a.safeGo("toast.expire", func() {
			time.Sleep(toastDuration)
			a.safeDo("toast.hide", func() {
				if a.toastSeq == seq {
					a.toast.Hide()
				}
			})
		})
	})
}

func (a *promiseApp) flashLockHint() {
	a.hintSeq++
	seq := a.hintSeq
	a.lockHint.Show()
	a.safeGo("lock.hint", func() {
		time.Sleep(lockHintTime)
		a.safeDo("lock.hint.hide", func() {
			if a.hintSeq == seq {
				a.lockHint.Hide()
			}
		})
	})
}

func (a *promiseApp) runClock() {
	a.safeDo("clock.tick", func() { a.setClock(time.Now()) })
	t := time.NewTicker(clock.Tick)
	defer t.Stop()
	for {
		select {
		case <-a.appCtx.Done():
			return
		case now := <-t.C:
			a.safeDo("clock.tick", func() { a.setClock(now) })
		}
	}
}

func (a *promiseApp) setClock(now time.Time) {
	a.timeText.Text = clock.Time(now)
	a.dateText.Text = clock.Date(now)
	a.timeText.Refresh()
	a.dateText.Refresh()
}

func (a *promiseApp) setState(s AppState) {
	a.state = s
	a.widgetView.Hide()
	a.apiKeyView.Hide()
	switch s {
	case StateWidget:
		a.widgetView.Show()
	case StateNoKey:
		a.apiKeyView.Show()
	}
	a.content.Refresh()
}

func (a *promiseApp) shutdown() {
	a.stopSession()
	a.appCancel()
	a.sessionKey = ""
}

// appClipboard adapts the app clipboard to session.Clipboard.
type appClipboard struct{ app fyne.App }

func (c appClipboard) SetContent(text string) error {
	if c.app == nil || c.app.Clipboard() == nil {
		return errClipboardUnavailable
	}
	c.app.Clipboard().SetContent(text)
	return nil
}

var errClipboardUnavailable = errors.New("clipboard unavailable")

func main() {
	logger.Init(logger.LevelInfo, nil)
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Unrecovered GUI panic", "scope", "main", "panic", fmt.Sprint(r))
			os.Exit(1)
		}
	}()

	myApp := app.NewWithID("com.oukeidos.promise")
	myApp.Settings().SetTheme(promiseTheme{Theme: theme.DefaultTheme()})
	myApp.SetIcon(appIcon())

	w := myApp.NewWindow(version.Name)
	w.SetIcon(appIcon())
	w.SetMaster()
	w.Resize(fyne.NewSize(390, 780))
	w.CenterOnScreen()

	pa := newPromiseApp(w, myApp.Preferences())
	w.SetCloseIntercept(func() {
		pa.shutdown()
		w.SetCloseIntercept(nil)
		w.Close()
	})

	w.ShowAndRun()
}
