// Package tui provides a Bubble Tea front end for the quote widget.
package tui

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/oukeidos/promise/internal/clock"
	"github.com/oukeidos/promise/internal/gesture"
	"github.com/oukeidos/promise/internal/quote"
	"github.com/oukeidos/promise/internal/session"
	"github.com/oukeidos/promise/internal/style"
)

// A terminal cell is much coarser than a touch point. Mouse travel is scaled
// so that a few cells of drag cross the swipe threshold.
const (
	cellWidth  = 10.0
	cellHeight = 20.0
)

const noticeTTL = 2 * time.Second

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *session.Controller
	Notifier   *Notifier
	Now        func() time.Time
}

// Notifier queues short messages for the status toast. It satisfies
// session.Notifier and never blocks the caller.
type Notifier struct {
	ch chan string
}

func NewNotifier() *Notifier {
	return &Notifier{ch: make(chan string, 4)}
}

func (n *Notifier) Notify(message string) {
	select {
	case n.ch <- message:
	default:
	}
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx     context.Context
	ctrl    *session.Controller
	changes chan struct{}
	unsub   func()
	notices *Notifier
	now     func() time.Time

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	styles  Styles

	snap     session.Snapshot
	tint     lipgloss.Color
	hasTint  bool
	clockNow time.Time
	width    int
	height   int

	notice      string
	noticeUntil time.Time
	showHelp    bool
	pressed     bool
}

// New creates a new Bubble Tea model and subscribes it to the controller.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	notices := opts.Notifier
	if notices == nil {
		notices = NewNotifier()
	}

	// The controller publishes from arbitrary goroutines and forbids
	// re-entrant calls, so the subscriber only raises a flag. The Bubble Tea
	// loop reads the snapshot itself.
	changes := make(chan struct{}, 1)
	unsub := opts.Controller.Subscribe(func(session.Snapshot) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	m := Model{
		ctx:      ctx,
		ctrl:     opts.Controller,
		changes:  changes,
		unsub:    unsub,
		notices:  notices,
		now:      now,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		spinner:  sp,
		styles:   defaultTheme.Styles(),
		clockNow: now(),
	}
	m.setSnapshot(opts.Controller.Snapshot())
	return m
}

// Close stops listening to the controller.
func (m Model) Close() {
	if m.unsub != nil {
		m.unsub()
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg session.Snapshot

type noticeMsg string

// Commands

func tickCmd() tea.Cmd {
	return tea.Tick(clock.Tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForChange(ctrl *session.Controller, changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return snapshotMsg(ctrl.Snapshot())
	}
}

func waitForNotice(n *Notifier) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-n.ch
		if !ok {
			return nil
		}
		return noticeMsg(msg)
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		m.spinner.Tick,
		waitForChange(m.ctrl, m.changes),
		waitForNotice(m.notices),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.clockNow = time.Time(msg)
		if m.notice != "" && !m.clockNow.Before(m.noticeUntil) {
			m.notice = ""
		}
		return m, tickCmd()

	case snapshotMsg:
		m.setSnapshot(session.Snapshot(msg))
		return m, waitForChange(m.ctrl, m.changes)

	case noticeMsg:
		m.setNotice(string(msg))
		return m, waitForNotice(m.notices)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) setSnapshot(s session.Snapshot) {
	m.snap = s
	m.tint, m.hasTint = backdrop(s.Background.Image)
}

func (m *Model) setNotice(text string) {
	m.notice = text
	m.noticeUntil = m.now().Add(noticeTTL)
}

// handleKey and handleMouse read the controller directly rather than the
// last published snapshot so that rapid input never acts on stale state.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.setSnapshot(m.ctrl.Snapshot())
	m, cmd := m.applyKey(msg)
	m.setSnapshot(m.ctrl.Snapshot())
	return m, cmd
}

func (m Model) applyKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// Swipes and taps work in lock mode too.
	switch {
	case key.Matches(msg, m.keys.Tap):
		m.ctrl.Tap()
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.ctrl.Swipe(m.ctx, gesture.Result{Kind: gesture.Horizontal, Direction: gesture.Next}, true)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.ctrl.Swipe(m.ctx, gesture.Result{Kind: gesture.Horizontal, Direction: gesture.Previous}, true)
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.ctrl.Swipe(m.ctx, gesture.Result{Kind: gesture.Vertical, Direction: gesture.Down}, true)
		return m, nil
	}

	if m.snap.Locked {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Category):
		idx := int(msg.String()[0] - '1')
		if idx >= 0 && idx < len(quote.Order) {
			m.ctrl.SelectCategory(m.ctx, quote.Order[idx])
		}
	case key.Matches(msg, m.keys.Lock):
		m.ctrl.EnterLockMode()
	case key.Matches(msg, m.keys.Share):
		m.ctrl.Share()
	case key.Matches(msg, m.keys.Favorite):
		saved, err := m.ctrl.ToggleFavorite()
		switch {
		case err != nil:
			m.setNotice("Nothing to save yet")
		case saved:
			m.setNotice("Saved to favorites")
		default:
			m.setNotice("Removed from favorites")
		}
	case key.Matches(msg, m.keys.Pinned):
		m.showNextFavorite()
	case key.Matches(msg, m.keys.Font):
		next := style.Serif
		if m.snap.Style.Font == style.Serif {
			next = style.Sans
		}
		_ = m.ctrl.SetFontStyle(next)
	case key.Matches(msg, m.keys.Bigger):
		m.stepTextSize(style.TextSizeStep)
	case key.Matches(msg, m.keys.Smaller):
		m.stepTextSize(-style.TextSizeStep)
	case key.Matches(msg, m.keys.NextColor):
		_ = m.ctrl.SetTextColor(nextPaletteColor(m.snap.Style.TextColor))
	}
	return m, nil
}

func (m *Model) stepTextSize(delta float64) {
	size := style.SnapTextSize(m.snap.Style.TextSize + delta)
	if err := m.ctrl.SetTextSize(size); err != nil {
		m.setNotice(err.Error())
	}
}

func (m *Model) showNextFavorite() {
	favs := m.snap.Favorites
	if len(favs) == 0 {
		m.setNotice("No favorites yet")
		return
	}
	next := 0
	for i, f := range favs {
		if f.Quote.Text == m.snap.Quote.Text && f.Quote.Reference == m.snap.Quote.Reference {
			next = (i + 1) % len(favs)
			break
		}
	}
	m.ctrl.ShowFavorite(favs[next].ID)
}

func nextPaletteColor(current string) string {
	for i, c := range style.Palette {
		if strings.EqualFold(c, current) {
			return style.Palette[(i+1)%len(style.Palette)]
		}
	}
	return style.Palette[0]
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m = m.applyMouse(msg)
	m.setSnapshot(m.ctrl.Snapshot())
	return m, nil
}

func (m Model) applyMouse(msg tea.MouseMsg) Model {
	x := float64(msg.X) * cellWidth
	y := float64(msg.Y) * cellHeight
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m
		}
		m.pressed = true
		m.ctrl.TouchStart(x, y)
	case tea.MouseActionRelease:
		if !m.pressed {
			return m
		}
		m.pressed = false
		// The quote area never scrolls in a terminal, so it is always at top.
		if r := m.ctrl.TouchEnd(m.ctx, x, y, true); r.Kind == gesture.None {
			m.ctrl.Tap()
		}
	}
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	width := m.width
	if width <= 0 {
		width = 60
	}
	inner := width - 8
	if inner > 56 {
		inner = 56
	}
	if inner < 16 {
		inner = 16
	}

	var b strings.Builder
	b.WriteString(m.renderClock())
	b.WriteString("\n\n")
	if !m.snap.Locked {
		b.WriteString(m.renderTabs())
		b.WriteString("\n\n")
	}
	b.WriteString(m.renderCard(inner))
	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())
	if m.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Toast.Render(m.notice))
	}

	body := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(b.String())
	if m.height > 0 {
		body = lipgloss.Place(width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body
}

func (m Model) renderClock() string {
	text := lipgloss.NewStyle().Foreground(lipgloss.Color(m.snap.Style.TextColor))
	return text.Bold(true).Render(clock.Time(m.clockNow)) + "\n" +
		text.Render(clock.Date(m.clockNow))
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(quote.Order))
	for _, c := range quote.Order {
		st := m.styles.Tab
		if c == m.snap.Category {
			st = m.styles.ActiveTab
		}
		tabs = append(tabs, st.Render(c.Label()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderCard(inner int) string {
	card := m.styles.Card
	if m.hasTint {
		card = card.Background(m.tint)
	}

	if m.snap.Status == session.StatusLoading || !m.snap.HasQuote() {
		content := m.spinner.View() + " " + m.styles.MutedText.Render("Loading")
		if m.snap.Status == session.StatusError && m.snap.Err != "" {
			content = m.styles.DangerText.Render(m.snap.Err)
		}
		return card.Width(inner).Render(content)
	}

	q := m.snap.Quote
	st := quoteStyle(m.snap.Style)
	wrap := quoteWidth(inner-6, m.snap.Style.TextSize)
	text := st.Width(wrap).Align(lipgloss.Center).Render(fmt.Sprintf("“%s”", q.Text))
	rule := m.styles.FaintText.Render(strings.Repeat("─", 6))
	ref := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.snap.Style.TextColor)).
		Render(strings.ToUpper(q.Reference))

	parts := []string{text, rule, ref}
	if m.snap.Status == session.StatusError && m.snap.Err != "" {
		parts = append(parts, m.styles.DangerText.Render(m.snap.Err))
	}
	return card.Width(inner).Render(lipgloss.JoinVertical(lipgloss.Center, parts...))
}

func (m Model) renderFooter() string {
	if m.snap.Locked {
		return m.styles.FaintText.Render("Double tap to unlock")
	}
	var status []string
	if m.snap.IsFavorite() {
		status = append(status, m.styles.AccentText.Render("★ favorite"))
	}
	if n := len(m.snap.Favorites); n > 0 {
		status = append(status, m.styles.MutedText.Render(fmt.Sprintf("%d saved", n)))
	}
	status = append(status, m.styles.MutedText.Render(fmt.Sprintf("%s · %.1fx",
		m.snap.Style.Font.Label(), roundSize(m.snap.Style.TextSize))))
	if m.snap.Background.Loading {
		status = append(status, m.styles.FaintText.Render("background loading"))
	}
	return strings.Join(status, m.styles.FaintText.Render("  ·  ")) + "\n" + m.help.View(m.keys)
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	h := m.help
	h.ShowAll = true
	b.WriteString(h.View(m.keys))
	b.WriteString("\n\n")
	b.WriteString(m.styles.FaintText.Render("Drag with the mouse to swipe; click to tap. Press any key to close."))
	return b.String()
}

func roundSize(v float64) float64 {
	return math.Round(v*10) / 10
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is canceled.
func Run(opts Options) error {
	m := New(opts)
	defer m.Close()

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
	if opts.Context != nil {
		progOpts = append(progOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, progOpts...)
	if _, err := p.Run(); err != nil {
		if opts.Context != nil && opts.Context.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
