// Package session owns the widget state: selected category, displayed quote,
// load status, lock mode, background, personalization and favorites. Front
// ends translate their input events into controller calls and render the
// snapshots it publishes.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oukeidos/promise/internal/apperrors"
	"github.com/oukeidos/promise/internal/background"
	"github.com/oukeidos/promise/internal/gesture"
	"github.com/oukeidos/promise/internal/logger"
	"github.com/oukeidos/promise/internal/quote"
	"github.com/oukeidos/promise/internal/style"
)

// CopiedMessage is shown after the share text falls back to the clipboard.
const CopiedMessage = "Quote copied to clipboard!"

type QuoteSource interface {
	Fetch(ctx context.Context, c quote.Category) quote.Quote
}

type BackgroundLoader interface {
	Load(ctx context.Context)
	State() background.State
	SetOnChange(func(background.State))
}

// Sharer hands text to a platform share sheet. An error means the user
// canceled or sharing failed; both are ignored.
type Sharer interface {
	Share(title, text string) error
}

type Clipboard interface {
	SetContent(text string) error
}

type Notifier interface {
	Notify(message string)
}

type Options struct {
	Quotes     QuoteSource
	Background BackgroundLoader
	Sharer     Sharer
	Clipboard  Clipboard
	Notifier   Notifier
	// Initial overrides the starting category when valid.
	Initial quote.Category
	Now     func() time.Time
	NewID   func() string
}

type Controller struct {
	quotes    QuoteSource
	bg        BackgroundLoader
	sharer    Sharer
	clipboard Clipboard
	notifier  Notifier
	now       func() time.Time
	newID     func() string

	mu         sync.Mutex
	category   quote.Category
	current    quote.Quote
	status     LoadStatus
	lastErr    string
	locked     bool
	bgState    background.State
	settings   style.Settings
	favorites  []Favorite
	lastTap    time.Time
	generation uint64
	started    bool

	touch gesture.Interpreter

	// pubMu keeps snapshots delivered in mutation order.
	pubMu  sync.Mutex
	subs   map[int]func(Snapshot)
	nextID int

	loads sync.WaitGroup
}

func New(opts Options) *Controller {
	c := &Controller{
		quotes:    opts.Quotes,
		bg:        opts.Background,
		sharer:    opts.Sharer,
		clipboard: opts.Clipboard,
		notifier:  opts.Notifier,
		now:       opts.Now,
		newID:     opts.NewID,
		category:  quote.Initial,
		settings:  style.Default(),
		subs:      make(map[int]func(Snapshot)),
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	if opts.Initial.Valid() {
		c.category = opts.Initial
	}
	if c.bg != nil {
		c.bgState = c.bg.State()
		c.bg.SetOnChange(c.onBackground)
	}
	return c
}

// Subscribe registers fn for every published snapshot and returns a function
// that removes it. fn runs on the goroutine that caused the change and must
// not call back into the controller synchronously.
func (c *Controller) Subscribe(fn func(Snapshot)) func() {
	c.pubMu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.pubMu.Unlock()
	return func() {
		c.pubMu.Lock()
		delete(c.subs, id)
		c.pubMu.Unlock()
	}
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	favs := make([]Favorite, len(c.favorites))
	copy(favs, c.favorites)
	return Snapshot{
		Category:   c.category,
		Quote:      c.current,
		Status:     c.status,
		Err:        c.lastErr,
		Locked:     c.locked,
		Background: c.bgState,
		Style:      c.settings,
		Favorites:  favs,
	}
}

// mutate applies fn under the state lock and publishes the result when fn
// reports a change.
func (c *Controller) mutate(fn func() bool) {
	c.mu.Lock()
	if !fn() {
		c.mu.Unlock()
		return
	}
	snap := c.snapshotLocked()
	c.pubMu.Lock()
	c.mu.Unlock()
	defer c.pubMu.Unlock()
	for _, sub := range c.subs {
		sub(snap)
	}
}

func (c *Controller) onBackground(s background.State) {
	c.mutate(func() bool {
		c.bgState = s
		return true
	})
}

// Start loads the initial category. Later calls do nothing.
func (c *Controller) Start(ctx context.Context) {
	var first bool
	c.mu.Lock()
	if !c.started {
		c.started = true
		first = true
	}
	cat := c.category
	c.mu.Unlock()
	if first {
		c.goLoad(ctx, cat)
	}
}

// Wait blocks until every load started by an intent method has finished.
func (c *Controller) Wait() {
	c.loads.Wait()
}

func (c *Controller) goLoad(ctx context.Context, cat quote.Category) {
	c.loads.Add(1)
	go func() {
		defer c.loads.Done()
		c.Load(ctx, cat)
	}()
}

// Load makes cat the selected category, fetches a quote for it and kicks off
// a background preload. It blocks until the quote is in. A newer Load
// supersedes this one: its result is dropped instead of overwriting the newer
// quote.
func (c *Controller) Load(ctx context.Context, cat quote.Category) {
	var gen uint64
	c.mutate(func() bool {
		c.generation++
		gen = c.generation
		c.category = cat
		c.status = StatusLoading
		c.lastErr = ""
		return true
	})

	if c.bg != nil {
		c.bg.Load(ctx)
	}

	q, err := c.fetch(ctx, cat)

	c.mutate(func() bool {
		if gen != c.generation {
			logger.Debug("Dropping superseded quote", "category", cat, "generation", gen)
			return false
		}
		if err != nil {
			c.status = StatusError
			c.lastErr = apperrors.PublicMessage(err)
			return true
		}
		c.current = q
		c.status = StatusSuccess
		return true
	})
}

func (c *Controller) fetch(ctx context.Context, cat quote.Category) (q quote.Quote, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.Unexpected(fmt.Errorf("panic while loading: %v", r))
			logger.Error("Quote load failed", "category", cat, "error", err)
		}
	}()
	if c.quotes == nil {
		return quote.Fallback(cat), nil
	}
	return c.quotes.Fetch(ctx, cat), nil
}

// SelectCategory switches to cat and loads it.
func (c *Controller) SelectCategory(ctx context.Context, cat quote.Category) {
	c.mutate(func() bool {
		c.category = cat
		return true
	})
	c.goLoad(ctx, cat)
}

// Refresh reloads the current category.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	cat := c.category
	c.mu.Unlock()
	c.goLoad(ctx, cat)
}

// Swipe applies a classified gesture. atTop reports whether the quote area is
// scrolled to its top; a downward swipe refreshes only then. Upward swipes
// are recognized but have no effect.
func (c *Controller) Swipe(ctx context.Context, r gesture.Result, atTop bool) {
	switch {
	case r.Kind == gesture.Horizontal && r.Direction == gesture.Next:
		c.SelectCategory(ctx, c.Snapshot().Category.Next())
	case r.Kind == gesture.Horizontal && r.Direction == gesture.Previous:
		c.SelectCategory(ctx, c.Snapshot().Category.Prev())
	case r.Kind == gesture.Vertical && r.Direction == gesture.Down && atTop:
		c.Refresh(ctx)
	}
}

// TouchStart records the beginning of a touch.
func (c *Controller) TouchStart(x, y float64) {
	c.touch.Start(x, y)
}

// TouchEnd resolves the touch begun by TouchStart and applies it.
func (c *Controller) TouchEnd(ctx context.Context, x, y float64, atTop bool) gesture.Result {
	r := c.touch.End(x, y)
	c.Swipe(ctx, r, atTop)
	return r
}

// EnterLockMode hides the controls until a double tap.
func (c *Controller) EnterLockMode() {
	c.mutate(func() bool {
		if c.locked {
			return false
		}
		c.locked = true
		return true
	})
}

// Tap registers a tap anywhere on the widget. Taps only count in lock mode;
// two of them inside the double-tap window leave it.
func (c *Controller) Tap() {
	now := c.now()
	c.mutate(func() bool {
		if !c.locked {
			return false
		}
		last := c.lastTap
		c.lastTap = now
		if gesture.IsDoubleTap(last, now) {
			c.locked = false
			return true
		}
		return false
	})
}

func (c *Controller) SetFontStyle(f style.FontStyle) error {
	if err := style.ValidateFont(f); err != nil {
		return err
	}
	c.mutate(func() bool {
		c.settings.Font = f
		return true
	})
	return nil
}

// SetTextSize rejects values outside the slider range and leaves the current
// size untouched.
func (c *Controller) SetTextSize(v float64) error {
	if err := style.ValidateTextSize(v); err != nil {
		return err
	}
	c.mutate(func() bool {
		c.settings.TextSize = v
		return true
	})
	return nil
}

func (c *Controller) SetTextColor(hex string) error {
	n, err := style.NormalizeColor(hex)
	if err != nil {
		return err
	}
	c.mutate(func() bool {
		c.settings.TextColor = n
		return true
	})
	return nil
}

// Share hands the current quote to the sharer, or copies it to the clipboard
// and tells the user when no sharer is available. Failures are logged only.
func (c *Controller) Share() {
	snap := c.Snapshot()
	if !snap.HasQuote() {
		return
	}
	text := quote.ShareText(snap.Quote)

	if c.sharer != nil {
		if err := c.sharer.Share(quote.ShareTitle, text); err != nil {
			logger.Debug("Share canceled", "error", err)
		}
		return
	}
	if c.clipboard == nil {
		logger.Warn("No share target available")
		return
	}
	if err := c.clipboard.SetContent(text); err != nil {
		logger.Warn("Copy to clipboard failed", "error", err)
		return
	}
	if c.notifier != nil {
		c.notifier.Notify(CopiedMessage)
	}
}

var ErrNoQuote = errors.New("no quote loaded")

// SaveFavorite pins the displayed quote. Saving a quote that is already
// pinned returns the existing entry.
func (c *Controller) SaveFavorite() (Favorite, error) {
	var fav Favorite
	var err error
	c.mutate(func() bool {
		if c.current.IsZero() {
			err = ErrNoQuote
			return false
		}
		for _, f := range c.favorites {
			if sameQuote(f.Quote, c.current) {
				fav = f
				return false
			}
		}
		fav = Favorite{ID: c.newID(), SavedAt: c.now(), Quote: c.current}
		c.favorites = append(c.favorites, fav)
		return true
	})
	return fav, err
}

// RemoveFavorite unpins id and reports whether it was present.
func (c *Controller) RemoveFavorite(id string) bool {
	var found bool
	c.mutate(func() bool {
		for i, f := range c.favorites {
			if f.ID == id {
				c.favorites = append(c.favorites[:i:i], c.favorites[i+1:]...)
				found = true
				return true
			}
		}
		return false
	})
	return found
}

// ToggleFavorite pins the displayed quote, or unpins it when already pinned.
func (c *Controller) ToggleFavorite() (saved bool, err error) {
	snap := c.Snapshot()
	for _, f := range snap.Favorites {
		if sameQuote(f.Quote, snap.Quote) {
			c.RemoveFavorite(f.ID)
			return false, nil
		}
	}
	if _, err := c.SaveFavorite(); err != nil {
		return false, err
	}
	return true, nil
}

// ShowFavorite displays a pinned quote without a network round trip.
func (c *Controller) ShowFavorite(id string) bool {
	var found bool
	c.mutate(func() bool {
		for _, f := range c.favorites {
			if f.ID == id {
				c.generation++
				c.current = f.Quote
				c.category = f.Quote.Category
				c.status = StatusSuccess
				c.lastErr = ""
				found = true
				return true
			}
		}
		return false
	})
	return found
}
