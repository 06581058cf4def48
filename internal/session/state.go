package session

import (
	"time"

	"github.com/oukeidos/promise/internal/background"
	"github.com/oukeidos/promise/internal/quote"
	"github.com/oukeidos/promise/internal/style"
)

type LoadStatus int

const (
	StatusIdle LoadStatus = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s LoadStatus) String() string {
	switch s {
	case StatusLoading:
		return "LOADING"
	case StatusSuccess:
		return "SUCCESS"
	case StatusError:
		return "ERROR"
	default:
		return "IDLE"
	}
}

// Favorite is a quote pinned during this session.
type Favorite struct {
	ID      string
	SavedAt time.Time
	Quote   quote.Quote
}

// Snapshot is an immutable copy of the controller state handed to renderers.
type Snapshot struct {
	Category   quote.Category
	Quote      quote.Quote
	Status     LoadStatus
	Err        string
	Locked     bool
	Background background.State
	Style      style.Settings
	Favorites  []Favorite
}

// HasQuote reports whether a quote has been loaded at least once.
func (s Snapshot) HasQuote() bool {
	return !s.Quote.IsZero()
}

// IsFavorite reports whether the displayed quote is pinned.
func (s Snapshot) IsFavorite() bool {
	for _, f := range s.Favorites {
		if sameQuote(f.Quote, s.Quote) {
			return true
		}
	}
	return false
}

func sameQuote(a, b quote.Quote) bool {
	return a.Text == b.Text && a.Reference == b.Reference
}
