// Package background preloads the ambient image behind the quote. A URL is
// only committed once its image has been downloaded and decoded, so the
// visible background never flashes to an unloaded state.
package background

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"sync"
	"time"

	"github.com/oukeidos/promise/internal/httpclient"
	"github.com/oukeidos/promise/internal/logger"
	_ "golang.org/x/image/webp"
)

// CommitDelay separates decode completion from the visible swap.
const CommitDelay = 50 * time.Millisecond

// State is a copy of the preloader's view. Image belongs to CurrentURL.
type State struct {
	CurrentURL string
	NextURL    string
	Loading    bool
	Image      image.Image
}

type Options struct {
	BaseURL     string
	Client      *http.Client
	CommitDelay time.Duration
	// Now supplies the seed. Tests pin it to get stable URLs.
	Now func() time.Time
}

type Preloader struct {
	baseURL     string
	client      *http.Client
	commitDelay time.Duration
	now         func() time.Time

	mu       sync.Mutex
	state    State
	onChange func(State)
	pubMu    sync.Mutex
	wg       sync.WaitGroup
}

func New(opts Options) *Preloader {
	p := &Preloader{
		baseURL:     opts.BaseURL,
		client:      opts.Client,
		commitDelay: opts.CommitDelay,
		now:         opts.Now,
		state:       State{Loading: true},
	}
	if p.client == nil {
		p.client = httpclient.GetDefaultClient()
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.commitDelay < 0 {
		p.commitDelay = 0
	}
	return p
}

// SetOnChange registers the single observer notified after every state change.
// Calls are serialized in state order and run without the state lock held.
func (p *Preloader) SetOnChange(fn func(State)) {
	p.mu.Lock()
	p.onChange = fn
	p.mu.Unlock()
}

func (p *Preloader) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Load starts a preload in the background and returns immediately.
func (p *Preloader) Load(ctx context.Context) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if err := p.LoadSync(ctx); err != nil {
			logger.Debug("Background preload failed", "error", err)
		}
	}()
}

// Wait blocks until every Load started so far has finished.
func (p *Preloader) Wait() {
	p.wg.Wait()
}

// LoadSync runs one preload to completion. On error the state is left as it
// was before the call, except for the loading flag raised at the start.
func (p *Preloader) LoadSync(ctx context.Context) error {
	url := URL(p.baseURL, p.now().UnixMilli())

	p.update(func(s *State) bool {
		if s.CurrentURL != "" || s.Loading {
			return false
		}
		s.Loading = true
		return true
	})

	img, err := p.fetch(ctx, url)
	if err != nil {
		return err
	}

	p.update(func(s *State) bool {
		s.NextURL = url
		return true
	})

	if p.commitDelay > 0 {
		t := time.NewTimer(p.commitDelay)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		}
	}

	p.update(func(s *State) bool {
		s.CurrentURL = url
		s.Image = img
		s.Loading = false
		return true
	})
	logger.Debug("Background committed", "url", url)
	return nil
}

func (p *Preloader) fetch(ctx context.Context, url string) (image.Image, error) {
	body, err := httpclient.Get(ctx, p.client, url)
	if err != nil {
		return nil, fmt.Errorf("download background: %w", err)
	}
	img, format, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("decode background: %w", err)
	}
	logger.Debug("Background decoded", "format", format, "bounds", img.Bounds().String())
	return img, nil
}

// update applies fn and delivers the new state. pubMu is taken before mu is
// released so callbacks see states in the order they were written.
func (p *Preloader) update(fn func(*State) bool) {
	p.mu.Lock()
	if !fn(&p.state) {
		p.mu.Unlock()
		return
	}
	snapshot := p.state
	cb := p.onChange
	p.pubMu.Lock()
	p.mu.Unlock()
	defer p.pubMu.Unlock()
	if cb != nil {
		cb(snapshot)
	}
}
