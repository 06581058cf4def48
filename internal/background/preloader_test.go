package background

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 8))
	img.Set(1, 1, color.NRGBA{R: 200, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

type recorder struct {
	mu     sync.Mutex
	states []State
}

func (r *recorder) record(s State) {
	r.mu.Lock()
	r.states = append(r.states, s)
	r.mu.Unlock()
}

func (r *recorder) all() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]State(nil), r.states...)
}

func TestURL(t *testing.T) {
	got := URL("", 1700000000000)
	want := "https://image.pollinations.ai/prompt/abstract%20nature%2C%20landscape%2C%20atmospheric%2C%20cinematic%20lighting%2C%208k%2C%20minimalistic" +
		"?width=720&height=1280&nologo=true&seed=1700000000000&model=flux"
	if got != want {
		t.Fatalf("URL() =\n%s\nwant\n%s", got, want)
	}
	if got := URL("http://localhost:1/", 1); !strings.HasPrefix(got, "http://localhost:1/prompt/abstract%20nature") {
		t.Fatalf("custom base URL not honoured: %s", got)
	}
	if URL("", 1) == URL("", 2) {
		t.Fatalf("distinct seeds must give distinct URLs")
	}
}

func TestNew_StartsLoading(t *testing.T) {
	p := New(Options{})
	if st := p.State(); !st.Loading || st.CurrentURL != "" || st.NextURL != "" {
		t.Fatalf("initial state = %+v", st)
	}
}

func TestLoadSync_CommitsAfterDecode(t *testing.T) {
	body := pngBytes(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("seed") != "42" {
			t.Errorf("seed = %q", r.URL.Query().Get("seed"))
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(body)
	}))
	defer server.Close()

	rec := &recorder{}
	p := New(Options{BaseURL: server.URL, Client: server.Client(), CommitDelay: time.Millisecond, Now: fixedClock(42)})
	p.SetOnChange(rec.record)

	if err := p.LoadSync(context.Background()); err != nil {
		t.Fatalf("LoadSync: %v", err)
	}

	want := URL(server.URL, 42)
	st := p.State()
	if st.CurrentURL != want || st.NextURL != want || st.Loading {
		t.Fatalf("final state = %+v", st)
	}
	if st.Image == nil || st.Image.Bounds().Dx() != 4 {
		t.Fatalf("decoded image not attached: %v", st.Image)
	}

	states := rec.all()
	if len(states) != 2 {
		t.Fatalf("got %d notifications, want 2", len(states))
	}
	if states[0].NextURL != want || states[0].CurrentURL != "" {
		t.Fatalf("first notification should stage next URL only: %+v", states[0])
	}
	if states[1].CurrentURL != want || states[1].Loading {
		t.Fatalf("second notification should commit: %+v", states[1])
	}
}

func TestLoadSync_FailureLeavesStateUnchanged(t *testing.T) {
	good := pngBytes(t)
	var mode atomic.Value
	mode.Store("")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch mode.Load().(string) {
		case "garbage":
			w.Write([]byte("<html>not an image</html>"))
		case "error":
			http.Error(w, "down", http.StatusBadGateway)
		default:
			w.Write(good)
		}
	}))
	defer server.Close()

	seed := int64(1)
	p := New(Options{BaseURL: server.URL, Client: server.Client(), Now: func() time.Time { return time.UnixMilli(seed) }})
	if err := p.LoadSync(context.Background()); err != nil {
		t.Fatalf("initial load: %v", err)
	}
	before := p.State()

	for _, m := range []string{"garbage", "error"} {
		t.Run(m, func(t *testing.T) {
			mode.Store(m)
			seed++
			if err := p.LoadSync(context.Background()); err == nil {
				t.Fatalf("expected error")
			}
			after := p.State()
			if after.CurrentURL != before.CurrentURL || after.NextURL != before.NextURL || after.Loading != before.Loading {
				t.Fatalf("state changed on failure: before=%+v after=%+v", before, after)
			}
		})
	}
}

func TestLoadSync_LoadingOnlyWithoutBackground(t *testing.T) {
	good := pngBytes(t)
	var fail atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			http.Error(w, "nope", http.StatusInternalServerError)
			return
		}
		w.Write(good)
	}))
	defer server.Close()

	rec := &recorder{}
	p := New(Options{BaseURL: server.URL, Client: server.Client()})
	p.SetOnChange(rec.record)
	if err := p.LoadSync(context.Background()); err != nil {
		t.Fatalf("LoadSync: %v", err)
	}

	fail.Store(true)
	_ = p.LoadSync(context.Background())
	for _, s := range rec.all()[2:] {
		if s.Loading {
			t.Fatalf("loading raised while a background was visible: %+v", s)
		}
	}
	if p.State().Loading {
		t.Fatalf("loading flag set after failed reload")
	}
}

func TestLoad_Async(t *testing.T) {
	body := pngBytes(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer server.Close()

	done := make(chan State, 4)
	p := New(Options{BaseURL: server.URL, Client: server.Client(), CommitDelay: CommitDelay})
	p.SetOnChange(func(s State) {
		if s.CurrentURL != "" {
			done <- s
		}
	})
	p.Load(context.Background())

	select {
	case s := <-done:
		if s.Loading {
			t.Fatalf("committed state still loading: %+v", s)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("background never committed")
	}
	p.Wait()
}

func TestLoadSync_CanceledDuringDelay(t *testing.T) {
	body := pngBytes(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	p := New(Options{BaseURL: server.URL, Client: server.Client(), CommitDelay: time.Hour})
	p.SetOnChange(func(s State) {
		if s.NextURL != "" {
			cancel()
		}
	})
	if err := p.LoadSync(ctx); err == nil {
		t.Fatal("expected context error")
	}
	if p.State().CurrentURL != "" {
		t.Fatalf("canceled preload must not commit")
	}
}

func TestUpdate_CallbacksFollowWriteOrder(t *testing.T) {
	p := New(Options{})
	rec := &recorder{}
	p.SetOnChange(func(s State) {
		time.Sleep(time.Millisecond)
		rec.record(s)
	})

	var seq int
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.update(func(s *State) bool {
				seq++
				s.NextURL = strconv.Itoa(seq)
				return true
			})
		}()
	}
	wg.Wait()

	states := rec.all()
	if len(states) != 8 {
		t.Fatalf("got %d callbacks, want 8", len(states))
	}
	for i, s := range states {
		if want := strconv.Itoa(i + 1); s.NextURL != want {
			t.Fatalf("callback %d saw NextURL %q, want %q", i, s.NextURL, want)
		}
	}
}
