package share

import (
	"bytes"
	"errors"
	"testing"
)

func stubClipboard(t *testing.T, isUnsupported bool, err error) *string {
	t.Helper()
	var got string
	prevWrite, prevUnsupported := writeAll, unsupported
	writeAll = func(text string) error {
		if err != nil {
			return err
		}
		got = text
		return nil
	}
	unsupported = func() bool { return isUnsupported }
	t.Cleanup(func() {
		writeAll, unsupported = prevWrite, prevUnsupported
	})
	return &got
}

func TestSystemClipboard(t *testing.T) {
	t.Run("Writes", func(t *testing.T) {
		got := stubClipboard(t, false, nil)
		if err := (SystemClipboard{}).SetContent("hello"); err != nil {
			t.Fatalf("SetContent: %v", err)
		}
		if *got != "hello" {
			t.Fatalf("clipboard = %q", *got)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		stubClipboard(t, true, nil)
		if err := (SystemClipboard{}).SetContent("x"); !errors.Is(err, ErrClipboardUnsupported) {
			t.Fatalf("err = %v, want ErrClipboardUnsupported", err)
		}
	})

	t.Run("WriteError", func(t *testing.T) {
		sentinel := errors.New("xclip missing")
		stubClipboard(t, false, sentinel)
		if err := (SystemClipboard{}).SetContent("x"); !errors.Is(err, sentinel) {
			t.Fatalf("err = %v, want wrapped sentinel", err)
		}
	})
}

func TestNotifiers(t *testing.T) {
	var buf bytes.Buffer
	WriterNotifier{W: &buf}.Notify("Quote copied to clipboard!")
	if buf.String() != "Quote copied to clipboard!\n" {
		t.Fatalf("output = %q", buf.String())
	}

	var msg string
	FuncNotifier(func(s string) { msg = s }).Notify("ok")
	if msg != "ok" {
		t.Fatalf("msg = %q", msg)
	}
}
