// Package share adapts the system clipboard and terminal output to the
// session controller's share targets.
package share

import (
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
)

var ErrClipboardUnsupported = errors.New("clipboard is not available on this system")

var (
	writeAll    = clipboard.WriteAll
	unsupported = func() bool { return clipboard.Unsupported }
)

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) SetContent(text string) error {
	if unsupported() {
		return ErrClipboardUnsupported
	}
	if err := writeAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// WriterNotifier prints notifications as lines on W.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Notify(message string) {
	fmt.Fprintln(n.W, message)
}

// FuncNotifier adapts a function to the notifier interface.
type FuncNotifier func(string)

func (f FuncNotifier) Notify(message string) {
	f(message)
}
