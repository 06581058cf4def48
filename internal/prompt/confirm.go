// Package prompt asks yes/no questions on the terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNonInteractive means an answer was needed but stdin is not a terminal.
var ErrNonInteractive = errors.New("non-interactive stdin: pass -y to confirm")

// Confirmer reads answers from In. IsInteractive gates every question; a nil
// func counts as non-interactive.
type Confirmer struct {
	In            io.Reader
	Out           io.Writer
	IsInteractive func() bool
}

func DefaultConfirmer() Confirmer {
	return Confirmer{
		In:            os.Stdin,
		Out:           os.Stdout,
		IsInteractive: stdinIsTerminal,
	}
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Confirm asks question and accepts y or yes in any case. assumeYes answers
// for the user.
func (c Confirmer) Confirm(question string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if c.IsInteractive == nil || !c.IsInteractive() {
		return false, ErrNonInteractive
	}
	if c.Out != nil {
		fmt.Fprintf(c.Out, "%s (y/n): ", question)
	}
	line, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// ConfirmOverwrite asks before replacing path.
func (c Confirmer) ConfirmOverwrite(path string, force bool) (bool, error) {
	return c.Confirm(path+" already exists. Overwrite?", force)
}
