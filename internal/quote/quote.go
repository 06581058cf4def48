package quote

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// MaxWords is the length budget given to the generator. Longer texts are
// still displayed.
const MaxWords = 25

// ShareTitle is the title handed to the platform share sheet.
const ShareTitle = "Prayer & Promise"

// Quote is a single displayed item. It is replaced wholesale on every load.
type Quote struct {
	Text      string
	Reference string
	Category  Category
}

func (q Quote) IsZero() bool {
	return q.Text == "" && q.Reference == ""
}

// ShareText formats q the way it is shared or copied.
func ShareText(q Quote) string {
	return fmt.Sprintf("\"%s\"\n— %s\n\nVia %s", q.Text, q.Reference, ShareTitle)
}

// WordCount counts Unicode words that contain at least one letter or digit.
func WordCount(s string) int {
	n := 0
	state := -1
	var word string
	for len(s) > 0 {
		word, s, state = uniseg.FirstWordInString(s, state)
		if strings.IndexFunc(word, isWordRune) >= 0 {
			n++
		}
	}
	return n
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
