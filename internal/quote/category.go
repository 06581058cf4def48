package quote

import (
	"fmt"
	"strings"
)

// Category selects the flavour of content requested from the generator.
type Category string

const (
	Athlete Category = "ATHLETE"
	Stoic   Category = "STOIC"
	Bible   Category = "BIBLE"
	Prayer  Category = "PRAYER"
)

// Initial is the category loaded when a session starts.
const Initial = Athlete

// Order is the swipe cycle. Next wraps from the last entry to the first.
var Order = []Category{Athlete, Stoic, Bible, Prayer}

var labels = map[Category]string{
	Athlete: "Sport",
	Stoic:   "Stoic",
	Bible:   "Bible",
	Prayer:  "Prayer",
}

func (c Category) String() string {
	return string(c)
}

// Label is the short name shown on the category selector.
func (c Category) Label() string {
	if l, ok := labels[c]; ok {
		return l
	}
	return string(c)
}

func (c Category) Valid() bool {
	_, ok := labels[c]
	return ok
}

func (c Category) index() int {
	for i, o := range Order {
		if o == c {
			return i
		}
	}
	return -1
}

// Next returns the following category in Order. Unknown values restart the cycle.
func (c Category) Next() Category {
	i := c.index()
	if i < 0 {
		return Order[0]
	}
	return Order[(i+1)%len(Order)]
}

// Prev returns the preceding category in Order. Unknown values restart the cycle.
func (c Category) Prev() Category {
	i := c.index()
	if i < 0 {
		return Order[0]
	}
	return Order[(i-1+len(Order))%len(Order)]
}

// Parse accepts either the enum name or the display label, case-insensitive.
func Parse(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Order {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, c.Label()) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q (want one of sport, stoic, bible, prayer)", s)
}
