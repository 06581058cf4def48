package main

import (
	"strings"

	"github.com/oukeidos/promise/internal/quote"
	"github.com/spf13/pflag"
)

// categoryFlag parses --category at flag time so a typo fails before any
// network setup. The zero value means "use the configured category".
type categoryFlag struct {
	cat quote.Category
}

var _ pflag.Value = (*categoryFlag)(nil)

func (f *categoryFlag) String() string { return string(f.cat) }

func (f *categoryFlag) Set(s string) error {
	if strings.TrimSpace(s) == "" {
		f.cat = ""
		return nil
	}
	c, err := quote.Parse(s)
	if err != nil {
		return err
	}
	f.cat = c
	return nil
}

func (f *categoryFlag) Type() string { return "category" }

// or returns the parsed category, or def when the flag was not given.
func (f *categoryFlag) or(def quote.Category) quote.Category {
	if f.cat == "" {
		return def
	}
	return f.cat
}

func addCategoryFlag(fs *pflag.FlagSet, f *categoryFlag) {
	fs.VarP(f, "category", "c", "Category: sport, stoic, bible or prayer (default from config)")
}
