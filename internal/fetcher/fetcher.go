// Package fetcher turns a category into a displayable quote. It never fails:
// every generator problem is logged and answered from the fallback catalog.
package fetcher

import (
	"context"
	"fmt"

	"github.com/oukeidos/promise/internal/apperrors"
	"github.com/oukeidos/promise/internal/gemini"
	"github.com/oukeidos/promise/internal/logger"
	"github.com/oukeidos/promise/internal/quote"
)

type Fetcher struct {
	gen gemini.Generator
}

// New wraps gen. A nil generator is allowed and makes every Fetch return
// the fallback entry, which is how the app runs without an API key.
func New(gen gemini.Generator) *Fetcher {
	if gen != nil {
		gen.SetSystemInstruction(SystemInstruction)
	}
	return &Fetcher{gen: gen}
}

// Fetch asks the generator for a quote in category c. The result is always
// tagged with c, whatever the response says.
func (f *Fetcher) Fetch(ctx context.Context, c quote.Category) quote.Quote {
	if f == nil || f.gen == nil {
		logger.Debug("No generator configured, using fallback quote", "category", c)
		return quote.Fallback(c)
	}

	data, err := f.generate(ctx, c)
	if err != nil {
		logFailure(c, err)
		return quote.Fallback(c)
	}

	if n := quote.WordCount(data.Text); n > quote.MaxWords {
		logger.Warn("Generated quote exceeds word budget", "category", c, "words", n)
	}
	logger.Debug("Quote generated",
		"category", c,
		"tokens", data.Usage.TotalTokenCount,
	)
	return quote.Quote{
		Text:      data.Text,
		Reference: data.Reference,
		Category:  c,
	}
}

func (f *Fetcher) generate(ctx context.Context, c quote.Category) (data *gemini.ResponseData, err error) {
	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = apperrors.Unexpected(fmt.Errorf("generator panic: %v", r))
		}
	}()

	data, err = f.gen.Generate(ctx, gemini.RequestData{
		Category: c.String(),
		Prompt:   Prompt(c),
	})
	if err != nil {
		return nil, err
	}
	if data == nil || data.Text == "" || data.Reference == "" {
		return nil, apperrors.Validation(fmt.Errorf("incomplete generator response"))
	}
	return data, nil
}

func logFailure(c quote.Category, err error) {
	kind, _ := apperrors.KindOf(err)
	args := []any{
		"category", c,
		"kind", kind,
		"error", apperrors.PublicMessage(err),
	}
	if apperrors.IsConfigProblem(err) {
		logger.Error("Quote generation failed, using fallback", args...)
		return
	}
	logger.Warn("Quote generation failed, using fallback", args...)
}
