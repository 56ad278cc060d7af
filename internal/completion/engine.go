package completion

import (
	"context"
	"strings"

	"github.com/samber/lo"
)

// Engine tries completion strategies in order; the first one to claim the cursor wins
type Engine struct {
	completers []Completer
}

// NewEngine creates an engine trying completers in the given order
func NewEngine(completers ...Completer) *Engine {
	return &Engine{completers: completers}
}

// Complete runs the strategies in order. When none applies the result is empty
// with source "none". Any strategy error aborts completion.
func (e *Engine) Complete(ctx context.Context, c *Context) (*Result, error) {
	for _, completer := range e.completers {
		if !completer.Supports(c) {
			continue
		}

		suggestions, ok, err := completer.Complete(ctx, c)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		return &Result{
			Suggestions: suggestions,
			Source:      completer.Name(),
		}, nil
	}

	return &Result{
		Suggestions: []Suggestion{},
		Source:      "none",
	}, nil
}

// Filter applies prefix filtering to suggestions
func Filter(suggestions []Suggestion, prefix string) []Suggestion {
	if prefix == "" {
		return suggestions
	}

	return lo.Filter(suggestions, func(s Suggestion, _ int) bool {
		return strings.HasPrefix(s.Value, prefix)
	})
}
