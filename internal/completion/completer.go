// Package completion implements shell completion for the build tool shim.
//
// The shell hands over the line being edited and the cursor position (COMP_LINE /
// COMP_POINT). From those a Context is derived, and completion strategies are tried
// in order until one claims the cursor position.
package completion

import (
	"context"

	"github.com/samber/lo"

	"github.com/NikitaCOEUR/pshim/internal/buildtool"
)

// Suggestion represents a single completion suggestion
type Suggestion struct {
	Value       string // The actual value to complete
	Description string // Optional description/help text
}

// Completer defines the interface for completion strategies
type Completer interface {
	// Name identifies the strategy in logs
	Name() string

	// Supports is a cheap check that the cursor position could be completed at all
	Supports(c *Context) bool

	// Complete returns suggestions and ok=true when the strategy claims the cursor
	// position, even if no suggestion matches. ok=false passes to the next strategy.
	Complete(ctx context.Context, c *Context) (suggestions []Suggestion, ok bool, err error)
}

// Result represents the result of a completion attempt
type Result struct {
	Suggestions []Suggestion
	Source      string // Which completer provided these suggestions
}

// Values returns the suggestion values in order
func (r *Result) Values() []string {
	return lo.Map(r.Suggestions, func(s Suggestion, _ int) string {
		return s.Value
	})
}

// GoalLister lists the goals the build tool knows
type GoalLister interface {
	GoalNames(ctx context.Context) ([]string, error)
}

// TargetLister lists the targets of a directory
type TargetLister interface {
	Peek(ctx context.Context, spec string) ([]buildtool.PeekTarget, error)
	HasBuildFile(relDir, buildFile string) bool
}
