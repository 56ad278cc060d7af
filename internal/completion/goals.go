package completion

import (
	"context"
	"strings"

	"github.com/samber/lo"
)

// GoalCompleter completes goal names until the line names a goal
type GoalCompleter struct {
	goals GoalLister
}

// NewGoalCompleter creates a goal completer backed by goals
func NewGoalCompleter(goals GoalLister) *GoalCompleter {
	return &GoalCompleter{goals: goals}
}

// Name returns "Goal"
func (g *GoalCompleter) Name() string {
	return "Goal"
}

// Supports skips the build tool query when the cursor is inside a word
func (g *GoalCompleter) Supports(c *Context) bool {
	return !c.InWord
}

// Complete lists all goals after whitespace, or the goals matching the current word
// when the cursor ends a word that does not look like an option, path or target.
// Once any word on the line is a goal, it passes.
func (g *GoalCompleter) Complete(ctx context.Context, c *Context) ([]Suggestion, bool, error) {
	names, err := g.goals.GoalNames(ctx)
	if err != nil {
		return nil, false, err
	}

	if FindGoal(c.Words, names) != "" {
		return nil, false, nil
	}

	suggestions := lo.Map(names, func(name string, _ int) Suggestion {
		return Suggestion{Value: name}
	})

	switch {
	case c.PastEndOfWord:
		return suggestions, true, nil
	case c.AtEndOfWord && LooksLikeGoal(c.Word):
		return Filter(suggestions, c.Word), true, nil
	}
	return nil, false, nil
}

// FindGoal returns the first word that is a known goal, or ""
func FindGoal(words, goals []string) string {
	goal, _ := lo.Find(words, func(w string) bool {
		return lo.Contains(goals, w)
	})
	return goal
}

// LooksLikeGoal reports whether word could be a partial goal name rather than an
// option, a path or a target reference.
func LooksLikeGoal(word string) bool {
	if strings.HasPrefix(word, "-") || strings.HasPrefix(word, "/") || strings.HasPrefix(word, ".") {
		return false
	}
	return !strings.ContainsAny(word, ":/")
}
