package completion

import (
	"context"
	"strings"

	"github.com/samber/lo"

	"github.com/NikitaCOEUR/pshim/internal/buildtool"
	"github.com/NikitaCOEUR/pshim/internal/derrors"
	"github.com/NikitaCOEUR/pshim/internal/target"
)

// TargetCompleter completes the name part of a path:name reference
type TargetCompleter struct {
	targets   TargetLister
	cwd       string
	repoRoot  string
	buildFile string
}

// NewTargetCompleter creates a target completer resolving references from cwd
func NewTargetCompleter(targets TargetLister, cwd, repoRoot, buildFile string) *TargetCompleter {
	if buildFile == "" {
		buildFile = buildtool.DefaultBuildFile
	}
	return &TargetCompleter{
		targets:   targets,
		cwd:       cwd,
		repoRoot:  repoRoot,
		buildFile: buildFile,
	}
}

// Name returns "Target"
func (t *TargetCompleter) Name() string {
	return "Target"
}

// Supports requires the cursor at the end of a word containing ":"
func (t *TargetCompleter) Supports(c *Context) bool {
	return c.AtEndOfWord && target.IsReference(c.Word)
}

// Complete lists the names of targets in the referenced directory that start with
// the partial name typed after ":". The directory must have a build file.
func (t *TargetCompleter) Complete(ctx context.Context, c *Context) ([]Suggestion, bool, error) {
	addr, err := target.Parse(c.Word, t.cwd, t.repoRoot)
	if err != nil {
		return nil, false, err
	}

	if !t.targets.HasBuildFile(addr.Path, t.buildFile) {
		return nil, false, derrors.NewMissingBuildFileError(addr.Dir(t.repoRoot), t.buildFile)
	}

	found, err := t.targets.Peek(ctx, addr.PathSpec()+target.Separator)
	if err != nil {
		return nil, false, err
	}

	prefix := addr.String()
	suggestions := lo.FilterMap(found, func(pt buildtool.PeekTarget, _ int) (Suggestion, bool) {
		return Suggestion{Value: pt.Name(), Description: pt.TargetType}, strings.HasPrefix(pt.Address, prefix)
	})

	return suggestions, true, nil
}
