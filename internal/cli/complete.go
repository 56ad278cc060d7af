package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/NikitaCOEUR/pshim/internal/buildtool"
	"github.com/NikitaCOEUR/pshim/internal/completion"
	"github.com/NikitaCOEUR/pshim/internal/config"
	"github.com/NikitaCOEUR/pshim/internal/logger"
	"github.com/NikitaCOEUR/pshim/internal/subproc"
	"github.com/NikitaCOEUR/pshim/internal/timing"
	"github.com/NikitaCOEUR/pshim/internal/trace"
	"github.com/NikitaCOEUR/pshim/pkg/version"
)

// CompleteParams contains parameters for the Complete command
type CompleteParams struct {
	Cwd    string
	Config *config.Config
	// Lookup reads COMP_LINE and COMP_POINT, usually os.LookupEnv
	Lookup func(key string) (string, bool)
	Stdout io.Writer
	// Log defaults to discarding everything
	Log *logger.Logger
	// Runner overrides how build tool queries are run
	Runner subproc.Runner
}

// Complete prints completion candidates for the command line in COMP_LINE, one per line
func Complete(ctx context.Context, params CompleteParams) error {
	cfg := params.Config
	log := params.Log
	if log == nil {
		log = logger.Discard()
	}

	timer := timing.NewTimer()
	defer func() {
		log.Debug().Int("queries", len(timer.Spans())).Str("timing", timer.Summary()).Msg("Completion finished")
	}()

	client, err := buildtool.Locate(params.Cwd, cfg.BinName)
	if err != nil {
		log.Error().Err(err).Str("cwd", params.Cwd).Msg("Build tool not found")
		return err
	}
	if params.Runner != nil {
		client = client.WithRunner(params.Runner)
	}

	compCtx, err := completion.ContextFromEnv(params.Lookup)
	if err != nil {
		log.Error().Err(err).Msg("Invalid completion request")
		return err
	}

	log.Debug().
		Str("version", version.String()).
		Str("line", compCtx.Line).
		Int("point", compCtx.Point).
		Str("word", compCtx.Word).
		Bool("in_word", compCtx.InWord).
		Bool("at_end", compCtx.AtEndOfWord).
		Bool("past_end", compCtx.PastEndOfWord).
		Msg("Completion request")

	tracked := &trackedClient{client: client, timer: timer, log: log}

	var completers []completion.Completer
	if cfg.CompleteGoals {
		completers = append(completers, completion.NewGoalCompleter(tracked))
	}
	completers = append(completers, completion.NewTargetCompleter(tracked, params.Cwd, client.RepoRoot, cfg.BuildFile))

	var result *completion.Result
	endRegion := trace.Region(ctx, "complete")
	result, err = completion.NewEngine(completers...).Complete(ctx, compCtx)
	endRegion()
	if err != nil {
		log.Error().Err(err).Str("word", compCtx.Word).Msg("Completion failed")
		return err
	}

	log.Debug().
		Str("source", result.Source).
		Int("count", len(result.Suggestions)).
		Msg("Completion result")
	if log.Enabled("trace") {
		for _, s := range result.Suggestions {
			log.Trace().Str("value", s.Value).Str("description", s.Description).Msg("Suggestion")
		}
	}

	for _, value := range result.Values() {
		if _, err := fmt.Fprintln(params.Stdout, value); err != nil {
			return err
		}
	}
	return nil
}

// trackedClient times, traces and logs build tool queries
type trackedClient struct {
	client *buildtool.Client
	timer  *timing.Timer
	log    *logger.Logger
}

func (t *trackedClient) GoalNames(ctx context.Context) ([]string, error) {
	stop := t.timer.Track("help-all")
	endRegion := trace.Region(ctx, "help-all")
	names, err := t.client.GoalNames(ctx)
	endRegion()
	d := stop()

	t.log.Debug().Dur("duration", d).Int("goals", len(names)).Err(err).Msg("Queried goals")
	return names, err
}

func (t *trackedClient) Peek(ctx context.Context, spec string) ([]buildtool.PeekTarget, error) {
	stop := t.timer.Track("peek")
	endRegion := trace.Region(ctx, "peek")
	trace.Log(ctx, "peek", spec)
	targets, err := t.client.Peek(ctx, spec)
	endRegion()
	d := stop()

	t.log.Debug().Dur("duration", d).Str("spec", spec).Int("targets", len(targets)).Err(err).Msg("Queried targets")
	return targets, err
}

func (t *trackedClient) HasBuildFile(relDir, buildFile string) bool {
	return t.client.HasBuildFile(relDir, buildFile)
}
