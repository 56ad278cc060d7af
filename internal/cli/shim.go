// Package cli implements the two modes of the p program: the shim replacing itself
// with the build tool, and the completion helper.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/pshim/internal/buildtool"
	"github.com/NikitaCOEUR/pshim/internal/completion"
	"github.com/NikitaCOEUR/pshim/internal/config"
	"github.com/NikitaCOEUR/pshim/internal/derrors"
	"github.com/NikitaCOEUR/pshim/internal/logger"
	"github.com/NikitaCOEUR/pshim/internal/target"
	"github.com/NikitaCOEUR/pshim/pkg/version"
)

// ExecFunc replaces the current process with binPath. It only returns on failure.
type ExecFunc func(binPath string, argv []string, env []string) error

// ShimParams contains parameters for the Shim command
type ShimParams struct {
	Args   []string
	Cwd    string
	Config *config.Config
	Stdout io.Writer
	Stderr io.Writer

	// Environ defaults to os.Environ()
	Environ []string
	// Chdir defaults to os.Chdir
	Chdir func(dir string) error
	// Exec defaults to replacing the process
	Exec ExecFunc
}

// Shim rewrites target references in the arguments relative to the repo root,
// echoes the resulting command and runs the build tool from the repo root.
// On success it does not return.
func Shim(_ context.Context, params ShimParams) error {
	cfg := params.Config
	log := logger.New(cfg.LogLevel, params.Stderr)

	client, err := buildtool.Locate(params.Cwd, cfg.BinName)
	if err != nil {
		return err
	}

	args, err := target.RewriteArgs(params.Args, params.Cwd, client.RepoRoot)
	if err != nil {
		return err
	}
	argv := client.Command(args)

	log.Debug().
		Str("version", version.String()).
		Str("bin", client.BinPath).
		Str("repo_root", client.RepoRoot).
		Strs("args", params.Args).
		Strs("rewritten", args).
		Msg("Rewrote arguments")

	if cfg.Echo {
		line := completion.JoinWords(append([]string{client.BinPath}, args...))
		fmt.Fprintln(params.Stdout, newEchoStyle(params.Stdout).Render(line))
	}

	chdir := params.Chdir
	if chdir == nil {
		chdir = os.Chdir
	}
	if err := chdir(client.RepoRoot); err != nil {
		return derrors.NewExecutionError(client.BinPath, "failed to enter repo root "+client.RepoRoot, err)
	}

	env := params.Environ
	if env == nil {
		env = os.Environ()
	}
	run := params.Exec
	if run == nil {
		run = execProcess
	}

	if err := run(client.BinPath, argv, env); err != nil {
		return derrors.NewExecutionError(client.BinPath, "failed to execute "+client.BinPath, err)
	}
	return nil
}
