// Package main is the entry point of the p build tool shim.
//
// The program picks its mode from the name it is invoked under: as p it rewrites
// target references and replaces itself with the build tool, as p_complete it
// prints completion candidates for bash:
//
//	complete -o nospace -C p_complete p
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	pcli "github.com/NikitaCOEUR/pshim/internal/cli"
	"github.com/NikitaCOEUR/pshim/internal/config"
	"github.com/NikitaCOEUR/pshim/internal/derrors"
	"github.com/NikitaCOEUR/pshim/internal/logger"
	"github.com/NikitaCOEUR/pshim/internal/trace"
)

const (
	shimName     = "p"
	completeName = "p_complete"

	// exitFailure is what a -1 exit status surfaces as
	exitFailure = 255
)

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

// run executes the program and returns its exit status. Completion mode never
// prints errors since its output goes straight to the shell.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	mode := modeOf(args[0])

	if err := newCommand(mode, stdout, stderr).Run(ctx, args); err != nil {
		if mode != completeName {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return exitFailure
	}
	return 0
}

// modeOf strips the directory and a .exe suffix from the program name
func modeOf(arg0 string) string {
	name := filepath.Base(arg0)
	if ext := filepath.Ext(name); strings.EqualFold(ext, ".exe") {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

func newCommand(mode string, stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:            mode,
		Usage:           "Run pants with target references relative to the current directory",
		HideHelp:        true,
		SkipFlagParsing: true,
		Writer:          stdout,
		ErrWriter:       stderr,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			switch mode {
			case shimName:
				return runShim(ctx, cmd.Args().Slice(), stdout, stderr)
			case completeName:
				// bash passes the command name, current word and previous word; COMP_LINE has it all
				return runComplete(ctx, stdout)
			default:
				return derrors.NewConfigurationError(mode,
					fmt.Sprintf("unknown program name %q, expected %s or %s", mode, shimName, completeName), nil)
			}
		},
	}
}

func runShim(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.LoadDefault()
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	return pcli.Shim(ctx, pcli.ShimParams{
		Args:   args,
		Cwd:    cwd,
		Config: cfg,
		Stdout: stdout,
		Stderr: stderr,
	})
}

func runComplete(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.LoadDefault()
	if err != nil {
		return err
	}

	log, closeLog, err := logger.Open(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	defer trace.Init(log.Writer())()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	return pcli.Complete(ctx, pcli.CompleteParams{
		Cwd:    cwd,
		Config: cfg,
		Lookup: os.LookupEnv,
		Stdout: stdout,
		Log:    log,
	})
}
