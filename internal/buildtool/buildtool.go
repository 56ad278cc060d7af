// Package buildtool locates the Pants binary of a repository and queries it.
package buildtool

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/NikitaCOEUR/pshim/internal/derrors"
	"github.com/NikitaCOEUR/pshim/internal/pathutil"
	"github.com/NikitaCOEUR/pshim/internal/subproc"
)

const (
	// DefaultBinName is the build tool executable searched for when none is configured
	DefaultBinName = "pants"
	// DefaultBuildFile marks a directory that defines targets
	DefaultBuildFile = "BUILD"
)

// Client runs introspection commands against a located build tool
type Client struct {
	// BinName is the executable name that was searched for
	BinName string
	// BinPath is the absolute path of the located executable
	BinPath string
	// RepoRoot is the directory containing BinPath
	RepoRoot string

	runner subproc.Runner
}

// Locate searches cwd and its parents for binName. The directory holding it becomes the repo root.
func Locate(cwd, binName string) (*Client, error) {
	if binName == "" {
		binName = DefaultBinName
	}

	binPath, found, err := pathutil.FindUpward(cwd, binName, pathutil.FindOptions{})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, derrors.NewConfigurationError(cwd, fmt.Sprintf("cannot find %s binary", binName), nil)
	}

	return New(binName, binPath, subproc.Default), nil
}

// New creates a client for an already located binary
func New(binName, binPath string, runner subproc.Runner) *Client {
	if runner == nil {
		runner = subproc.Default
	}
	return &Client{
		BinName:  binName,
		BinPath:  binPath,
		RepoRoot: filepath.Dir(binPath),
		runner:   runner,
	}
}

// WithRunner returns a copy of the client that runs queries through runner
func (c *Client) WithRunner(runner subproc.Runner) *Client {
	clone := *c
	clone.runner = runner
	return &clone
}

// Command returns the argv used to replace the current process with the build tool
func (c *Client) Command(args []string) []string {
	argv := make([]string, 0, len(args)+1)
	argv = append(argv, c.BinName)
	return append(argv, args...)
}

// HasBuildFile reports whether the repo-relative directory contains the marker file
func (c *Client) HasBuildFile(relDir, buildFile string) bool {
	if buildFile == "" {
		buildFile = DefaultBuildFile
	}
	return pathutil.IsRegularFile(filepath.Join(c.RepoRoot, relDir, buildFile))
}

// query runs the build tool with args from the repo root and returns its stdout.
// A nonzero exit is a collaborator error.
func (c *Client) query(ctx context.Context, args ...string) (string, error) {
	argv := append([]string{c.BinPath}, args...)

	res, err := c.runner.Run(ctx, c.RepoRoot, argv)
	if err != nil {
		return "", err
	}
	if !res.Success() {
		return "", derrors.NewCollaboratorError(
			c.BinName+" "+strings.Join(args, " "),
			res.ExitCode,
			res.Stderr,
			fmt.Sprintf("%s returned rc %d", args[0], res.ExitCode),
			nil,
		)
	}
	return res.Stdout, nil
}

// GoalNames lists every goal the build tool knows, sorted
func (c *Client) GoalNames(ctx context.Context) ([]string, error) {
	out, err := c.query(ctx, "help-all")
	if err != nil {
		return nil, err
	}
	help, err := ParseHelpAll([]byte(out))
	if err != nil {
		return nil, derrors.NewCollaboratorError(c.BinName+" help-all", 0, "", "unexpected help-all output", err)
	}
	return help.GoalNames(), nil
}

// Peek lists the targets matching spec, typically "path:" for every target in a directory
func (c *Client) Peek(ctx context.Context, spec string) ([]PeekTarget, error) {
	out, err := c.query(ctx, "peek", spec)
	if err != nil {
		return nil, err
	}
	targets, err := ParsePeek([]byte(out))
	if err != nil {
		return nil, derrors.NewCollaboratorError(c.BinName+" peek "+spec, 0, "", "unexpected peek output", err)
	}
	return targets, nil
}
