//go:build windows

package cli

import (
	"errors"
	"os"
	"os/exec"
)

// execProcess has no process replacement to rely on: it runs the tool as a child
// with inherited stdio and exits with the child's exit code.
func execProcess(binPath string, argv []string, env []string) error {
	cmd := exec.Command(binPath)
	cmd.Args = argv
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		return err
	}
	os.Exit(0)
	return nil
}
