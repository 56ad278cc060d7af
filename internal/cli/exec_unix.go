//go:build !windows

package cli

import "syscall"

// execProcess replaces the current process image
func execProcess(binPath string, argv []string, env []string) error {
	return syscall.Exec(binPath, argv, env)
}
