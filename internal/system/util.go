package system

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/user"

	"github.com/fatih/color"
)

// generateTraceMessage creates a formatted string that is written to stdout before a
// command runs when dashprep is run with `--trace`. The output follows on the stream.
func generateTraceMessage(cmd string) string {
	green := color.New(color.FgGreen, color.Bold, color.Underline)
	bold := color.New(color.Bold)

	return fmt.Sprintf("%s %s\n", green.Sprintf("Command:"), bold.Sprintf(cmd))
}

// getShellPath tries to find the path to the user's preferred shell, as per the `SHELL`
// environment variable. If that cannot be found, it looks for a path to "bash", and to
// "sh" in that order. If no shell can be found, then an error is returned.
func getShellPath() (string, error) {
	shellVar := os.Getenv("SHELL")
	if len(shellVar) > 0 {
		return shellVar, nil
	}

	// Try both the command name (to lookup in PATH), and common default paths.
	for _, shell := range []string{"bash", "/bin/bash", "sh", "/bin/sh"} {
		if _, err := os.Stat(shell); errors.Is(err, os.ErrNotExist) {
			path, err := exec.LookPath(shell)
			if err != nil {
				continue
			}
			return path, nil
		}
		return shell, nil
	}

	return "", fmt.Errorf("could not find path to a shell")
}

// realUser returns a user struct containing details of the "real" user, which
// may differ from the current user when dashprep is executed with `sudo`.
func realUser() (*user.User, error) {
	realUser := os.Getenv("SUDO_USER")
	if len(realUser) == 0 {
		return user.Current()
	}

	return user.Lookup(realUser)
}
