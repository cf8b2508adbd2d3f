package system

import (
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/canonical/x-go/strutil/shlex"
)

// Command represents a given command to be executed by dashprep, along with any
// additional environment variables the command should be run with.
type Command struct {
	Executable string
	Args       []string
	// Env is a list of additional "KEY=value" pairs set for the command.
	Env []string
}

// NewCommand constructs a command to be run with the current environment.
func NewCommand(executable string, args []string) *Command {
	return &Command{
		Executable: executable,
		Args:       args,
	}
}

// WithEnv returns the command with the given variable added to its environment.
// Empty values are ignored.
func (c *Command) WithEnv(key, value string) *Command {
	if len(value) > 0 {
		c.Env = append(c.Env, fmt.Sprintf("%s=%s", key, value))
	}
	return c
}

// CommandString puts together a command to be executed in a shell.
func (c *Command) CommandString() string {
	path, err := exec.LookPath(c.Executable)
	if err != nil {
		slog.Warn("Failed to lookup command in path", "command", c.Executable)
		path = c.Executable
	}

	cmdArgs := []string{path}
	cmdArgs = append(cmdArgs, c.Args...)

	return shlex.Join(cmdArgs)
}

// CommandError is returned when an executed command exits unsuccessfully.
type CommandError struct {
	Command  string
	ExitCode int
	Output   []byte
	Err      error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command '%s' failed with exit code %d: %v", e.Command, e.ExitCode, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }
