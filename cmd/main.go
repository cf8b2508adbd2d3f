package cmd

import (
	"errors"
	"log/slog"
	"os"

	"github.com/jnsgruk/dashprep/internal/system"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	version string = "dev"
	commit  string = "dev"
)

// Execute runs the root command and exits the program if it fails. The exit code of a
// failed external command is propagated.
func Execute() {
	cmd := rootCmd()

	c, err := cmd.ExecuteC()
	if err != nil {
		os.Exit(reportFailure(c, err))
	}
}

// reportFailure logs the error returned by the named subcommand and returns the exit
// code the process should terminate with.
func reportFailure(c *cobra.Command, err error) int {
	slog.Error("Command failed", "command", c.CommandPath(), "error", err.Error())
	return exitCode(err)
}

// exitCode returns the exit code of the external command that caused err, or 1.
func exitCode(err error) int {
	var cmdErr *system.CommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode > 0 {
		return cmdErr.ExitCode
	}
	return 1
}

func parseLoggingFlags(flags *pflag.FlagSet) {
	verbose, _ := flags.GetBool("verbose")
	trace, _ := flags.GetBool("trace")

	logLevel := new(slog.LevelVar)

	// Set the default log level to "DEBUG" if verbose is specified.
	level := slog.LevelInfo
	if verbose || trace {
		level = slog.LevelDebug
	}

	// Setup the TextHandler and ensure our configured logger is the default.
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(h)
	slog.SetDefault(logger)
	logLevel.Set(level)
}
