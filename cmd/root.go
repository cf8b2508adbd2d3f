package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rootLongDesc string = `dashprep prepares a hosted notebook or dashboard environment for browser automation.

It upgrades pip, installs the Python libraries listed in a requirements manifest, then
installs a Playwright browser engine along with the operating system packages it needs.
Each step must succeed before the next one is attempted.
`

// rootCmd constructs the root command, and attaches its subcommands.
func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dashprep",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		Short:         "A utility for preparing notebook/dashboard environments for browser automation.",
		Long:          rootLongDesc,
		SilenceErrors: true,
		SilenceUsage:  true,
		PreRun: func(cmd *cobra.Command, args []string) {
			parseLoggingFlags(cmd.Flags())
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "enable verbose logging")
	flags.Bool("trace", false, "enable trace logging")

	cmd.AddCommand(prepareCmd())
	cmd.AddCommand(statusCmd())

	return cmd
}
