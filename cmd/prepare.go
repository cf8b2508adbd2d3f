package cmd

import (
	"fmt"

	"github.com/jnsgruk/dashprep/internal/config"
	"github.com/jnsgruk/dashprep/internal/setup"
	"github.com/spf13/cobra"
)

// prepareCmd constructs the `prepare` subcommand
func prepareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Install Python dependencies and a Playwright browser engine.",
		Long: `Install Python dependencies and a Playwright browser engine.

The following steps are run in order, and the first failure aborts the run:

  1. Upgrade pip.
  2. Install every library listed in the requirements manifest.
  3. Install the browser engine, along with its operating system dependencies.

Configuration is by flags/environment variables, or by configuration file. The configuration file
must be in the current working directory and named 'dashprep.yaml', or the path specified using
the '-c' flag.

There are 2 presets available: 'cloud' (the default) and 'local', which skips the installation
of operating system dependencies.

Each of the override flags has an environment variable equivalent,
such as 'DASHPREP_ENGINE'.
`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			parseLoggingFlags(cmd.Flags())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()

			configFile, _ := flags.GetString("config")
			preset, _ := flags.GetString("preset")

			// dashprep cannot merge a preset & manual configuration
			if len(preset) > 0 && len(configFile) > 0 {
				return fmt.Errorf("cannot proceed with both preset and configuration file specified")
			}

			conf, err := config.NewConfig(cmd, flags)
			if err != nil {
				return fmt.Errorf("failed to configure dashprep: %w", err)
			}

			checkUser(conf)

			mgr, err := setup.NewManager(conf)
			if err != nil {
				return err
			}

			return mgr.Prepare()
		},
	}

	flags := cmd.Flags()
	flags.StringP("config", "c", "", "path to a specific config file to use")
	flags.StringP("preset", "p", "", "config preset to use (cloud | local)")
	flags.String("interpreter", "", "override the python interpreter used to run pip and playwright")
	flags.String("requirements", "", "override the path to the requirements manifest")
	flags.String("engine", "", "override the browser engine to install (e.g. chromium, firefox, webkit)")
	flags.String("browsers-path", "", "override the directory playwright installs browsers into")
	flags.Bool("skip-deps", false, "skip installation of the browser's operating system dependencies")

	return cmd
}
