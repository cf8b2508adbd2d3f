package cmd

import (
	"fmt"

	"github.com/jnsgruk/dashprep/internal/config"
	"github.com/jnsgruk/dashprep/internal/setup"
	"github.com/spf13/cobra"
)

// statusCmd reports the status of dashprep on a machine.
func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report the status of `dashprep` on the machine.",
		Long: `Report the status of 'dashprep' on the machine.

Reports one of 'provisioning', 'succeeded', 'failed' or 'unknown'.
		`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			parseLoggingFlags(cmd.Flags())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.Preset("cloud")
			if err != nil {
				return err
			}
			conf.Trace, _ = cmd.Flags().GetBool("trace")

			mgr, err := setup.NewManager(conf)
			if err != nil {
				return err
			}

			status, err := mgr.Status()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", status)
			return nil
		},
	}
}
