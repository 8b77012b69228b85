package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func NewPublishCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "publish <post-id>",
		Short: "Deliver a scheduled post now",
		Long: `Deliver a scheduled post immediately, outside the scheduler.

Only posts in the scheduled state are accepted. The outcome is recorded
exactly as a scheduled delivery would record it.

Example:
  autopost publish 3f0c9a8e-1d2b-4c5d-8e9f-0a1b2c3d4e5f`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, logger, err := bootstrap(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer db.Close()

			eng, err := newEngine(cfg, db, logger)
			if err != nil {
				return err
			}

			res, err := eng.PublishNow(cmd.Context(), args[0])
			if res != nil {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if encErr := enc.Encode(res); encErr != nil {
					return encErr
				}
			}
			return err
		},
	}
}
