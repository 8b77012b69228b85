package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	config "github.com/maheshrc27/autopost/configs"
	"github.com/maheshrc27/autopost/pkg/utils"
)

type TokenOptions struct {
	*RootOptions
	TTL time.Duration
}

func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TokenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:          "token <user-id>",
		Short:        "Mint an API token for a user",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("user id must be numeric: %w", err)
			}

			cfg, err := config.LoadConfig(opts.ConfigPath)
			if err != nil {
				return err
			}
			if cfg.Auth.SecretKey == "" {
				return fmt.Errorf("auth secret key is not configured")
			}

			ttl := opts.TTL
			if ttl == 0 {
				ttl = cfg.Auth.TokenDuration
			}

			token, err := utils.GenerateToken(cfg.Auth.SecretKey, args[0], ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().DurationVar(&opts.TTL, "ttl", 0, "token lifetime (defaults to auth.token_duration)")

	return cmd
}
