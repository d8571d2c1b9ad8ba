package commands

import (
	"time"

	"github.com/spf13/cobra"

	client "github.com/lubluniky/cent-client-go"
)

func tokenCmd(a *app) *cobra.Command {
	var (
		info      string
		timestamp string
	)
	cmd := &cobra.Command{
		Use:   "token USER",
		Short: "Generate browser connection parameters for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user := args[0]
			if timestamp == "" {
				creds, err := a.client.ConnectCredentials(user, info, time.Now())
				if err != nil {
					return err
				}
				return printValue(cmd.OutOrStdout(), creds)
			}

			token, err := a.client.GenerateToken(a.cfg.API.Secret, user, timestamp, info)
			if err != nil {
				return err
			}
			return printValue(cmd.OutOrStdout(), client.ConnectCredentials{
				User:      user,
				Timestamp: timestamp,
				Info:      info,
				Token:     token,
			})
		},
	}
	cmd.Flags().StringVar(&info, "info", "", "extra connection info (JSON string)")
	cmd.Flags().StringVar(&timestamp, "timestamp", "", "unix timestamp to sign (default now)")
	return cmd
}

func channelSignCmd(a *app) *cobra.Command {
	var info string
	cmd := &cobra.Command{
		Use:   "channel-sign CLIENT CHANNEL...",
		Short: "Sign private channel subscriptions for a client connection",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			auth, err := a.client.PrivateChannelAuth(args[0], args[1:], info)
			if err != nil {
				return err
			}
			return printValue(cmd.OutOrStdout(), auth)
		},
	}
	cmd.Flags().StringVar(&info, "info", "", "extra channel info (JSON string)")
	return cmd
}
