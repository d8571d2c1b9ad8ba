package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// resultCmd builds a subcommand that runs one API command and prints its
// result.
func resultCmd(use, short string, args cobra.PositionalArgs, run func(cmd *cobra.Command, args []string) (json.RawMessage, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := run(cmd, args)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func publishCmd(a *app) *cobra.Command {
	var clientID string
	cmd := resultCmd("publish CHANNEL DATA", "Publish data into a channel", cobra.ExactArgs(2),
		func(cmd *cobra.Command, args []string) (json.RawMessage, error) {
			return a.client.Publish(cmd.Context(), args[0], parseData(args[1]), clientID)
		})
	cmd.Flags().StringVar(&clientID, "client", "", "client ID of the publishing connection")
	return cmd
}

func unsubscribeCmd(a *app) *cobra.Command {
	return resultCmd("unsubscribe CHANNEL USER", "Unsubscribe a user from a channel", cobra.ExactArgs(2),
		func(cmd *cobra.Command, args []string) (json.RawMessage, error) {
			return a.client.Unsubscribe(cmd.Context(), args[0], args[1])
		})
}

func disconnectCmd(a *app) *cobra.Command {
	return resultCmd("disconnect USER", "Disconnect all connections of a user", cobra.ExactArgs(1),
		func(cmd *cobra.Command, args []string) (json.RawMessage, error) {
			return a.client.Disconnect(cmd.Context(), args[0])
		})
}

func presenceCmd(a *app) *cobra.Command {
	return resultCmd("presence CHANNEL", "Show clients subscribed to a channel", cobra.ExactArgs(1),
		func(cmd *cobra.Command, args []string) (json.RawMessage, error) {
			return a.client.Presence(cmd.Context(), args[0])
		})
}

func historyCmd(a *app) *cobra.Command {
	return resultCmd("history CHANNEL", "Show recent messages of a channel", cobra.ExactArgs(1),
		func(cmd *cobra.Command, args []string) (json.RawMessage, error) {
			return a.client.History(cmd.Context(), args[0])
		})
}

func channelsCmd(a *app) *cobra.Command {
	return resultCmd("channels", "List active channels", cobra.NoArgs,
		func(cmd *cobra.Command, args []string) (json.RawMessage, error) {
			return a.client.Channels(cmd.Context())
		})
}

func statsCmd(a *app) *cobra.Command {
	return resultCmd("stats", "Show server statistics", cobra.NoArgs,
		func(cmd *cobra.Command, args []string) (json.RawMessage, error) {
			return a.client.Stats(cmd.Context())
		})
}
