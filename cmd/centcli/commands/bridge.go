package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lubluniky/cent-client-go/internal/bridge"
)

func bridgeCmd(a *app) *cobra.Command {
	var (
		topics []string
		prefix string
	)
	cmd := &cobra.Command{
		Use:   "bridge",
		Short: "Forward MQTT messages into channels until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Bridge
			if cmd.Flags().Changed("topic") {
				cfg.Topics = topics
			}
			if cmd.Flags().Changed("prefix") {
				cfg.TopicPrefix = prefix
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger := a.logger.With("component", "bridge")
			b := bridge.New(cfg, a.client, logger.Logger)
			logger.Info("starting bridge", "broker", cfg.Broker, "client_id", b.ClientID(), "topics", cfg.Topics)
			return b.Run(ctx)
		},
	}
	cmd.Flags().StringSliceVarP(&topics, "topic", "t", nil, "MQTT topic filter to forward (repeatable)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "topic prefix stripped before mapping to a channel")
	return cmd
}
