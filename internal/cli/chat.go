package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/madadgar-ai/madadgar/internal/channel/console"
	"github.com/madadgar-ai/madadgar/internal/config"
	"github.com/madadgar-ai/madadgar/internal/domain"
	"github.com/spf13/cobra"
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the assistant in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			a, err := buildAssistant(&cfg, log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ch := console.New(log)
			a.channels.Register(ch)

			// Synchronous handling keeps the prompt from reappearing
			// before the response is printed.
			ch.OnMessage(func(msg domain.InboundMessage) {
				a.orch.HandleInbound(ctx, msg)
			})

			return ch.Start(ctx)
		},
	}
}
