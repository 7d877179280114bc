package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/madadgar-ai/madadgar/internal/channel/telegram"
	"github.com/madadgar-ai/madadgar/internal/config"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the assistant against configured messaging channels",
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

			if cfg.Telegram.Token == "" {
				return fmt.Errorf("no channels configured; set TELEGRAM_BOT_TOKEN or use 'madadgar chat' for the terminal")
			}
			tg, err := telegram.New(telegram.Config{Token: cfg.Telegram.Token}, log)
			if err != nil {
				return err
			}
			a.channels.Register(tg)

			// Block until SIGINT/SIGTERM
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a.orch.Wire()
			if err := a.channels.StartAll(ctx); err != nil {
				return fmt.Errorf("starting channels: %w", err)
			}
			defer a.channels.StopAll(context.Background())

			log.Info().Int("channels", a.channels.Count()).Msg("assistant running")
			<-ctx.Done()
			return nil
		},
	}
}
