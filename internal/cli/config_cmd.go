package cli

import (
	"fmt"

	"github.com/madadgar-ai/madadgar/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigValidateCmd())

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with secrets masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			masked := cfg
			masked.Coordinator.APIKey = maskSecret(cfg.Coordinator.APIKey)
			masked.Weather.APIKey = maskSecret(cfg.Weather.APIKey)
			masked.News.APIKey = maskSecret(cfg.News.APIKey)
			masked.Email.Password = maskSecret(cfg.Email.Password)
			masked.Telegram.Token = maskSecret(cfg.Telegram.Token)

			data, err := yaml.Marshal(masked)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration for problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			issues := config.Validate(&cfg)
			if len(issues) == 0 {
				fmt.Println("Configuration OK")
				return nil
			}
			for _, issue := range issues {
				fmt.Printf("  %s: %s\n", issue.Path, issue.Message)
			}
			return fmt.Errorf("%d issue(s) found", len(issues))
		},
	}
}

// maskSecret keeps the first four characters of a secret for
// identification and hides the rest.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + "****"
}
