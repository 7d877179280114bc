package cli

import (
	"fmt"

	"github.com/madadgar-ai/madadgar/internal/capability"
	"github.com/madadgar-ai/madadgar/internal/config"
	"github.com/madadgar-ai/madadgar/internal/logging"
	"github.com/madadgar-ai/madadgar/internal/tool"
	"github.com/spf13/cobra"
)

func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the capabilities the coordinator can invoke",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			reg := tool.NewRegistry()
			if err := capability.RegisterAll(reg, &cfg, logging.Silent()); err != nil {
				return err
			}

			for _, s := range reg.All() {
				fmt.Printf("  %-16s %s\n", s.Name, s.Description)
				for _, p := range s.Params {
					req := "optional"
					if p.Required {
						req = "required"
					}
					fmt.Printf("    %-14s %-8s %s\n", p.Name, req, p.Description)
				}
			}
			return nil
		},
	}
}
