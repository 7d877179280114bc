package cli

import (
	"fmt"

	"github.com/madadgar-ai/madadgar/internal/capability"
	"github.com/madadgar-ai/madadgar/internal/channel"
	"github.com/madadgar-ai/madadgar/internal/config"
	"github.com/madadgar-ai/madadgar/internal/coordinator"
	"github.com/madadgar-ai/madadgar/internal/intent"
	"github.com/madadgar-ai/madadgar/internal/logging"
	"github.com/madadgar-ai/madadgar/internal/orchestrator"
	"github.com/madadgar-ai/madadgar/internal/session"
	"github.com/madadgar-ai/madadgar/internal/tool"
)

// assistant bundles the wired core. Channels are registered by the
// calling command before starting.
type assistant struct {
	channels *channel.Registry
	tools    *tool.Registry
	orch     *orchestrator.Orchestrator
}

// buildAssistant loads and validates config, registers all
// capabilities, and wires the coordinator and orchestrator.
func buildAssistant(cfg *config.Config, log *logging.Logger) (*assistant, error) {
	issues := config.Validate(cfg)
	if len(issues) > 0 {
		for _, issue := range issues {
			log.Error().Str("path", issue.Path).Msg(issue.Message)
		}
		return nil, fmt.Errorf("config validation failed with %d issue(s)", len(issues))
	}

	if cfg.Coordinator.APIKey == "" {
		return nil, fmt.Errorf("no coordinator API key configured; set GEMINI_API_KEY or OPEN_ROUTER_API_KEY")
	}

	tools := tool.NewRegistry()
	if err := capability.RegisterAll(tools, cfg, log); err != nil {
		return nil, fmt.Errorf("registering capabilities: %w", err)
	}
	log.Info().Int("tools", tools.Count()).Msg("capabilities registered")

	client := coordinator.NewOpenAIClient(cfg.Coordinator, log)
	log.Info().
		Str("provider", client.Name()).
		Str("model", cfg.Coordinator.Model).
		Msg("coordinator ready")

	channels := channel.NewRegistry(log)
	orch := orchestrator.New(
		channels,
		session.NewMemoryStore(),
		intent.NewRouter(),
		client,
		tools,
		log,
	)

	return &assistant{channels: channels, tools: tools, orch: orch}, nil
}
