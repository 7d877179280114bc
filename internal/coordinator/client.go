// Package coordinator is the boundary to the external reasoning
// process. Given one session's history snapshot and the tool registry,
// the coordinator either answers from general knowledge or invokes
// exactly one tool by name, then produces the final response text.
package coordinator

import (
	"context"
	"fmt"

	"github.com/madadgar-ai/madadgar/internal/domain"
	"github.com/madadgar-ai/madadgar/internal/tool"
)

// Request is the per-turn input: a history snapshot (passed by value,
// never mutated) and the tools the coordinator may invoke.
type Request struct {
	History []domain.Turn
	Tools   []*tool.Spec
}

// Response is the coordinator's outcome for one turn.
type Response struct {
	FinalText string
	ToolUsed  string // name of the tool invoked this turn, if any
}

// Client is the interface all coordinator providers implement.
type Client interface {
	// Respond runs one turn against the reasoning process. Any error
	// is a coordinator failure; the orchestrator converts it to a
	// generic apology and drops the turn from history.
	Respond(ctx context.Context, req Request) (*Response, error)

	// Name returns the provider name (e.g., "gemini", "openrouter").
	Name() string
}

// ProviderError is returned when the reasoning provider fails.
type ProviderError struct {
	Provider string
	Message  string
	Code     int // HTTP status code when known
}

func (e *ProviderError) Error() string {
	if e.Code > 0 {
		return fmt.Sprintf("%s: %d %s", e.Provider, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}
