package coordinator

import (
	"fmt"
	"strings"

	"github.com/madadgar-ai/madadgar/internal/tool"
)

// systemPrompt builds the coordinator instructions from the registered
// tools. The tool list is rendered in registration order so the prompt
// is stable across runs.
func systemPrompt(tools []*tool.Spec) string {
	var b strings.Builder
	b.WriteString("You are a helpful assistant that can answer general questions and use specialized tools.\n")
	if len(tools) > 0 {
		b.WriteString("When a user request matches one of the tools below, call that tool. ")
		b.WriteString("Use at most one tool per user message.\n")
		b.WriteString("Available tools:\n")
		for _, t := range tools {
			fmt.Fprintf(&b, "- %s: %s\n", t.Name, t.Description)
		}
	}
	b.WriteString("For general knowledge questions, provide direct answers.\n")
	b.WriteString("Always be helpful and informative.")
	return b.String()
}
