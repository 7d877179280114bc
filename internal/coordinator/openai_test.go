package coordinator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/madadgar-ai/madadgar/internal/config"
	"github.com/madadgar-ai/madadgar/internal/domain"
	"github.com/madadgar-ai/madadgar/internal/logging"
	"github.com/madadgar-ai/madadgar/internal/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logging.Logger {
	return logging.Silent()
}

func completionJSON(content string) string {
	data, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1,
		"model":   "test-model",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			},
		},
	})
	return string(data)
}

func toolCallJSON(callID, name, arguments string) string {
	data, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1,
		"model":   "test-model",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "tool_calls",
				"message": map[string]any{
					"role":    "assistant",
					"content": "",
					"tool_calls": []map[string]any{
						{
							"id":   callID,
							"type": "function",
							"function": map[string]any{
								"name":      name,
								"arguments": arguments,
							},
						},
					},
				},
			},
		},
	})
	return string(data)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewOpenAIClient(config.CoordinatorConfig{
		Provider: "gemini",
		Model:    "test-model",
		APIKey:   "test-key",
		BaseURL:  server.URL,
	}, testLogger())
}

func weatherSpec(invocations *[]tool.Args) *tool.Spec {
	return &tool.Spec{
		Name:        "weather",
		Description: "Get weather for a city",
		Params: []tool.Param{
			{Name: "city", Type: tool.TypeString, Description: "City name", Required: true},
		},
		Handler: func(_ context.Context, args tool.Args) tool.Result {
			*invocations = append(*invocations, args)
			return tool.OK("Weather in " + args.String("city") + ": sunny")
		},
	}
}

func TestRespond_DirectAnswer(t *testing.T) {
	requests := 0
	c := newTestClient(t, func(rw http.ResponseWriter, r *http.Request) {
		requests++
		rw.Header().Set("Content-Type", "application/json")
		fmt.Fprint(rw, completionJSON("Go is a programming language."))
	})

	var invocations []tool.Args
	resp, err := c.Respond(context.Background(), Request{
		History: []domain.Turn{{Role: domain.RoleUser, Content: "What is Go?"}},
		Tools:   []*tool.Spec{weatherSpec(&invocations)},
	})
	require.NoError(t, err)

	assert.Equal(t, "Go is a programming language.", resp.FinalText)
	assert.Empty(t, resp.ToolUsed)
	assert.Empty(t, invocations)
	assert.Equal(t, 1, requests)
}

func TestRespond_SingleToolRound(t *testing.T) {
	var bodies []map[string]any
	c := newTestClient(t, func(rw http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		bodies = append(bodies, body)

		rw.Header().Set("Content-Type", "application/json")
		if len(bodies) == 1 {
			fmt.Fprint(rw, toolCallJSON("call_1", "weather", `{"city":"Paris"}`))
			return
		}
		fmt.Fprint(rw, completionJSON("It is sunny in Paris today."))
	})

	var invocations []tool.Args
	resp, err := c.Respond(context.Background(), Request{
		History: []domain.Turn{{Role: domain.RoleUser, Content: "weather in Paris?"}},
		Tools:   []*tool.Spec{weatherSpec(&invocations)},
	})
	require.NoError(t, err)

	assert.Equal(t, "It is sunny in Paris today.", resp.FinalText)
	assert.Equal(t, "weather", resp.ToolUsed)

	require.Len(t, invocations, 1)
	assert.Equal(t, "Paris", invocations[0].String("city"))

	// Two completions: the tool round, then the final answer.
	require.Len(t, bodies, 2)

	// First request advertises the tool schema.
	tools, ok := bodies[0]["tools"].([]any)
	require.True(t, ok)
	require.Len(t, tools, 1)

	// The follow-up request carries the tool result back to the model
	// and offers no further tools.
	assert.Nil(t, bodies[1]["tools"])
	messages := bodies[1]["messages"].([]any)
	last := messages[len(messages)-1].(map[string]any)
	assert.Equal(t, "tool", last["role"])
	assert.Equal(t, "call_1", last["tool_call_id"])
	assert.Contains(t, fmt.Sprint(last["content"]), "Weather in Paris: sunny")
}

func TestRespond_OnlyFirstToolCallExecuted(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(rw http.ResponseWriter, r *http.Request) {
		calls++
		rw.Header().Set("Content-Type", "application/json")
		if calls == 1 {
			// Two tool calls in one response; only the first is honored.
			fmt.Fprint(rw, `{
				"id": "chatcmpl-test", "object": "chat.completion", "created": 1, "model": "test-model",
				"choices": [{"index": 0, "finish_reason": "tool_calls", "message": {
					"role": "assistant", "content": "",
					"tool_calls": [
						{"id": "call_1", "type": "function", "function": {"name": "weather", "arguments": "{\"city\":\"Paris\"}"}},
						{"id": "call_2", "type": "function", "function": {"name": "weather", "arguments": "{\"city\":\"London\"}"}}
					]
				}}]
			}`)
			return
		}
		fmt.Fprint(rw, completionJSON("Done."))
	})

	var invocations []tool.Args
	resp, err := c.Respond(context.Background(), Request{
		History: []domain.Turn{{Role: domain.RoleUser, Content: "weather in Paris and London"}},
		Tools:   []*tool.Spec{weatherSpec(&invocations)},
	})
	require.NoError(t, err)

	assert.Equal(t, "weather", resp.ToolUsed)
	require.Len(t, invocations, 1)
	assert.Equal(t, "Paris", invocations[0].String("city"))
}

func TestRespond_ToolFailureIsNotCoordinatorFailure(t *testing.T) {
	calls := 0
	var toolContent string
	c := newTestClient(t, func(rw http.ResponseWriter, r *http.Request) {
		calls++
		rw.Header().Set("Content-Type", "application/json")
		if calls == 1 {
			fmt.Fprint(rw, toolCallJSON("call_1", "weather", `{"city":"Atlantis"}`))
			return
		}
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		messages := body["messages"].([]any)
		last := messages[len(messages)-1].(map[string]any)
		toolContent = fmt.Sprint(last["content"])
		fmt.Fprint(rw, completionJSON("I could not find that city."))
	})

	failing := &tool.Spec{
		Name:        "weather",
		Description: "Get weather for a city",
		Handler: func(_ context.Context, _ tool.Args) tool.Result {
			return tool.Failf("City 'Atlantis' not found. Please check the spelling and try again.")
		},
	}

	resp, err := c.Respond(context.Background(), Request{
		History: []domain.Turn{{Role: domain.RoleUser, Content: "weather in Atlantis"}},
		Tools:   []*tool.Spec{failing},
	})
	require.NoError(t, err)

	// The failure payload went to the model, which phrased the answer.
	assert.Contains(t, toolContent, "City 'Atlantis' not found")
	assert.Equal(t, "I could not find that city.", resp.FinalText)
}

func TestRespond_UnknownToolRequested(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(rw http.ResponseWriter, r *http.Request) {
		calls++
		rw.Header().Set("Content-Type", "application/json")
		if calls == 1 {
			fmt.Fprint(rw, toolCallJSON("call_1", "time_machine", `{}`))
			return
		}
		fmt.Fprint(rw, completionJSON("I cannot do that."))
	})

	var invocations []tool.Args
	resp, err := c.Respond(context.Background(), Request{
		History: []domain.Turn{{Role: domain.RoleUser, Content: "go back in time"}},
		Tools:   []*tool.Spec{weatherSpec(&invocations)},
	})
	require.NoError(t, err)
	assert.Empty(t, invocations)
	assert.Equal(t, "I cannot do that.", resp.FinalText)
}

func TestRespond_ProviderError(t *testing.T) {
	c := newTestClient(t, func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(rw, `{"error": {"message": "bad request"}}`)
	})

	_, err := c.Respond(context.Background(), Request{
		History: []domain.Turn{{Role: domain.RoleUser, Content: "hello"}},
	})
	require.Error(t, err)

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "gemini", provErr.Provider)
	assert.Equal(t, http.StatusBadRequest, provErr.Code)
}

func TestSystemPrompt(t *testing.T) {
	var invocations []tool.Args
	prompt := systemPrompt([]*tool.Spec{weatherSpec(&invocations)})

	assert.Contains(t, prompt, "helpful assistant")
	assert.Contains(t, prompt, "at most one tool per user message")
	assert.Contains(t, prompt, "- weather: Get weather for a city")

	// Without tools there is no tool section.
	bare := systemPrompt(nil)
	assert.NotContains(t, bare, "Available tools:")
}
