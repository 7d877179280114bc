package coordinator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/madadgar-ai/madadgar/internal/config"
	"github.com/madadgar-ai/madadgar/internal/domain"
	"github.com/madadgar-ai/madadgar/internal/logging"
	"github.com/madadgar-ai/madadgar/internal/tool"
)

// OpenAIClient talks to any OpenAI-compatible chat completions endpoint
// (Gemini's compat layer, OpenRouter). One Respond call makes at most
// one tool round: if the model requests tool calls, only the first one
// is executed, its result is fed back, and the follow-up completion is
// the final answer.
type OpenAIClient struct {
	client   *openai.Client
	provider string
	model    string
	log      *logging.Logger
}

func NewOpenAIClient(cfg config.CoordinatorConfig, log *logging.Logger) *OpenAIClient {
	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
	)
	return &OpenAIClient{
		client:   &client,
		provider: cfg.Provider,
		model:    cfg.Model,
		log:      log.Sub("coordinator"),
	}
}

func (c *OpenAIClient) Name() string {
	return c.provider
}

func (c *OpenAIClient) Respond(ctx context.Context, req Request) (*Response, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.History)+1)
	messages = append(messages, openai.SystemMessage(systemPrompt(req.Tools)))
	for _, t := range req.History {
		switch t.Role {
		case domain.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(t.Content))
		default:
			messages = append(messages, openai.UserMessage(t.Content))
		}
	}

	byName := make(map[string]*tool.Spec, len(req.Tools))
	tools := make([]openai.ChatCompletionToolUnionParam, 0, len(req.Tools))
	for _, s := range req.Tools {
		byName[s.Name] = s
		tools = append(tools, openai.ChatCompletionFunctionTool(shared.FunctionDefinitionParam{
			Name:        s.Name,
			Description: openai.String(s.Description),
			Parameters:  shared.FunctionParameters(s.ParametersSchema()),
		}))
	}

	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(c.model),
		Messages: messages,
	}
	if len(tools) > 0 {
		params.Tools = tools
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, c.wrap(err)
	}
	if len(completion.Choices) == 0 {
		return nil, &ProviderError{Provider: c.provider, Message: "completion has no choices"}
	}
	msg := completion.Choices[0].Message

	if len(msg.ToolCalls) == 0 {
		return &Response{FinalText: msg.Content}, nil
	}

	// Only the first requested call is honored. Anything beyond that is
	// the model overreaching and gets dropped.
	call := msg.ToolCalls[0]
	if len(msg.ToolCalls) > 1 {
		c.log.Warn().Int("requested", len(msg.ToolCalls)).Msg("dropping extra tool calls")
	}

	name := call.Function.Name
	result := c.execute(ctx, byName, name, call.Function.Arguments)

	messages = append(messages, msg.ToParam())
	messages = append(messages, openai.ToolMessage(result, call.ID))
	params.Messages = messages
	params.Tools = nil

	completion, err = c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, c.wrap(err)
	}
	if len(completion.Choices) == 0 {
		return nil, &ProviderError{Provider: c.provider, Message: "follow-up completion has no choices"}
	}
	return &Response{FinalText: completion.Choices[0].Message.Content, ToolUsed: name}, nil
}

// execute runs one tool call. Tool failures are not coordinator
// failures: the failure payload goes back to the model, which phrases
// the answer from it.
func (c *OpenAIClient) execute(ctx context.Context, byName map[string]*tool.Spec, name, rawArgs string) string {
	spec, ok := byName[name]
	if !ok {
		c.log.Warn().Str("tool", name).Msg("model requested unknown tool")
		return fmt.Sprintf("Unknown tool: %s", name)
	}

	args := tool.Args{}
	if rawArgs != "" {
		if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
			c.log.Warn().Str("tool", name).Err(err).Msg("bad tool arguments")
			args = tool.Args{}
		}
	}

	res := spec.Invoke(ctx, args)
	if res.Failed() {
		c.log.Debug().Str("tool", name).Str("rawError", res.RawError).Msg("tool call failed")
	}
	return res.Payload
}

func (c *OpenAIClient) wrap(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &ProviderError{Provider: c.provider, Message: apiErr.Message, Code: apiErr.StatusCode}
	}
	return &ProviderError{Provider: c.provider, Message: err.Error()}
}
