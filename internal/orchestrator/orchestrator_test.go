package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/madadgar-ai/madadgar/internal/channel"
	"github.com/madadgar-ai/madadgar/internal/coordinator"
	"github.com/madadgar-ai/madadgar/internal/domain"
	"github.com/madadgar-ai/madadgar/internal/intent"
	"github.com/madadgar-ai/madadgar/internal/logging"
	"github.com/madadgar-ai/madadgar/internal/session"
	"github.com/madadgar-ai/madadgar/internal/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logging.Logger {
	return logging.Silent()
}

// mockChannel is a test double for domain.Channel.
type mockChannel struct {
	id      string
	sent    []domain.OutboundMessage
	handler func(domain.InboundMessage)
}

func (m *mockChannel) ID() string                    { return m.id }
func (m *mockChannel) Start(_ context.Context) error { return nil }
func (m *mockChannel) Stop(_ context.Context) error  { return nil }
func (m *mockChannel) Send(_ context.Context, msg domain.OutboundMessage) error {
	m.sent = append(m.sent, msg)
	return nil
}
func (m *mockChannel) OnMessage(handler func(domain.InboundMessage)) {
	m.handler = handler
}

type fixture struct {
	ch       *mockChannel
	sessions session.Store
	client   *coordinator.MockClient
	orch     *Orchestrator
}

func newFixture(client *coordinator.MockClient) *fixture {
	log := testLogger()
	ch := &mockChannel{id: "console"}

	reg := channel.NewRegistry(log)
	reg.Register(ch)

	sessions := session.NewMemoryStore()
	orch := New(reg, sessions, intent.NewRouter(), client, tool.NewRegistry(), log)
	return &fixture{ch: ch, sessions: sessions, client: client, orch: orch}
}

func inbound(body string) domain.InboundMessage {
	return domain.InboundMessage{
		ID:        "msg-1",
		ChannelID: "console",
		From:      "user",
		ChatID:    "console",
		ChatType:  domain.ChatTypeDM,
		Body:      body,
		Timestamp: time.Now(),
	}
}

func (f *fixture) history() []domain.Turn {
	ids := f.sessions.List()
	if len(ids) != 1 {
		return nil
	}
	return f.sessions.History(ids[0])
}

func TestHandleInbound_SuccessfulTurn(t *testing.T) {
	client := &coordinator.MockClient{
		RespondFunc: func(_ context.Context, _ coordinator.Request) (*coordinator.Response, error) {
			return &coordinator.Response{FinalText: "It is sunny in Paris.", ToolUsed: "weather"}, nil
		},
	}
	f := newFixture(client)

	f.orch.HandleInbound(context.Background(), inbound("What's the weather in Paris?"))

	// Routing notice first, then the final response, both with the label.
	require.Len(t, f.ch.sent, 2)
	notice := f.ch.sent[0]
	assert.True(t, notice.Notice)
	assert.Equal(t, domain.LabelWeather, notice.Label)
	assert.Equal(t, "🤖 Weather Agent is analyzing your query...", notice.Body)

	final := f.ch.sent[1]
	assert.False(t, final.Notice)
	assert.Equal(t, domain.LabelWeather, final.Label)
	assert.Equal(t, "It is sunny in Paris.", final.Body)

	// One completed turn: user then assistant.
	history := f.history()
	require.Len(t, history, 2)
	assert.Equal(t, domain.RoleUser, history[0].Role)
	assert.Equal(t, "What's the weather in Paris?", history[0].Content)
	assert.Equal(t, domain.RoleAssistant, history[1].Role)
	assert.Equal(t, "It is sunny in Paris.", history[1].Content)
}

func TestHandleInbound_CoordinatorSeesHistorySnapshot(t *testing.T) {
	client := &coordinator.MockClient{}
	f := newFixture(client)

	f.orch.HandleInbound(context.Background(), inbound("first"))
	f.orch.HandleInbound(context.Background(), inbound("second"))

	require.Len(t, client.Requests, 2)
	// The second call sees the completed first turn plus its own user turn.
	second := client.Requests[1].History
	require.Len(t, second, 3)
	assert.Equal(t, "first", second[0].Content)
	assert.Equal(t, "mock response", second[1].Content)
	assert.Equal(t, "second", second[2].Content)
}

func TestHandleInbound_CoordinatorFailure(t *testing.T) {
	client := &coordinator.MockClient{
		RespondFunc: func(_ context.Context, _ coordinator.Request) (*coordinator.Response, error) {
			return nil, errors.New("provider unavailable")
		},
	}
	f := newFixture(client)

	f.orch.HandleInbound(context.Background(), inbound("What's the weather in Paris?"))

	// Notice, then the generic apology. The apology body carries no
	// detail from the underlying error.
	require.Len(t, f.ch.sent, 2)
	apology := f.ch.sent[1]
	assert.Equal(t, apologyText, apology.Body)
	assert.NotContains(t, apology.Body, "provider unavailable")

	// The user turn is recorded but no assistant turn: the failed turn
	// must not pollute future context.
	history := f.history()
	require.Len(t, history, 1)
	assert.Equal(t, domain.RoleUser, history[0].Role)
}

func TestHandleInbound_FailureThenSuccess(t *testing.T) {
	fail := true
	client := &coordinator.MockClient{
		RespondFunc: func(_ context.Context, req coordinator.Request) (*coordinator.Response, error) {
			if fail {
				return nil, errors.New("transient")
			}
			return &coordinator.Response{FinalText: "recovered"}, nil
		},
	}
	f := newFixture(client)

	f.orch.HandleInbound(context.Background(), inbound("one"))
	fail = false
	f.orch.HandleInbound(context.Background(), inbound("two"))

	// After N=2 turns with one failure: 2N-1 = 3 turns recorded.
	history := f.history()
	require.Len(t, history, 3)
	assert.Equal(t, "one", history[0].Content)
	assert.Equal(t, "two", history[1].Content)
	assert.Equal(t, "recovered", history[2].Content)

	// The second coordinator call saw no phantom assistant turn for
	// the failed first attempt.
	require.Len(t, client.Requests, 2)
	secondSeen := client.Requests[1].History
	require.Len(t, secondSeen, 2)
	assert.Equal(t, domain.RoleUser, secondSeen[0].Role)
	assert.Equal(t, domain.RoleUser, secondSeen[1].Role)
}

func TestHandleInbound_LabelIsAdvisory(t *testing.T) {
	// The coordinator answers a weather-labeled query with the news
	// tool; the response still carries the weather label.
	client := &coordinator.MockClient{
		RespondFunc: func(_ context.Context, _ coordinator.Request) (*coordinator.Response, error) {
			return &coordinator.Response{FinalText: "Here are some articles.", ToolUsed: "news"}, nil
		},
	}
	f := newFixture(client)

	f.orch.HandleInbound(context.Background(), inbound("weather news roundup"))

	require.Len(t, f.ch.sent, 2)
	assert.Equal(t, domain.LabelWeather, f.ch.sent[1].Label)
}

func TestHandleInbound_GeneralFallbackLabel(t *testing.T) {
	client := &coordinator.MockClient{}
	f := newFixture(client)

	f.orch.HandleInbound(context.Background(), inbound("tell me about Go"))

	require.Len(t, f.ch.sent, 2)
	assert.Equal(t, domain.LabelGeneral, f.ch.sent[0].Label)
	assert.Equal(t, "🤖 General Assistant is analyzing your query...", f.ch.sent[0].Body)
}

func TestHandleInbound_SeparateSessionsPerSender(t *testing.T) {
	client := &coordinator.MockClient{}
	f := newFixture(client)

	a := inbound("hello from a")
	a.From = "alice"
	b := inbound("hello from b")
	b.From = "bob"

	f.orch.HandleInbound(context.Background(), a)
	f.orch.HandleInbound(context.Background(), b)

	assert.Len(t, f.sessions.List(), 2)
}

func TestWire_RegistersHandlers(t *testing.T) {
	client := &coordinator.MockClient{}
	f := newFixture(client)

	f.orch.Wire()
	require.NotNil(t, f.ch.handler)
}
