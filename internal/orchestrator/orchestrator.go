// Package orchestrator connects messaging channels to the coordinator.
// It owns the per-turn control flow: record the user turn, classify
// intent, emit a routing notice, run the coordinator, and deliver the
// final labeled response.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/madadgar-ai/madadgar/internal/channel"
	"github.com/madadgar-ai/madadgar/internal/coordinator"
	"github.com/madadgar-ai/madadgar/internal/domain"
	"github.com/madadgar-ai/madadgar/internal/intent"
	"github.com/madadgar-ai/madadgar/internal/logging"
	"github.com/madadgar-ai/madadgar/internal/session"
	"github.com/madadgar-ai/madadgar/internal/tool"
)

// apologyText is the generic failure message sent when the coordinator
// errors. It deliberately carries no detail from the underlying error.
const apologyText = "Sorry, something went wrong while processing your request. Please try again."

// Orchestrator routes inbound messages through the turn pipeline and
// sends responses back through the originating channel.
type Orchestrator struct {
	channels *channel.Registry
	sessions session.Store
	intents  *intent.Router
	client   coordinator.Client
	tools    *tool.Registry
	locks    *keyedLocks
	log      *logging.Logger
}

func New(
	channels *channel.Registry,
	sessions session.Store,
	intents *intent.Router,
	client coordinator.Client,
	tools *tool.Registry,
	log *logging.Logger,
) *Orchestrator {
	return &Orchestrator{
		channels: channels,
		sessions: sessions,
		intents:  intents,
		client:   client,
		tools:    tools,
		locks:    newKeyedLocks(),
		log:      log.Sub("orchestrator"),
	}
}

// HandleInbound processes one inbound message. Turns for the same
// session run strictly one at a time, in arrival order; independent
// sessions proceed concurrently.
func (o *Orchestrator) HandleInbound(ctx context.Context, msg domain.InboundMessage) {
	key := domain.SessionKey{
		ChannelID: msg.ChannelID,
		ChatID:    msg.ChatID,
		SenderID:  msg.From,
	}

	unlock := o.locks.Lock(key.String())
	defer unlock()

	start := time.Now()
	sess := o.sessions.GetOrCreate(key)

	o.log.Info().
		Str("sessionId", sess.ID).
		Str("channel", msg.ChannelID).
		Str("from", msg.From).
		Int("historyLen", o.sessions.Len(sess.ID)).
		Msg("processing message")

	label := o.intents.Classify(msg.Body)

	o.sessions.Append(sess.ID, domain.Turn{
		Role:      domain.RoleUser,
		Content:   msg.Body,
		Timestamp: msg.Timestamp,
	})

	// Routing notice. Informational only: a send failure here must not
	// stop the turn.
	o.send(ctx, msg, domain.OutboundMessage{
		ChannelID: msg.ChannelID,
		To:        replyTarget(msg),
		Body:      fmt.Sprintf("🤖 %s is analyzing your query...", label),
		Label:     label,
		Notice:    true,
	})

	resp, err := o.client.Respond(ctx, coordinator.Request{
		History: o.sessions.History(sess.ID),
		Tools:   o.tools.All(),
	})
	if err != nil {
		// The failed turn is not remembered: no assistant turn is
		// appended, so the next coordinator call never sees it.
		o.log.Error().Err(err).
			Str("sessionId", sess.ID).
			Str("channel", msg.ChannelID).
			Msg("coordinator failed")
		o.send(ctx, msg, domain.OutboundMessage{
			ChannelID: msg.ChannelID,
			To:        replyTarget(msg),
			Body:      apologyText,
			Label:     label,
		})
		return
	}

	o.sessions.Append(sess.ID, domain.Turn{
		Role:      domain.RoleAssistant,
		Content:   resp.FinalText,
		Timestamp: time.Now(),
	})

	// The response keeps the label computed up front even if the
	// coordinator used a different tool. The label is advisory.
	o.send(ctx, msg, domain.OutboundMessage{
		ChannelID: msg.ChannelID,
		To:        replyTarget(msg),
		Body:      resp.FinalText,
		Label:     label,
	})

	o.log.Info().
		Str("sessionId", sess.ID).
		Str("label", string(label)).
		Str("toolUsed", resp.ToolUsed).
		Dur("duration", time.Since(start)).
		Msg("response sent")
}

func (o *Orchestrator) send(ctx context.Context, msg domain.InboundMessage, out domain.OutboundMessage) {
	ch, ok := o.channels.Get(msg.ChannelID)
	if !ok {
		o.log.Error().Str("channel", msg.ChannelID).Msg("channel not found for reply")
		return
	}
	if err := ch.Send(ctx, out); err != nil {
		o.log.Error().Err(err).
			Str("channel", msg.ChannelID).
			Str("to", out.To).
			Bool("notice", out.Notice).
			Msg("failed to send message")
	}
}

// Wire registers HandleInbound as the message handler on all channels.
func (o *Orchestrator) Wire() {
	for _, id := range o.channels.List() {
		ch, ok := o.channels.Get(id)
		if !ok {
			continue
		}
		ch.OnMessage(func(msg domain.InboundMessage) {
			go o.HandleInbound(context.Background(), msg)
		})
		o.log.Debug().Str("channel", id).Msg("wired message handler")
	}
}

// replyTarget determines where to send the response.
func replyTarget(msg domain.InboundMessage) string {
	switch msg.ChatType {
	case domain.ChatTypeDM:
		return msg.From
	case domain.ChatTypeGroup:
		return msg.ChatID
	default:
		return msg.ChatID
	}
}
