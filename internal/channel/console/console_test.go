package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/madadgar-ai/madadgar/internal/domain"
	"github.com/madadgar-ai/madadgar/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsole_ReadsLinesAsMessages(t *testing.T) {
	in := strings.NewReader("hello\n\nworld\n")
	var out bytes.Buffer
	ch := NewWithIO(in, &out, logging.Silent())

	var got []domain.InboundMessage
	ch.OnMessage(func(msg domain.InboundMessage) {
		got = append(got, msg)
	})

	require.NoError(t, ch.Start(context.Background()))

	// Blank lines are skipped.
	require.Len(t, got, 2)
	assert.Equal(t, "hello", got[0].Body)
	assert.Equal(t, "world", got[1].Body)
	assert.Equal(t, "console", got[0].ChannelID)
	assert.Equal(t, domain.ChatTypeDM, got[0].ChatType)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "2", got[1].ID)
	assert.WithinDuration(t, time.Now(), got[0].Timestamp, time.Minute)
}

func TestConsole_SendFormatsLabel(t *testing.T) {
	var out bytes.Buffer
	ch := NewWithIO(strings.NewReader(""), &out, logging.Silent())

	require.NoError(t, ch.Send(context.Background(), domain.OutboundMessage{
		Body:  "It is sunny.",
		Label: domain.LabelWeather,
	}))
	assert.Contains(t, out.String(), "[Weather Agent] It is sunny.\n")
}

func TestConsole_SendNoticeVerbatim(t *testing.T) {
	var out bytes.Buffer
	ch := NewWithIO(strings.NewReader(""), &out, logging.Silent())

	require.NoError(t, ch.Send(context.Background(), domain.OutboundMessage{
		Body:   "🤖 Weather Agent is analyzing your query...",
		Label:  domain.LabelWeather,
		Notice: true,
	}))
	assert.Contains(t, out.String(), "🤖 Weather Agent is analyzing your query...\n")
	assert.NotContains(t, out.String(), "[Weather Agent]")
}
