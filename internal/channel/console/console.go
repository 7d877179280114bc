// Package console implements an interactive terminal user surface.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/madadgar-ai/madadgar/internal/domain"
	"github.com/madadgar-ai/madadgar/internal/logging"
)

// Channel reads user messages line by line from in and writes
// responses to out. Defaults to stdin/stdout.
type Channel struct {
	in      io.Reader
	out     io.Writer
	log     *logging.Logger
	mu      sync.Mutex
	handler func(msg domain.InboundMessage)
	done    chan struct{}
}

func New(log *logging.Logger) *Channel {
	return &Channel{
		in:   os.Stdin,
		out:  os.Stdout,
		log:  log.Sub("console"),
		done: make(chan struct{}),
	}
}

// NewWithIO is used by tests to substitute the terminal.
func NewWithIO(in io.Reader, out io.Writer, log *logging.Logger) *Channel {
	return &Channel{
		in:   in,
		out:  out,
		log:  log.Sub("console"),
		done: make(chan struct{}),
	}
}

func (c *Channel) ID() string { return "console" }

func (c *Channel) OnMessage(handler func(msg domain.InboundMessage)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = handler
}

// Start reads lines until EOF or the context is canceled. Each
// non-empty line becomes one inbound message.
func (c *Channel) Start(ctx context.Context) error {
	fmt.Fprintln(c.out, "Hello! I'm your assistant. Ask me about weather, news, translations, or anything else.")

	scanner := bufio.NewScanner(c.in)
	seq := 0
	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			break
		}
		select {
		case <-ctx.Done():
			return nil
		case <-c.done:
			return nil
		default:
		}

		body := scanner.Text()
		if body == "" {
			continue
		}
		seq++

		c.mu.Lock()
		handler := c.handler
		c.mu.Unlock()
		if handler == nil {
			c.log.Warn().Msg("no message handler, dropping input")
			continue
		}

		handler(domain.InboundMessage{
			ID:        strconv.Itoa(seq),
			ChannelID: c.ID(),
			From:      "user",
			ChatID:    "console",
			ChatType:  domain.ChatTypeDM,
			Body:      body,
			Timestamp: time.Now(),
		})
	}
	return scanner.Err()
}

func (c *Channel) Stop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	select {
	case <-c.done:
	default:
		close(c.done)
	}
	return nil
}

// Send writes the message to the terminal. Final responses carry the
// attributed label; notices are printed as-is.
func (c *Channel) Send(ctx context.Context, msg domain.OutboundMessage) error {
	if msg.Notice || msg.Label == "" {
		_, err := fmt.Fprintf(c.out, "%s\n", msg.Body)
		return err
	}
	_, err := fmt.Fprintf(c.out, "[%s] %s\n", msg.Label, msg.Body)
	return err
}
