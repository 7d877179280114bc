package capability

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"

	"github.com/madadgar-ai/madadgar/internal/config"
	"github.com/madadgar-ai/madadgar/internal/logging"
	"github.com/madadgar-ai/madadgar/internal/tool"
)

// Sender submits one message to the mail relay. Implementations must
// not retry: submission is irreversible, and retrying an ambiguous
// failure (e.g. a timeout after the relay accepted) risks duplicates.
type Sender interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// Email sends plain-text mail through an authenticated SMTP relay.
type Email struct {
	cfg    config.EmailConfig
	sender Sender
	log    *logging.Logger
}

// NewEmail creates the email capability with the SMTP sender.
func NewEmail(cfg config.EmailConfig, log *logging.Logger) *Email {
	return &Email{
		cfg:    cfg,
		sender: &smtpSender{cfg: cfg},
		log:    log.Sub("capability.email"),
	}
}

// Spec returns the tool contract for the coordinator.
func (e *Email) Spec() *tool.Spec {
	return &tool.Spec{
		Name:        "send_email",
		Description: "Send a plain-text email to a recipient. Requires recipient address, subject and message body.",
		Params: []tool.Param{
			{Name: "to_email", Type: tool.TypeString, Description: "Recipient email address", Required: true},
			{Name: "subject", Type: tool.TypeString, Description: "Email subject line", Required: true},
			{Name: "message", Type: tool.TypeString, Description: "Plain-text email body", Required: true},
		},
		Handler: e.invoke,
	}
}

func (e *Email) invoke(ctx context.Context, args tool.Args) tool.Result {
	to := args.String("to_email")
	subject := args.String("subject")
	message := args.String("message")

	if e.cfg.Address == "" || e.cfg.Password == "" {
		return tool.Failf("Email configuration is missing. Please set both EMAIL_ADDRESS and EMAIL_PASSWORD in your environment.")
	}
	if !strings.Contains(to, "@") {
		return tool.Failf("'%s' does not look like a valid email address. Please check the recipient and try again.", to)
	}

	e.log.Info().Str("to", to).Str("subject", subject).Msg("sending email")

	if err := e.sender.Send(ctx, e.cfg.Address, to, subject, message); err != nil {
		var smtpErr *smtp.SMTPError
		if errors.As(err, &smtpErr) {
			switch {
			case smtpErr.Code == 535 || smtpErr.Code == 534:
				return tool.Fail("Email relay authentication failed. Please check EMAIL_ADDRESS and EMAIL_PASSWORD.", err)
			case smtpErr.Code >= 500:
				return tool.Fail(fmt.Sprintf("The mail relay rejected the message to %s.", to), err)
			}
		}
		return tool.Fail(fmt.Sprintf("Failed to send email to %s.", to), err)
	}

	return tool.OK(fmt.Sprintf("Email sent successfully to %s.", to))
}

// smtpSender submits via SMTP with STARTTLS and PLAIN auth. One
// attempt only — see the Sender contract.
type smtpSender struct {
	cfg config.EmailConfig
}

func (s *smtpSender) Send(_ context.Context, from, to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := sasl.NewPlainClient("", s.cfg.Address, s.cfg.Password)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)
	msg.WriteString("\r\n")

	return smtp.SendMail(addr, auth, from, []string{to}, strings.NewReader(msg.String()))
}
