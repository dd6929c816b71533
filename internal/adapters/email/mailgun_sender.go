package email

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/jeanlucaslima/meditha/internal/infra/config"
	"github.com/jeanlucaslima/meditha/internal/ports"
)

const sendTimeout = 10 * time.Second

// MailgunSender implementa EmailSender sobre a API do Mailgun.
type MailgunSender struct {
	mg     mailgun.Mailgun
	sender string
}

func NewMailgunSender(cfg config.MailgunConfig) *MailgunSender {
	return &MailgunSender{
		mg:     mailgun.NewMailgun(cfg.Domain, cfg.APIKey),
		sender: cfg.Sender,
	}
}

var _ ports.EmailSender = (*MailgunSender)(nil)

func (s *MailgunSender) Send(ctx context.Context, msg ports.EmailMessage) (*ports.EmailSendResult, error) {
	to := msg.To
	if msg.ToName != "" {
		to = fmt.Sprintf("%s <%s>", msg.ToName, msg.To)
	}

	m := s.mg.NewMessage(s.sender, msg.Subject, msg.Text, to)
	if msg.HTML != "" {
		m.SetHtml(msg.HTML)
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	_, id, err := s.mg.Send(ctx, m)
	if err != nil {
		return &ports.EmailSendResult{Success: false, Error: err.Error()}, err
	}

	return &ports.EmailSendResult{Success: true, MessageID: id}, nil
}
