package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	gomail "gopkg.in/mail.v2"

	"github.com/shanehull/ticketwatch/internal/ticket"
)

// EmailConfig holds SMTP settings and the recipient list for email alerts.
type EmailConfig struct {
	SMTPHost   string
	SMTPPort   int
	User       string
	Pass       string
	Recipients []string
	PageURL    string
}

type mailSender interface {
	Send(m *gomail.Message) error
}

type dialerSender struct {
	dialer *gomail.Dialer
}

func (s *dialerSender) Send(m *gomail.Message) error {
	return s.dialer.DialAndSend(m)
}

// EmailNotifier sends one joint message to every recipient, repeated per
// the policy. Send errors are returned to the caller, not swallowed.
type EmailNotifier struct {
	cfg    EmailConfig
	policy Policy
	clock  clockwork.Clock
	sender mailSender
}

func NewEmailNotifier(cfg EmailConfig, policy Policy, clock clockwork.Clock) *EmailNotifier {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.User, cfg.Pass)
	dialer.Timeout = 10 * time.Second

	return &EmailNotifier{
		cfg:    cfg,
		policy: policy,
		clock:  clock,
		sender: &dialerSender{dialer: dialer},
	}
}

func (e *EmailNotifier) Name() string {
	return "email"
}

func (e *EmailNotifier) Send(ctx context.Context, t ticket.Ticket) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(e.cfg.User, "Ticket Alert"))
	m.SetHeader("To", e.cfg.Recipients...)
	m.SetHeader("Subject", fmt.Sprintf("🎟️ Tickets Available: %s on %s!", t.Match, t.DateString()))
	m.SetBody("text/plain", fmt.Sprintf(
		"The tickets for %s on %s are available!\n\nPrice Range: %s\n\nBook Now: %s",
		t.Match, t.DateString(), t.PriceRange, e.cfg.PageURL,
	))

	for i := 0; i < e.policy.Repeat; i++ {
		if err := e.sender.Send(m); err != nil {
			return fmt.Errorf("sending email for %s: %w", t.Match, err)
		}
		slog.Info("Email sent", "match", t.Match, "attempt", fmt.Sprintf("%d/%d", i+1, e.policy.Repeat))

		if i < e.policy.Repeat-1 {
			e.clock.Sleep(e.policy.Interval)
		}
	}

	return nil
}
