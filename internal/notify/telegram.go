package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/shanehull/ticketwatch/internal/ticket"
)

const defaultTelegramEndpoint = "http://api.callmebot.com/text.php"

// TelegramConfig holds the messaging endpoint and the usernames to alert.
type TelegramConfig struct {
	// Endpoint defaults to the CallMeBot text API when empty.
	Endpoint  string
	Usernames []string
	PageURL   string
}

// TelegramNotifier sends the alert to every username, repeated per the
// policy. A failed username is logged and skipped; the rest continue.
type TelegramNotifier struct {
	cfg    TelegramConfig
	policy Policy
	clock  clockwork.Clock
	client *http.Client
}

func NewTelegramNotifier(cfg TelegramConfig, policy Policy, clock clockwork.Clock) *TelegramNotifier {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultTelegramEndpoint
	}

	return &TelegramNotifier{
		cfg:    cfg,
		policy: policy,
		clock:  clock,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (n *TelegramNotifier) Name() string {
	return "telegram"
}

func (n *TelegramNotifier) Send(ctx context.Context, t ticket.Ticket) error {
	text := telegramText(t, n.cfg.PageURL)

	for i := 0; i < n.policy.Repeat; i++ {
		for _, username := range n.cfg.Usernames {
			if err := n.sendOne(ctx, username, text); err != nil {
				slog.Error("Failed to send Telegram message", "username", username, "error", err)
				continue
			}
			slog.Info("Telegram message sent", "username", username, "attempt", fmt.Sprintf("%d/%d", i+1, n.policy.Repeat))
		}

		if i < n.policy.Repeat-1 {
			n.clock.Sleep(n.policy.Interval)
		}
	}

	return nil
}

func (n *TelegramNotifier) sendOne(ctx context.Context, username, text string) error {
	reqURL := fmt.Sprintf("%s?user=%s&text=%s", n.cfg.Endpoint, url.QueryEscape(username), text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("received non-OK status code %d", resp.StatusCode)
	}

	return nil
}

// telegramText builds the alert with lines separated by the endpoint's
// literal %0A newline token. Each line is query-escaped individually so
// the token itself survives encoding.
func telegramText(t ticket.Ticket, pageURL string) string {
	lines := []string{
		fmt.Sprintf("🎟️ Tickets Available: %s on %s!", t.Match, t.DateString()),
		fmt.Sprintf("💰 Price Range: %s", t.PriceRange),
		fmt.Sprintf("🔗 Book Now: %s", pageURL),
	}

	escaped := make([]string, len(lines))
	for i, line := range lines {
		escaped[i] = url.QueryEscape(line)
	}
	return strings.Join(escaped, "%0A")
}
