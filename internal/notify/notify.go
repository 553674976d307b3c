/*
Package notify delivers ticket alerts over email and Telegram with a shared
repeat/interval policy.
*/
package notify

import (
	"context"
	"time"

	"github.com/shanehull/ticketwatch/internal/ticket"
)

// Policy controls how often a notifier repeats its alert for one ticket
// and how long it waits between repetitions.
type Policy struct {
	Repeat   int
	Interval time.Duration
}

// Notifier sends a full alert cycle for one ticket over a single channel.
type Notifier interface {
	Name() string
	Send(ctx context.Context, t ticket.Ticket) error
}
