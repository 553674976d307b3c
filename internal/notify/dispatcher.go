package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shanehull/ticketwatch/internal/ticket"
)

// Dispatcher runs every channel's alert cycle for one ticket concurrently.
// All channels are always attempted; a failing channel never aborts the
// others. The joined error carries every channel failure.
type Dispatcher struct {
	notifiers []Notifier
}

func NewDispatcher(notifiers ...Notifier) *Dispatcher {
	return &Dispatcher{notifiers: notifiers}
}

func (d *Dispatcher) Dispatch(ctx context.Context, t ticket.Ticket) error {
	errs := make([]error, len(d.notifiers))

	var wg sync.WaitGroup
	for i, n := range d.notifiers {
		wg.Add(1)
		go func(i int, n Notifier) {
			defer wg.Done()
			if err := n.Send(ctx, t); err != nil {
				errs[i] = fmt.Errorf("%s notification for %s: %w", n.Name(), t.Match, err)
			}
		}(i, n)
	}
	wg.Wait()

	return errors.Join(errs...)
}
