/*
Package monitor runs the poll loop: fetch the page, pick the available
tickets, dispatch alerts once something is found, then stop.
*/
package monitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/shanehull/ticketwatch/internal/scrape"
	"github.com/shanehull/ticketwatch/internal/ticket"
)

// State of the poll loop.
type State int

const (
	// Polling fetches and filters until an available ticket shows up.
	Polling State = iota
	// Dispatching sends alerts for every available ticket found.
	Dispatching
	// Stopped is terminal; the process exits after reaching it.
	Stopped
)

// Dispatcher runs the full alert cycle for one ticket across all channels.
type Dispatcher interface {
	Dispatch(ctx context.Context, t ticket.Ticket) error
}

type Monitor struct {
	fetcher    scrape.Fetcher
	dispatcher Dispatcher
	clock      clockwork.Clock
	pollDelay  time.Duration
}

type Config struct {
	Fetcher    scrape.Fetcher
	Dispatcher Dispatcher
	Clock      clockwork.Clock
	PollDelay  time.Duration
}

func New(cfg Config) *Monitor {
	return &Monitor{
		fetcher:    cfg.Fetcher,
		dispatcher: cfg.Dispatcher,
		clock:      cfg.Clock,
		pollDelay:  cfg.PollDelay,
	}
}

// Run polls until available tickets are found, dispatches alerts for each
// of them in page order, and returns. Fetch errors are logged and retried
// after the poll delay; dispatch errors are logged but never retried.
func (m *Monitor) Run(ctx context.Context) error {
	state := Polling
	var available []ticket.Ticket

	for state != Stopped {
		switch state {
		case Polling:
			available = m.poll(ctx)
			if len(available) > 0 {
				slog.Info("Available matches found, sending notifications", "count", len(available))
				state = Dispatching
				continue
			}
			m.clock.Sleep(m.pollDelay)

		case Dispatching:
			for _, t := range available {
				if err := m.dispatcher.Dispatch(ctx, t); err != nil {
					slog.Error("Notification dispatch failed", "match", t.Match, "error", err)
				}
			}
			state = Stopped
		}
	}

	return nil
}

// poll runs one fetch-normalize-filter pass. Any failure is logged and
// reported as an empty result so the loop retries after the poll delay.
func (m *Monitor) poll(ctx context.Context) []ticket.Ticket {
	slog.Info("Fetching latest tickets")

	entries, err := m.fetcher.Fetch(ctx)
	if err != nil {
		slog.Error("Error fetching tickets", "error", err)
		return nil
	}

	available := ticket.Available(ticket.Normalize(entries), m.clock.Now())
	if len(available) == 0 {
		slog.Info("No tickets available", "retry_in", m.pollDelay)
	}
	return available
}
