/*
Package ticket defines the ticket records scraped from the sales page and
the rules that decide which of them are worth alerting on.
*/
package ticket

import (
	"time"
)

// buyLabel is the exact button text the sales page shows when a match is
// open for purchase.
const buyLabel = "BUY TICKETS"

// dateFormats are the only two date-time layouts the page is known to
// render. Anything else is treated as an unscheduled match, not an error.
var dateFormats = []string{
	"Jan 02, 2006 03:04 PM",
	"Mon, Jan 02, 2006 03:04 PM",
}

// RawEntry is the unvalidated output of one scraped ticket card. Fields
// may be empty when the card is missing the corresponding element.
type RawEntry struct {
	DateTime    string
	Team1       string
	Team2       string
	Description string
	PriceRange  string
	ButtonLabel string
}

// Ticket is the canonical record produced from a RawEntry.
type Ticket struct {
	// Match is "<team1> vs <team2>" when both teams are known, the card's
	// description text otherwise. Empty when neither is present.
	Match string
	// ScheduledDate is zero when the raw date-time text matched neither
	// accepted layout. A zero date is never eligible for notification.
	ScheduledDate time.Time
	PriceRange    string
	Available     bool
}

// Normalize converts raw scrape output into canonical tickets, one per
// entry, preserving order.
func Normalize(entries []RawEntry) []Ticket {
	tickets := make([]Ticket, 0, len(entries))
	for _, e := range entries {
		tickets = append(tickets, Ticket{
			Match:         matchLabel(e),
			ScheduledDate: parseDate(e.DateTime),
			PriceRange:    e.PriceRange,
			Available:     e.ButtonLabel == buyLabel,
		})
	}
	return tickets
}

// Available returns the tickets scheduled strictly after today's calendar
// date that are open for purchase, preserving order.
func Available(tickets []Ticket, today time.Time) []Ticket {
	var available []Ticket
	for _, t := range tickets {
		if t.ScheduledDate.IsZero() {
			continue
		}
		if !calendarDate(t.ScheduledDate).After(calendarDate(today)) {
			continue
		}
		if !t.Available {
			continue
		}
		available = append(available, t)
	}
	return available
}

// DateString renders the scheduled date the way alert messages show it.
func (t Ticket) DateString() string {
	return t.ScheduledDate.Format("2006-01-02")
}

func matchLabel(e RawEntry) string {
	if e.Team1 != "" && e.Team2 != "" {
		return e.Team1 + " vs " + e.Team2
	}
	return e.Description
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateFormats {
		t, err := time.Parse(layout, s)
		// time.Parse matches month and weekday names case-insensitively
		// and ignores weekday consistency; the round trip keeps the match
		// strict on both.
		if err == nil && t.Format(layout) == s {
			return t
		}
	}
	return time.Time{}
}

func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
