/*
Package scrape fetches the ticket sales page and extracts the raw ticket
cards from its markup.
*/
package scrape

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/shanehull/ticketwatch/internal/ticket"
)

// Class names the sales page renders its ticket cards with.
const (
	cardClass        = "css-q38j1a"
	dateTimeClass    = "css-1nm99ps"
	teamClass        = "css-10rvbm3"
	descriptionClass = "css-vahgqk"
	priceRangeClass  = "css-1eveppl"
)

var client = &http.Client{
	Timeout: 60 * time.Second,
}

// Fetcher returns the raw ticket entries currently shown on the sales page.
type Fetcher interface {
	Fetch(ctx context.Context) ([]ticket.RawEntry, error)
}

// PageFetcher scrapes ticket cards from the configured page URL.
type PageFetcher struct {
	url    string
	client *http.Client
}

func NewPageFetcher(url string) *PageFetcher {
	return &PageFetcher{
		url:    url,
		client: client,
	}
}

func (f *PageFetcher) Fetch(ctx context.Context) ([]ticket.RawEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", f.url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL %s: %w", f.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-OK status code %d from %s", resp.StatusCode, f.url)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", f.url, err)
	}

	return collectEntries(doc), nil
}

func collectEntries(doc *html.Node) []ticket.RawEntry {
	var entries []ticket.RawEntry

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, cardClass) {
			entries = append(entries, parseCard(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return entries
}

// parseCard pulls the raw fields out of one ticket card. Missing elements
// leave the corresponding field empty.
func parseCard(card *html.Node) ticket.RawEntry {
	var entry ticket.RawEntry
	var teams []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "p" && hasClass(n, dateTimeClass):
				entry.DateTime = strings.TrimSpace(extractText(n))
			case n.Data == "p" && hasClass(n, teamClass):
				teams = append(teams, strings.TrimSpace(extractText(n)))
			case n.Data == "p" && hasClass(n, descriptionClass):
				entry.Description = strings.TrimSpace(extractText(n))
			case n.Data == "span" && hasClass(n, priceRangeClass):
				entry.PriceRange = strings.TrimSpace(extractText(n))
			case n.Data == "button" && entry.ButtonLabel == "":
				entry.ButtonLabel = strings.TrimSpace(extractText(n))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(card)

	if len(teams) > 0 {
		entry.Team1 = teams[0]
	}
	if len(teams) > 1 {
		entry.Team2 = teams[1]
	}

	return entry
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func extractText(n *html.Node) string {
	var extract func(*html.Node) string

	extract = func(n *html.Node) string {
		if n.Type == html.TextNode {
			return n.Data
		}
		var sb strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			sb.WriteString(extract(c))
		}
		return sb.String()
	}

	return extract(n)
}
