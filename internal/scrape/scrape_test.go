package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ticketsPage = `<!DOCTYPE html>
<html>
<body>
  <div class="css-q38j1a">
    <p class="chakra-text css-1nm99ps">Mar 15, 2025 07:30 PM</p>
    <p class="chakra-text css-10rvbm3">RCB</p>
    <p class="chakra-text css-10rvbm3">MI</p>
    <span class="css-1eveppl">INR 999 - 12,000</span>
    <button type="button"><span>BUY TICKETS</span></button>
  </div>
  <div class="css-q38j1a">
    <p class="chakra-text css-1nm99ps">Sat, Mar 22, 2025 07:30 PM</p>
    <p class="chakra-text css-vahgqk">Season Pass</p>
    <button type="button">SOLD OUT</button>
  </div>
  <div class="unrelated">
    <p class="chakra-text css-1nm99ps">Not a ticket card</p>
  </div>
</body>
</html>`

func TestPageFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(ticketsPage))
	}))
	defer srv.Close()

	f := &PageFetcher{url: srv.URL, client: srv.Client()}

	entries, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Mar 15, 2025 07:30 PM", entries[0].DateTime)
	assert.Equal(t, "RCB", entries[0].Team1)
	assert.Equal(t, "MI", entries[0].Team2)
	assert.Equal(t, "INR 999 - 12,000", entries[0].PriceRange)
	assert.Equal(t, "BUY TICKETS", entries[0].ButtonLabel)
	assert.Empty(t, entries[0].Description)

	assert.Equal(t, "Sat, Mar 22, 2025 07:30 PM", entries[1].DateTime)
	assert.Empty(t, entries[1].Team1)
	assert.Empty(t, entries[1].Team2)
	assert.Equal(t, "Season Pass", entries[1].Description)
	assert.Equal(t, "SOLD OUT", entries[1].ButtonLabel)
}

func TestPageFetcher_NoCards(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>Nothing on sale</p></body></html>"))
	}))
	defer srv.Close()

	f := &PageFetcher{url: srv.URL, client: srv.Client()}

	entries, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPageFetcher_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := &PageFetcher{url: srv.URL, client: srv.Client()}

	_, err := f.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}
