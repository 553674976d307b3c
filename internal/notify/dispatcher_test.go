package notify

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shanehull/ticketwatch/internal/ticket"
)

type stubNotifier struct {
	name  string
	err   error
	calls atomic.Int32
}

func (n *stubNotifier) Name() string { return n.name }

func (n *stubNotifier) Send(_ context.Context, _ ticket.Ticket) error {
	n.calls.Add(1)
	return n.err
}

func TestDispatcher_AllChannelsAttempted(t *testing.T) {
	email := &stubNotifier{name: "email", err: errors.New("smtp down")}
	telegram := &stubNotifier{name: "telegram"}
	d := NewDispatcher(email, telegram)

	err := d.Dispatch(context.Background(), testTicket())

	// The email failure surfaces but never stops the telegram channel.
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
	assert.Contains(t, err.Error(), "email notification for RCB vs MI")
	assert.EqualValues(t, 1, email.calls.Load())
	assert.EqualValues(t, 1, telegram.calls.Load())
}

func TestDispatcher_NoFailures(t *testing.T) {
	email := &stubNotifier{name: "email"}
	telegram := &stubNotifier{name: "telegram"}
	d := NewDispatcher(email, telegram)

	require.NoError(t, d.Dispatch(context.Background(), testTicket()))
	assert.EqualValues(t, 1, email.calls.Load())
	assert.EqualValues(t, 1, telegram.calls.Load())
}

type rendezvousNotifier struct {
	name    string
	arrive  chan string
	proceed chan struct{}
}

func (n *rendezvousNotifier) Name() string { return n.name }

func (n *rendezvousNotifier) Send(_ context.Context, _ ticket.Ticket) error {
	n.arrive <- n.name
	<-n.proceed
	return nil
}

func TestDispatcher_ChannelsRunConcurrently(t *testing.T) {
	arrive := make(chan string, 2)
	proceed := make(chan struct{})
	d := NewDispatcher(
		&rendezvousNotifier{name: "email", arrive: arrive, proceed: proceed},
		&rendezvousNotifier{name: "telegram", arrive: arrive, proceed: proceed},
	)

	done := make(chan error, 1)
	go func() { done <- d.Dispatch(context.Background(), testTicket()) }()

	// Both notifiers must be in flight before either is released.
	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case name := <-arrive:
			seen[name] = true
		case <-time.After(time.Second):
			t.Fatal("channels did not run concurrently")
		}
	}
	close(proceed)

	require.NoError(t, <-done)
	assert.True(t, seen["email"])
	assert.True(t, seen["telegram"])
}
