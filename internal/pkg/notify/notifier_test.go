package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookNotifierDelivers(t *testing.T) {
	received := make(chan Event, 1)
	headers := make(chan http.Header, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ev Event
		require.NoError(t, json.NewDecoder(r.Body).Decode(&ev))
		headers <- r.Header
		received <- ev
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, "hook-token")
	n.Notify(Event{
		Kind:          "ticket.created",
		TicketID:      12,
		EquipmentCode: "EQ-0001",
		EquipmentName: "Dell OptiPlex 7090",
		Status:        "Pending",
		Recipient:     "Somchai J.",
		RecipientRole: "REPORTER",
		OccurredAt:    time.Now(),
	})

	select {
	case ev := <-received:
		assert.Equal(t, "ticket.created", ev.Kind)
		assert.Equal(t, int64(12), ev.TicketID)
		assert.Equal(t, "EQ-0001", ev.EquipmentCode)
		assert.Equal(t, "Dell OptiPlex 7090", ev.EquipmentName)
		assert.Equal(t, "Somchai J.", ev.Recipient)
		assert.Equal(t, "REPORTER", ev.RecipientRole)
	case <-time.After(5 * time.Second):
		t.Fatal("event was not delivered")
	}

	h := <-headers
	assert.Equal(t, "Bearer hook-token", h.Get("Authorization"))
	assert.Equal(t, "application/json", h.Get("Content-Type"))
}

func TestWebhookNotifierFailureDoesNotBlock(t *testing.T) {
	n := NewWebhookNotifier("http://127.0.0.1:1", "")

	done := make(chan struct{})
	go func() {
		// Notify must return immediately even when nothing listens
		n.Notify(Event{Kind: "ticket.created", TicketID: 1})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on an unreachable endpoint")
	}
}

func TestNopNotifier(t *testing.T) {
	// Must simply not panic
	NopNotifier{}.Notify(Event{Kind: "ticket.created"})
}
