package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kittipos/equiptrack/internal/pkg/logger"
)

// Event describes a workflow occurrence pushed to the notification channel.
// Recipient identifies the principal the event concerns, normally the
// ticket's reporter; Actor is whoever performed the change.
type Event struct {
	Kind          string    `json:"kind"` // ticket.created, ticket.assigned, ticket.transitioned
	TicketID      int64     `json:"ticketId"`
	EquipmentCode string    `json:"equipmentCode"`
	EquipmentName string    `json:"equipmentName"`
	Room          string    `json:"room"`
	Status        string    `json:"status"`
	Actor         string    `json:"actor"`
	Recipient     string    `json:"recipient"`
	RecipientRole string    `json:"recipientRole"`
	Message       string    `json:"message"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// Notifier delivers workflow events to an external channel. Delivery is
// best effort; a failed notification never fails the operation that
// produced it.
type Notifier interface {
	Notify(event Event)
}

// WebhookNotifier posts events as JSON to a configured webhook URL
type WebhookNotifier struct {
	url     string
	token   string
	client  *http.Client
	timeout time.Duration
}

// NewWebhookNotifier creates a notifier for the given webhook URL. The token
// is sent as a bearer credential when non-empty.
func NewWebhookNotifier(url, token string) *WebhookNotifier {
	return &WebhookNotifier{
		url:     url,
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
		timeout: 10 * time.Second,
	}
}

// Notify delivers the event in a background goroutine and returns
// immediately
func (n *WebhookNotifier) Notify(event Event) {
	go n.deliver(event)
}

func (n *WebhookNotifier) deliver(event Event) {
	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	body, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("kind", event.Kind).Msg("Failed to encode notification event")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		logger.Error().Err(err).Str("url", n.url).Msg("Failed to build notification request")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if n.token != "" {
		req.Header.Set("Authorization", "Bearer "+n.token)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		logger.Warn().Err(err).Int64("ticketID", event.TicketID).Str("kind", event.Kind).Msg("Notification delivery failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		logger.Warn().Int("status", resp.StatusCode).Int64("ticketID", event.TicketID).Str("kind", event.Kind).
			Msg(fmt.Sprintf("Notification endpoint returned %s", resp.Status))
		return
	}

	logger.Debug().Int64("ticketID", event.TicketID).Str("kind", event.Kind).Msg("Notification delivered")
}

// NopNotifier discards all events. Used when no webhook is configured and
// in tests.
type NopNotifier struct{}

// Notify does nothing
func (NopNotifier) Notify(Event) {}
