package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/companion-booking/internal/core/events"
)

type EventHandler struct {
	client *Client
	logger *slog.Logger
}

func NewEventHandler(client *Client, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		client: client,
		logger: logger,
	}
}

func (h *EventHandler) HandleBookingConfirmed(ctx context.Context, event events.Event) error {
	confirmed, ok := event.(*events.BookingConfirmedEvent)
	if !ok {
		h.logger.Error("invalid event type for booking confirmed handler", "event_type", event.EventType())
		return fmt.Errorf("expected BookingConfirmedEvent, got %T", event)
	}

	h.logger.Info("sending booking confirmation notification",
		"booking_id", confirmed.BookingID,
		"order_id", confirmed.OrderID,
		"event_id", confirmed.EventID())

	job := Job{
		Channel:   "sms",
		Recipient: confirmed.CustomerID,
		OrderID:   confirmed.OrderID,
		Message: fmt.Sprintf("Your %s booking is confirmed. Order %s.",
			confirmed.ServiceID, confirmed.OrderID),
	}

	if err := h.client.Enqueue(job); err != nil {
		// delivery is best effort, reconciliation already finished
		h.logger.Warn("could not queue booking confirmation",
			"error", err,
			"booking_id", confirmed.BookingID)
	}

	return nil
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypeBookingConfirmed, h.HandleBookingConfirmed)

	h.logger.Info("notifier event handlers registered",
		"handlers", []string{events.EventTypeBookingConfirmed})
}
