package notifications

import (
	"context"
	"fmt"

	"courtly/pkg/kafka"
	"courtly/pkg/logger"
	"courtly/pkg/model"
	"courtly/pkg/status"
)

var headlines = map[string]string{
	model.BookingEventCreated:   "New booking",
	model.BookingEventConfirmed: "Booking confirmed",
	model.BookingEventCancelled: "Booking cancelled",
	model.BookingEventDeleted:   "Booking removed",
}

type Handler struct {
	notifier Notifier
	log      *logger.Logger
}

func NewHandler(notifier Notifier, log *logger.Logger) *Handler {
	return &Handler{notifier: notifier, log: log}
}

// Handle is a kafka.MessageHandler. Malformed events are permanent errors and
// go to the dead letter topic; a failing notifier is retried.
func (h *Handler) Handle(ctx context.Context, msg kafka.Message) error {
	var event model.BookingEvent
	if err := msg.DecodeValue(&event); err != nil {
		return err
	}

	st, err := status.Parse(event.Status)
	if err != nil {
		return kafka.NewPermanentError("invalid booking status", err).
			WithDetail("booking_id", event.BookingID)
	}
	if event.PreviousStatus != "" {
		if _, err := status.Parse(event.PreviousStatus); err != nil {
			return kafka.NewPermanentError("invalid previous booking status", err).
				WithDetail("booking_id", event.BookingID)
		}
	}
	if event.BookingReference == "" {
		return kafka.NewPermanentError("booking event without reference", kafka.ErrInvalidMessage)
	}

	note := Notification{
		EventType: event.Type,
		BookingID: event.BookingID,
		Reference: event.BookingReference,
		TenantID:  event.TenantID,
		CourtID:   event.CourtID,
		Status:    st,
		Line:      Render(event, st),
	}
	if err := h.notifier.Notify(ctx, note); err != nil {
		return kafka.NewTransientError("notify failed", err)
	}
	return nil
}

// Render formats the one-line notice, e.g.
// "[Confirmed] Booking confirmed BK-0A1B2C3D4E: court 64b7..., 2026-11-02 18:00-19:00".
func Render(event model.BookingEvent, st status.Status) string {
	headline, ok := headlines[event.Type]
	if !ok {
		headline = "Booking updated"
	}
	return fmt.Sprintf("[%s] %s %s: court %s, %s %s-%s",
		st.Label(), headline, event.BookingReference,
		event.CourtID, event.Date, event.StartTime, event.EndTime,
	)
}
