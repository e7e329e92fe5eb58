package model

import "time"

const (
	BookingEventCreated   = "booking.created"
	BookingEventConfirmed = "booking.confirmed"
	BookingEventCancelled = "booking.cancelled"
	BookingEventDeleted   = "booking.deleted"
)

// BookingEvent is published on every lifecycle change. Status fields carry
// the wire form so consumers can validate them independently.
type BookingEvent struct {
	Type             string    `json:"type"`
	BookingID        string    `json:"booking_id"`
	BookingReference string    `json:"booking_reference"`
	TenantID         string    `json:"tenant_id"`
	CourtID          string    `json:"court_id"`
	Date             string    `json:"date"`
	StartTime        string    `json:"start_time"`
	EndTime          string    `json:"end_time"`
	Status           string    `json:"status"`
	PreviousStatus   string    `json:"previous_status,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

func NewBookingEvent(eventType string, b *Booking) BookingEvent {
	return BookingEvent{
		Type:             eventType,
		BookingID:        b.ID,
		BookingReference: b.BookingReference,
		TenantID:         b.TenantID,
		CourtID:          b.CourtID,
		Date:             b.Date,
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		Status:           b.Status.String(),
		OccurredAt:       time.Now().UTC(),
	}
}
