package model

import (
	"courtly/pkg/status"
	"time"
)

type Booking struct {
	ID               string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	BookingReference string        `json:"booking_reference" bson:"booking_reference" validate:"required,booking_reference"`
	TenantID         string        `json:"tenant_id" bson:"tenant_id" validate:"required,mongodb"`
	CourtID          string        `json:"court_id" bson:"court_id" validate:"required,mongodb"`
	Date             string        `json:"date" bson:"date" validate:"required,booking_date"`
	StartTime        string        `json:"start_time" bson:"start_time" validate:"required,clock_time"`
	EndTime          string        `json:"end_time" bson:"end_time" validate:"required,clock_time"`
	Status           status.Status `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled"`
	Notes            string        `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=500"`
	CreatedAt        time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at" bson:"updated_at"`

	StatusBadge *status.Badge `json:"status_badge,omitempty" bson:"-"`
}

// AttachBadge fills StatusBadge from the current status for API responses.
func (b *Booking) AttachBadge() {
	if !b.Status.Valid() {
		b.StatusBadge = nil
		return
	}
	badge := b.Status.Badge()
	b.StatusBadge = &badge
}

type BookingCreate struct {
	TenantID  string `json:"tenant_id" validate:"required,mongodb"`
	CourtID   string `json:"court_id" validate:"required,mongodb"`
	Date      string `json:"date" validate:"required,booking_date"`
	StartTime string `json:"start_time" validate:"required,clock_time"`
	EndTime   string `json:"end_time" validate:"required,clock_time"`
	Notes     string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// BookingUpdate reschedules a booking. Status changes go through the
// confirm/cancel operations instead.
type BookingUpdate struct {
	CourtID   string  `json:"court_id,omitempty" validate:"omitempty,mongodb"`
	Date      string  `json:"date,omitempty" validate:"omitempty,booking_date"`
	StartTime string  `json:"start_time,omitempty" validate:"omitempty,clock_time"`
	EndTime   string  `json:"end_time,omitempty" validate:"omitempty,clock_time"`
	Notes     *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type BookingFilter struct {
	Status          status.Status
	TenantID        string
	CourtID         string
	DateFrom        string
	DateTo          string
	ReferencePrefix string
}

type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type CalendarEntry struct {
	BookingID        string        `json:"booking_id"`
	BookingReference string        `json:"booking_reference"`
	TenantID         string        `json:"tenant_id"`
	CourtID          string        `json:"court_id"`
	Date             string        `json:"date"`
	StartTime        string        `json:"start_time"`
	EndTime          string        `json:"end_time"`
	Status           status.Status `json:"status"`
	Badge            status.Badge  `json:"badge"`
}

func NewCalendarEntry(b *Booking) CalendarEntry {
	return CalendarEntry{
		BookingID:        b.ID,
		BookingReference: b.BookingReference,
		TenantID:         b.TenantID,
		CourtID:          b.CourtID,
		Date:             b.Date,
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		Status:           b.Status,
		Badge:            b.Status.Badge(),
	}
}
