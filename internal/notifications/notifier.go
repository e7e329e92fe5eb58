// Package notifications turns booking events into notices for facility
// staff.
package notifications

import (
	"context"

	"courtly/pkg/logger"
	"courtly/pkg/status"
)

type Notification struct {
	EventType string
	BookingID string
	Reference string
	TenantID  string
	CourtID   string
	Status    status.Status
	Line      string
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier writes each notification as a structured log line.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, note Notification) error {
	badge := note.Status.Badge()
	n.log.InfoContext(ctx, note.Line,
		"event_type", note.EventType,
		"booking_id", note.BookingID,
		"reference", note.Reference,
		"tenant_id", note.TenantID,
		"court_id", note.CourtID,
		"status", note.Status.String(),
		"color", badge.Color,
		"icon", badge.Icon,
	)
	return nil
}
