package validation

import (
	"errors"
	"testing"

	"courtly/pkg/model"
	"courtly/pkg/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) func(any) error {
	t.Helper()
	v, err := New()
	require.NoError(t, err)
	return func(s any) error { return Check(v, s) }
}

func validBooking() *model.Booking {
	return &model.Booking{
		BookingReference: "BK-0A1B2C3D4E",
		TenantID:         "507f1f77bcf86cd799439011",
		CourtID:          "507f1f77bcf86cd799439012",
		Date:             "2026-05-01",
		StartTime:        "09:00",
		EndTime:          "10:00",
		Status:           status.Pending,
	}
}

func TestCheck_Booking(t *testing.T) {
	check := newValidator(t)

	tests := []struct {
		name      string
		mutate    func(b *model.Booking)
		wantField string
	}{
		{"valid", func(b *model.Booking) {}, ""},
		{"zero status", func(b *model.Booking) { b.Status = status.Status{} }, "status"},
		{"bad reference", func(b *model.Booking) { b.BookingReference = "bk-123" }, "booking_reference"},
		{"bad date", func(b *model.Booking) { b.Date = "01/05/2026" }, "date"},
		{"bad start", func(b *model.Booking) { b.StartTime = "9am" }, "start_time"},
		{"missing tenant", func(b *model.Booking) { b.TenantID = "" }, "tenant_id"},
		{"bad court id", func(b *model.Booking) { b.CourtID = "court-1" }, "court_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(b)

			err := check(b)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs), "expected ValidationErrors, got %v", err)
			assert.Equal(t, tt.wantField, verrs[0].Field)
		})
	}
}

func TestCheck_CourtMoney(t *testing.T) {
	check := newValidator(t)

	court := &model.Court{
		Name:           "Court A",
		HourlyRate:     model.MustMoney("-1"),
		LightSurcharge: model.MustMoney("5"),
		OperatingHours: model.OperatingHours{OpensAt: "07:00", ClosesAt: "22:00"},
	}

	err := check(court)
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "hourly_rate", verrs[0].Field)
	assert.Contains(t, verrs[0].Message, "greater than or equal to 0")

	court.HourlyRate = model.MustMoney("20.00")
	assert.NoError(t, check(court))
}

func TestValidationErrors_Error(t *testing.T) {
	assert.Equal(t, "", ValidationErrors{}.Error())
	assert.Equal(t, "validation failed: 1 error(s): [date: bad]", Field("date", "bad").Error())
}
