package validator

import (
	"courtly/pkg/logger"
	"courtly/pkg/model"
	"courtly/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v, err := validation.New()
	if err != nil {
		log.Fatal("Failed to build booking validator", "error", err)
	}

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

// Validate checks a full booking, including that it ends after it starts.
func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := validation.Check(v.validate, booking); err != nil {
		return err
	}
	return validateRange(booking.StartTime, booking.EndTime)
}

func (v *BookingValidator) ValidateUpdate(update *model.BookingUpdate) error {
	return validation.Check(v.validate, update)
}

// ValidateWithin checks that the booking fits the court's opening window.
func (v *BookingValidator) ValidateWithin(booking *model.Booking, hours model.OperatingHours) error {
	if !hours.Contains(booking.StartTime, booking.EndTime) {
		return validation.Field("start_time",
			"booking must fall within operating hours "+hours.OpensAt+"-"+hours.ClosesAt)
	}
	return nil
}

func validateRange(start, end string) error {
	if end <= start {
		return validation.Field("end_time", "end_time must be after start_time")
	}
	return nil
}
