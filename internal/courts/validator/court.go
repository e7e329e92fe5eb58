package validator

import (
	"courtly/pkg/logger"
	"courtly/pkg/model"
	"courtly/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type CourtValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewCourtValidator(log *logger.Logger) *CourtValidator {
	v, err := validation.New()
	if err != nil {
		log.Fatal("Failed to build court validator", "error", err)
	}

	return &CourtValidator{
		validate: v,
		logger:   log,
	}
}

func (v *CourtValidator) Validate(court *model.Court) error {
	if err := validation.Check(v.validate, court); err != nil {
		return err
	}
	return validateHours(court.OperatingHours)
}

func (v *CourtValidator) ValidateUpdate(update *model.CourtUpdate) error {
	if err := validation.Check(v.validate, update); err != nil {
		return err
	}
	if update.OperatingHours != nil {
		return validateHours(*update.OperatingHours)
	}
	return nil
}

// validateHours expects HH:MM values already checked by the struct tags.
func validateHours(h model.OperatingHours) error {
	if h.ClosesAt <= h.OpensAt {
		return validation.Field("operating_hours.closes_at", "closes_at must be after opens_at")
	}
	return nil
}
