package validator

import (
	"courtly/pkg/logger"
	"courtly/pkg/model"
	"courtly/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type TenantValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewTenantValidator(log *logger.Logger) *TenantValidator {
	v, err := validation.New()
	if err != nil {
		log.Fatal("Failed to build tenant validator", "error", err)
	}

	return &TenantValidator{
		validate: v,
		logger:   log,
	}
}

func (v *TenantValidator) Validate(tenant *model.Tenant) error {
	return validation.Check(v.validate, tenant)
}

func (v *TenantValidator) ValidateUpdate(update *model.TenantUpdate) error {
	return validation.Check(v.validate, update)
}
