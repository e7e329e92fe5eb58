package model

import "time"

type Tenant struct {
	ID             string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	TenantID       string    `json:"tenant_id" bson:"tenant_id" validate:"required,min=1,max=50"`
	Name           string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email          string    `json:"email" bson:"email" validate:"required,email"`
	Phone          string    `json:"phone" bson:"phone" validate:"required,e164"`
	Tower          string    `json:"tower,omitempty" bson:"tower,omitempty" validate:"omitempty,max=50"`
	Unit           string    `json:"unit,omitempty" bson:"unit,omitempty" validate:"omitempty,max=50"`
	BookingLimit   int       `json:"booking_limit" bson:"booking_limit" validate:"gte=0"`
	IsActive       bool      `json:"is_active" bson:"is_active"`
	ProfilePicture string    `json:"profile_picture,omitempty" bson:"profile_picture,omitempty" validate:"omitempty,url"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

// TenantUpdate is a partial update; nil pointers leave the field untouched.
type TenantUpdate struct {
	Name           string  `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email          string  `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Phone          string  `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,e164"`
	Tower          string  `json:"tower,omitempty" bson:"tower,omitempty" validate:"omitempty,max=50"`
	Unit           string  `json:"unit,omitempty" bson:"unit,omitempty" validate:"omitempty,max=50"`
	BookingLimit   *int    `json:"booking_limit,omitempty" bson:"booking_limit,omitempty" validate:"omitempty,gte=0"`
	IsActive       *bool   `json:"is_active,omitempty" bson:"is_active,omitempty"`
	ProfilePicture *string `json:"profile_picture,omitempty" bson:"profile_picture,omitempty" validate:"omitempty,url"`
}

type TenantFilter struct {
	Active *bool
	Tower  string
	Unit   string
}

// TenantCreate is the create payload. A missing booking_limit falls back to
// the configured default.
type TenantCreate struct {
	TenantID       string `json:"tenant_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Tower          string `json:"tower,omitempty"`
	Unit           string `json:"unit,omitempty"`
	BookingLimit   *int   `json:"booking_limit,omitempty"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

func (c *TenantCreate) Tenant(defaultBookingLimit int) *Tenant {
	t := &Tenant{
		TenantID:       c.TenantID,
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		Tower:          c.Tower,
		Unit:           c.Unit,
		BookingLimit:   defaultBookingLimit,
		IsActive:       true,
		ProfilePicture: c.ProfilePicture,
	}
	if c.BookingLimit != nil {
		t.BookingLimit = *c.BookingLimit
	}
	return t
}
