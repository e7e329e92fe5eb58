package model

import "time"

type OperatingHours struct {
	OpensAt  string `json:"opens_at" bson:"opens_at" validate:"required,clock_time"`
	ClosesAt string `json:"closes_at" bson:"closes_at" validate:"required,clock_time"`
}

// Contains reports whether [start, end) lies inside the opening window.
// All values are HH:MM and compare lexically.
func (h OperatingHours) Contains(start, end string) bool {
	return start >= h.OpensAt && end <= h.ClosesAt
}

type Court struct {
	ID             string         `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name           string         `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Description    string         `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=1000"`
	HourlyRate     Money          `json:"hourly_rate" bson:"hourly_rate" validate:"gte=0"`
	LightSurcharge Money          `json:"light_surcharge" bson:"light_surcharge" validate:"gte=0"`
	IsActive       bool           `json:"is_active" bson:"is_active"`
	OperatingHours OperatingHours `json:"operating_hours" bson:"operating_hours"`
	CreatedAt      time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" bson:"updated_at"`
}

type CourtUpdate struct {
	Name           string          `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description    *string         `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=1000"`
	HourlyRate     *Money          `json:"hourly_rate,omitempty" bson:"hourly_rate,omitempty" validate:"omitempty,gte=0"`
	LightSurcharge *Money          `json:"light_surcharge,omitempty" bson:"light_surcharge,omitempty" validate:"omitempty,gte=0"`
	IsActive       *bool           `json:"is_active,omitempty" bson:"is_active,omitempty"`
	OperatingHours *OperatingHours `json:"operating_hours,omitempty" bson:"operating_hours,omitempty"`
}
