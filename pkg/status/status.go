// Package status defines the closed set of states a booking can occupy, the
// display metadata attached to each state and the transitions allowed between
// them.
//
// A Status can only be obtained from the exported values or from Parse, so
// every non-zero Status held by the rest of the system is one of Pending,
// Confirmed or Cancelled. The zero Status is reported as invalid everywhere.
package status

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

var (
	ErrInvalidStatus = errors.New("invalid booking status")

	ErrTransitionNotAllowed = errors.New("booking status transition not allowed")
)

type Status struct {
	slug string
}

var (
	Pending   = Status{slug: "pending"}
	Confirmed = Status{slug: "confirmed"}
	Cancelled = Status{slug: "cancelled"}
)

var all = []Status{Pending, Confirmed, Cancelled}

// All returns every status in lifecycle order.
func All() []Status {
	out := make([]Status, len(all))
	copy(out, all)
	return out
}

// Initial is the status every new booking starts in.
func Initial() Status {
	return Pending
}

// Parse resolves the persisted/wire form of a status. Matching is exact and
// case-sensitive.
func Parse(s string) (Status, error) {
	for _, st := range all {
		if st.slug == s {
			return st, nil
		}
	}
	return Status{}, fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Values returns the wire form of every status.
func Values() []string {
	out := make([]string, 0, len(all))
	for _, st := range all {
		out = append(out, st.slug)
	}
	return out
}

func (s Status) String() string {
	return s.slug
}

func (s Status) IsZero() bool {
	return s.slug == ""
}

func (s Status) Valid() bool {
	_, ok := presentations[s]
	return ok
}

// Active reports whether the booking still holds its court slot.
func (s Status) Active() bool {
	return s == Pending || s == Confirmed
}

func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, s.slug)
	}
	return []byte(s.slug), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s Status) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if !s.Valid() {
		return 0, nil, fmt.Errorf("%w: %q", ErrInvalidStatus, s.slug)
	}
	return bson.MarshalValue(s.slug)
}

func (s *Status) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw, ok := bson.RawValue{Type: t, Value: data}.StringValueOK()
	if !ok {
		return fmt.Errorf("%w: stored as %s", ErrInvalidStatus, t)
	}
	return s.UnmarshalText([]byte(raw))
}
