package model

import (
	"testing"

	"courtly/pkg/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"07:30", 450, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"7:30", 0, true},
		{"07:60", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	_, err := ParseDate("2026-02-30")
	assert.Error(t, err)

	d, err := ParseDate("2026-03-14")
	require.NoError(t, err)
	assert.Equal(t, 14, d.Day())
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps("09:00", "10:00", "09:30", "10:30"))
	assert.True(t, Overlaps("09:00", "11:00", "09:30", "10:00"))
	assert.False(t, Overlaps("09:00", "10:00", "10:00", "11:00"))
	assert.False(t, Overlaps("10:00", "11:00", "08:00", "10:00"))
}

func TestOperatingHoursContains(t *testing.T) {
	h := OperatingHours{OpensAt: "07:00", ClosesAt: "22:00"}
	assert.True(t, h.Contains("07:00", "08:00"))
	assert.True(t, h.Contains("21:00", "22:00"))
	assert.False(t, h.Contains("06:30", "07:30"))
	assert.False(t, h.Contains("21:30", "22:30"))
}

func TestMoney_BSONStoredAsDecimal128(t *testing.T) {
	type doc struct {
		Rate Money `bson:"rate"`
	}

	data, err := bson.Marshal(doc{Rate: MustMoney("12.50")})
	require.NoError(t, err)

	var raw bson.M
	require.NoError(t, bson.Unmarshal(data, &raw))
	_, ok := raw["rate"].(primitive.Decimal128)
	assert.True(t, ok, "expected Decimal128, got %T", raw["rate"])

	var decoded doc
	require.NoError(t, bson.Unmarshal(data, &decoded))
	assert.True(t, decoded.Rate.Equal(MustMoney("12.5").Decimal))
}

func TestMoney_BSONAcceptsLegacyNumbers(t *testing.T) {
	var decoded struct {
		Rate Money `bson:"rate"`
	}

	data, err := bson.Marshal(bson.M{"rate": 40})
	require.NoError(t, err)
	require.NoError(t, bson.Unmarshal(data, &decoded))
	assert.Equal(t, "40", decoded.Rate.String())
}

func TestNewMoney_Invalid(t *testing.T) {
	_, err := NewMoney("ten")
	assert.Error(t, err)
}

func TestBooking_AttachBadge(t *testing.T) {
	b := &Booking{Status: status.Confirmed}
	b.AttachBadge()
	require.NotNil(t, b.StatusBadge)
	assert.Equal(t, "Confirmed", b.StatusBadge.Label)
	assert.Equal(t, "success", b.StatusBadge.Color)
	assert.Equal(t, "check-circle", b.StatusBadge.Icon)

	empty := &Booking{}
	empty.AttachBadge()
	assert.Nil(t, empty.StatusBadge)
}

func TestNewCalendarEntry(t *testing.T) {
	b := &Booking{ID: "1", BookingReference: "BK-AAAA", Status: status.Pending, Date: "2026-01-01"}
	entry := NewCalendarEntry(b)
	assert.Equal(t, "Pending", entry.Badge.Label)
	assert.Equal(t, "yellow", entry.Badge.Color)
	assert.Equal(t, "BK-AAAA", entry.BookingReference)
}
