package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy_DefaultTransitions(t *testing.T) {
	p := Policy{}

	tests := []struct {
		from, to Status
		allowed  bool
	}{
		{Pending, Confirmed, true},
		{Pending, Cancelled, true},
		{Pending, Pending, false},
		{Confirmed, Cancelled, false},
		{Confirmed, Pending, false},
		{Confirmed, Confirmed, false},
		{Cancelled, Pending, false},
		{Cancelled, Confirmed, false},
		{Cancelled, Cancelled, false},
		{Status{}, Confirmed, false},
		{Pending, Status{}, false},
	}

	for _, tt := range tests {
		t.Run(describe(tt.from)+"->"+describe(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, p.CanTransition(tt.from, tt.to))

			got, err := p.Transition(tt.from, tt.to)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, got)
			} else {
				assert.ErrorIs(t, err, ErrTransitionNotAllowed)
				assert.True(t, got.IsZero())
			}
		})
	}
}

func TestPolicy_AllowCancelConfirmed(t *testing.T) {
	p := Policy{AllowCancelConfirmed: true}

	assert.True(t, p.CanTransition(Confirmed, Cancelled))
	assert.False(t, p.CanTransition(Confirmed, Pending))
	assert.False(t, p.CanTransition(Cancelled, Confirmed))
}

func TestPolicy_Targets(t *testing.T) {
	strict := Policy{}
	assert.Equal(t, []Status{Confirmed, Cancelled}, strict.Targets(Pending))
	assert.Empty(t, strict.Targets(Confirmed))
	assert.Empty(t, strict.Targets(Cancelled))
	assert.True(t, strict.IsTerminal(Confirmed))
	assert.True(t, strict.IsTerminal(Cancelled))
	assert.False(t, strict.IsTerminal(Pending))

	lenient := Policy{AllowCancelConfirmed: true}
	assert.Equal(t, []Status{Cancelled}, lenient.Targets(Confirmed))
	assert.False(t, lenient.IsTerminal(Confirmed))
	assert.True(t, lenient.IsTerminal(Cancelled))
}

func TestPolicy_ErrorMessage(t *testing.T) {
	_, err := Policy{}.Transition(Cancelled, Confirmed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled -> confirmed")
}
