package mongo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	apperrors "courtly/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestTransactionError(t *testing.T) {
	conflict := apperrors.Conflict("slot taken")
	network := mongo.CommandError{Code: 6, Message: "connection reset", Labels: []string{"NetworkError"}}
	plain := errors.New("write conflict")

	assert.NoError(t, transactionError(nil))
	assert.Same(t, conflict, transactionError(conflict))
	assert.True(t, apperrors.HasCode(transactionError(fmt.Errorf("create: %w", conflict)), apperrors.CodeConflict))

	err := transactionError(network)
	require.True(t, apperrors.HasCode(err, apperrors.CodeUnavailable))
	assert.Equal(t, http.StatusServiceUnavailable, apperrors.AsAppError(err).StatusCode())

	err = transactionError(plain)
	assert.ErrorIs(t, err, plain)
	assert.False(t, apperrors.IsAppError(err))
	assert.Contains(t, err.Error(), "transaction failed")
}

func TestIsDuplicateKey(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	assert.True(t, IsDuplicateKey(dup))
	assert.False(t, IsDuplicateKey(errors.New("other")))
}

func TestWithTimeout(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background())
	defer cancel()
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(DefaultOperationTimeout), deadline, time.Second)

	parent, parentCancel := context.WithTimeout(context.Background(), time.Minute)
	defer parentCancel()
	ctx, cancel = WithTimeout(parent)
	defer cancel()
	got, _ := ctx.Deadline()
	want, _ := parent.Deadline()
	assert.Equal(t, want, got)
}
