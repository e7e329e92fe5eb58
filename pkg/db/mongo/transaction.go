package mongo

import (
	"context"
	"fmt"
	"time"

	apperrors "courtly/pkg/errors"

	"go.mongodb.org/mongo-driver/mongo"
)

type TransactionFunc func(ctx mongo.SessionContext) error

type TransactionManager interface {
	ExecuteTransaction(ctx context.Context, fn TransactionFunc) error
}

type mongoTransactionManager struct {
	client *mongo.Client
}

func NewTransactionManager(client *mongo.Client) TransactionManager {
	return &mongoTransactionManager{
		client: client,
	}
}

// ExecuteTransaction runs fn inside a session transaction. fn must use the
// session context it receives for every read and write. AppErrors returned by
// fn pass through unwrapped.
func (m *mongoTransactionManager) ExecuteTransaction(ctx context.Context, fn TransactionFunc) error {
	session, err := m.client.StartSession()
	if err != nil {
		return apperrors.Unavailable("Database").WithCause(err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
		return nil, fn(sessCtx)
	})

	return transactionError(err)
}

// transactionError passes AppErrors through and reports lost connections as
// 503 so callers can retry.
func transactionError(err error) error {
	switch {
	case err == nil:
		return nil
	case apperrors.IsAppError(err):
		return err
	case mongo.IsNetworkError(err):
		return apperrors.Unavailable("Database").WithCause(err)
	}
	return fmt.Errorf("transaction failed: %w", err)
}

const DefaultOperationTimeout = 5 * time.Second

// WithTimeout bounds a single repository call. Session contexts are returned
// as is so the operation stays inside its transaction.
func WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if sessCtx, ok := ctx.(mongo.SessionContext); ok {
		return sessCtx, func() {}
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, DefaultOperationTimeout)
}

// IsDuplicateKey reports a unique index violation.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
