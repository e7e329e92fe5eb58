package middleware

import "context"

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	UserTypeKey  contextKey = "user_type"
)

func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

func UserTypeFromContext(ctx context.Context) string {
	if t, ok := ctx.Value(UserTypeKey).(string); ok {
		return t
	}
	return ""
}
