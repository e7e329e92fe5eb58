package middleware

import (
	"context"
	"net/http"
	"strings"

	apperrors "courtly/pkg/errors"
	httputil "courtly/pkg/http"
	"courtly/pkg/logger"
)

const UserTypeHeader = "X-User-Type"

// UserTypeGuard admits callers whose X-User-Type names one of the known user
// types. A missing header is 401, an unknown type is 403.
func UserTypeGuard(known []string, log *logger.Logger) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(known))
	for _, t := range known {
		allowed[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userType := strings.ToLower(strings.TrimSpace(r.Header.Get(UserTypeHeader)))

			if userType == "" {
				httputil.WriteError(w, apperrors.Unauthorized("X-User-Type header is required"))
				return
			}

			if _, ok := allowed[userType]; !ok {
				log.Warn("Unknown user type rejected",
					"request_id", RequestIDFromContext(r.Context()),
					"user_type", userType,
					"path", r.URL.Path,
				)
				httputil.WriteError(w, apperrors.Forbidden("User type is not allowed"))
				return
			}

			ctx := context.WithValue(r.Context(), UserTypeKey, userType)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
