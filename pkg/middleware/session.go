package middleware

import (
	"context"
	"net/http"
	"strings"

	"amana-travel/internal/session"
	"amana-travel/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionResolver resolves a browser session id.
type SessionResolver interface {
	State(ctx context.Context, id uuid.UUID) (session.State, error)
}

// bearer extracts the session id from the Authorization header. ok is false
// when a header is present but malformed.
func bearer(r *http.Request) (id uuid.UUID, present, ok bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return uuid.Nil, false, true
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return uuid.Nil, true, false
	}

	id, err := uuid.Parse(strings.TrimSpace(parts[1]))
	if err != nil {
		return uuid.Nil, true, false
	}
	return id, true, true
}

// Session puts the bearer session id on the request context. Requests
// without one continue anonymously.
func Session(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, present, ok := bearer(r)
			if !ok {
				logger.Warn("Malformed session token",
					zap.String("path", r.URL.Path),
					zap.String("request_id", utils.GetRequestIDFromContext(r.Context())))
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <session-id>")
				return
			}
			if !present {
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetSessionContext(r.Context(), id.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects requests whose session is not signed in. The
// session is revalidated before the handler runs.
func RequireSession(sessions SessionResolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := utils.GetSessionIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			id, err := uuid.Parse(raw)
			if err != nil {
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			st, err := sessions.State(r.Context(), id)
			if err != nil {
				logger.Error("Failed to resolve session",
					zap.Error(err),
					zap.String("session_id", raw))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if !st.IsAuthenticated() {
				logger.Warn("Invalid or expired session", zap.String("session_id", raw))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
