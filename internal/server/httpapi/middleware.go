package httpapi

import (
	"context"
	"net/http"

	"github.com/antonk9218/paybuddy/internal/common"
	"github.com/antonk9218/paybuddy/internal/server/auth"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// requireAuth checks the access_token header, validates the token, and puts
// the authenticated user id into the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accessToken := r.Header.Get("access_token")
		if accessToken == "" {
			s.writeError(r.Context(), w, common.ErrUnauthorized)
			return
		}

		userID, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret)
		if err != nil {
			s.writeError(r.Context(), w, common.ErrUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userIDFromContext returns the authenticated user id placed by requireAuth.
func userIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
