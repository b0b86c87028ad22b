package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/khetisetu/search-backend/internal/infrastructure/observability"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserIDFromContext returns the authenticated user ID, empty for anonymous
// requests
func UserIDFromContext(ctx context.Context) string {
	if userID, ok := ctx.Value(userIDKey).(string); ok {
		return userID
	}
	return ""
}

// OptionalIdentity resolves the caller's identity from a Bearer token when
// one is present. Search is public: a missing or invalid token means an
// anonymous request, never a 401. Identity only gates history recording and
// the recent-searches endpoints.
func OptionalIdentity(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := parseBearerToken(r, jwtSecret)
			if userID != "" {
				r = r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireIdentity guards endpoints that only make sense for an authenticated
// caller
func RequireIdentity(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if UserIDFromContext(r.Context()) == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			if _, err := w.Write([]byte(`{"success":false,"error":"authentication required"}`)); err != nil {
				observability.LoggerFromContext(r.Context()).Debug().Err(err).Msg("failed to write response")
			}
			return
		}
		next(w, r)
	}
}

func parseBearerToken(r *http.Request, jwtSecret string) string {
	if jwtSecret == "" {
		return ""
	}
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	raw := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return ""
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	subject, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return subject
}
