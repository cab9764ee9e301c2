package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/akarpov/online-store/internal/user/domain"
	"github.com/akarpov/online-store/pkg/auth"
	"github.com/akarpov/online-store/pkg/logger"
)

type contextKey string

const userKey contextKey = "user"

// UserFromContext returns the authenticated user stored by the middleware.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userKey).(*domain.User)
	return u, ok
}

// AuthMiddleware validates the Bearer token and loads the account row, so
// disabled accounts are rejected even while their token is still valid.
func AuthMiddleware(users domain.UserRepository) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Authorization header required"})
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Invalid authorization header format"})
				return
			}

			claims, err := auth.ValidateToken(parts[1])
			if err != nil {
				logger.Warn(r.Context()).Err(err).Msg("Invalid token")
				respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Invalid token"})
				return
			}

			user, err := users.FindByID(claims.UserID)
			if err != nil {
				logger.Warn(r.Context()).Err(err).Uint("user_id", claims.UserID).Msg("Token for unknown user")
				respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "User verification failed"})
				return
			}

			if !user.IsActive {
				respondJSON(w, http.StatusForbidden, Response{Success: false, Error: "Account is disabled"})
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// SellerMiddleware requires an authenticated user with the seller capability.
func SellerMiddleware(users domain.UserRepository) func(http.HandlerFunc) http.HandlerFunc {
	authn := AuthMiddleware(users)
	return func(next http.HandlerFunc) http.HandlerFunc {
		return authn(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || !user.IsSeller() {
				respondJSON(w, http.StatusForbidden, Response{Success: false, Error: "Seller access required"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminMiddleware requires an authenticated admin.
func AdminMiddleware(users domain.UserRepository) func(http.HandlerFunc) http.HandlerFunc {
	authn := AuthMiddleware(users)
	return func(next http.HandlerFunc) http.HandlerFunc {
		return authn(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || !user.IsAdmin() {
				respondJSON(w, http.StatusForbidden, Response{Success: false, Error: "Admin access required"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
