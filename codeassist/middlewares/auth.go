package middlewares

import (
	"codeassist/codeassist/sources/psql/dao"
	"codeassist/codeassist/sources/psql/models"
	httputils "codeassist/codeassist/utils/http"
	"context"
	"net/http"
)

type contextKey string

const UserKey contextKey = "user"

// APIKeyAuth resolves the ?api_key= query parameter to a user and stores the
// record in the request context. Possession of the key is the whole of
// authentication here.
func APIKeyAuth(userDAO *dao.UserDAO) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.URL.Query().Get("api_key")
			if apiKey == "" {
				httputils.WriteError(w, http.StatusUnauthorized, "Invalid API key")
				return
			}
			user, err := userDAO.GetUserByAPIKey(r.Context(), apiKey)
			if err != nil {
				httputils.WriteError(w, http.StatusInternalServerError, "internal error")
				return
			}
			if user == nil {
				httputils.WriteError(w, http.StatusUnauthorized, "Invalid API key")
				return
			}
			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user set by APIKeyAuth.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserKey).(*models.User)
	return user, ok
}
