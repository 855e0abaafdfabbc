package middleware

import (
	"net/http"

	"github.com/autorabit/mealcoupon-backend-go/internal/domain/user"
	"github.com/autorabit/mealcoupon-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// Role checks run server-side on every privileged route; the client's own
// capability flags are presentation only.

func roleFromClaims(r *http.Request) (user.Role, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", false
	}
	role := user.Role(roleStr)
	return role, role.IsValid()
}

// RequireFullAdmin gates settings mutation and role management.
func RequireFullAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromClaims(r)
		if !ok || !role.IsAutorabitAdmin() {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdminAccess gates the report views; view-only admins pass.
func RequireAdminAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromClaims(r)
		if !ok || !role.HasAdminAccess() {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireHRAccess gates employee management views.
func RequireHRAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromClaims(r)
		if !ok || !role.HasHRAccess() {
			response.HandleError(w, user.ErrHRPrivilegeRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}
