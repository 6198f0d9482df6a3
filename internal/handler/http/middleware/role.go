package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/presensia/attendance-backend-go/internal/domain/user"
	"github.com/presensia/attendance-backend-go/internal/handler/http/response"
)

// RequireSuperAdmin requires the SUPER_ADMIN role
func RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, "Admin access required")
			return
		}

		role, ok := claims["role"].(string)
		if !ok {
			response.Forbidden(w, "Admin access required")
			return
		}

		if role != string(user.RoleSuperAdmin) {
			response.Forbidden(w, "Admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
