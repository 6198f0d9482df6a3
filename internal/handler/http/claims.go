package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/presensia/attendance-backend-go/internal/domain/auth"
)

// userIDFromRequest reads the authenticated user's ID from the verified
// JWT claims. The auth middleware guarantees a valid access token on
// every protected route, so a failure here means the route is miswired.
func userIDFromRequest(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", auth.ErrInvalidToken
	}
	return userID, nil
}
