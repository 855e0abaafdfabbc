package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

// tokenIdentity is the caller identity carried by the verified access token.
type tokenIdentity struct {
	UserID         string
	Email          string
	EmployeeNumber string
	Role           string
}

func identityFromRequest(r *http.Request) (tokenIdentity, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return tokenIdentity{}, false
	}

	var id tokenIdentity
	id.UserID, _ = claims["user_id"].(string)
	id.Email, _ = claims["email"].(string)
	id.EmployeeNumber, _ = claims["employee_number"].(string)
	id.Role, _ = claims["role"].(string)

	return id, id.UserID != ""
}
