package response

import (
	"errors"
	"net/http"

	"github.com/autorabit/mealcoupon-backend-go/internal/domain/auth"
	"github.com/autorabit/mealcoupon-backend-go/internal/domain/profile"
	"github.com/autorabit/mealcoupon-backend-go/internal/domain/redemption"
	"github.com/autorabit/mealcoupon-backend-go/internal/domain/settings"
	"github.com/autorabit/mealcoupon-backend-go/internal/domain/user"
	"github.com/autorabit/mealcoupon-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrOAuthEmailUnverified):
		Forbidden(w, "Google account email is not verified")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "CONFLICT", "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired),
		errors.Is(err, user.ErrHRPrivilegeRequired),
		errors.Is(err, user.ErrAccessDenied):
		Forbidden(w, err.Error())

	// Profile domain errors
	case errors.Is(err, profile.ErrProfileNotFound):
		NotFound(w, "Profile not found")
	case errors.Is(err, profile.ErrEmployeeNumberExists):
		ValidationError(w, map[string]string{"employee_number": "employee number already in use"})
	case errors.Is(err, profile.ErrNotProfileOwner):
		Forbidden(w, err.Error())

	// Redemption outcomes
	case errors.Is(err, redemption.ErrInvalidCode):
		UnprocessableEntity(w, "INVALID_CODE", err.Error())
	case errors.Is(err, redemption.ErrNotAvailable):
		Conflict(w, "NOT_AVAILABLE", err.Error())
	case errors.Is(err, redemption.ErrAlreadyRedeemed):
		Conflict(w, "ALREADY_REDEEMED", err.Error())
	case errors.Is(err, redemption.ErrRedemptionFailed):
		InternalServerError(w, err.Error())
	case errors.Is(err, redemption.ErrRecordNotFound):
		NotFound(w, "Redemption record not found")

	// Settings domain errors
	case errors.Is(err, settings.ErrSettingsNotFound):
		NotFound(w, "Company settings not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
