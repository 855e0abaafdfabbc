package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/autorabit/mealcoupon-backend-go/internal/domain/auth"
	"github.com/autorabit/mealcoupon-backend-go/internal/domain/profile"
	"github.com/autorabit/mealcoupon-backend-go/internal/handler/http/response"
)

type ProfileHandler interface {
	GetMy(w http.ResponseWriter, r *http.Request)
	SaveMy(w http.ResponseWriter, r *http.Request)
}

type ProfileHandlerImpl struct {
	profileService profile.ProfileService
}

func NewProfileHandler(profileService profile.ProfileService) ProfileHandler {
	return &ProfileHandlerImpl{profileService: profileService}
}

// GetMy implements ProfileHandler. Provisions an empty profile on first
// access.
func (h *ProfileHandlerImpl) GetMy(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	resp, err := h.profileService.GetOrProvision(r.Context(), identity.UserID, identity.Email)
	if err != nil {
		slog.Error("GetMy profile service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// SaveMy implements ProfileHandler.
func (h *ProfileHandlerImpl) SaveMy(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var saveReq profile.SaveProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&saveReq); err != nil {
		slog.Error("SaveMy decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.profileService.Save(r.Context(), identity.UserID, saveReq)
	if err != nil {
		slog.Error("SaveMy profile service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile saved successfully", resp)
}
