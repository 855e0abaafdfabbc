package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/autorabit/mealcoupon-backend-go/internal/domain/settings"
	"github.com/autorabit/mealcoupon-backend-go/internal/handler/http/response"
)

const maxLogoUploadSize = 5 << 20 // 5 MB

type SettingsHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UploadLogo(w http.ResponseWriter, r *http.Request)
}

type SettingsHandlerImpl struct {
	settingsService settings.SettingsService
}

func NewSettingsHandler(settingsService settings.SettingsService) SettingsHandler {
	return &SettingsHandlerImpl{settingsService: settingsService}
}

// Get implements SettingsHandler. Readable by any authenticated user; the
// employee app needs branding and coupon value.
func (h *SettingsHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.settingsService.Get(r.Context())
	if err != nil {
		slog.Error("Get settings service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Update implements SettingsHandler.
func (h *SettingsHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq settings.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update settings decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.settingsService.Update(r.Context(), updateReq)
	if err != nil {
		slog.Error("Update settings service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Settings updated successfully", resp)
}

// UploadLogo implements SettingsHandler.
func (h *SettingsHandlerImpl) UploadLogo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxLogoUploadSize); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		response.BadRequest(w, "Missing logo file", nil)
		return
	}
	defer file.Close()

	url, err := h.settingsService.UploadLogo(r.Context(), settings.UploadLogoRequest{
		File:       file,
		FileHeader: header,
	})
	if err != nil {
		slog.Error("UploadLogo service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logo uploaded successfully", map[string]string{"logo_url": url})
}
