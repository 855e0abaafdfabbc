package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/autorabit/mealcoupon-backend-go/internal/domain/auth"
	"github.com/autorabit/mealcoupon-backend-go/internal/domain/redemption"
	"github.com/autorabit/mealcoupon-backend-go/internal/handler/http/response"
)

type RedemptionHandler interface {
	RedeemAtKiosk(w http.ResponseWriter, r *http.Request)
	RedeemStationScan(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	MyCode(w http.ResponseWriter, r *http.Request)
	MyCoupon(w http.ResponseWriter, r *http.Request)
}

type RedemptionHandlerImpl struct {
	redemptionService redemption.RedemptionService
}

func NewRedemptionHandler(redemptionService redemption.RedemptionService) RedemptionHandler {
	return &RedemptionHandlerImpl{redemptionService: redemptionService}
}

func (h *RedemptionHandlerImpl) redeem(w http.ResponseWriter, r *http.Request, scanContext redemption.ScanContext) {
	identity, ok := identityFromRequest(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var redeemReq redemption.RedeemRequest
	if err := json.NewDecoder(r.Body).Decode(&redeemReq); err != nil {
		slog.Error("Redeem decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	redeemReq.ScanContext = scanContext
	redeemReq.UserID = identity.UserID
	redeemReq.EmployeeNumber = identity.EmployeeNumber

	resp, err := h.redemptionService.Redeem(r.Context(), redeemReq)
	if err != nil {
		slog.Error("Redeem service error", "error", err, "scan_context", string(scanContext))
		response.HandleError(w, err)
		return
	}

	slog.Info("Coupon redeemed", "employee_number", resp.EmployeeNumber, "date", resp.RedemptionDate)
	response.Created(w, "Coupon redeemed successfully", resp)
}

// RedeemAtKiosk implements RedemptionHandler. The kiosk operator scans an
// employee identity or signed coupon code.
func (h *RedemptionHandlerImpl) RedeemAtKiosk(w http.ResponseWriter, r *http.Request) {
	h.redeem(w, r, redemption.ScanContextKiosk)
}

// RedeemStationScan implements RedemptionHandler. The employee app scans the
// vendor station code; the claim lands on the caller's own employee number.
func (h *RedemptionHandlerImpl) RedeemStationScan(w http.ResponseWriter, r *http.Request) {
	h.redeem(w, r, redemption.ScanContextEmployee)
}

// History implements RedemptionHandler.
func (h *RedemptionHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var filter redemption.HistoryFilter
	q := r.URL.Query()
	if v := q.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := q.Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	resp, err := h.redemptionService.History(r.Context(), identity.UserID, filter)
	if err != nil {
		slog.Error("History service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, resp.Records, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: resp.Total,
	})
}

// MyCode implements RedemptionHandler.
func (h *RedemptionHandlerImpl) MyCode(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	resp, err := h.redemptionService.EmployeeCode(r.Context(), identity.UserID, identity.EmployeeNumber)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// MyCoupon implements RedemptionHandler.
func (h *RedemptionHandlerImpl) MyCoupon(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	resp, err := h.redemptionService.IssueCoupon(r.Context(), identity.UserID, identity.EmployeeNumber)
	if err != nil {
		slog.Error("IssueCoupon service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
