package redemption

import (
	"github.com/autorabit/mealcoupon-backend-go/internal/pkg/validator"
)

// ScanContext tells the engine which QR payload variant it should accept:
// a kiosk scans employee identity (or signed coupon) codes, an employee app
// scans the vendor station code.
type ScanContext string

const (
	ScanContextKiosk    ScanContext = "kiosk"
	ScanContextEmployee ScanContext = "employee"
)

type RedeemRequest struct {
	ScannedCode string `json:"scanned_code"`

	// Filled by the handler, not the client.
	ScanContext    ScanContext `json:"-"`
	UserID         string      `json:"-"`
	EmployeeNumber string      `json:"-"`
}

func (r *RedeemRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ScannedCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "scanned_code",
			Message: "scanned_code is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RedeemResponse struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	RedemptionDate string `json:"redemption_date"`
	RedeemedAt     string `json:"redeemed_at"`
	CouponValue    int    `json:"coupon_value"`
}

// QRCodeResponse carries an encoded payload for the client to render as a QR
// image. ExpiresAt is set only for signed coupon tokens.
type QRCodeResponse struct {
	Code      string  `json:"code"`
	Type      string  `json:"type"`
	ExpiresAt *string `json:"expires_at,omitempty"`
}

type HistoryFilter struct {
	StartDate *string
	EndDate   *string
	Page      int
	Limit     int
}

type HistoryResponse struct {
	Records []RedeemResponse `json:"records"`
	Total   int64            `json:"total"`
}
