package redemption

import (
	"context"
	"time"
)

type RedemptionRepository interface {
	// Insert writes the record relying on the unique index over
	// (employee_number, redemption_date). It returns ErrAlreadyRedeemed when
	// the index rejects the row; there is no pre-check, the constraint is the
	// sole arbiter between racing scans.
	Insert(ctx context.Context, rec Record) (Record, error)

	GetByEmployeeAndDate(ctx context.Context, employeeNumber string, date time.Time) (*Record, error)

	// ListRange returns records whose redemption_date falls in the inclusive
	// [start, end] window, joined with profile fields, ordered by date.
	ListRange(ctx context.Context, start, end time.Time) ([]Record, error)

	ListByUser(ctx context.Context, userID string, filter HistoryFilter) ([]Record, int64, error)
}

type RedemptionService interface {
	// Redeem runs the gate-then-commit sequence: decode/verify the scanned
	// code, check the weekday window, then attempt the conditional insert.
	Redeem(ctx context.Context, req RedeemRequest) (RedeemResponse, error)

	// History lists the caller's own redemptions.
	History(ctx context.Context, userID string, filter HistoryFilter) (HistoryResponse, error)

	// EmployeeCode returns the caller's identity payload for kiosk scanning.
	EmployeeCode(ctx context.Context, userID string, employeeNumber string) (QRCodeResponse, error)

	// IssueCoupon mints a short-lived signed coupon token for today's meal.
	// Weekday gating applies at issue time as well as at redemption.
	IssueCoupon(ctx context.Context, userID string, employeeNumber string) (QRCodeResponse, error)
}
