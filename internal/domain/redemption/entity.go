package redemption

import "time"

// Record is one meal claim. Immutable once written; at most one per
// (employee_number, redemption_date), enforced by a unique index that is the
// sole arbiter under concurrent scans.
type Record struct {
	ID             string
	EmployeeNumber string
	UserID         string
	RedemptionDate time.Time // calendar date, server-local
	RedeemedAt     time.Time
	CouponValue    int // per-meal value snapshotted at redemption time
	CreatedAt      time.Time

	// Join fields
	EmployeeName *string
	Department   *string
}
