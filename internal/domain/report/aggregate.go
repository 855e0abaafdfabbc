package report

import "math"

// Aggregate derives the report summary from an already-fetched window of
// rows. Subtotal sums the per-row coupon values, so rows snapshotted at an
// older rate keep their historical amount.
func Aggregate(rows []ReportRow, currentCouponValue int) (totalRedemptions, uniqueEmployees int, subtotal int64) {
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		subtotal += int64(row.CouponValue)
		seen[row.EmployeeNumber] = struct{}{}
	}
	return len(rows), len(seen), subtotal
}

// GSTTax computes the tax line with round-half-up on the currency amount.
func GSTTax(subtotal int64, gstPercentage float64) int64 {
	return int64(math.Floor(float64(subtotal)*gstPercentage/100 + 0.5))
}
