package settings

import "time"

// CompanySettings is the canonical configuration row. The table may hold
// more than one row historically; readers always take the first by
// created_at (the LIMIT 1 convention).
type CompanySettings struct {
	ID             string
	CompanyName    string
	GSTNumber      *string
	GSTPercentage  float64
	PrimaryColor   *string
	SecondaryColor *string
	LogoURL        *string
	CouponValue    int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DefaultCouponValue applies when no settings row exists or the stored value
// is zero.
const DefaultCouponValue = 160
