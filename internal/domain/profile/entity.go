package profile

import "time"

// Profile is the one-to-one employee record behind a user identity.
// Employee numbers are unique across all profiles.
type Profile struct {
	ID             string
	UserID         string
	EmployeeNumber string
	FullName       string
	CompanyEmail   string
	Department     *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
