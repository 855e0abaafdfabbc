package profile

import "context"

type ProfileRepository interface {
	Create(ctx context.Context, p Profile) (Profile, error)

	// GetByUserID returns nil when the user has no profile yet.
	GetByUserID(ctx context.Context, userID string) (*Profile, error)

	GetByEmployeeNumber(ctx context.Context, employeeNumber string) (*Profile, error)

	Update(ctx context.Context, p Profile) (Profile, error)

	// EmployeeNumberTakenByOther reports whether another user already owns the
	// employee number. Used as the pre-insert uniqueness check; a unique index
	// on employee_number backs it up.
	EmployeeNumberTakenByOther(ctx context.Context, employeeNumber string, userID string) (bool, error)
}

type ProfileService interface {
	// GetOrProvision returns the caller's profile, creating an empty shell on
	// first authenticated access when none exists.
	GetOrProvision(ctx context.Context, userID string, email string) (ProfileResponse, error)

	Save(ctx context.Context, userID string, req SaveProfileRequest) (ProfileResponse, error)
}
