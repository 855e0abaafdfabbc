package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	LinkGoogleAccount(ctx context.Context, googleID string, email string) (User, error)
}

// RoleAssignmentRepository persists one role row per user with upsert
// semantics.
type RoleAssignmentRepository interface {
	// Get returns nil when no assignment exists for the user.
	Get(ctx context.Context, userID string) (*RoleAssignment, error)

	// Upsert inserts or replaces the assignment keyed on user_id.
	Upsert(ctx context.Context, userID string, role Role) (RoleAssignment, error)
}
