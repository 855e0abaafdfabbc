package user

import "context"

// RoleResolver determines a user's authorization tier.
type RoleResolver interface {
	// Resolve returns the persisted assignment when one exists; otherwise it
	// runs the email-domain heuristic, persisting the result for internal
	// addresses. Callers must treat a failed resolution as least-privileged.
	Resolve(ctx context.Context, userID string) (Role, error)
}
