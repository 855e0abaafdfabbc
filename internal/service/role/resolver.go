package role

import (
	"context"
	"fmt"
	"strings"

	"github.com/autorabit/mealcoupon-backend-go/internal/domain/profile"
	"github.com/autorabit/mealcoupon-backend-go/internal/domain/user"
	"github.com/autorabit/mealcoupon-backend-go/internal/pkg/validator"
)

type ResolverImpl struct {
	userRepo       user.UserRepository
	profileRepo    profile.ProfileRepository
	assignmentRepo user.RoleAssignmentRepository
	internalDomain string
}

func NewResolver(
	userRepo user.UserRepository,
	profileRepo profile.ProfileRepository,
	assignmentRepo user.RoleAssignmentRepository,
	internalDomain string,
) user.RoleResolver {
	return &ResolverImpl{
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		assignmentRepo: assignmentRepo,
		internalDomain: internalDomain,
	}
}

// hrLocalPatterns mark an internal mailbox as belonging to HR.
var hrLocalPatterns = []string{"hr@", "hr.", "human.resources"}

// Resolve implements user.RoleResolver.
func (r *ResolverImpl) Resolve(ctx context.Context, userID string) (user.Role, error) {
	// A persisted assignment is authoritative and short-circuits the
	// heuristic, no matter what the email would compute today.
	assignment, err := r.assignmentRepo.Get(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to look up role assignment: %w", err)
	}
	if assignment != nil {
		return assignment.Role, nil
	}

	email, err := r.resolveEmail(ctx, userID)
	if err != nil {
		return "", err
	}

	if !validator.HasDomain(email, r.internalDomain) {
		// External users stay unpersisted; a later internal assignment can
		// still promote them explicitly.
		return user.RoleEmployee, nil
	}

	computed := user.RoleAutorabitAdmin
	if isHRMailbox(email) {
		computed = user.RoleHRAdmin
	}

	persisted, err := r.assignmentRepo.Upsert(ctx, userID, computed)
	if err != nil {
		return "", fmt.Errorf("failed to persist role assignment: %w", err)
	}

	return persisted.Role, nil
}

// resolveEmail prefers the profile's company email over the auth-layer
// address.
func (r *ResolverImpl) resolveEmail(ctx context.Context, userID string) (string, error) {
	p, err := r.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load profile: %w", err)
	}
	if p != nil && strings.TrimSpace(p.CompanyEmail) != "" {
		return p.CompanyEmail, nil
	}

	u, err := r.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load user: %w", err)
	}
	return u.Email, nil
}

func isHRMailbox(email string) bool {
	lower := strings.ToLower(email)
	for _, pattern := range hrLocalPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}
