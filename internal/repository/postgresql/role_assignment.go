package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/autorabit/mealcoupon-backend-go/internal/domain/user"
	"github.com/autorabit/mealcoupon-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type roleAssignmentRepositoryImpl struct {
	db *database.DB
}

func NewRoleAssignmentRepository(db *database.DB) user.RoleAssignmentRepository {
	return &roleAssignmentRepositoryImpl{db: db}
}

// Get implements user.RoleAssignmentRepository.
func (r *roleAssignmentRepositoryImpl) Get(ctx context.Context, userID string) (*user.RoleAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT user_id, role, created_at, updated_at
		FROM admin_role_assignments
		WHERE user_id = $1
	`

	var assignment user.RoleAssignment
	err := q.QueryRow(ctx, query, userID).Scan(
		&assignment.UserID,
		&assignment.Role,
		&assignment.CreatedAt,
		&assignment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role assignment: %w", err)
	}

	return &assignment, nil
}

// Upsert implements user.RoleAssignmentRepository.
func (r *roleAssignmentRepositoryImpl) Upsert(ctx context.Context, userID string, role user.Role) (user.RoleAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO admin_role_assignments (user_id, role)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role, updated_at = NOW()
		RETURNING user_id, role, created_at, updated_at
	`

	var assignment user.RoleAssignment
	err := q.QueryRow(ctx, query, userID, string(role)).Scan(
		&assignment.UserID,
		&assignment.Role,
		&assignment.CreatedAt,
		&assignment.UpdatedAt,
	)
	if err != nil {
		return user.RoleAssignment{}, fmt.Errorf("failed to upsert role assignment: %w", err)
	}

	return assignment, nil
}
