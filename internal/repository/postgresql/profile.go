package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/autorabit/mealcoupon-backend-go/internal/domain/profile"
	"github.com/autorabit/mealcoupon-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type profileRepositoryImpl struct {
	db *database.DB
}

func NewProfileRepository(db *database.DB) profile.ProfileRepository {
	return &profileRepositoryImpl{db: db}
}

const uniqueViolationCode = "23505"

// Create implements profile.ProfileRepository. Empty employee numbers are
// allowed for freshly provisioned shells; the unique index on
// employee_number is partial (WHERE employee_number <> '').
func (r *profileRepositoryImpl) Create(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO profiles (user_id, employee_number, full_name, company_email, department)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, employee_number, full_name, company_email, department, created_at, updated_at
	`

	var created profile.Profile
	err := q.QueryRow(ctx, query,
		p.UserID,
		p.EmployeeNumber,
		p.FullName,
		p.CompanyEmail,
		p.Department,
	).Scan(
		&created.ID,
		&created.UserID,
		&created.EmployeeNumber,
		&created.FullName,
		&created.CompanyEmail,
		&created.Department,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return profile.Profile{}, profile.ErrEmployeeNumberExists
		}
		return profile.Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}

	return created, nil
}

// GetByUserID implements profile.ProfileRepository.
func (r *profileRepositoryImpl) GetByUserID(ctx context.Context, userID string) (*profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, employee_number, full_name, company_email, department, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	var found profile.Profile
	err := q.QueryRow(ctx, query, userID).Scan(
		&found.ID,
		&found.UserID,
		&found.EmployeeNumber,
		&found.FullName,
		&found.CompanyEmail,
		&found.Department,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile by user: %w", err)
	}

	return &found, nil
}

// GetByEmployeeNumber implements profile.ProfileRepository.
func (r *profileRepositoryImpl) GetByEmployeeNumber(ctx context.Context, employeeNumber string) (*profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, employee_number, full_name, company_email, department, created_at, updated_at
		FROM profiles
		WHERE employee_number = $1
	`

	var found profile.Profile
	err := q.QueryRow(ctx, query, employeeNumber).Scan(
		&found.ID,
		&found.UserID,
		&found.EmployeeNumber,
		&found.FullName,
		&found.CompanyEmail,
		&found.Department,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile by employee number: %w", err)
	}

	return &found, nil
}

// Update implements profile.ProfileRepository.
func (r *profileRepositoryImpl) Update(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE profiles
		SET employee_number = $1, full_name = $2, company_email = $3, department = $4, updated_at = NOW()
		WHERE user_id = $5
		RETURNING id, user_id, employee_number, full_name, company_email, department, created_at, updated_at
	`

	var updated profile.Profile
	err := q.QueryRow(ctx, query,
		p.EmployeeNumber,
		p.FullName,
		p.CompanyEmail,
		p.Department,
		p.UserID,
	).Scan(
		&updated.ID,
		&updated.UserID,
		&updated.EmployeeNumber,
		&updated.FullName,
		&updated.CompanyEmail,
		&updated.Department,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrProfileNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return profile.Profile{}, profile.ErrEmployeeNumberExists
		}
		return profile.Profile{}, fmt.Errorf("failed to update profile: %w", err)
	}

	return updated, nil
}

// EmployeeNumberTakenByOther implements profile.ProfileRepository.
func (r *profileRepositoryImpl) EmployeeNumberTakenByOther(ctx context.Context, employeeNumber string, userID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM profiles
			WHERE employee_number = $1 AND user_id <> $2
		)
	`

	var taken bool
	if err := q.QueryRow(ctx, query, employeeNumber, userID).Scan(&taken); err != nil {
		return false, fmt.Errorf("failed to check employee number: %w", err)
	}
	return taken, nil
}
