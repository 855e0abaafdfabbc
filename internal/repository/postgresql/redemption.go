package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/autorabit/mealcoupon-backend-go/internal/domain/redemption"
	"github.com/autorabit/mealcoupon-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type redemptionRepositoryImpl struct {
	db *database.DB
}

func NewRedemptionRepository(db *database.DB) redemption.RedemptionRepository {
	return &redemptionRepositoryImpl{db: db}
}

// Insert implements redemption.RedemptionRepository. The unique index on
// (employee_number, redemption_date) is the sole arbiter between racing
// scans; a constraint violation maps to ErrAlreadyRedeemed.
func (r *redemptionRepositoryImpl) Insert(ctx context.Context, rec redemption.Record) (redemption.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO redemption_records (employee_number, user_id, redemption_date, redeemed_at, coupon_value)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		rec.EmployeeNumber,
		rec.UserID,
		rec.RedemptionDate,
		rec.RedeemedAt,
		rec.CouponValue,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return redemption.Record{}, redemption.ErrAlreadyRedeemed
		}
		return redemption.Record{}, fmt.Errorf("failed to insert redemption: %w", err)
	}

	return rec, nil
}

// GetByEmployeeAndDate implements redemption.RedemptionRepository.
func (r *redemptionRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeNumber string, date time.Time) (*redemption.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_number, user_id, redemption_date, redeemed_at, coupon_value, created_at
		FROM redemption_records
		WHERE employee_number = $1 AND redemption_date = $2
		LIMIT 1
	`

	var rec redemption.Record
	err := q.QueryRow(ctx, query, employeeNumber, date).Scan(
		&rec.ID,
		&rec.EmployeeNumber,
		&rec.UserID,
		&rec.RedemptionDate,
		&rec.RedeemedAt,
		&rec.CouponValue,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get redemption by employee and date: %w", err)
	}

	return &rec, nil
}

// ListRange implements redemption.RedemptionRepository.
func (r *redemptionRepositoryImpl) ListRange(ctx context.Context, start, end time.Time) ([]redemption.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT rr.id, rr.employee_number, rr.user_id, rr.redemption_date, rr.redeemed_at, rr.coupon_value, rr.created_at,
			   p.full_name AS employee_name,
			   p.department AS department
		FROM redemption_records rr
		LEFT JOIN profiles p ON p.user_id = rr.user_id
		WHERE rr.redemption_date >= $1 AND rr.redemption_date <= $2
		ORDER BY rr.redemption_date, rr.redeemed_at
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query redemptions: %w", err)
	}
	defer rows.Close()

	var records []redemption.Record
	for rows.Next() {
		var rec redemption.Record
		err := rows.Scan(
			&rec.ID,
			&rec.EmployeeNumber,
			&rec.UserID,
			&rec.RedemptionDate,
			&rec.RedeemedAt,
			&rec.CouponValue,
			&rec.CreatedAt,
			&rec.EmployeeName,
			&rec.Department,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan redemption: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// ListByUser implements redemption.RedemptionRepository.
func (r *redemptionRepositoryImpl) ListByUser(ctx context.Context, userID string, filter redemption.HistoryFilter) ([]redemption.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "user_id = $1"
	args := []interface{}{userID}
	argIdx := 2

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND redemption_date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND redemption_date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM redemption_records WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count redemptions: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}
	offset := (page - 1) * limit

	selectQuery := fmt.Sprintf(`
		SELECT id, employee_number, user_id, redemption_date, redeemed_at, coupon_value, created_at
		FROM redemption_records
		WHERE %s
		ORDER BY redemption_date DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query redemptions: %w", err)
	}
	defer rows.Close()

	var records []redemption.Record
	for rows.Next() {
		var rec redemption.Record
		err := rows.Scan(
			&rec.ID,
			&rec.EmployeeNumber,
			&rec.UserID,
			&rec.RedemptionDate,
			&rec.RedeemedAt,
			&rec.CouponValue,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan redemption: %w", err)
		}
		records = append(records, rec)
	}

	return records, total, nil
}
