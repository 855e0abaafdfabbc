package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/autorabit/mealcoupon-backend-go/internal/domain/settings"
	"github.com/autorabit/mealcoupon-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepositoryImpl{db: db}
}

// GetCanonical implements settings.SettingsRepository. The oldest row is
// canonical; the table carries no singleton constraint.
func (r *settingsRepositoryImpl) GetCanonical(ctx context.Context) (*settings.CompanySettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_name, gst_number, gst_percentage, primary_color, secondary_color,
			   logo_url, coupon_value, created_at, updated_at
		FROM company_settings
		ORDER BY created_at
		LIMIT 1
	`

	var s settings.CompanySettings
	err := q.QueryRow(ctx, query).Scan(
		&s.ID,
		&s.CompanyName,
		&s.GSTNumber,
		&s.GSTPercentage,
		&s.PrimaryColor,
		&s.SecondaryColor,
		&s.LogoURL,
		&s.CouponValue,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company settings: %w", err)
	}

	return &s, nil
}

// Upsert implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Upsert(ctx context.Context, s settings.CompanySettings) (settings.CompanySettings, error) {
	q := GetQuerier(ctx, r.db)

	existing, err := r.GetCanonical(ctx)
	if err != nil {
		return settings.CompanySettings{}, err
	}

	if existing == nil {
		query := `
			INSERT INTO company_settings (company_name, gst_number, gst_percentage, primary_color, secondary_color, coupon_value)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, company_name, gst_number, gst_percentage, primary_color, secondary_color,
					  logo_url, coupon_value, created_at, updated_at
		`
		var created settings.CompanySettings
		err := q.QueryRow(ctx, query,
			s.CompanyName, s.GSTNumber, s.GSTPercentage, s.PrimaryColor, s.SecondaryColor, s.CouponValue,
		).Scan(
			&created.ID, &created.CompanyName, &created.GSTNumber, &created.GSTPercentage,
			&created.PrimaryColor, &created.SecondaryColor, &created.LogoURL, &created.CouponValue,
			&created.CreatedAt, &created.UpdatedAt,
		)
		if err != nil {
			return settings.CompanySettings{}, fmt.Errorf("failed to create company settings: %w", err)
		}
		return created, nil
	}

	query := `
		UPDATE company_settings
		SET company_name = $1, gst_number = $2, gst_percentage = $3, primary_color = $4,
			secondary_color = $5, coupon_value = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING id, company_name, gst_number, gst_percentage, primary_color, secondary_color,
				  logo_url, coupon_value, created_at, updated_at
	`
	var updated settings.CompanySettings
	err = q.QueryRow(ctx, query,
		s.CompanyName, s.GSTNumber, s.GSTPercentage, s.PrimaryColor, s.SecondaryColor, s.CouponValue,
		existing.ID,
	).Scan(
		&updated.ID, &updated.CompanyName, &updated.GSTNumber, &updated.GSTPercentage,
		&updated.PrimaryColor, &updated.SecondaryColor, &updated.LogoURL, &updated.CouponValue,
		&updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		return settings.CompanySettings{}, fmt.Errorf("failed to update company settings: %w", err)
	}

	return updated, nil
}

// UpdateLogoURL implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) UpdateLogoURL(ctx context.Context, logoURL string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE company_settings
		SET logo_url = $1, updated_at = NOW()
		WHERE id = (SELECT id FROM company_settings ORDER BY created_at LIMIT 1)
		RETURNING id
	`

	var id string
	if err := q.QueryRow(ctx, query, logoURL).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.ErrSettingsNotFound
		}
		return fmt.Errorf("failed to update logo url: %w", err)
	}
	return nil
}
