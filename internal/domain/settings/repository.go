package settings

import "context"

type SettingsRepository interface {
	// GetCanonical returns the canonical settings row, or nil when none
	// exists yet.
	GetCanonical(ctx context.Context) (*CompanySettings, error)

	// Upsert updates the canonical row, creating it when absent.
	Upsert(ctx context.Context, s CompanySettings) (CompanySettings, error)

	UpdateLogoURL(ctx context.Context, logoURL string) error
}

type SettingsService interface {
	Get(ctx context.Context) (SettingsResponse, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
	UploadLogo(ctx context.Context, req UploadLogoRequest) (string, error)

	// CouponValue returns the current per-meal value, falling back to
	// DefaultCouponValue when unset.
	CouponValue(ctx context.Context) (int, error)
}
