package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/autorabit/mealcoupon-backend-go/internal/domain/settings"
	"github.com/autorabit/mealcoupon-backend-go/internal/service/file"
)

type SettingsServiceImpl struct {
	settings.SettingsRepository
	fileService file.FileService
}

func NewSettingsService(settingsRepository settings.SettingsRepository, fileService file.FileService) settings.SettingsService {
	return &SettingsServiceImpl{
		SettingsRepository: settingsRepository,
		fileService:        fileService,
	}
}

// Get implements settings.SettingsService. When no row exists yet the
// defaults are returned without creating one.
func (s *SettingsServiceImpl) Get(ctx context.Context) (settings.SettingsResponse, error) {
	current, err := s.GetCanonical(ctx)
	if err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to get settings: %w", err)
	}
	if current == nil {
		return settings.SettingsResponse{
			CouponValue: settings.DefaultCouponValue,
		}, nil
	}

	resp := settings.ToResponse(*current)
	if resp.CouponValue == 0 {
		resp.CouponValue = settings.DefaultCouponValue
	}
	return resp, nil
}

// Update implements settings.SettingsService.
func (s *SettingsServiceImpl) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	updated, err := s.Upsert(ctx, settings.CompanySettings{
		CompanyName:    req.CompanyName,
		GSTNumber:      req.GSTNumber,
		GSTPercentage:  req.GSTPercentage,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
		CouponValue:    req.CouponValue,
	})
	if err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to update settings: %w", err)
	}

	return settings.ToResponse(updated), nil
}

// UploadLogo implements settings.SettingsService.
func (s *SettingsServiceImpl) UploadLogo(ctx context.Context, req settings.UploadLogoRequest) (string, error) {
	path, err := s.fileService.UploadCompanyLogo(ctx, req.File, req.FileHeader.Filename)
	if err != nil {
		return "", err
	}

	url, err := s.fileService.GetFileURL(ctx, path, 24*time.Hour)
	if err != nil {
		return "", fmt.Errorf("failed to resolve logo url: %w", err)
	}

	if err := s.UpdateLogoURL(ctx, url); err != nil {
		return "", err
	}

	return url, nil
}

// CouponValue implements settings.SettingsService.
func (s *SettingsServiceImpl) CouponValue(ctx context.Context) (int, error) {
	current, err := s.GetCanonical(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get settings: %w", err)
	}
	if current == nil || current.CouponValue <= 0 {
		return settings.DefaultCouponValue, nil
	}
	return current.CouponValue, nil
}
