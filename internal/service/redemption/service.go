package redemption

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/autorabit/mealcoupon-backend-go/internal/domain/profile"
	"github.com/autorabit/mealcoupon-backend-go/internal/domain/redemption"
	"github.com/autorabit/mealcoupon-backend-go/internal/domain/settings"
	"github.com/autorabit/mealcoupon-backend-go/internal/pkg/clock"
	"github.com/autorabit/mealcoupon-backend-go/internal/pkg/qrtoken"
)

const dateLayout = "2006-01-02"

type RedemptionServiceImpl struct {
	redemption.RedemptionRepository
	settingsService settings.SettingsService
	codec           *qrtoken.Codec
	clock           clock.Clock
	logger          *slog.Logger
}

func NewRedemptionService(
	redemptionRepository redemption.RedemptionRepository,
	settingsService settings.SettingsService,
	codec *qrtoken.Codec,
	clk clock.Clock,
	logger *slog.Logger,
) redemption.RedemptionService {
	return &RedemptionServiceImpl{
		RedemptionRepository: redemptionRepository,
		settingsService:      settingsService,
		codec:                codec,
		clock:                clk,
		logger:               logger,
	}
}

// Redeem implements redemption.RedemptionService. Gates run in order: the
// scanned code is decoded and verified, the weekday window is checked against
// the server clock, then a single conditional insert commits the claim. There
// is no already-redeemed pre-check; the unique index decides under races.
func (s *RedemptionServiceImpl) Redeem(ctx context.Context, req redemption.RedeemRequest) (redemption.RedeemResponse, error) {
	if err := req.Validate(); err != nil {
		return redemption.RedeemResponse{}, err
	}

	subject, err := s.resolveSubject(req)
	if err != nil {
		return redemption.RedeemResponse{}, err
	}

	now := s.clock.Now()
	if isWeekend(now) {
		return redemption.RedeemResponse{}, redemption.ErrNotAvailable
	}

	couponValue := subject.couponValue
	if couponValue == 0 {
		couponValue, err = s.settingsService.CouponValue(ctx)
		if err != nil {
			return redemption.RedeemResponse{}, fmt.Errorf("failed to get coupon value: %w", err)
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	rec, err := s.RedemptionRepository.Insert(ctx, redemption.Record{
		EmployeeNumber: subject.employeeNumber,
		UserID:         subject.userID,
		RedemptionDate: today,
		RedeemedAt:     now,
		CouponValue:    couponValue,
	})
	if err != nil {
		if err == redemption.ErrAlreadyRedeemed {
			return redemption.RedeemResponse{}, err
		}
		s.logger.Error("redemption insert failed",
			slog.String("employee_number", subject.employeeNumber),
			slog.String("error", err.Error()),
		)
		return redemption.RedeemResponse{}, redemption.ErrRedemptionFailed
	}

	return redemption.RedeemResponse{
		ID:             rec.ID,
		EmployeeNumber: rec.EmployeeNumber,
		RedemptionDate: rec.RedemptionDate.Format(dateLayout),
		RedeemedAt:     rec.RedeemedAt.Format(time.RFC3339),
		CouponValue:    rec.CouponValue,
	}, nil
}

// redeemSubject is the employee a scan resolves to, plus the coupon value
// when the scanned token carries its own amount.
type redeemSubject struct {
	userID         string
	employeeNumber string
	couponValue    int
}

// resolveSubject decodes the scanned code and checks the payload variant
// against the scanning context. A kiosk accepts employee identity and signed
// coupon codes; the employee app accepts only the vendor station code.
func (s *RedemptionServiceImpl) resolveSubject(req redemption.RedeemRequest) (redeemSubject, error) {
	payload, err := s.codec.Decode(req.ScannedCode)
	if err != nil {
		return redeemSubject{}, redemption.ErrInvalidCode
	}

	switch p := payload.(type) {
	case qrtoken.EmployeePayload:
		if req.ScanContext != redemption.ScanContextKiosk {
			return redeemSubject{}, redemption.ErrInvalidCode
		}
		return redeemSubject{userID: p.UserID, employeeNumber: p.EmployeeNumber}, nil

	case qrtoken.CouponPayload:
		if req.ScanContext != redemption.ScanContextKiosk {
			return redeemSubject{}, redemption.ErrInvalidCode
		}
		if p.Date != "" && p.Date != s.clock.Now().Format(dateLayout) {
			return redeemSubject{}, redemption.ErrInvalidCode
		}
		return redeemSubject{userID: p.UserID, employeeNumber: p.EmployeeNumber, couponValue: p.Amount}, nil

	case qrtoken.VendorStationPayload:
		if req.ScanContext != redemption.ScanContextEmployee {
			return redeemSubject{}, redemption.ErrInvalidCode
		}
		if req.EmployeeNumber == "" {
			return redeemSubject{}, profile.ErrProfileNotFound
		}
		return redeemSubject{userID: req.UserID, employeeNumber: req.EmployeeNumber}, nil

	default:
		return redeemSubject{}, redemption.ErrInvalidCode
	}
}

// History implements redemption.RedemptionService.
func (s *RedemptionServiceImpl) History(ctx context.Context, userID string, filter redemption.HistoryFilter) (redemption.HistoryResponse, error) {
	records, total, err := s.RedemptionRepository.ListByUser(ctx, userID, filter)
	if err != nil {
		return redemption.HistoryResponse{}, fmt.Errorf("failed to list redemptions: %w", err)
	}

	resp := redemption.HistoryResponse{
		Records: make([]redemption.RedeemResponse, 0, len(records)),
		Total:   total,
	}
	for _, rec := range records {
		resp.Records = append(resp.Records, redemption.RedeemResponse{
			ID:             rec.ID,
			EmployeeNumber: rec.EmployeeNumber,
			RedemptionDate: rec.RedemptionDate.Format(dateLayout),
			RedeemedAt:     rec.RedeemedAt.Format(time.RFC3339),
			CouponValue:    rec.CouponValue,
		})
	}
	return resp, nil
}

// EmployeeCode implements redemption.RedemptionService.
func (s *RedemptionServiceImpl) EmployeeCode(ctx context.Context, userID string, employeeNumber string) (redemption.QRCodeResponse, error) {
	if employeeNumber == "" {
		return redemption.QRCodeResponse{}, profile.ErrProfileNotFound
	}
	return redemption.QRCodeResponse{
		Code: s.codec.EncodeEmployee(userID, employeeNumber),
		Type: string(qrtoken.TypeEmployee),
	}, nil
}

// IssueCoupon implements redemption.RedemptionService.
func (s *RedemptionServiceImpl) IssueCoupon(ctx context.Context, userID string, employeeNumber string) (redemption.QRCodeResponse, error) {
	if employeeNumber == "" {
		return redemption.QRCodeResponse{}, profile.ErrProfileNotFound
	}

	now := s.clock.Now()
	if isWeekend(now) {
		return redemption.QRCodeResponse{}, redemption.ErrNotAvailable
	}

	value, err := s.settingsService.CouponValue(ctx)
	if err != nil {
		return redemption.QRCodeResponse{}, fmt.Errorf("failed to get coupon value: %w", err)
	}

	code, err := s.codec.IssueCoupon(userID, employeeNumber, value, now)
	if err != nil {
		return redemption.QRCodeResponse{}, fmt.Errorf("failed to issue coupon token: %w", err)
	}

	expiresAt := now.Add(s.codec.CouponTTL()).Format(time.RFC3339)
	return redemption.QRCodeResponse{
		Code:      code,
		Type:      string(qrtoken.TypeCoupon),
		ExpiresAt: &expiresAt,
	}, nil
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
