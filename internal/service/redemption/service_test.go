package redemption

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/autorabit/mealcoupon-backend-go/internal/domain/profile"
	"github.com/autorabit/mealcoupon-backend-go/internal/domain/redemption"
	"github.com/autorabit/mealcoupon-backend-go/internal/domain/settings"
	"github.com/autorabit/mealcoupon-backend-go/internal/pkg/clock"
	"github.com/autorabit/mealcoupon-backend-go/internal/pkg/qrtoken"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	monday   = time.Date(2026, 1, 5, 12, 30, 0, 0, time.UTC)
	saturday = time.Date(2026, 1, 3, 12, 30, 0, 0, time.UTC)
)

// fakeRedemptionRepo mirrors the unique index on
// (employee_number, redemption_date).
type fakeRedemptionRepo struct {
	records map[string]redemption.Record
	nextID  int
}

func newFakeRedemptionRepo() *fakeRedemptionRepo {
	return &fakeRedemptionRepo{records: make(map[string]redemption.Record)}
}

func recordKey(employeeNumber string, date time.Time) string {
	return employeeNumber + "|" + date.Format("2006-01-02")
}

func (f *fakeRedemptionRepo) Insert(ctx context.Context, rec redemption.Record) (redemption.Record, error) {
	key := recordKey(rec.EmployeeNumber, rec.RedemptionDate)
	if _, exists := f.records[key]; exists {
		return redemption.Record{}, redemption.ErrAlreadyRedeemed
	}
	f.nextID++
	rec.ID = fmt.Sprintf("rec-%d", f.nextID)
	rec.CreatedAt = rec.RedeemedAt
	f.records[key] = rec
	return rec, nil
}

func (f *fakeRedemptionRepo) GetByEmployeeAndDate(ctx context.Context, employeeNumber string, date time.Time) (*redemption.Record, error) {
	rec, ok := f.records[recordKey(employeeNumber, date)]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeRedemptionRepo) ListRange(ctx context.Context, start, end time.Time) ([]redemption.Record, error) {
	var out []redemption.Record
	for _, rec := range f.records {
		if !rec.RedemptionDate.Before(start) && !rec.RedemptionDate.After(end) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeRedemptionRepo) ListByUser(ctx context.Context, userID string, filter redemption.HistoryFilter) ([]redemption.Record, int64, error) {
	var out []redemption.Record
	for _, rec := range f.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, int64(len(out)), nil
}

type fakeSettingsService struct {
	couponValue int
}

func (f *fakeSettingsService) Get(ctx context.Context) (settings.SettingsResponse, error) {
	return settings.SettingsResponse{CouponValue: f.couponValue}, nil
}

func (f *fakeSettingsService) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	return settings.SettingsResponse{}, nil
}

func (f *fakeSettingsService) UploadLogo(ctx context.Context, req settings.UploadLogoRequest) (string, error) {
	return "", nil
}

func (f *fakeSettingsService) CouponValue(ctx context.Context) (int, error) {
	return f.couponValue, nil
}

func newTestService(now time.Time) (redemption.RedemptionService, *fakeRedemptionRepo, *qrtoken.Codec) {
	repo := newFakeRedemptionRepo()
	codec := qrtoken.NewCodec("test-secret", "mealcoupon-backend", 10*time.Minute)
	svc := NewRedemptionService(
		repo,
		&fakeSettingsService{couponValue: 160},
		codec,
		clock.Fixed{T: now},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return svc, repo, codec
}

func TestRedeem_KioskEmployeeScan_Success(t *testing.T) {
	t.Parallel()
	svc, repo, codec := newTestService(monday)

	resp, err := svc.Redeem(context.Background(), redemption.RedeemRequest{
		ScannedCode: codec.EncodeEmployee("u1", "100234"),
		ScanContext: redemption.ScanContextKiosk,
	})
	require.NoError(t, err)
	assert.Equal(t, "100234", resp.EmployeeNumber)
	assert.Equal(t, "2026-01-05", resp.RedemptionDate)
	assert.Equal(t, 160, resp.CouponValue)

	stored, err := repo.GetByEmployeeAndDate(context.Background(), "100234", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 160, stored.CouponValue)
}

func TestRedeem_SecondScanSameDay_AlreadyRedeemed(t *testing.T) {
	t.Parallel()
	svc, _, codec := newTestService(monday)
	code := codec.EncodeEmployee("u1", "100234")

	_, err := svc.Redeem(context.Background(), redemption.RedeemRequest{
		ScannedCode: code,
		ScanContext: redemption.ScanContextKiosk,
	})
	require.NoError(t, err)

	_, err = svc.Redeem(context.Background(), redemption.RedeemRequest{
		ScannedCode: code,
		ScanContext: redemption.ScanContextKiosk,
	})
	assert.ErrorIs(t, err, redemption.ErrAlreadyRedeemed)
}

func TestRedeem_Weekend_NotAvailable(t *testing.T) {
	t.Parallel()
	svc, repo, codec := newTestService(saturday)

	_, err := svc.Redeem(context.Background(), redemption.RedeemRequest{
		ScannedCode: codec.EncodeEmployee("u1", "100234"),
		ScanContext: redemption.ScanContextKiosk,
	})
	assert.ErrorIs(t, err, redemption.ErrNotAvailable)
	assert.Empty(t, repo.records)
}

func TestRedeem_GarbageCode_InvalidCode(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(monday)

	_, err := svc.Redeem(context.Background(), redemption.RedeemRequest{
		ScannedCode: "???",
		ScanContext: redemption.ScanContextKiosk,
	})
	assert.ErrorIs(t, err, redemption.ErrInvalidCode)
}

func TestRedeem_ContextMismatch_InvalidCode(t *testing.T) {
	t.Parallel()
	svc, _, codec := newTestService(monday)

	// Station code at a kiosk.
	_, err := svc.Redeem(context.Background(), redemption.RedeemRequest{
		ScannedCode: codec.EncodeVendorStation("station-1", "Cafe Annex"),
		ScanContext: redemption.ScanContextKiosk,
	})
	assert.ErrorIs(t, err, redemption.ErrInvalidCode)

	// Employee code in the employee app.
	_, err = svc.Redeem(context.Background(), redemption.RedeemRequest{
		ScannedCode: codec.EncodeEmployee("u1", "100234"),
		ScanContext: redemption.ScanContextEmployee,
		UserID:      "u1",
	})
	assert.ErrorIs(t, err, redemption.ErrInvalidCode)
}

func TestRedeem_StationScan_Success(t *testing.T) {
	t.Parallel()
	svc, _, codec := newTestService(monday)

	resp, err := svc.Redeem(context.Background(), redemption.RedeemRequest{
		ScannedCode:    codec.EncodeVendorStation("station-1", "Cafe Annex"),
		ScanContext:    redemption.ScanContextEmployee,
		UserID:         "u1",
		EmployeeNumber: "100234",
	})
	require.NoError(t, err)
	assert.Equal(t, "100234", resp.EmployeeNumber)
}

func TestRedeem_StationScan_NoProfile(t *testing.T) {
	t.Parallel()
	svc, _, codec := newTestService(monday)

	_, err := svc.Redeem(context.Background(), redemption.RedeemRequest{
		ScannedCode: codec.EncodeVendorStation("station-1", "Cafe Annex"),
		ScanContext: redemption.ScanContextEmployee,
		UserID:      "u1",
	})
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)
}

func TestRedeem_SignedCoupon_SnapshotsCouponAmount(t *testing.T) {
	t.Parallel()
	svc, repo, codec := newTestService(monday)

	// Coupon minted at an older rate keeps its amount.
	code, err := codec.IssueCoupon("u1", "100234", 120, monday)
	require.NoError(t, err)

	resp, err := svc.Redeem(context.Background(), redemption.RedeemRequest{
		ScannedCode: code,
		ScanContext: redemption.ScanContextKiosk,
	})
	require.NoError(t, err)
	assert.Equal(t, 120, resp.CouponValue)

	stored, err := repo.GetByEmployeeAndDate(context.Background(), "100234", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 120, stored.CouponValue)
}

func TestRedeem_SignedCoupon_WrongDate(t *testing.T) {
	t.Parallel()
	svc, _, codec := newTestService(monday)

	code, err := codec.IssueCoupon("u1", "100234", 160, monday.AddDate(0, 0, 1))
	require.NoError(t, err)

	_, err = svc.Redeem(context.Background(), redemption.RedeemRequest{
		ScannedCode: code,
		ScanContext: redemption.ScanContextKiosk,
	})
	assert.ErrorIs(t, err, redemption.ErrInvalidCode)
}

func TestIssueCoupon_Weekend_NotAvailable(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(saturday)

	_, err := svc.IssueCoupon(context.Background(), "u1", "100234")
	assert.ErrorIs(t, err, redemption.ErrNotAvailable)
}

func TestIssueCoupon_RoundtripsThroughRedeem(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(monday)

	coupon, err := svc.IssueCoupon(context.Background(), "u1", "100234")
	require.NoError(t, err)
	require.NotNil(t, coupon.ExpiresAt)

	resp, err := svc.Redeem(context.Background(), redemption.RedeemRequest{
		ScannedCode: coupon.Code,
		ScanContext: redemption.ScanContextKiosk,
	})
	require.NoError(t, err)
	assert.Equal(t, 160, resp.CouponValue)
}

func TestEmployeeCode_RequiresEmployeeNumber(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(monday)

	_, err := svc.EmployeeCode(context.Background(), "u1", "")
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)

	code, err := svc.EmployeeCode(context.Background(), "u1", "100234")
	require.NoError(t, err)
	assert.NotEmpty(t, code.Code)
}
