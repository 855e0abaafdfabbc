package report

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/autorabit/mealcoupon-backend-go/internal/domain/redemption"
	"github.com/autorabit/mealcoupon-backend-go/internal/domain/report"
	"github.com/autorabit/mealcoupon-backend-go/internal/domain/settings"
	"github.com/autorabit/mealcoupon-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedemptionRepo struct {
	records []redemption.Record
}

func (f *fakeRedemptionRepo) Insert(ctx context.Context, rec redemption.Record) (redemption.Record, error) {
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeRedemptionRepo) GetByEmployeeAndDate(ctx context.Context, employeeNumber string, date time.Time) (*redemption.Record, error) {
	return nil, nil
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
	return nil, 0, nil
}

type fakeSettingsService struct {
	couponValue   int
	gstPercentage float64
}

func (f *fakeSettingsService) Get(ctx context.Context) (settings.SettingsResponse, error) {
	return settings.SettingsResponse{
		CompanyName:   "AutoRABIT",
		GSTPercentage: f.gstPercentage,
		CouponValue:   f.couponValue,
	}, nil
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

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func strPtr(s string) *string { return &s }

func newTestService(records []redemption.Record) report.ReportService {
	return NewReportService(
		&fakeRedemptionRepo{records: records},
		&fakeSettingsService{couponValue: 160, gstPercentage: 18},
		clock.Fixed{T: time.Date(2026, 1, 7, 15, 0, 0, 0, time.UTC)},
	)
}

func testRecords() []redemption.Record {
	return []redemption.Record{
		{
			EmployeeNumber: "100001",
			UserID:         "u1",
			RedemptionDate: day("2026-01-05"),
			RedeemedAt:     day("2026-01-05").Add(12 * time.Hour),
			CouponValue:    160,
			EmployeeName:   strPtr("Asha Rao"),
			Department:     strPtr("Engineering"),
		},
		{
			EmployeeNumber: "100001",
			UserID:         "u1",
			RedemptionDate: day("2026-01-06"),
			RedeemedAt:     day("2026-01-06").Add(12 * time.Hour),
			CouponValue:    160,
		},
		{
			EmployeeNumber: "100002",
			UserID:         "u2",
			RedemptionDate: day("2026-01-06"),
			RedeemedAt:     day("2026-01-06").Add(13 * time.Hour),
			CouponValue:    160,
		},
	}
}

func TestGenerate_WeekAggregates(t *testing.T) {
	t.Parallel()
	svc := newTestService(testRecords())

	rpt, err := svc.Generate(context.Background(), report.RangeReportRequest{Period: report.PeriodWeek})
	require.NoError(t, err)

	assert.Equal(t, "2026-01-05", rpt.StartDate)
	assert.Equal(t, "2026-01-11", rpt.EndDate)
	assert.Equal(t, 3, rpt.TotalRedemptions)
	assert.Equal(t, 2, rpt.UniqueEmployees)
	assert.Equal(t, int64(480), rpt.Subtotal)
	assert.Len(t, rpt.Rows, 3)
	assert.Nil(t, rpt.Tax)
}

func TestGenerate_WithTax(t *testing.T) {
	t.Parallel()
	svc := newTestService(testRecords())

	rpt, err := svc.Generate(context.Background(), report.RangeReportRequest{
		Period:  report.PeriodWeek,
		WithTax: true,
	})
	require.NoError(t, err)

	// 480 * 18% = 86.4 rounds to 86.
	require.NotNil(t, rpt.Tax)
	require.NotNil(t, rpt.Total)
	assert.Equal(t, int64(86), *rpt.Tax)
	assert.Equal(t, int64(566), *rpt.Total)
	assert.Equal(t, float64(18), *rpt.GSTPercentage)
}

func TestGenerate_DayWindowFiltersRows(t *testing.T) {
	t.Parallel()
	svc := newTestService(testRecords())

	rpt, err := svc.Generate(context.Background(), report.RangeReportRequest{
		Period: report.PeriodDay,
		Date:   "2026-01-06",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, rpt.TotalRedemptions)
	assert.Equal(t, 2, rpt.UniqueEmployees)
	assert.Equal(t, int64(320), rpt.Subtotal)
}

func TestGenerate_InvalidRequest(t *testing.T) {
	t.Parallel()
	svc := newTestService(nil)

	_, err := svc.Generate(context.Background(), report.RangeReportRequest{Period: "fortnight"})
	assert.Error(t, err)
}

func TestGenerateCSV_ContainsRowsAndSummary(t *testing.T) {
	t.Parallel()
	svc := newTestService(testRecords())

	data, err := svc.GenerateCSV(context.Background(), report.RangeReportRequest{
		Period:  report.PeriodWeek,
		WithTax: true,
	})
	require.NoError(t, err)

	csv := string(data)
	assert.True(t, strings.HasPrefix(csv, "employee_number,employee_name,department,redemption_date,redeemed_at,coupon_value"))
	assert.Contains(t, csv, "100001,Asha Rao,Engineering,2026-01-05")
	assert.Contains(t, csv, "total_redemptions,3")
	assert.Contains(t, csv, "unique_employees,2")
	assert.Contains(t, csv, "subtotal,480")
	assert.Contains(t, csv, "tax,86")
	assert.Contains(t, csv, "total,566")
}
