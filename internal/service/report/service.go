package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/autorabit/mealcoupon-backend-go/internal/domain/redemption"
	"github.com/autorabit/mealcoupon-backend-go/internal/domain/report"
	"github.com/autorabit/mealcoupon-backend-go/internal/domain/settings"
	"github.com/autorabit/mealcoupon-backend-go/internal/pkg/clock"
)

const dateLayout = "2006-01-02"

type ReportServiceImpl struct {
	redemptionRepository redemption.RedemptionRepository
	settingsService      settings.SettingsService
	clock                clock.Clock
}

func NewReportService(
	redemptionRepository redemption.RedemptionRepository,
	settingsService settings.SettingsService,
	clk clock.Clock,
) report.ReportService {
	return &ReportServiceImpl{
		redemptionRepository: redemptionRepository,
		settingsService:      settingsService,
		clock:                clk,
	}
}

// Generate implements report.ReportService.
func (s *ReportServiceImpl) Generate(ctx context.Context, req report.RangeReportRequest) (report.RangeReport, error) {
	if err := req.Validate(); err != nil {
		return report.RangeReport{}, err
	}

	now := s.clock.Now()
	start, end := req.Window(now)

	records, err := s.redemptionRepository.ListRange(ctx, start, end)
	if err != nil {
		return report.RangeReport{}, fmt.Errorf("failed to list redemptions: %w", err)
	}

	rows := make([]report.ReportRow, 0, len(records))
	for _, rec := range records {
		row := report.ReportRow{
			EmployeeNumber: rec.EmployeeNumber,
			RedemptionDate: rec.RedemptionDate.Format(dateLayout),
			RedeemedAt:     rec.RedeemedAt.Format(time.RFC3339),
			CouponValue:    rec.CouponValue,
		}
		if rec.EmployeeName != nil {
			row.EmployeeName = *rec.EmployeeName
		}
		if rec.Department != nil {
			row.Department = *rec.Department
		}
		rows = append(rows, row)
	}

	couponValue, err := s.settingsService.CouponValue(ctx)
	if err != nil {
		return report.RangeReport{}, fmt.Errorf("failed to get coupon value: %w", err)
	}

	totalRedemptions, uniqueEmployees, subtotal := report.Aggregate(rows, couponValue)

	result := report.RangeReport{
		StartDate:        start.Format(dateLayout),
		EndDate:          end.Format(dateLayout),
		GeneratedAt:      now.Format(time.RFC3339),
		TotalRedemptions: totalRedemptions,
		UniqueEmployees:  uniqueEmployees,
		CouponValue:      couponValue,
		Subtotal:         subtotal,
		Rows:             rows,
	}

	if req.WithTax {
		current, err := s.settingsService.Get(ctx)
		if err != nil {
			return report.RangeReport{}, err
		}
		gst := current.GSTPercentage
		tax := report.GSTTax(subtotal, gst)
		total := subtotal + tax

		result.GSTPercentage = &gst
		result.Tax = &tax
		result.Total = &total
	}

	return result, nil
}

// GenerateCSV implements report.ReportService. Detail rows first, then a
// blank line and the summary block.
func (s *ReportServiceImpl) GenerateCSV(ctx context.Context, req report.RangeReportRequest) ([]byte, error) {
	rpt, err := s.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"employee_number", "employee_name", "department", "redemption_date", "redeemed_at", "coupon_value"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range rpt.Rows {
		record := []string{
			row.EmployeeNumber,
			row.EmployeeName,
			row.Department,
			row.RedemptionDate,
			row.RedeemedAt,
			strconv.Itoa(row.CouponValue),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	summary := [][]string{
		{},
		{"start_date", rpt.StartDate},
		{"end_date", rpt.EndDate},
		{"total_redemptions", strconv.Itoa(rpt.TotalRedemptions)},
		{"unique_employees", strconv.Itoa(rpt.UniqueEmployees)},
		{"subtotal", strconv.FormatInt(rpt.Subtotal, 10)},
	}
	if rpt.Tax != nil {
		summary = append(summary,
			[]string{"gst_percentage", strconv.FormatFloat(*rpt.GSTPercentage, 'f', -1, 64)},
			[]string{"tax", strconv.FormatInt(*rpt.Tax, 10)},
			[]string{"total", strconv.FormatInt(*rpt.Total, 10)},
		)
	}
	for _, line := range summary {
		if err := w.Write(line); err != nil {
			return nil, fmt.Errorf("failed to write csv summary: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}
