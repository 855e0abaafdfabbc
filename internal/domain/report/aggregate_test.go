package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAggregate_CountsAndSubtotal(t *testing.T) {
	t.Parallel()

	rows := []ReportRow{
		{EmployeeNumber: "100001", CouponValue: 160},
		{EmployeeNumber: "100001", CouponValue: 160},
		{EmployeeNumber: "100002", CouponValue: 160},
	}

	total, unique, subtotal := Aggregate(rows, 160)
	assert.Equal(t, 3, total)
	assert.Equal(t, 2, unique)
	assert.Equal(t, int64(480), subtotal)
}

func TestAggregate_Empty(t *testing.T) {
	t.Parallel()

	total, unique, subtotal := Aggregate(nil, 160)
	assert.Zero(t, total)
	assert.Zero(t, unique)
	assert.Zero(t, subtotal)
}

func TestAggregate_MixedSnapshotValues(t *testing.T) {
	t.Parallel()

	// Older rows keep the rate they were redeemed at.
	rows := []ReportRow{
		{EmployeeNumber: "100001", CouponValue: 120},
		{EmployeeNumber: "100002", CouponValue: 160},
	}

	_, _, subtotal := Aggregate(rows, 160)
	assert.Equal(t, int64(280), subtotal)
}

func TestGSTTax_RoundHalfUp(t *testing.T) {
	t.Parallel()

	// 165 * 18% = 29.7 rounds to 30.
	assert.Equal(t, int64(30), GSTTax(165, 18))

	// Exact half rounds up: 250 * 18% = 45 exactly; use 25 * 18% = 4.5.
	assert.Equal(t, int64(5), GSTTax(25, 18))

	assert.Equal(t, int64(0), GSTTax(0, 18))
	assert.Equal(t, int64(0), GSTTax(480, 0))
}

func TestWindow_Day(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 7, 15, 0, 0, 0, time.UTC) // Wednesday
	req := RangeReportRequest{Period: PeriodDay}

	start, end := req.Window(now)
	assert.Equal(t, "2026-01-07", start.Format("2006-01-02"))
	assert.Equal(t, "2026-01-07", end.Format("2006-01-02"))
}

func TestWindow_WeekStartsMonday(t *testing.T) {
	t.Parallel()

	req := RangeReportRequest{Period: PeriodWeek}

	// Wednesday anchor.
	start, end := req.Window(time.Date(2026, 1, 7, 15, 0, 0, 0, time.UTC))
	assert.Equal(t, "2026-01-05", start.Format("2006-01-02"))
	assert.Equal(t, "2026-01-11", end.Format("2006-01-02"))

	// Sunday anchor stays in the week that began the previous Monday.
	start, end = req.Window(time.Date(2026, 1, 11, 9, 0, 0, 0, time.UTC))
	assert.Equal(t, "2026-01-05", start.Format("2006-01-02"))
	assert.Equal(t, "2026-01-11", end.Format("2006-01-02"))
}

func TestWindow_Month(t *testing.T) {
	t.Parallel()

	req := RangeReportRequest{Period: PeriodMonth, Date: "2026-02-10"}
	start, end := req.Window(time.Now())
	assert.Equal(t, "2026-02-01", start.Format("2006-01-02"))
	assert.Equal(t, "2026-02-28", end.Format("2006-01-02"))
}

func TestWindow_ExplicitRange(t *testing.T) {
	t.Parallel()

	req := RangeReportRequest{StartDate: "2026-01-01", EndDate: "2026-01-15"}
	start, end := req.Window(time.Now())
	assert.Equal(t, "2026-01-01", start.Format("2006-01-02"))
	assert.Equal(t, "2026-01-15", end.Format("2006-01-02"))
}

func TestRangeReportRequest_Validate(t *testing.T) {
	t.Parallel()

	valid := RangeReportRequest{Period: PeriodWeek}
	assert.NoError(t, valid.Validate())

	missing := RangeReportRequest{}
	assert.Error(t, missing.Validate())

	badPeriod := RangeReportRequest{Period: "fortnight"}
	assert.Error(t, badPeriod.Validate())

	badDate := RangeReportRequest{Period: PeriodDay, Date: "07-01-2026"}
	assert.Error(t, badDate.Validate())

	inverted := RangeReportRequest{StartDate: "2026-01-15", EndDate: "2026-01-01"}
	assert.Error(t, inverted.Validate())
}
