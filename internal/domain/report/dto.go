package report

import (
	"fmt"
	"time"

	"github.com/autorabit/mealcoupon-backend-go/internal/pkg/validator"
)

// Period selects how the report window is derived from the anchor date.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"  // ISO week starting Monday
	PeriodMonth Period = "month" // calendar month
)

type RangeReportRequest struct {
	// Period plus Date derives the window; alternatively StartDate/EndDate
	// give an explicit inclusive range.
	Period    Period `json:"period,omitempty"`
	Date      string `json:"date,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`

	// WithTax adds the GST invoice lines (vendor-facing views).
	WithTax bool `json:"with_tax,omitempty"`
}

func (r *RangeReportRequest) Validate() error {
	var errs validator.ValidationErrors

	explicit := r.StartDate != "" || r.EndDate != ""
	if explicit {
		start, okStart := validator.IsValidDate(r.StartDate)
		if !okStart {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
		end, okEnd := validator.IsValidDate(r.EndDate)
		if !okEnd {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
		if okStart && okEnd && start.After(end) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
	} else {
		switch r.Period {
		case PeriodDay, PeriodWeek, PeriodMonth:
		case "":
			errs = append(errs, validator.ValidationError{
				Field:   "period",
				Message: "period is required when no explicit range is given",
			})
		default:
			errs = append(errs, validator.ValidationError{
				Field:   "period",
				Message: fmt.Sprintf("period must be one of %q, %q, %q", PeriodDay, PeriodWeek, PeriodMonth),
			})
		}
		if r.Date != "" {
			if _, ok := validator.IsValidDate(r.Date); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   "date",
					Message: "date must be in YYYY-MM-DD format",
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Window resolves the inclusive [start, end] range. now anchors periods when
// no explicit date was given.
func (r *RangeReportRequest) Window(now time.Time) (start, end time.Time) {
	if r.StartDate != "" || r.EndDate != "" {
		start, _ = time.Parse("2006-01-02", r.StartDate)
		end, _ = time.Parse("2006-01-02", r.EndDate)
		return start, end
	}

	anchor := now
	if r.Date != "" {
		if d, ok := validator.IsValidDate(r.Date); ok {
			anchor = d
		}
	}
	anchor = time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, time.UTC)

	switch r.Period {
	case PeriodWeek:
		// ISO week: Monday through Sunday.
		offset := (int(anchor.Weekday()) + 6) % 7
		start = anchor.AddDate(0, 0, -offset)
		end = start.AddDate(0, 0, 6)
	case PeriodMonth:
		start = time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, -1)
	default:
		start, end = anchor, anchor
	}
	return start, end
}

type ReportRow struct {
	EmployeeNumber string `json:"employee_number"`
	EmployeeName   string `json:"employee_name"`
	Department     string `json:"department"`
	RedemptionDate string `json:"redemption_date"`
	RedeemedAt     string `json:"redeemed_at"`
	CouponValue    int    `json:"coupon_value"`
}

type RangeReport struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	GeneratedAt string `json:"generated_at"`

	TotalRedemptions int   `json:"total_redemptions"`
	UniqueEmployees  int   `json:"unique_employees"`
	CouponValue      int   `json:"coupon_value"`
	Subtotal         int64 `json:"subtotal"`

	// Invoice lines, present only when requested with tax.
	GSTPercentage *float64 `json:"gst_percentage,omitempty"`
	Tax           *int64   `json:"tax,omitempty"`
	Total         *int64   `json:"total,omitempty"`

	Rows []ReportRow `json:"rows"`
}
