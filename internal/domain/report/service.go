package report

import "context"

type ReportService interface {
	// Generate builds the aggregate for the requested window.
	Generate(ctx context.Context, req RangeReportRequest) (RangeReport, error)

	// GenerateCSV renders the same aggregate as delimited text.
	GenerateCSV(ctx context.Context, req RangeReportRequest) ([]byte, error)
}
