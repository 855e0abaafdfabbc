package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/autorabit/mealcoupon-backend-go/internal/domain/report"
	"github.com/autorabit/mealcoupon-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Range(w http.ResponseWriter, r *http.Request)
	RangeCSV(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

func rangeRequestFromQuery(r *http.Request) report.RangeReportRequest {
	q := r.URL.Query()
	return report.RangeReportRequest{
		Period:    report.Period(q.Get("period")),
		Date:      q.Get("date"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		WithTax:   q.Get("with_tax") == "true",
	}
}

// Range implements ReportHandler.
func (h *ReportHandlerImpl) Range(w http.ResponseWriter, r *http.Request) {
	rpt, err := h.reportService.Generate(r.Context(), rangeRequestFromQuery(r))
	if err != nil {
		slog.Error("Range report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, rpt)
}

// RangeCSV implements ReportHandler.
func (h *ReportHandlerImpl) RangeCSV(w http.ResponseWriter, r *http.Request) {
	req := rangeRequestFromQuery(r)

	data, err := h.reportService.GenerateCSV(r.Context(), req)
	if err != nil {
		slog.Error("Range CSV report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	filename := "redemptions.csv"
	if req.StartDate != "" {
		filename = fmt.Sprintf("redemptions_%s_%s.csv", req.StartDate, req.EndDate)
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
