package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sbilibin2017/gw-finance-tracker/internal/filters"
	"github.com/sbilibin2017/gw-finance-tracker/internal/models"
	"github.com/sbilibin2017/gw-finance-tracker/internal/services"
)

// ReportReader builds the report data.
type ReportReader interface {
	Report(ctx context.Context, f filters.Filter) (*models.Report, error)
}

// ReportPage is the data of reports.html.
type ReportPage struct {
	Page
	Filter        FilterView
	Data          *models.Report
	MonthlyChart  Chart
	CategoryChart Chart
	DailyChart    Chart
}

// NewReportHandler renders the report for the start_date, end_date, type and category query parameters.
func NewReportHandler(svc ReportReader, renderer Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}

		f, view := parseReportFilter(r, session.UserID, time.Now())

		data, err := svc.Report(r.Context(), f)
		if errors.Is(err, services.ErrValidation) {
			redirectError(w, r, "/reports", err)
			return
		}
		if err != nil {
			serverError(w, r, err)
			return
		}

		render(w, r, renderer, "reports.html", ReportPage{
			Page:          newPage(r, "Reports"),
			Filter:        view,
			Data:          data,
			MonthlyChart:  monthlyChart(data.Monthly),
			CategoryChart: categoryChart(data.CategoryBreakdown),
			DailyChart:    dailyChart(data.DailyTrend),
		})
	}
}
