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

// DashboardReader builds the dashboard data.
type DashboardReader interface {
	Dashboard(ctx context.Context, f filters.Filter) (*models.Dashboard, error)
}

// DashboardPage is the data of dashboard.html.
type DashboardPage struct {
	Page
	Filter        FilterView
	Years         []int
	Today         string
	Data          *models.Dashboard
	MonthlyChart  Chart
	CategoryChart Chart
}

// NewDashboardHandler renders the dashboard for the month, year, type and category query parameters.
func NewDashboardHandler(svc DashboardReader, renderer Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}

		now := time.Now()
		f, view := parseDashboardFilter(r, session.UserID, now)

		data, err := svc.Dashboard(r.Context(), f)
		if errors.Is(err, services.ErrValidation) {
			redirectError(w, r, "/dashboard", err)
			return
		}
		if err != nil {
			serverError(w, r, err)
			return
		}

		render(w, r, renderer, "dashboard.html", DashboardPage{
			Page:          newPage(r, "Dashboard"),
			Filter:        view,
			Years:         yearOptions(now.Year()),
			Today:         now.Format(filters.DateLayout),
			Data:          data,
			MonthlyChart:  monthlyChart(data.Monthly),
			CategoryChart: categoryChart(data.CategoryBreakdown),
		})
	}
}

// yearOptions lists the current year and the four before it.
func yearOptions(current int) []int {
	years := make([]int, 0, 5)
	for y := current; y > current-5; y-- {
		years = append(years, y)
	}
	return years
}
