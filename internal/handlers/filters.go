package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sbilibin2017/gw-finance-tracker/internal/filters"
)

// FilterView is the filter as echoed back into the filter form.
type FilterView struct {
	Month     int
	Year      int
	Type      string
	Category  string
	StartDate string
	EndDate   string
}

func queryOr(r *http.Request, key, fallback string) string {
	if v := strings.TrimSpace(r.URL.Query().Get(key)); v != "" {
		return v
	}
	return fallback
}

func queryInt(r *http.Request, key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(key)))
	if err != nil {
		return fallback
	}
	return v
}

func queryDate(r *http.Request, key string, fallback time.Time) time.Time {
	v, err := time.Parse(filters.DateLayout, strings.TrimSpace(r.URL.Query().Get(key)))
	if err != nil {
		return fallback
	}
	return v
}

// parseDashboardFilter reads month, year, type and category. Month and year
// default to the current month; type and category default to all.
func parseDashboardFilter(r *http.Request, userID int64, now time.Time) (filters.Filter, FilterView) {
	f := filters.Filter{
		UserID:   userID,
		Type:     queryOr(r, "type", filters.TypeAll),
		Category: queryOr(r, "category", filters.CategoryAll),
		Month:    queryInt(r, "month", int(now.Month())),
		Year:     queryInt(r, "year", now.Year()),
	}

	return f, FilterView{Month: f.Month, Year: f.Year, Type: f.Type, Category: f.Category}
}

// parseReportFilter reads start_date, end_date, type and category. The range
// defaults to the first and last day of the current month.
func parseReportFilter(r *http.Request, userID int64, now time.Time) (filters.Filter, FilterView) {
	monthStart, monthEnd := filters.MonthRange(now)
	start := queryDate(r, "start_date", monthStart)
	end := queryDate(r, "end_date", monthEnd)

	f := filters.Filter{
		UserID:    userID,
		Type:      queryOr(r, "type", filters.TypeAll),
		Category:  queryOr(r, "category", filters.CategoryAll),
		StartDate: &start,
		EndDate:   &end,
	}

	return f, FilterView{
		Type:      f.Type,
		Category:  f.Category,
		StartDate: start.Format(filters.DateLayout),
		EndDate:   end.Format(filters.DateLayout),
	}
}
