// Package filters turns the optional transaction filters of the dashboard and
// report pages into a parameterized WHERE clause.
//
// User input only ever travels in the returned argument list; the clause text
// is assembled from fixed fragments.
package filters

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-finance-tracker/internal/models"
)

// Sentinel filter values
const (
	TypeAll               = "all"
	CategoryAll           = "all"
	CategoryUncategorized = models.Uncategorized
)

// DateLayout is the wire format of date filters and form fields.
const DateLayout = "2006-01-02"

// ErrInvalidFilter is returned by Validate for filters that cannot be translated.
var ErrInvalidFilter = errors.New("invalid filter")

// Filter is the structured predicate over a user's transactions.
type Filter struct {
	UserID    int64
	Type      string     // all (or empty), income, expense
	Category  string     // all (or empty), uncategorized, or a category name
	Month     int        // 1..12, used together with Year
	Year      int        // used together with Month
	StartDate *time.Time // inclusive, used together with EndDate
	EndDate   *time.Time // inclusive
}

// Validate reports filters that would produce a meaningless query.
func (f Filter) Validate() error {
	switch f.Type {
	case "", TypeAll, models.Income, models.Expense:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidFilter, f.Type)
	}

	if f.Month != 0 || f.Year != 0 {
		if f.Month < 1 || f.Month > 12 {
			return fmt.Errorf("%w: month %d out of range", ErrInvalidFilter, f.Month)
		}
		if f.Year < 1 || f.Year > 9999 {
			return fmt.Errorf("%w: year %d out of range", ErrInvalidFilter, f.Year)
		}
	}

	if (f.StartDate == nil) != (f.EndDate == nil) {
		return fmt.Errorf("%w: date range needs both start and end", ErrInvalidFilter)
	}
	if f.StartDate != nil && f.StartDate.After(*f.EndDate) {
		return fmt.Errorf("%w: start date after end date", ErrInvalidFilter)
	}

	return nil
}

// HasRange reports whether the filter restricts by an explicit date range.
func (f Filter) HasRange() bool {
	return f.StartDate != nil && f.EndDate != nil
}

// HasMonth reports whether the filter restricts by calendar month.
func (f Filter) HasMonth() bool {
	return f.Month != 0 && f.Year != 0
}

// Where returns the predicate with '?' placeholders and its arguments.
// A date range takes precedence over month/year.
func (f Filter) Where() (string, []any) {
	clauses := []string{"user_id = ?"}
	args := []any{f.UserID}

	if f.Type != "" && f.Type != TypeAll {
		clauses = append(clauses, "type = ?")
		args = append(args, f.Type)
	}

	switch f.Category {
	case "", CategoryAll:
	case CategoryUncategorized:
		clauses = append(clauses, "(category IS NULL OR category = '')")
	default:
		clauses = append(clauses, "category = ?")
		args = append(args, f.Category)
	}

	switch {
	case f.HasRange():
		clauses = append(clauses, "date BETWEEN ? AND ?")
		args = append(args, f.StartDate.Format(DateLayout), f.EndDate.Format(DateLayout))
	case f.HasMonth():
		clauses = append(clauses, "EXTRACT(MONTH FROM date) = ?", "EXTRACT(YEAR FROM date) = ?")
		args = append(args, f.Month, f.Year)
	}

	return strings.Join(clauses, " AND "), args
}

// Query builds "<base> WHERE <predicate><suffix>" rebound to PostgreSQL placeholders.
func (f Filter) Query(base, suffix string) (string, []any) {
	where, args := f.Where()
	query := base + " WHERE " + where + suffix
	return sqlx.Rebind(sqlx.DOLLAR, query), args
}

// WithType returns a copy restricted to one transaction type.
func (f Filter) WithType(t string) Filter {
	f.Type = t
	return f
}

// PeriodOnly returns a copy that keeps only the user and period restrictions.
func (f Filter) PeriodOnly() Filter {
	f.Type = TypeAll
	f.Category = CategoryAll
	return f
}

// MonthRange returns the first and last day of the month containing t.
func MonthRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}
