package services

import (
	"context"
	"sort"
	"time"

	"github.com/sbilibin2017/gw-finance-tracker/internal/filters"
	"github.com/sbilibin2017/gw-finance-tracker/internal/logger"
	"github.com/sbilibin2017/gw-finance-tracker/internal/models"
	"github.com/shopspring/decimal"
)

const (
	recentLimit      = 5
	topExpensesLimit = 5
	seriesMonths     = 6
)

var (
	hundred           = decimal.NewFromInt(100)
	warningThreshold  = decimal.NewFromInt(70)
	criticalThreshold = decimal.NewFromInt(90)
)

// ReportStore runs the grouped queries.
type ReportStore interface {
	Totals(ctx context.Context, f filters.Filter) (models.Totals, error)
	MonthlySeries(ctx context.Context, userID int64, since time.Time) ([]models.MonthlyTotal, error)
	CategoryBreakdown(ctx context.Context, f filters.Filter) ([]models.CategoryTotal, error)
	DailyTrend(ctx context.Context, f filters.Filter) ([]models.DailyTotal, error)
	BudgetSpending(ctx context.Context, userID int64, from, to time.Time) ([]models.BudgetSpending, error)
	TopExpenses(ctx context.Context, f filters.Filter, limit int) ([]models.TransactionDB, error)
}

// ActivityReader lists transactions for the report pages.
type ActivityReader interface {
	List(ctx context.Context, f filters.Filter) ([]models.TransactionDB, error)
	Recent(ctx context.Context, userID int64, limit int) ([]models.TransactionDB, error)
	UsedCategories(ctx context.Context, userID int64) ([]string, error)
}

// CategoryLister lists the user's managed categories.
type CategoryLister interface {
	List(ctx context.Context, userID int64) ([]models.CategoryDB, error)
}

// ReportService assembles the dashboard and report pages.
type ReportService struct {
	reports      ReportStore
	transactions ActivityReader
	categories   CategoryLister
	now          func() time.Time
}

// NewReportService creates a new ReportService using the wall clock.
func NewReportService(reports ReportStore, transactions ActivityReader, categories CategoryLister) *ReportService {
	return &ReportService{
		reports:      reports,
		transactions: transactions,
		categories:   categories,
		now:          time.Now,
	}
}

// Dashboard returns the filtered transactions together with the summary of
// the selected period, the latest activity and the six-month series.
func (s *ReportService) Dashboard(ctx context.Context, f filters.Filter) (*models.Dashboard, error) {
	if err := f.Validate(); err != nil {
		return nil, &Error{Kind: ErrValidation, Message: "invalid filter", Err: err}
	}

	var (
		d   models.Dashboard
		err error
	)
	period := f.PeriodOnly()

	if d.Transactions, err = s.transactions.List(ctx, f); err != nil {
		return nil, s.fail(ctx, "list transactions", f.UserID, err)
	}
	if d.Totals, err = s.reports.Totals(ctx, period); err != nil {
		return nil, s.fail(ctx, "totals", f.UserID, err)
	}
	if d.Recent, err = s.transactions.Recent(ctx, f.UserID, recentLimit); err != nil {
		return nil, s.fail(ctx, "recent activity", f.UserID, err)
	}
	if d.Categories, err = s.categoryNames(ctx, f.UserID); err != nil {
		return nil, s.fail(ctx, "categories", f.UserID, err)
	}
	if d.Monthly, err = s.reports.MonthlySeries(ctx, f.UserID, s.seriesStart()); err != nil {
		return nil, s.fail(ctx, "monthly series", f.UserID, err)
	}
	if d.CategoryBreakdown, err = s.reports.CategoryBreakdown(ctx, period); err != nil {
		return nil, s.fail(ctx, "category breakdown", f.UserID, err)
	}

	return &d, nil
}

// Report returns everything the report page shows for the filter.
// Budgets always reflect the current calendar month.
func (s *ReportService) Report(ctx context.Context, f filters.Filter) (*models.Report, error) {
	if err := f.Validate(); err != nil {
		return nil, &Error{Kind: ErrValidation, Message: "invalid filter", Err: err}
	}

	var (
		r   models.Report
		err error
	)
	period := f.PeriodOnly()

	if r.Transactions, err = s.transactions.List(ctx, f); err != nil {
		return nil, s.fail(ctx, "list transactions", f.UserID, err)
	}
	if r.Totals, err = s.reports.Totals(ctx, period); err != nil {
		return nil, s.fail(ctx, "totals", f.UserID, err)
	}
	r.SavingsRate = SavingsRate(r.Totals.Income, r.Totals.Expense)

	if r.Monthly, err = s.reports.MonthlySeries(ctx, f.UserID, s.seriesStart()); err != nil {
		return nil, s.fail(ctx, "monthly series", f.UserID, err)
	}
	if r.CategoryBreakdown, err = s.reports.CategoryBreakdown(ctx, period); err != nil {
		return nil, s.fail(ctx, "category breakdown", f.UserID, err)
	}
	if r.DailyTrend, err = s.reports.DailyTrend(ctx, period); err != nil {
		return nil, s.fail(ctx, "daily trend", f.UserID, err)
	}

	from, to := filters.MonthRange(s.now())
	spending, err := s.reports.BudgetSpending(ctx, f.UserID, from, to)
	if err != nil {
		return nil, s.fail(ctx, "budget spending", f.UserID, err)
	}
	r.Budgets = make([]models.BudgetUtilization, 0, len(spending))
	for _, b := range spending {
		r.Budgets = append(r.Budgets, NewBudgetUtilization(b))
	}

	if r.TopExpenses, err = s.reports.TopExpenses(ctx, period, topExpensesLimit); err != nil {
		return nil, s.fail(ctx, "top expenses", f.UserID, err)
	}
	if r.Categories, err = s.categoryNames(ctx, f.UserID); err != nil {
		return nil, s.fail(ctx, "categories", f.UserID, err)
	}

	return &r, nil
}

// seriesStart is today's date in the server's zone moved back seriesMonths
// calendar months. The day is clamped to the end of the target month, so
// 31 August starts the window on the last day of February.
func (s *ReportService) seriesStart() time.Time {
	now := s.now()
	first := time.Date(now.Year(), now.Month()-seriesMonths, 1, 0, 0, 0, 0, time.UTC)
	lastDay := first.AddDate(0, 1, -1).Day()
	day := now.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// categoryNames merges the managed categories with the names found on
// transactions, sorted and without duplicates.
func (s *ReportService) categoryNames(ctx context.Context, userID int64) ([]string, error) {
	managed, err := s.categories.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	used, err := s.transactions.UsedCategories(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(managed)+len(used))
	names := make([]string, 0, len(managed)+len(used))
	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	for _, c := range managed {
		add(c.Name)
	}
	for _, name := range used {
		add(name)
	}

	sort.Strings(names)
	return names, nil
}

func (s *ReportService) fail(ctx context.Context, step string, userID int64, err error) error {
	logger.FromContext(ctx).Errorw("failed to build report", "step", step, "user_id", userID, "error", err)
	return databaseError("could not load report data", err)
}

// SavingsRate is (income - expense) / income * 100, or 0 when there is no income.
func SavingsRate(income, expense decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}
	return income.Sub(expense).Div(income).Mul(hundred)
}

// NewBudgetUtilization computes remaining amount, percentage and tier of a budget.
func NewBudgetUtilization(b models.BudgetSpending) models.BudgetUtilization {
	remaining := b.BudgetAmount.Sub(b.Spent)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	percent := decimal.Zero
	if b.BudgetAmount.IsPositive() {
		percent = b.Spent.Div(b.BudgetAmount).Mul(hundred)
	}

	return models.BudgetUtilization{
		ID:           b.ID,
		Category:     b.Category,
		BudgetAmount: b.BudgetAmount,
		Spent:        b.Spent,
		Remaining:    remaining,
		Percent:      percent,
		Status:       BudgetStatus(percent),
	}
}

// BudgetStatus maps a utilization percentage to its tier.
func BudgetStatus(percent decimal.Decimal) string {
	switch {
	case percent.GreaterThanOrEqual(criticalThreshold):
		return models.BudgetCritical
	case percent.GreaterThanOrEqual(warningThreshold):
		return models.BudgetWarning
	default:
		return models.BudgetNormal
	}
}
