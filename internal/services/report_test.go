package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-finance-tracker/internal/filters"
	"github.com/sbilibin2017/gw-finance-tracker/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestSavingsRate(t *testing.T) {
	tests := []struct {
		name    string
		income  decimal.Decimal
		expense decimal.Decimal
		want    decimal.Decimal
	}{
		{"no income", d(0), d(500), d(0)},
		{"nothing at all", d(0), d(0), d(0)},
		{"quarter spent", d(1000), d(250), d(75)},
		{"overspent", d(1000), d(1500), d(-50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SavingsRate(tt.income, tt.expense)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestBudgetStatus(t *testing.T) {
	assert.Equal(t, models.BudgetNormal, BudgetStatus(d(0)))
	assert.Equal(t, models.BudgetNormal, BudgetStatus(d(69)))
	assert.Equal(t, models.BudgetNormal, BudgetStatus(decimal.RequireFromString("69.99")))
	assert.Equal(t, models.BudgetWarning, BudgetStatus(d(70)))
	assert.Equal(t, models.BudgetWarning, BudgetStatus(decimal.RequireFromString("89.99")))
	assert.Equal(t, models.BudgetCritical, BudgetStatus(d(90)))
	assert.Equal(t, models.BudgetCritical, BudgetStatus(d(150)))
}

func TestNewBudgetUtilization(t *testing.T) {
	t.Run("within budget", func(t *testing.T) {
		u := NewBudgetUtilization(models.BudgetSpending{ID: 1, Category: "Food", BudgetAmount: d(1000), Spent: d(700)})
		assert.True(t, d(300).Equal(u.Remaining))
		assert.True(t, d(70).Equal(u.Percent))
		assert.Equal(t, models.BudgetWarning, u.Status)
	})

	t.Run("overspent clamps remaining", func(t *testing.T) {
		u := NewBudgetUtilization(models.BudgetSpending{BudgetAmount: d(1000), Spent: d(1200)})
		assert.True(t, u.Remaining.IsZero())
		assert.True(t, d(120).Equal(u.Percent))
		assert.Equal(t, models.BudgetCritical, u.Status)
	})

	t.Run("zero budget", func(t *testing.T) {
		u := NewBudgetUtilization(models.BudgetSpending{BudgetAmount: d(0), Spent: d(10)})
		assert.True(t, u.Percent.IsZero())
		assert.Equal(t, models.BudgetNormal, u.Status)
	})
}

type reportMocks struct {
	reports      *MockReportStore
	transactions *MockActivityReader
	categories   *MockCategoryLister
}

func newReportService(t *testing.T, now time.Time) (*ReportService, reportMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := reportMocks{
		reports:      NewMockReportStore(ctrl),
		transactions: NewMockActivityReader(ctrl),
		categories:   NewMockCategoryLister(ctrl),
	}
	svc := NewReportService(m.reports, m.transactions, m.categories)
	svc.now = func() time.Time { return now }
	return svc, m
}

func TestReportService_SeriesStart(t *testing.T) {
	tests := []struct {
		now  time.Time
		want time.Time
	}{
		{time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC), time.Date(2023, time.September, 15, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, time.August, 31, 23, 0, 0, 0, time.UTC), time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)},
		{time.Date(2023, time.August, 31, 8, 0, 0, 0, time.UTC), time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, time.December, 31, 8, 0, 0, 0, time.UTC), time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, time.May, 31, 8, 0, 0, 0, time.UTC), time.Date(2023, time.November, 30, 0, 0, 0, 0, time.UTC)},
		// Late evening west of UTC is still the local calendar day.
		{time.Date(2024, time.August, 31, 22, 0, 0, 0, time.FixedZone("UTC-5", -5*3600)), time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.now.Format(time.RFC3339), func(t *testing.T) {
			svc, _ := newReportService(t, tt.now)
			assert.Equal(t, tt.want, svc.seriesStart())
		})
	}
}

func TestReportService_Dashboard(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	svc, m := newReportService(t, now)

	f := filters.Filter{UserID: 1, Type: models.Expense, Category: "Food", Month: 1, Year: 2024}
	period := f.PeriodOnly()

	m.transactions.EXPECT().List(gomock.Any(), f).Return([]models.TransactionDB{{ID: 1}}, nil)
	m.reports.EXPECT().Totals(gomock.Any(), period).Return(models.Totals{Income: d(10000), Expense: d(2500)}, nil)
	m.transactions.EXPECT().Recent(gomock.Any(), int64(1), 5).Return([]models.TransactionDB{{ID: 2}}, nil)
	m.categories.EXPECT().List(gomock.Any(), int64(1)).Return([]models.CategoryDB{{Name: "Rent"}, {Name: "Food"}}, nil)
	m.transactions.EXPECT().UsedCategories(gomock.Any(), int64(1)).Return([]string{"Food", "Coffee"}, nil)
	m.reports.EXPECT().MonthlySeries(gomock.Any(), int64(1), time.Date(2023, time.September, 15, 0, 0, 0, 0, time.UTC)).
		Return([]models.MonthlyTotal{{Month: "2024-01", Income: d(10000)}}, nil)
	m.reports.EXPECT().CategoryBreakdown(gomock.Any(), period).Return([]models.CategoryTotal{{Category: "Food", Total: d(2500)}}, nil)

	dash, err := svc.Dashboard(context.Background(), f)
	require.NoError(t, err)

	assert.Len(t, dash.Transactions, 1)
	assert.True(t, d(7500).Equal(dash.Totals.Balance()))
	assert.Equal(t, []string{"Coffee", "Food", "Rent"}, dash.Categories)
	assert.Equal(t, "2024-01", dash.Monthly[0].Month)
	assert.Len(t, dash.CategoryBreakdown, 1)
}

func TestReportService_DashboardInvalidFilter(t *testing.T) {
	svc, _ := newReportService(t, time.Now())

	_, err := svc.Dashboard(context.Background(), filters.Filter{UserID: 1, Type: "bogus"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReportService_Report(t *testing.T) {
	now := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	svc, m := newReportService(t, now)

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	f := filters.Filter{UserID: 1, StartDate: &start, EndDate: &end, Type: models.Income}
	period := f.PeriodOnly()

	m.transactions.EXPECT().List(gomock.Any(), f).Return(nil, nil)
	m.reports.EXPECT().Totals(gomock.Any(), period).Return(models.Totals{Income: d(1000), Expense: d(250)}, nil)
	m.reports.EXPECT().MonthlySeries(gomock.Any(), int64(1), gomock.Any()).Return(nil, nil)
	m.reports.EXPECT().CategoryBreakdown(gomock.Any(), period).Return(nil, nil)
	m.reports.EXPECT().DailyTrend(gomock.Any(), period).Return(nil, nil)
	m.reports.EXPECT().BudgetSpending(gomock.Any(), int64(1),
		time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)).
		Return([]models.BudgetSpending{
			{ID: 1, Category: "Food", BudgetAmount: d(1000), Spent: d(690)},
			{ID: 2, Category: "Rent", BudgetAmount: d(1000), Spent: d(900)},
		}, nil)
	m.reports.EXPECT().TopExpenses(gomock.Any(), period, 5).Return(nil, nil)
	m.categories.EXPECT().List(gomock.Any(), int64(1)).Return(nil, nil)
	m.transactions.EXPECT().UsedCategories(gomock.Any(), int64(1)).Return(nil, nil)

	report, err := svc.Report(context.Background(), f)
	require.NoError(t, err)

	assert.True(t, d(75).Equal(report.SavingsRate))
	require.Len(t, report.Budgets, 2)
	assert.Equal(t, models.BudgetNormal, report.Budgets[0].Status)
	assert.Equal(t, models.BudgetCritical, report.Budgets[1].Status)
	assert.Empty(t, report.Categories)
}

func TestReportService_ReportDatabaseError(t *testing.T) {
	svc, m := newReportService(t, time.Now())
	f := filters.Filter{UserID: 1}
	boom := errors.New("boom")

	m.transactions.EXPECT().List(gomock.Any(), f).Return(nil, nil)
	m.reports.EXPECT().Totals(gomock.Any(), f.PeriodOnly()).Return(models.Totals{}, boom)

	_, err := svc.Report(context.Background(), f)
	assert.ErrorIs(t, err, ErrDatabase)
	assert.ErrorIs(t, err, boom)
}
