package handlers

import (
	"github.com/sbilibin2017/gw-finance-tracker/internal/format"
	"github.com/sbilibin2017/gw-finance-tracker/internal/models"
)

// Chart is the data handed to Chart.js. html/template encodes it as JSON
// inside <script> blocks.
type Chart struct {
	Labels  []string  `json:"labels"`
	Income  []float64 `json:"income,omitempty"`
	Expense []float64 `json:"expense,omitempty"`
	Values  []float64 `json:"values,omitempty"`
}

func monthlyChart(series []models.MonthlyTotal) Chart {
	c := Chart{
		Labels:  make([]string, 0, len(series)),
		Income:  make([]float64, 0, len(series)),
		Expense: make([]float64, 0, len(series)),
	}
	for _, m := range series {
		c.Labels = append(c.Labels, format.MonthLabel(m.Month))
		c.Income = append(c.Income, m.Income.InexactFloat64())
		c.Expense = append(c.Expense, m.Expense.InexactFloat64())
	}
	return c
}

func categoryChart(breakdown []models.CategoryTotal) Chart {
	c := Chart{
		Labels: make([]string, 0, len(breakdown)),
		Values: make([]float64, 0, len(breakdown)),
	}
	for _, b := range breakdown {
		c.Labels = append(c.Labels, b.Category)
		c.Values = append(c.Values, b.Total.InexactFloat64())
	}
	return c
}

func dailyChart(trend []models.DailyTotal) Chart {
	c := Chart{
		Labels: make([]string, 0, len(trend)),
		Values: make([]float64, 0, len(trend)),
	}
	for _, d := range trend {
		c.Labels = append(c.Labels, format.Date(d.Date))
		c.Values = append(c.Values, d.Total.InexactFloat64())
	}
	return c
}
