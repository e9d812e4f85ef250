package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRupiah(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "Rp 0"},
		{"999", "Rp 999"},
		{"1000", "Rp 1.000"},
		{"1234567", "Rp 1.234.567"},
		{"2500.50", "Rp 2.501"},
		{"-15000", "-Rp 15.000"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Rupiah(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestDate(t *testing.T) {
	assert.Equal(t, "03/02/2024", Date(time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC)))
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Jan 2024", MonthLabel("2024-01"))
	assert.Equal(t, "Dec 2023", MonthLabel("2023-12"))
	assert.Equal(t, "garbage", MonthLabel("garbage"))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "75.0%", Percent(decimal.NewFromInt(75)))
	assert.Equal(t, "33.3%", Percent(decimal.RequireFromString("33.333")))
}
