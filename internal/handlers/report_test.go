package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-finance-tracker/internal/filters"
	"github.com/sbilibin2017/gw-finance-tracker/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockReportReader(ctrl)
	renderer := NewMockRenderer(ctrl)

	t.Run("explicit range", func(t *testing.T) {
		day := time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)
		data := &models.Report{
			DailyTrend: []models.DailyTotal{{Date: day, Total: decimal.RequireFromString("12.5")}},
		}

		mockSvc.EXPECT().Report(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, f filters.Filter) (*models.Report, error) {
				require.True(t, f.HasRange())
				assert.Equal(t, "2024-01-01", f.StartDate.Format(filters.DateLayout))
				assert.Equal(t, "2024-01-31", f.EndDate.Format(filters.DateLayout))
				assert.Equal(t, "income", f.Type)
				assert.Equal(t, filters.CategoryAll, f.Category)
				return data, nil
			})
		renderer.EXPECT().Render(gomock.Any(), "reports.html", gomock.Any()).
			DoAndReturn(func(w io.Writer, name string, v any) error {
				page := v.(ReportPage)
				assert.Equal(t, "2024-01-01", page.Filter.StartDate)
				assert.Equal(t, "2024-01-31", page.Filter.EndDate)
				assert.Equal(t, []string{"03/01/2024"}, page.DailyChart.Labels)
				assert.Equal(t, []float64{12.5}, page.DailyChart.Values)
				return nil
			})

		req := withSession(httptest.NewRequest(http.MethodGet, "/reports?start_date=2024-01-01&end_date=2024-01-31&type=income", nil))
		rec := httptest.NewRecorder()
		NewReportHandler(mockSvc, renderer).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("database failure", func(t *testing.T) {
		mockSvc.EXPECT().Report(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))

		rec := httptest.NewRecorder()
		NewReportHandler(mockSvc, renderer).ServeHTTP(rec, withSession(httptest.NewRequest(http.MethodGet, "/reports", nil)))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("no session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewReportHandler(mockSvc, renderer).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports", nil))

		path, _ := location(t, rec)
		assert.Equal(t, "/login", path)
	})
}
