package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestSchemaMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ensurer := NewMockSchemaEnsurer(ctrl)
	gomock.InOrder(
		ensurer.EXPECT().Ensure(gomock.Any()).Return(errors.New("db down")),
		ensurer.EXPECT().Ensure(gomock.Any()).Return(nil),
	)

	calls := 0
	handler := SchemaMiddleware(ensurer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))

	serve := func() int {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/login", nil))
		return rr.Code
	}

	assert.Equal(t, http.StatusInternalServerError, serve(), "failure is reported")
	assert.Equal(t, http.StatusOK, serve(), "next request retries")
	assert.Equal(t, http.StatusOK, serve(), "later requests skip the check")
	assert.Equal(t, 2, calls)
}
