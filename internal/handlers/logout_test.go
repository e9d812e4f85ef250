package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestLogoutHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockLogouter(ctrl)
	mockCookies := NewMockCookieWriter(ctrl)

	tests := []struct {
		name      string
		signedIn  bool
		mockSetup func()
	}{
		{
			name:     "revokes and clears",
			signedIn: true,
			mockSetup: func() {
				mockSvc.EXPECT().Logout(gomock.Any(), testSession).Return(nil)
				mockCookies.EXPECT().ClearCookie(gomock.Any())
			},
		},
		{
			name:     "cookie cleared when revocation fails",
			signedIn: true,
			mockSetup: func() {
				mockSvc.EXPECT().Logout(gomock.Any(), testSession).Return(errors.New("redis down"))
				mockCookies.EXPECT().ClearCookie(gomock.Any())
			},
		},
		{
			name: "anonymous",
			mockSetup: func() {
				mockCookies.EXPECT().ClearCookie(gomock.Any())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			req := httptest.NewRequest(http.MethodPost, "/logout", nil)
			if tt.signedIn {
				req = withSession(req)
			}
			rec := httptest.NewRecorder()
			NewLogoutHandler(mockSvc, mockCookies).ServeHTTP(rec, req)

			path, q := location(t, rec)
			assert.Equal(t, "/login", path)
			assert.Equal(t, "you have been logged out", q.Get("success"))
		})
	}
}

func TestIndexHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	NewIndexHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	path, _ := location(t, rec)
	assert.Equal(t, "/dashboard", path)
}
