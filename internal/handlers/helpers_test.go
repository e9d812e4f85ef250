package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-finance-tracker/internal/middlewares"
	"github.com/sbilibin2017/gw-finance-tracker/internal/models"
	"github.com/stretchr/testify/require"
)

var testSession = models.Session{UserID: 7, Username: "john", SessionID: "sid-1"}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func withSession(r *http.Request) *http.Request {
	return r.WithContext(middlewares.WithSession(r.Context(), testSession))
}

func withID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// location returns the redirect target path and its flash query.
func location(t *testing.T, rec *httptest.ResponseRecorder) (string, url.Values) {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, rec.Code)
	u, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	return u.Path, u.Query()
}

func writeBody(body string) func(w io.Writer, name string, data any) error {
	return func(w io.Writer, name string, data any) error {
		_, err := io.WriteString(w, body)
		return err
	}
}
