package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/sbilibin2017/gw-finance-tracker/internal/filters"
	"github.com/sbilibin2017/gw-finance-tracker/internal/format"
	"github.com/sbilibin2017/gw-finance-tracker/internal/logger"
	"github.com/sbilibin2017/gw-finance-tracker/internal/middlewares"
	"github.com/sbilibin2017/gw-finance-tracker/internal/models"
	"github.com/sbilibin2017/gw-finance-tracker/internal/services"
)

const genericErrorMessage = "something went wrong, please try again"

// Flash query parameters set by redirects after a form submission.
const (
	flashSuccess = "success"
	flashError   = "error"
)

// Renderer executes a named page template.
type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

// Templates renders pages parsed from a template file system. Every page is
// parsed together with layout.html and executed through the "layout" template.
type Templates struct {
	pages map[string]*template.Template
}

// TemplateFuncs are available to every page.
var TemplateFuncs = template.FuncMap{
	"rupiah":     format.Rupiah,
	"date":       format.Date,
	"monthLabel": format.MonthLabel,
	"percent":    format.Percent,
	"isoDate": func(t time.Time) string {
		return t.Format(filters.DateLayout)
	},
	"monthName": func(m int) string {
		return time.Month(m).String()
	},
	"months": func() []int {
		return []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	},
}

// NewTemplates parses templates/layout.html plus every other templates/*.html page of fsys.
func NewTemplates(fsys fs.FS) (*Templates, error) {
	files, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template)
	for _, file := range files {
		name := path.Base(file)
		if name == "layout.html" {
			continue
		}

		t, err := template.New(name).Funcs(TemplateFuncs).ParseFS(fsys, "templates/layout.html", file)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}

	return &Templates{pages: pages}, nil
}

// Render executes the page name with data.
func (t *Templates) Render(w io.Writer, name string, data any) error {
	page, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	return page.ExecuteTemplate(w, "layout", data)
}

// Flash is the one-shot message shown after a redirect.
type Flash struct {
	Success string
	Error   string
}

// Page holds what the layout needs on every page.
type Page struct {
	Title   string
	Flash   Flash
	Session models.Session
}

func newPage(r *http.Request, title string) Page {
	session, _ := middlewares.SessionFromContext(r.Context())
	q := r.URL.Query()
	return Page{
		Title:   title,
		Flash:   Flash{Success: q.Get(flashSuccess), Error: q.Get(flashError)},
		Session: session,
	}
}

// render executes the template into a buffer so a failing template never
// produces half a page.
func render(w http.ResponseWriter, r *http.Request, renderer Renderer, name string, data any) {
	var buf bytes.Buffer
	if err := renderer.Render(&buf, name, data); err != nil {
		logger.FromContext(r.Context()).Errorw("failed to render template", "template", name, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func redirectWithFlash(w http.ResponseWriter, r *http.Request, target, key, message string) {
	u := url.URL{Path: target}
	if message != "" {
		u.RawQuery = url.Values{key: []string{message}}.Encode()
	}
	http.Redirect(w, r, u.String(), http.StatusSeeOther)
}

func redirectSuccess(w http.ResponseWriter, r *http.Request, target, message string) {
	redirectWithFlash(w, r, target, flashSuccess, message)
}

// redirectError shows the user-facing message of err, or a generic one for
// unexpected failures which are logged.
func redirectError(w http.ResponseWriter, r *http.Request, target string, err error) {
	var svcErr *services.Error
	if !errors.As(err, &svcErr) || errors.Is(err, services.ErrDatabase) {
		logger.FromContext(r.Context()).Errorw("request failed", "path", r.URL.Path, "err", err)
	}
	redirectWithFlash(w, r, target, flashError, services.UserMessage(err, genericErrorMessage))
}

// serverError answers 500 for failures that leave nothing to show.
func serverError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContext(r.Context()).Errorw("request failed", "path", r.URL.Path, "err", err)
	http.Error(w, services.UserMessage(err, genericErrorMessage), http.StatusInternalServerError)
}

// requireSession returns the session put in the context by the auth middleware.
func requireSession(w http.ResponseWriter, r *http.Request) (models.Session, bool) {
	session, ok := middlewares.SessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, middlewares.LoginPath, http.StatusSeeOther)
	}
	return session, ok
}
