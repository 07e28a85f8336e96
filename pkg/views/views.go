// Package views renders HTML pages of the polyclinic.
//
// Each page is rendered by its own template, then wrapped with the layout.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/daariikk/myhelp-web/pkg/api/types/polyclinic"
	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns files to be served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Page names.
const (
	Home                = "home"
	Doctors             = "doctors"
	Schedule            = "schedule"
	Login               = "login"
	Register            = "register"
	Account             = "account"
	AdminLogin          = "admin_login"
	Admin               = "admin"
	AdminSpecialization = "admin_specialization"
	Error               = "error"
	layoutName          = "layout"
)

var pageNames = []string{
	Home, Doctors, Schedule, Login, Register, Account,
	AdminLogin, Admin, AdminSpecialization, Error,
}

// Framed is page data which tells how the layout around the page looks.
type Framed interface {
	Frame() Layout
}

// Renderer renders pages. It implements echo.Renderer.
type Renderer struct {
	layout *template.Template
	pages  map[string]*template.Template
}

var _ echo.Renderer = &Renderer{}

func New() (*Renderer, error) {
	funcs := Funcs()

	layout, err := template.New(layoutName + ".html").Funcs(funcs).
		ParseFS(templatesFS, "templates/"+layoutName+".html")
	if err != nil {
		return nil, err
	}

	pages := map[string]*template.Template{}
	for _, name := range pageNames {
		t, err := template.New(name + ".html").Funcs(funcs).
			ParseFS(templatesFS, "templates/"+name+".html")
		if err != nil {
			return nil, err
		}
		pages[name] = t
	}

	return &Renderer{layout: layout, pages: pages}, nil
}

type framedContent struct {
	Layout
	Content template.HTML
}

// Render writes the page named name with data.
//
// If data is Framed, its Layout is used for the layout. Otherwise, zero Layout is.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	page, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("views: unknown page: %s", name)
	}

	buf := new(bytes.Buffer)
	if err := page.Execute(buf, data); err != nil {
		return err
	}

	frame := framedContent{Content: template.HTML(buf.String())}
	if f, ok := data.(Framed); ok {
		frame.Layout = f.Frame()
	}
	return r.layout.Execute(w, frame)
}

var monthsGenitive = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

var weekdaysShort = [...]string{"вс", "пн", "вт", "ср", "чт", "пт", "сб"}

// RuDate formats YYYY-MM-DD as "пн, 19 октября 2026 г.".
//
// Other values are returned as is.
func RuDate(date string) string {
	t, err := time.Parse(polyclinic.DateLayout, date)
	if err != nil {
		return date
	}
	return fmt.Sprintf(
		"%s, %d %s %d г.",
		weekdaysShort[t.Weekday()], t.Day(), monthsGenitive[t.Month()-1], t.Year(),
	)
}

// NumericDate formats YYYY-MM-DD as "19.10.2026".
func NumericDate(date string) string {
	t, err := time.Parse(polyclinic.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("02.01.2006")
}

// Funcs returns functions available in templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"ruDate":      RuDate,
		"numericDate": NumericDate,
		"hhmm": func(t string) string {
			if len(t) >= 5 {
				return t[:5]
			}
			return t
		},
		"statusClass": func(status string) string {
			return "status-" + strings.ToLower(status)
		},
		"stars": func() []int {
			return []int{1, 2, 3, 4, 5}
		},
		"filled": func(rating float64, star int) bool {
			return float64(star) <= rating
		},
	}
}
