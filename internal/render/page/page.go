// Package page renders controller views as HTML documents.
package page

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"math"
	"strconv"

	"github.com/okian/zoneprofile/internal/app"
	"github.com/okian/zoneprofile/internal/domain/format"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = map[app.State]*template.Template{
	app.StateLoggedOut:      parse("login"),
	app.StateAuthenticating: parse("loading"),
	app.StateLoadingProfile: parse("loading"),
	app.StateProfileShown:   parse("profile"),
	app.StateError:          parse("error"),
}

func parse(name string) *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
}

// loadingRefresh is how often a loading page polls for the result.
const loadingRefresh = 1

type options struct {
	inlineCSS string
	forms     bool
}

// Option configures Render.
type Option func(*options)

// WithInlineCSS embeds css in the document instead of linking the stylesheet.
func WithInlineCSS(css []byte) Option {
	return func(o *options) {
		o.inlineCSS = string(css)
	}
}

// WithoutForms omits the logout buttons. Offline snapshots use it.
func WithoutForms() Option {
	return func(o *options) {
		o.forms = false
	}
}

type document struct {
	Title          string
	State          string
	Message        string
	RefreshSeconds int
	InlineCSS      template.CSS
	Forms          bool

	Login      string
	FullName   string
	TotalXP    string
	AuditRatio string
	Level      string
	Warnings   []string
	Skills     template.HTML
	Audit      template.HTML
}

// Render writes the page for v to w.
func Render(w io.Writer, v app.View, opts ...Option) error {
	o := options{forms: true}
	for _, opt := range opts {
		opt(&o)
	}

	tmpl, ok := pages[v.State]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownState, v.State)
	}

	doc := document{
		Title:     "Profile",
		State:     v.State.String(),
		Message:   v.Message,
		InlineCSS: template.CSS(o.inlineCSS), //nolint:gosec // stylesheet is embedded, not user input
		Forms:     o.forms,
	}

	switch v.State {
	case app.StateLoggedOut:
		doc.Title = "Sign in"
	case app.StateAuthenticating, app.StateLoadingProfile:
		doc.Title = "Loading"
		doc.RefreshSeconds = loadingRefresh
	case app.StateError:
		doc.Title = "Error"
		if v.LogoutAfter > 0 {
			doc.RefreshSeconds = int(math.Ceil(v.LogoutAfter.Seconds()))
		}
	case app.StateProfileShown:
		if v.Profile == nil || v.Skills == nil || v.Audit == nil {
			return fmt.Errorf("%w: profile view is incomplete", ErrRender)
		}
		s := v.Profile.Stats
		doc.Title = "Profile - " + s.Login
		doc.Login = s.Login
		doc.FullName = s.FullName()
		doc.TotalXP = format.SizeInt(s.TotalXP)
		doc.AuditRatio = strconv.FormatFloat(s.AuditRatio, 'f', 2, 64)
		doc.Level = strconv.FormatInt(s.Level, 10)
		doc.Warnings = v.Profile.Warnings
		// Canvas output is escaped by the svg serializer.
		doc.Skills = template.HTML(v.Skills.String()) //nolint:gosec
		doc.Audit = template.HTML(v.Audit.String())   //nolint:gosec
	}

	if err := tmpl.ExecuteTemplate(w, "layout", doc); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}
