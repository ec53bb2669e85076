// Package pages renders the public site. Every page reads its editable
// sections from the content map; administrators additionally get inline
// edit forms that post back to the section endpoints.
package pages

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/labstack/echo/v4"
	"shinkwang-site/app/sections"
)

//go:embed templates/*.html
var files embed.FS

const (
	Home    = "home"
	Worship = "worship"
	Online  = "online"
	Pastor  = "pastor"
)

// Page is what every template receives.
type Page struct {
	Name   string
	Title  string
	Admin  bool
	Notice string
	Error  string
	Data   any
}

func (p Page) Church() string  { return sections.ChurchName }
func (p Page) Address() string { return sections.ChurchAddress }

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"lines": func(s string) []string {
		return strings.Split(s, "\n")
	},
	"join": func(parts []string, sep string) string {
		return strings.Join(parts, sep)
	},
	"dict": func(kv ...any) (map[string]any, error) {
		if len(kv)%2 != 0 {
			return nil, fmt.Errorf("dict: odd number of arguments")
		}
		m := make(map[string]any, len(kv)/2)
		for i := 0; i < len(kv); i += 2 {
			k, ok := kv[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
			}
			m[k] = kv[i+1]
		}
		return m, nil
	},
	"clock":   sections.FormatSeconds,
	"videoID": sections.VideoID,
	"embedURL": func(s sections.Sermon) string {
		id := sections.VideoID(s.YoutubeURL)
		if id == "" {
			return ""
		}
		u := fmt.Sprintf("https://www.youtube.com/embed/%s?start=%d", id, s.StartTime)
		if s.EndTime > s.StartTime {
			u += fmt.Sprintf("&end=%d", s.EndTime)
		}
		return u
	},
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: map[string]*template.Template{}}
	for _, name := range []string{Home, Worship, Online, Pastor} {
		t, err := template.New(name).Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// PathOf tells which page shows a section, so edit forms can return to it.
func PathOf(key string) string {
	switch sections.Key(key) {
	case sections.GeneralWorship.Key(), sections.SchoolWorship.Key():
		return "/worship"
	case sections.Sermons.Key(), sections.OfferingAccounts.Key():
		return "/online"
	case sections.Pastor.Key():
		return "/pastor"
	default:
		return "/"
	}
}
