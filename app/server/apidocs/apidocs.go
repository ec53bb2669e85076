package apidocs

import (
	"bytes"
	"html/template"
	"net/http"
	"path"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
)

type Opts func(*config)

type config struct {
	// Authorizer, when set, must accept the request or the docs answer 403.
	Authorizer func(*http.Request) bool
}

// WithAuthorizer guards the docs behind f.
func WithAuthorizer(f func(*http.Request) bool) Opts {
	return func(c *config) { c.Authorizer = f }
}

// routes are the paths Doc answers under one base path.
type routes struct {
	Base  string
	Page  string
	JSON  string
	YAML  string
	Title string
}

func newRoutes(basePath string, doc *openapi3.T) routes {
	r := routes{
		Base: basePath,
		Page: path.Join(basePath, "apidocs"),
		JSON: path.Join(basePath, "apispec.json"),
		YAML: path.Join(basePath, "openapi.yaml"),
	}
	r.Title = "API documentation"
	if doc.Info != nil && doc.Info.Title != "" {
		r.Title = doc.Info.Title
	}
	return r
}

func renderPage(r routes) string {
	tmpl := template.Must(template.New("apidoc").Parse(pageTemplate))
	buf := bytes.NewBuffer(nil)
	_ = tmpl.Execute(buf, r)
	return buf.String()
}

// withOrigin copies doc with a single server entry pointing at the host the
// request came in on, so "try it" calls hit this deployment.
func withOrigin(c echo.Context, doc *openapi3.T, basePath string) *openapi3.T {
	out := *doc
	out.Servers = openapi3.Servers{{URL: c.Scheme() + "://" + c.Request().Host + basePath}}
	return &out
}

// Doc creates a middleware serving a documentation page for doc under
// basePath, along with the document itself as JSON and as the original YAML.
func Doc(basePath string, doc *openapi3.T, opts ...Opts) echo.MiddlewareFunc {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	r := newRoutes(basePath, doc)
	uiHTML := renderPage(r)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqPath := c.Request().URL.Path
			switch reqPath {
			case r.Base, r.Page, r.JSON, r.YAML:
			default:
				return next(c)
			}

			if cfg.Authorizer != nil && !cfg.Authorizer(c.Request()) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "Forbidden"})
			}

			switch reqPath {
			case r.Page:
				return c.HTML(http.StatusOK, uiHTML)
			case r.JSON:
				return c.JSON(http.StatusOK, withOrigin(c, doc, basePath))
			case r.YAML:
				return c.Blob(http.StatusOK, "application/yaml", openapiYAML)
			default:
				return c.Redirect(http.StatusFound, r.Page)
			}
		}
	}
}

const pageTemplate = `
<!DOCTYPE html>
<html lang="en">
  <head>
    <title>{{ .Title }}</title>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1" />
  </head>

  <body>
    <script id="api-reference" data-url="{{ .JSON }}"></script>

    <script src="https://cdnjs.cloudflare.com/ajax/libs/scalar-api-reference/1.25.99/standalone.min.js" integrity="sha512-ai3lOYZ5efNXMYwnqhz0mnCaImbqfwLE1VCx9Y9nhB3OJX4/uegjIAoQtJHy3SILHp/gS1OlPCIeNFPZT5i2WQ==" crossorigin="anonymous" referrerpolicy="no-referrer"></script>
  </body>
</html>`
