// Package server renders the portfolio pages and handles the contact form.
package server

import (
	"embed"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vathanak/portfolio/internal/content"
	"github.com/vathanak/portfolio/internal/freetext"
	"github.com/vathanak/portfolio/internal/mailer"
)

//go:embed templates/*.html
var templateFS embed.FS

// Options configures a Server.
type Options struct {
	Library   *content.Library
	Sender    mailer.Sender
	Logger    *zap.Logger
	StaticDir string
}

// Server owns the gin engine and the shared content library.
type Server struct {
	engine    *gin.Engine
	library   *content.Library
	sender    mailer.Sender
	logger    *zap.Logger
	staticDir string
}

func New(opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		library:   opts.Library,
		sender:    opts.Sender,
		logger:    logger,
		staticDir: opts.StaticDir,
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))
	r.SetHTMLTemplate(tmpl)
	s.engine = r
	s.routes()
	return s, nil
}

// Handler returns the HTTP handler for the site.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes() {
	r := s.engine

	if s.staticDir != "" {
		r.Static("/static", s.staticDir)
		r.Static("/images", filepath.Join(s.staticDir, "images"))
		r.Static("/logos", filepath.Join(s.staticDir, "logos"))
		r.Static("/files", filepath.Join(s.staticDir, "files"))
		r.StaticFile("/placeholder.svg", filepath.Join(s.staticDir, "placeholder.svg"))
		r.StaticFile("/favicon.ico", filepath.Join(s.staticDir, "favicon.ico"))
	}

	r.GET("/healthz", s.handleHealth)

	site := r.Group("/", s.withAccessor())
	site.GET("/", s.handleHome)
	site.GET("/about", s.handleAbout)
	site.GET("/projects", s.handleProjects)
	site.GET("/projects/:id", s.handleProject)
	site.GET("/leadership", s.handleLeadershipList)
	site.GET("/leadership/:id", s.handleLeadership)
	site.GET("/certificates", s.handleCertificates)
	site.GET("/contact", s.handleContactPage)
	site.GET("/contact-form", s.handleContactForm)
	site.POST("/contact", s.handleContactSubmit)
	site.POST("/language/toggle", s.handleLanguageToggle)
	site.POST("/theme/toggle", s.handleThemeToggle)
	site.GET("/api/profile", s.handleProfileJSON)

	r.NoRoute(s.withAccessor(), s.handleNotFound)
}

func parseTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"freetext": freetext.Render,
		"upper":    strings.ToUpper,
		"image": func(src string) string {
			if src == "" {
				return content.PlaceholderImage
			}
			return src
		},
		"take": func(n int, items []string) []string {
			if n < len(items) {
				return items[:n]
			}
			return items
		},
		"inc": func(i int) int { return i + 1 },
		"dict": func(pairs ...any) (map[string]any, error) {
			if len(pairs)%2 != 0 {
				return nil, errors.New("dict: odd number of arguments")
			}
			m := make(map[string]any, len(pairs)/2)
			for i := 0; i < len(pairs); i += 2 {
				key, ok := pairs[i].(string)
				if !ok {
					return nil, errors.Errorf("dict: key %v is not a string", pairs[i])
				}
				m[key] = pairs[i+1]
			}
			return m, nil
		},
	}
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}
