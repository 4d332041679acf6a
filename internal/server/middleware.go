package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vathanak/portfolio/internal/content"
	"github.com/vathanak/portfolio/internal/state"
)

const (
	accessorKey = "accessor"
	prefsKey    = "prefs"

	themeKey     = "theme"
	themeDark    = "dark"
	themeLight   = "light"
	cookieMaxAge = 365 * 24 * 60 * 60
)

// cookiePreferences persists visitor preferences as long-lived cookies.
// Values set during a request are visible to later reads in the same request.
type cookiePreferences struct {
	c       *gin.Context
	pending map[string]string
}

func newCookiePreferences(c *gin.Context) *cookiePreferences {
	return &cookiePreferences{c: c, pending: map[string]string{}}
}

func (p *cookiePreferences) Get(key string) (string, bool) {
	if v, ok := p.pending[key]; ok {
		return v, true
	}
	v, err := p.c.Cookie(key)
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}

func (p *cookiePreferences) Set(key, value string) {
	p.pending[key] = value
	p.c.SetSameSite(http.SameSiteLaxMode)
	p.c.SetCookie(key, value, cookieMaxAge, "/", "", false, false)
}

// requestLogger logs one line per request, the way gin's default logger
// does, but through zap.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			zap.String("remote_ip", c.ClientIP()),
			zap.Bool("htmx", isHTMX(c)),
		}
		if lang, ok := c.Get("language"); ok {
			fields = append(fields, zap.Any("language", lang))
		}
		if len(c.Errors) > 0 {
			logger.Error("request", append(fields, zap.String("errors", c.Errors.String()))...)
			return
		}
		logger.Info("request", fields...)
	}
}

// withAccessor resolves the visitor's language, applies a ?lang= override and
// loads the matching profile before the handler runs.
func (s *Server) withAccessor() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		prefs := newCookiePreferences(c)
		acc := state.NewAccessor(s.library, prefs, s.logger)

		if code := c.Query("lang"); code != "" {
			err := acc.SetLanguage(ctx, code)
			if errors.Is(err, content.ErrUnsupportedLanguage) {
				acc.Start(ctx)
			}
		} else {
			acc.Start(ctx)
		}

		lang := acc.Language()
		c.Set(accessorKey, acc)
		c.Set(prefsKey, prefs)
		c.Set("language", string(lang))
		c.Header("Content-Language", string(lang))
		c.Next()
	}
}

func accessorFrom(c *gin.Context) *state.Accessor {
	return c.MustGet(accessorKey).(*state.Accessor)
}

func prefsFrom(c *gin.Context) *cookiePreferences {
	return c.MustGet(prefsKey).(*cookiePreferences)
}

func themeFrom(c *gin.Context) string {
	if v, ok := prefsFrom(c).Get(themeKey); ok && v == themeLight {
		return themeLight
	}
	return themeDark
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}
