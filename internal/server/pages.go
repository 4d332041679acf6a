package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vathanak/portfolio/internal/content"
	"github.com/vathanak/portfolio/internal/state"
)

const featuredCount = 3

// page builds the data every template needs. profile is nil when the content
// is not ready.
func (s *Server) page(c *gin.Context, title string) gin.H {
	st := accessorFrom(c).State()
	lang := st.Language
	data := gin.H{
		"title":     title,
		"lang":      lang,
		"otherLang": lang.Toggle(),
		"theme":     themeFrom(c),
		"text":      textFor(lang),
		"path":      c.Request.URL.Path,
		"status":    st.Status.String(),
	}
	if st.Status == state.Ready {
		data["profile"] = st.Profile
	}
	return data
}

// render merges extra into the base page data and writes the template.
func (s *Server) render(c *gin.Context, status int, name, title string, extra gin.H) {
	data := s.page(c, title)
	for k, v := range extra {
		data[k] = v
	}
	c.HTML(status, name, data)
}

// profile returns the active profile, or renders the loading placeholder and
// returns false. The placeholder stays until the visitor's next request or
// language toggle loads again.
func (s *Server) profile(c *gin.Context) (*content.Profile, bool) {
	st := accessorFrom(c).State()
	if st.Status == state.Ready && st.Profile != nil {
		return st.Profile, true
	}
	s.render(c, http.StatusServiceUnavailable, "loading.html", textFor(st.Language).Loading, nil)
	return nil, false
}

func (s *Server) handleHome(c *gin.Context) {
	p, ok := s.profile(c)
	if !ok {
		return
	}
	s.render(c, http.StatusOK, "home.html", p.Name, gin.H{
		"projects":   p.FeaturedProjects(featuredCount),
		"leadership": p.FeaturedLeadership(featuredCount),
	})
}

func (s *Server) handleAbout(c *gin.Context) {
	p, ok := s.profile(c)
	if !ok {
		return
	}
	s.render(c, http.StatusOK, "about.html", p.Nav.About, nil)
}

func (s *Server) handleProjects(c *gin.Context) {
	p, ok := s.profile(c)
	if !ok {
		return
	}
	s.render(c, http.StatusOK, "projects.html", p.Nav.Projects, gin.H{
		"projects": p.Projects,
	})
}

func (s *Server) handleProject(c *gin.Context) {
	p, ok := s.profile(c)
	if !ok {
		return
	}
	text := textFor(accessorFrom(c).Language())
	id, err := strconv.Atoi(c.Param("id"))
	project, found := p.ProjectByID(id)
	if err != nil || !found {
		s.notFound(c, text.ProjectNotFound, "/projects", text.BackToProjects)
		return
	}
	s.render(c, http.StatusOK, "project.html", project.Title, gin.H{
		"project": project,
	})
}

func (s *Server) handleLeadershipList(c *gin.Context) {
	p, ok := s.profile(c)
	if !ok {
		return
	}
	s.render(c, http.StatusOK, "leadership-list.html", p.Nav.Leadership, gin.H{
		"leadership": p.Leadership,
	})
}

func (s *Server) handleLeadership(c *gin.Context) {
	p, ok := s.profile(c)
	if !ok {
		return
	}
	text := textFor(accessorFrom(c).Language())
	id, err := strconv.Atoi(c.Param("id"))
	item, found := p.LeadershipByID(id)
	if err != nil || !found {
		s.notFound(c, text.LeadershipNotFound, "/leadership", text.BackToLeadership)
		return
	}
	s.render(c, http.StatusOK, "leadership.html", item.Title, gin.H{
		"item": item,
	})
}

func (s *Server) handleCertificates(c *gin.Context) {
	p, ok := s.profile(c)
	if !ok {
		return
	}
	s.render(c, http.StatusOK, "certificates.html", p.Nav.Certificates, gin.H{
		"certificates": p.Certificates,
	})
}

func (s *Server) handleNotFound(c *gin.Context) {
	text := textFor(accessorFrom(c).Language())
	s.notFound(c, text.PageNotFound, "/", text.BackHome)
}

func (s *Server) notFound(c *gin.Context, heading, backHref, backLabel string) {
	s.render(c, http.StatusNotFound, "not-found.html", heading, gin.H{
		"heading":   heading,
		"backHref":  backHref,
		"backLabel": backLabel,
	})
}

func (s *Server) handleLanguageToggle(c *gin.Context) {
	// Load failures are already logged and leave the page in its loading state.
	_ = accessorFrom(c).Toggle(c.Request.Context())
	redirectBack(c)
}

func (s *Server) handleThemeToggle(c *gin.Context) {
	next := themeLight
	if themeFrom(c) == themeLight {
		next = themeDark
	}
	prefsFrom(c).Set(themeKey, next)
	redirectBack(c)
}

// redirectBack returns the visitor to the page they came from. HTMX requests
// get a full refresh instead.
func redirectBack(c *gin.Context) {
	if isHTMX(c) {
		c.Header("HX-Refresh", "true")
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusSeeOther, backTarget(c.Request.Referer(), c.Request.Host))
}

// backTarget keeps only same-host referers and drops any ?lang= so the new
// cookie wins. The result is always a path on this host.
func backTarget(referer, host string) string {
	u, err := url.Parse(referer)
	if referer == "" || err != nil || (u.Host != "" && u.Host != host) || !localPath(u.Path) {
		return "/"
	}
	q := u.Query()
	q.Del("lang")
	target := url.URL{Path: u.Path, RawQuery: q.Encode()}
	return target.String()
}

// localPath rejects paths a browser would read as another host, such as
// "//evil.test" or "/\\evil.test".
func localPath(p string) bool {
	if !strings.HasPrefix(p, "/") || len(p) > 1 && (p[1] == '/' || p[1] == '\\') {
		return false
	}
	return !strings.Contains(p, "\\")
}

func (s *Server) handleProfileJSON(c *gin.Context) {
	st := accessorFrom(c).State()
	if st.Status != state.Ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"language": st.Language,
			"status":   st.Status.String(),
			"error":    textFor(st.Language).Unavailable,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"language": st.Language,
		"profile":  st.Profile,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	if _, err := s.library.Document(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
