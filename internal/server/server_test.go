package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vathanak/portfolio/internal/content"
	"github.com/vathanak/portfolio/internal/mailer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type recordingSender struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg mailer.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func (r *recordingSender) messages() []mailer.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]mailer.Message(nil), r.sent...)
}

func newTestServer(t *testing.T, dataPath string, sender mailer.Sender) *Server {
	t.Helper()
	logger := zaptest.NewLogger(t)
	lib := content.NewLibrary(content.FileSource{Path: dataPath}, logger)
	s, err := New(Options{Library: lib, Sender: sender, Logger: logger})
	require.NoError(t, err)
	return s
}

func do(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, s *Server, target string, cookies ...*http.Cookie) (*httptest.ResponseRecorder, *goquery.Document) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := do(s, req)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return rec, doc
}

func postForm(s *Server, target string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return do(s, req)
}

func cookieValue(rec *httptest.ResponseRecorder, name string) (string, bool) {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

func selTexts(sel *goquery.Selection) []string {
	var out []string
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}

const testData = "../content/testdata/data.json"

func TestHomePage(t *testing.T) {
	s := newTestServer(t, testData, nil)

	rec, doc := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	html := doc.Find("html")
	assert.Equal(t, "en", html.AttrOr("lang", ""))
	assert.Equal(t, "dark", html.AttrOr("class", ""), "dark is the default theme")
	assert.Equal(t, "Sereyvathanak Pich", strings.TrimSpace(doc.Find("#hero h1").Text()))
	assert.Equal(t, 3, doc.Find("#featured-projects .project-card").Length())
	assert.Equal(t, 2, doc.Find("#featured-leadership .leadership-card").Length())
	assert.Equal(t, []string{"Python", "SQL"}, selTexts(doc.Find("#skills .skill-grid").First().Find(".skill span")))
	assert.Equal(t, "en", rec.Header().Get("Content-Language"))

	// A card without an image falls back to the placeholder.
	second := doc.Find(".project-card").Eq(1).Find("img")
	assert.Equal(t, content.PlaceholderImage, second.AttrOr("src", ""))

	// Leadership cards show at most two tags.
	assert.Equal(t, 2, doc.Find(".leadership-card").First().Find(".tag").Length())
}

func TestLanguageFromQueryPersists(t *testing.T) {
	s := newTestServer(t, testData, nil)

	rec, doc := get(t, s, "/?lang=km")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "km", doc.Find("html").AttrOr("lang", ""))
	assert.Equal(t, "ពេជ្រ សិរីវឌ្ឍនៈ", strings.TrimSpace(doc.Find("#hero h1").Text()))

	v, ok := cookieValue(rec, "language")
	require.True(t, ok)
	assert.Equal(t, "km", v)

	_, doc = get(t, s, "/about", &http.Cookie{Name: "language", Value: "km"})
	assert.Equal(t, "km", doc.Find("html").AttrOr("lang", ""))
	assert.Equal(t, "អំពីខ្ញុំ", strings.TrimSpace(doc.Find("#bio h2").Text()))
}

func TestUnsupportedLanguageQueryFallsBack(t *testing.T) {
	s := newTestServer(t, testData, nil)

	rec, doc := get(t, s, "/?lang=fr", &http.Cookie{Name: "language", Value: "km"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "km", doc.Find("html").AttrOr("lang", ""), "stored preference wins over a bad override")
	_, set := cookieValue(rec, "language")
	assert.False(t, set)
}

func TestAboutRendersFreeText(t *testing.T) {
	s := newTestServer(t, testData, nil)

	rec, doc := get(t, s, "/about")
	require.Equal(t, http.StatusOK, rec.Code)

	edu := doc.Find(".education-item").First()
	assert.Equal(t, []string{"Dean's list", "Thesis on rice yield forecasting"}, selTexts(edu.Find("li")))

	exp := doc.Find(".experience-item")
	require.Equal(t, 2, exp.Length())
	assert.Equal(t, []string{"Built dashboards", "Automated reports"}, selTexts(exp.Eq(0).Find("li")))
	// Description is absent, so the detailed description is shown instead.
	assert.Equal(t, "Cleaned survey data.", strings.TrimSpace(exp.Eq(1).Find("p").Last().Text()))
	assert.Equal(t, 0, exp.Eq(1).Find("ul").Length())
}

func TestProjectDetail(t *testing.T) {
	s := newTestServer(t, testData, nil)

	rec, doc := get(t, s, "/projects/1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Rice Yield Forecast", strings.TrimSpace(doc.Find("h1").Text()))
	assert.Equal(t, "Farmers lack forecasts.", strings.TrimSpace(doc.Find("#problem p").Text()))
	assert.Equal(t, "A gradient boosting model.", strings.TrimSpace(doc.Find("#overview p").Text()))
	assert.Equal(t, 2, doc.Find("#technologies span").Length())

	rec, doc = get(t, s, "/projects/3")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, doc.Find("#problem").Length(), "optional sections are omitted")
	assert.Equal(t, 0, doc.Find("#technologies").Length())
}

func TestProjectNotFound(t *testing.T) {
	s := newTestServer(t, testData, nil)

	for _, target := range []string{"/projects/99", "/projects/abc"} {
		rec, doc := get(t, s, target)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.Equal(t, "Project Not Found", strings.TrimSpace(doc.Find("#not-found h1").Text()), target)
		assert.Equal(t, "/projects", doc.Find("#not-found a").AttrOr("href", ""), target)
	}

	rec, doc := get(t, s, "/projects/99?lang=km")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "រកមិនឃើញគម្រោង", strings.TrimSpace(doc.Find("#not-found h1").Text()))
}

func TestLeadershipDetail(t *testing.T) {
	s := newTestServer(t, testData, nil)

	rec, doc := get(t, s, "/leadership/1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Led a team", "Mentored juniors", "Ran workshops"}, selTexts(doc.Find("#what-i-did li")))
	assert.Equal(t, "Represented students.", strings.TrimSpace(doc.Find("#overview p").Text()))
	assert.Equal(t, 2, doc.Find("#gallery img").Length())
	assert.Equal(t, "Doubled club membership.", strings.TrimSpace(doc.Find("#impact p").Text()))

	_, doc = get(t, s, "/leadership/2")
	assert.Equal(t, []string{"Weekly sessions", "Code reviews"}, selTexts(doc.Find("#overview li")))
	assert.Equal(t, []string{content.PlaceholderImage}, doc.Find("#gallery img").Map(func(_ int, s *goquery.Selection) string {
		return s.AttrOr("src", "")
	}))
	assert.Equal(t, 0, doc.Find("#what-i-did").Length())

	_, doc = get(t, s, "/leadership/2?lang=km")
	assert.Equal(t, []string{"វគ្គប្រចាំសប្តាហ៍", "ការពិនិត្យកូដ"}, selTexts(doc.Find("#overview li")))

	rec, doc = get(t, s, "/leadership/7")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Experience Not Found", strings.TrimSpace(doc.Find("#not-found h1").Text()))
}

func TestListPages(t *testing.T) {
	s := newTestServer(t, testData, nil)

	_, doc := get(t, s, "/projects")
	assert.Equal(t, 4, doc.Find(".project-card").Length())

	_, doc = get(t, s, "/leadership")
	assert.Equal(t, 2, doc.Find(".leadership-card").Length())

	_, doc = get(t, s, "/certificates")
	require.Equal(t, 1, doc.Find(".certificate").Length())
	assert.Equal(t, "https://example.com/cert/1", doc.Find(".certificate a").AttrOr("href", ""))
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, testData, nil)

	rec, doc := get(t, s, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Page Not Found", strings.TrimSpace(doc.Find("#not-found h1").Text()))
}

func TestLanguageToggle(t *testing.T) {
	s := newTestServer(t, testData, nil)

	req := httptest.NewRequest(http.MethodPost, "/language/toggle", nil)
	req.Header.Set("Referer", "http://example.com/projects?lang=en")
	rec := do(s, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/projects", rec.Header().Get("Location"))
	v, _ := cookieValue(rec, "language")
	assert.Equal(t, "km", v)

	// Toggling twice returns to the original language.
	req = httptest.NewRequest(http.MethodPost, "/language/toggle", nil)
	req.AddCookie(&http.Cookie{Name: "language", Value: v})
	rec = do(s, req)
	v, _ = cookieValue(rec, "language")
	assert.Equal(t, "en", v)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestToggleStaysOnSite(t *testing.T) {
	s := newTestServer(t, testData, nil)

	for _, target := range []string{"/language/toggle", "/theme/toggle"} {
		req := httptest.NewRequest(http.MethodPost, target, nil)
		req.Header.Set("Referer", "http://example.com//evil.test/phish")
		rec := do(s, req)
		assert.Equal(t, http.StatusSeeOther, rec.Code, target)
		assert.Equal(t, "/", rec.Header().Get("Location"), target)
	}
}

func TestToggleWithHTMXRefreshes(t *testing.T) {
	s := newTestServer(t, testData, nil)

	for _, target := range []string{"/language/toggle", "/theme/toggle"} {
		rec := postForm(s, target, url.Values{}, true)
		assert.Equal(t, http.StatusNoContent, rec.Code, target)
		assert.Equal(t, "true", rec.Header().Get("HX-Refresh"), target)
	}
}

func TestThemeToggle(t *testing.T) {
	s := newTestServer(t, testData, nil)

	rec := postForm(s, "/theme/toggle", url.Values{}, false)
	v, _ := cookieValue(rec, "theme")
	assert.Equal(t, "light", v)

	_, doc := get(t, s, "/", &http.Cookie{Name: "theme", Value: "light"})
	assert.Equal(t, "light", doc.Find("html").AttrOr("class", ""))

	req := httptest.NewRequest(http.MethodPost, "/theme/toggle", nil)
	req.AddCookie(&http.Cookie{Name: "theme", Value: "light"})
	rec = do(s, req)
	v, _ = cookieValue(rec, "theme")
	assert.Equal(t, "dark", v)
}

func validContact() url.Values {
	return url.Values{
		"from_name":  {"Dara"},
		"from_email": {"dara@example.com"},
		"message":    {"Hello <b>there</b>"},
	}
}

func TestContactSubmitSuccess(t *testing.T) {
	sender := &recordingSender{}
	s := newTestServer(t, testData, sender)

	rec := postForm(s, "/contact", validContact(), true)
	require.Equal(t, http.StatusOK, rec.Code)

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Find("nav").Length(), "HTMX gets the fragment only")
	assert.Contains(t, doc.Find("#toast.toast-success").Text(), "Thanks! Your message has been sent.")
	assert.Equal(t, "", doc.Find("#from_name").AttrOr("value", "x"), "form is cleared")
	assert.Equal(t, "", strings.TrimSpace(doc.Find("#message").Text()))

	msgs := sender.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, mailer.Message{
		ToEmail:   "hello@example.com",
		FromName:  "Dara",
		FromEmail: "dara@example.com",
		Body:      "Hello there",
	}, msgs[0])
}

func TestContactSubmitFailureKeepsValues(t *testing.T) {
	sender := &recordingSender{err: errors.New("boom")}
	s := newTestServer(t, testData, sender)

	rec := postForm(s, "/contact", validContact(), true)
	require.Equal(t, http.StatusOK, rec.Code)
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, doc.Find("#toast.toast-error").Text(), "Failed to send message. Please try again.")
	assert.Equal(t, "Dara", doc.Find("#from_name").AttrOr("value", ""))
	assert.Equal(t, "dara@example.com", doc.Find("#from_email").AttrOr("value", ""))

	rec = postForm(s, "/contact", validContact(), false)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	doc, err = goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("nav").Length(), "plain posts get the full page")
	assert.Equal(t, 1, doc.Find("#contact-form #toast").Length())
}

func TestContactWithoutSender(t *testing.T) {
	s := newTestServer(t, testData, nil)

	rec := postForm(s, "/contact", validContact(), false)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestContactValidation(t *testing.T) {
	sender := &recordingSender{}
	s := newTestServer(t, testData, sender)

	form := validContact()
	form.Set("from_email", "not-an-email")
	rec := postForm(s, "/contact", form, false)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, "not-an-email", doc.Find("#from_email").AttrOr("value", ""))
	assert.Contains(t, doc.Find("#toast").Text(), "valid email")
	assert.Empty(t, sender.messages())
}

func TestContactPages(t *testing.T) {
	s := newTestServer(t, testData, nil)

	rec, doc := get(t, s, "/contact")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/contact", doc.Find("#contact-form").AttrOr("hx-post", ""))
	assert.Equal(t, "mailto:hello@example.com", doc.Find("section a[href^=mailto]").AttrOr("href", ""))

	rec, doc = get(t, s, "/contact-form?lang=km")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, doc.Find("nav").Length())
	assert.Equal(t, "ឈ្មោះ", strings.TrimSpace(doc.Find("label[for=from_name]").Text()))
}

func TestUnavailableContent(t *testing.T) {
	s := newTestServer(t, "testdata/missing.json", &recordingSender{})

	rec, doc := get(t, s, "/")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Empty(t, rec.Header().Get("Retry-After"))
	assert.Empty(t, doc.Find("[hx-trigger]").Nodes, "the placeholder does not poll")
	assert.Equal(t, "Loading...", strings.TrimSpace(doc.Find("#loading").Text()))
	assert.Equal(t, 0, doc.Find("nav ul").Length(), "navigation needs content")

	rec = postForm(s, "/contact", validContact(), false)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(s, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(s, httptest.NewRequest(http.MethodGet, "/api/profile", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "en", body["language"])
}

func TestProfileJSON(t *testing.T) {
	s := newTestServer(t, testData, nil)

	rec := do(s, httptest.NewRequest(http.MethodGet, "/api/profile?lang=km", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Language string          `json:"language"`
		Profile  content.Profile `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "km", body.Language)
	assert.Equal(t, "ពេជ្រ សិរីវឌ្ឍនៈ", body.Profile.Name)
	assert.Len(t, body.Profile.Projects, 4)

	rec = do(s, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBackTarget(t *testing.T) {
	tests := []struct {
		name    string
		referer string
		want    string
	}{
		{name: "empty", referer: "", want: "/"},
		{name: "same host", referer: "http://example.com/about", want: "/about"},
		{name: "drops lang", referer: "http://example.com/projects/2?lang=km&x=1", want: "/projects/2?x=1"},
		{name: "other host", referer: "https://evil.test/phish", want: "/"},
		{name: "relative", referer: "/certificates", want: "/certificates"},
		{name: "garbage", referer: "::::", want: "/"},
		{name: "scheme relative path", referer: "http://example.com//evil.test/phish", want: "/"},
		{name: "backslash path", referer: "http://example.com/\\evil.test/phish", want: "/"},
		{name: "relative scheme relative", referer: "//evil.test/phish", want: "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, backTarget(tt.referer, "example.com"))
		})
	}
}
