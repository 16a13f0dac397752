package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guardstation/internal/content"
	"github.com/guardstation/internal/db"
	"github.com/guardstation/internal/handler"
	"github.com/guardstation/internal/router"
	"github.com/guardstation/internal/view"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type e2eSuite struct {
	handler   http.Handler
	public    httpClient
	admin     httpClient
	baseURL   string
	adminUser string
	adminPass string

	pageID    string
	sectionID string
}

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type localClient struct {
	handler http.Handler
	jar     http.CookieJar
}

type workspacePayload struct {
	ID        string `json:"id"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	URL       string `json:"url"`
	Workspace struct {
		Draft     content.SiteContent `json:"draft"`
		Published content.SiteContent `json:"published"`
		Dirty     bool                `json:"dirty"`
	} `json:"workspace"`
}

func newLocalClient(handler http.Handler, withJar bool) *localClient {
	var jar http.CookieJar
	if withJar {
		if j, err := cookiejar.New(nil); err == nil {
			jar = j
		}
	}
	return &localClient{handler: handler, jar: jar}
}

func (c *localClient) Do(req *http.Request) (*http.Response, error) {
	if c.jar != nil {
		for _, cookie := range c.jar.Cookies(req.URL) {
			req.AddCookie(cookie)
		}
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	resp := w.Result()
	if c.jar != nil {
		c.jar.SetCookies(req.URL, resp.Cookies())
	}
	return resp, nil
}

func TestE2E_EditPublishLifecycle(t *testing.T) {
	suite := newE2ESuite(t)

	t.Run("public endpoints", suite.testPublicEndpoints)
	t.Run("admin guard", suite.testAdminGuard)
	suite.login(t)
	t.Run("draft editing", suite.testDraftEditing)
	t.Run("publish", suite.testPublish)
	t.Run("image upload", suite.testImageUpload)
	t.Run("delete and republish", suite.testDeleteAndRepublish)
	t.Run("logout", suite.testLogout)
}

func newE2ESuite(t *testing.T) *e2eSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:e2e-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	api, err := handler.NewAPI(gdb, zap.NewNop(), handler.Options{
		AdminUsername: "owner",
		AdminPassword: "e2e-secret",
		IDs:           &content.SequenceGenerator{Prefix: "e2e"},
	})
	if err != nil {
		t.Fatalf("failed to build api: %v", err)
	}
	renderer, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}
	engine := router.SetupRouter(api, renderer, "test-session-secret", zap.NewNop())

	return &e2eSuite{
		handler:   engine,
		public:    newLocalClient(engine, false),
		admin:     newLocalClient(engine, true),
		baseURL:   "http://example.test",
		adminUser: "owner",
		adminPass: "e2e-secret",
	}
}

func (s *e2eSuite) login(t *testing.T) {
	t.Helper()
	form := url.Values{
		"username": {s.adminUser},
		"password": {s.adminPass},
	}
	resp := s.mustRequest(t, s.admin, http.MethodPost, "/admin/login", strings.NewReader(form.Encode()), map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("login failed, status %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/admin/dashboard" {
		t.Fatalf("unexpected login redirect %q", loc)
	}
}

func (s *e2eSuite) checkHTML(t *testing.T, client httpClient, name, path, expect string, code int) {
	t.Helper()
	resp := s.mustRequest(t, client, http.MethodGet, path, nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != code {
		t.Fatalf("%s: expected status %d, got %d", name, code, resp.StatusCode)
	}
	body := readBody(t, resp)
	if expect != "" && !strings.Contains(body, expect) {
		t.Fatalf("%s: response does not contain %q", name, expect)
	}
}

func (s *e2eSuite) testPublicEndpoints(t *testing.T) {
	s.checkHTML(t, s.public, "home", "/", "保衛站", http.StatusOK)
	s.checkHTML(t, s.public, "about page", "/pages/about-us", "保衛站", http.StatusOK)
	s.checkHTML(t, s.public, "missing page", "/pages/missing", "404", http.StatusNotFound)
	s.checkHTML(t, s.public, "unknown path", "/nowhere", "", http.StatusNotFound)

	resp := s.mustRequest(t, s.public, http.MethodGet, "/pages/home", nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMovedPermanently || resp.Header.Get("Location") != "/" {
		t.Fatalf("home slug: expected redirect to /, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	resp = s.mustRequest(t, s.public, http.MethodGet, "/?lang=en", nil, nil)
	defer resp.Body.Close()
	if got := resp.Header.Get("Content-Language"); got != "en" {
		t.Fatalf("lang query: unexpected Content-Language %q", got)
	}

	resp = s.mustRequest(t, s.public, http.MethodGet, "/ping", nil, nil)
	defer resp.Body.Close()
	if body := readBody(t, resp); resp.StatusCode != http.StatusOK || !strings.Contains(body, "pong") {
		t.Fatalf("ping: unexpected response %d %q", resp.StatusCode, body)
	}
}

func (s *e2eSuite) testAdminGuard(t *testing.T) {
	resp := s.mustRequest(t, s.admin, http.MethodGet, "/admin/dashboard", nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/admin/login" {
		t.Fatalf("dashboard: expected redirect to login, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	resp = s.mustRequest(t, s.admin, http.MethodGet, "/admin/api/content", nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("content api: expected 401, got %d", resp.StatusCode)
	}

	form := url.Values{"username": {s.adminUser}, "password": {"wrong"}}
	resp = s.mustRequest(t, s.admin, http.MethodPost, "/admin/login", strings.NewReader(form.Encode()), map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", resp.StatusCode)
	}
}

func (s *e2eSuite) testDraftEditing(t *testing.T) {
	s.checkHTML(t, s.admin, "dashboard", "/admin/dashboard", s.adminUser, http.StatusOK)

	global := content.Default().Globals()
	global.BrandName = "保衛站 E2E 門市"
	payload := s.mustCall(t, http.MethodPut, "/admin/api/global", global, http.StatusOK)
	if !payload.Workspace.Dirty || payload.Workspace.Published.BrandName == global.BrandName {
		t.Fatal("global update should only touch the draft")
	}

	payload = s.mustCall(t, http.MethodPost, "/admin/api/pages", map[string]string{"title": "  Battery Care "}, http.StatusCreated)
	s.pageID = payload.ID
	page := findPage(payload.Workspace.Draft, s.pageID)
	if page == nil || page.Slug != "battery-care" {
		t.Fatalf("unexpected new page %+v", page)
	}

	payload = s.mustCall(t, http.MethodPost, "/admin/api/pages/"+s.pageID+"/sections", map[string]string{"type": string(content.SectionFAQ)}, http.StatusCreated)
	s.sectionID = payload.ID

	s.mustCall(t, http.MethodPatch, "/admin/api/pages/"+s.pageID+"/sections/"+s.sectionID, map[string]string{"title": "電池保養問答"}, http.StatusOK)
	payload = s.mustCall(t, http.MethodPost, "/admin/api/pages/"+s.pageID+"/sections/"+s.sectionID+"/faqs", nil, http.StatusCreated)
	if payload.ID == "" {
		t.Fatal("expected the new question id")
	}

	s.mustCall(t, http.MethodPost, "/admin/api/pages", map[string]string{"title": "battery care"}, http.StatusConflict)

	s.checkHTML(t, s.public, "unpublished page", "/pages/battery-care", "", http.StatusNotFound)
	s.checkHTML(t, s.admin, "preview", "/admin/preview?page="+url.QueryEscape(s.pageID), "電池保養問答", http.StatusOK)
}

func (s *e2eSuite) testPublish(t *testing.T) {
	payload := s.mustCall(t, http.MethodPost, "/admin/api/publish", nil, http.StatusOK)
	if payload.Workspace.Dirty {
		t.Fatal("workspace should be clean after publishing")
	}
	if payload.Message == "" {
		t.Fatal("expected a publish confirmation message")
	}

	s.checkHTML(t, s.public, "published page", "/pages/battery-care", "電池保養問答", http.StatusOK)
	s.checkHTML(t, s.public, "home after publish", "/", "保衛站 E2E 門市", http.StatusOK)
	s.checkHTML(t, s.public, "nav lists new page", "/", "/pages/battery-care", http.StatusOK)
}

func (s *e2eSuite) testImageUpload(t *testing.T) {
	resp := s.uploadTestImage(t)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upload: expected 200, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	var payload workspacePayload
	decodeJSON(t, resp, &payload)
	if !strings.HasPrefix(payload.URL, "data:image/png;base64,") {
		t.Fatalf("unexpected upload url %q", payload.URL)
	}

	s.mustCall(t, http.MethodPatch, "/admin/api/pages/page-home/sections/sec-repair", map[string]string{"image": payload.URL}, http.StatusOK)
	s.checkHTML(t, s.admin, "preview with image", "/admin/preview", "data:image/png;base64,", http.StatusOK)

	discarded := s.mustCall(t, http.MethodPost, "/admin/api/discard", nil, http.StatusOK)
	if discarded.Workspace.Dirty {
		t.Fatal("discard should drop the pending image change")
	}
}

func (s *e2eSuite) testDeleteAndRepublish(t *testing.T) {
	s.mustCall(t, http.MethodDelete, "/admin/api/pages/page-home", nil, http.StatusConflict)

	payload := s.mustCall(t, http.MethodDelete, "/admin/api/pages/"+s.pageID, nil, http.StatusOK)
	if findPage(payload.Workspace.Draft, s.pageID) != nil {
		t.Fatal("page should be gone from the draft")
	}
	s.checkHTML(t, s.public, "still published", "/pages/battery-care", "電池保養問答", http.StatusOK)

	s.mustCall(t, http.MethodPost, "/admin/api/publish", nil, http.StatusOK)
	s.checkHTML(t, s.public, "removed page", "/pages/battery-care", "", http.StatusNotFound)
}

func (s *e2eSuite) testLogout(t *testing.T) {
	resp := s.mustRequest(t, s.admin, http.MethodGet, "/admin/logout", nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("logout expected 302, got %d", resp.StatusCode)
	}

	resp = s.mustRequest(t, s.admin, http.MethodGet, "/admin/api/content", nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("content api after logout: expected 401, got %d", resp.StatusCode)
	}
}

func (s *e2eSuite) uploadTestImage(t *testing.T) *http.Response {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(0, 0, color.RGBA{R: 0x1f, G: 0xc8, B: 0x1f, A: 0xff})
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "shop.png")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(pngBuf.Bytes()); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	return s.mustRequest(t, s.admin, http.MethodPost, "/admin/api/images", &body, map[string]string{
		"Content-Type": writer.FormDataContentType(),
	})
}

func (s *e2eSuite) mustRequest(t *testing.T, client httpClient, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, s.baseURL+path, body)
	if err != nil {
		t.Fatalf("failed to create request %s %s: %v", method, path, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	return resp
}

func (s *e2eSuite) mustCall(t *testing.T, method, path string, payload interface{}, code int) workspacePayload {
	t.Helper()
	var body io.Reader
	headers := map[string]string{}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
		headers["Content-Type"] = "application/json"
	}
	resp := s.mustRequest(t, s.admin, method, path, body, headers)
	defer resp.Body.Close()

	var out workspacePayload
	decodeJSON(t, resp, &out)
	if resp.StatusCode != code {
		t.Fatalf("%s %s: expected %d, got %d (%s)", method, path, code, resp.StatusCode, out.Error)
	}
	return out
}

func findPage(doc content.SiteContent, id string) *content.Page {
	for i := range doc.Pages {
		if doc.Pages[i].ID == id {
			return &doc.Pages[i]
		}
	}
	return nil
}

func decodeJSON(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("failed to decode json: %v", err)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return string(data)
}
