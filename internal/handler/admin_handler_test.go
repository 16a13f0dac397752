package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/guardstation/internal/content"
	"github.com/guardstation/internal/db"
	"github.com/guardstation/internal/locale"
	"github.com/guardstation/internal/service"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubHTMLRender struct {
	last *stubHTMLInstance
}

type stubHTMLInstance struct {
	name string
	data interface{}
}

func (r *stubHTMLRender) Instance(name string, data interface{}) render.Render {
	r.last = &stubHTMLInstance{name: name, data: data}
	return r.last
}

func (r *stubHTMLInstance) Render(http.ResponseWriter) error {
	return nil
}

func (r *stubHTMLInstance) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

func setupAdminHandlerTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:admin-handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func newAdminTestAPI(t *testing.T) *API {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, cleanup := setupAdminHandlerTestDB(t)
	t.Cleanup(cleanup)

	auth, err := service.NewAuthService("admin", "admin", 0)
	if err != nil {
		t.Fatalf("failed to build auth service: %v", err)
	}
	store := service.NewContentStore(gdb, zap.NewNop())
	return &API{
		store:  store,
		editor: service.NewEditorService(store, &content.SequenceGenerator{Prefix: "a"}, 0, nil),
		auth:   auth,
		images: service.NewImageService(0),
		logger: zap.NewNop(),
		now:    func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func newAdminTestRouter(api *API, stub *stubHTMLRender) *gin.Engine {
	router := gin.New()
	router.HTMLRender = stub
	router.Use(sessions.Sessions("guardstation_session", cookie.NewStore([]byte("test-secret"))))
	router.Use(api.LocaleMiddleware())
	return router
}

func TestLoginFailureRendersLocalizedError(t *testing.T) {
	api := newAdminTestAPI(t)
	stub := &stubHTMLRender{}
	router := newAdminTestRouter(api, stub)
	router.POST("/admin/login", api.Login)

	form := url.Values{"username": {" admin "}, "password": {"nope"}}
	request := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.Header.Set("Accept-Language", "en-US,en;q=0.9")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, recorder.Code)
	}
	if stub.last == nil || stub.last.name != "login.html" {
		t.Fatalf("expected login.html to be rendered, got %+v", stub.last)
	}
	data := stub.last.data.(gin.H)
	if data["error"] != "Incorrect username or password." {
		t.Fatalf("unexpected error message %v", data["error"])
	}
	if data["username"] != "admin" || data["title"] != "Admin Login" || data["lang"] != "en" {
		t.Fatalf("unexpected template data %+v", data)
	}
}

func TestShowDashboardListsSectionTypes(t *testing.T) {
	api := newAdminTestAPI(t)
	stub := &stubHTMLRender{}
	router := newAdminTestRouter(api, stub)
	router.GET("/admin/dashboard", func(c *gin.Context) {
		c.Set(userContextKey, content.User{Username: "admin", Authenticated: true})
		c.Next()
	}, api.ShowDashboard)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}
	data := stub.last.data.(gin.H)
	options := data["sectionTypes"].([]sectionTypeOption)
	if len(options) != len(content.SectionTypes) {
		t.Fatalf("expected %d section types, got %d", len(content.SectionTypes), len(options))
	}
	for _, option := range options {
		if option.Label == "" {
			t.Fatalf("section type %s has no label", option.Type)
		}
	}
	if data["username"] != "admin" || data["brandName"] != content.Default().BrandName {
		t.Fatalf("unexpected template data %+v", data)
	}
}

func TestAuthRequiredDistinguishesPagesAndAPI(t *testing.T) {
	api := newAdminTestAPI(t)
	router := newAdminTestRouter(api, &stubHTMLRender{})
	router.GET("/admin/dashboard", api.AuthRequired(), func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/admin/api/content", api.AuthRequired(), func(c *gin.Context) { c.Status(http.StatusOK) })

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	if recorder.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", recorder.Code)
	}

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/admin/api/content", nil))
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", recorder.Code)
	}
}

func TestLocaleQueryPersistsCookie(t *testing.T) {
	api := newAdminTestAPI(t)
	router := newAdminTestRouter(api, &stubHTMLRender{})
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, api.requestLocale(c).Language) })

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/?lang=en", nil))

	if recorder.Body.String() != locale.LanguageEnglish {
		t.Fatalf("expected english, got %q", recorder.Body.String())
	}
	if recorder.Header().Get("Content-Language") != "en" {
		t.Fatalf("unexpected Content-Language %q", recorder.Header().Get("Content-Language"))
	}
	found := false
	for _, c := range recorder.Result().Cookies() {
		if c.Name == languageCookieName && c.Value == locale.LanguageEnglish {
			found = true
		}
	}
	if !found {
		t.Fatal("expected language cookie to be set")
	}
	if !strings.Contains(recorder.Header().Get("Vary"), "Accept-Language") {
		t.Fatalf("unexpected Vary header %q", recorder.Header().Get("Vary"))
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		msg    locale.Message
	}{
		{content.ErrPageSlugConflict, http.StatusConflict, locale.MsgPageSlugConflict},
		{fmt.Errorf("page 3: %w", content.ErrPriceTableShape), http.StatusBadRequest, locale.MsgPriceTableShape},
		{content.ErrSectionTypeUnknown, http.StatusBadRequest, locale.MsgSectionTypeInvalid},
		{content.ErrItemNotFound, http.StatusNotFound, locale.MsgItemNotFound},
		{service.ErrImageTooLarge, http.StatusRequestEntityTooLarge, locale.MsgImageTooLarge},
		{context.Canceled, http.StatusServiceUnavailable, locale.MsgSaveFailed},
		{fmt.Errorf("disk full"), http.StatusInternalServerError, locale.MsgSaveFailed},
	}
	for _, tt := range tests {
		status, msg := classifyError(tt.err)
		if status != tt.status || msg != tt.msg {
			t.Fatalf("classifyError(%v) = %d %s, want %d %s", tt.err, status, msg, tt.status, tt.msg)
		}
	}
}
