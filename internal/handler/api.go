package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guardstation/internal/content"
	"github.com/guardstation/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options 汇总构造 API 所需的运行参数。
type Options struct {
	AdminUsername string
	AdminPassword string
	LoginDelay    time.Duration
	PublishDelay  time.Duration
	MaxImageBytes int64
	IDs           content.IDGenerator
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	store  *service.ContentStore
	editor *service.EditorService
	auth   *service.AuthService
	images *service.ImageService
	logger *zap.Logger
	now    func() time.Time
}

const siteContextKey = "__site_content"

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, logger *zap.Logger, opts Options) (*API, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	auth, err := service.NewAuthService(opts.AdminUsername, opts.AdminPassword, opts.LoginDelay)
	if err != nil {
		return nil, err
	}
	store := service.NewContentStore(gdb, logger)

	return &API{
		store:  store,
		editor: service.NewEditorService(store, opts.IDs, opts.PublishDelay, logger),
		auth:   auth,
		images: service.NewImageService(opts.MaxImageBytes),
		logger: logger,
		now:    time.Now,
	}, nil
}

func (a *API) clock() time.Time {
	if a.now == nil {
		return time.Now()
	}
	return a.now()
}

// publishedSite loads the published document once per request.
func (a *API) publishedSite(c *gin.Context) (*content.SiteContent, error) {
	if cached, exists := c.Get(siteContextKey); exists {
		if doc, ok := cached.(*content.SiteContent); ok {
			return doc, nil
		}
	}
	doc, err := a.store.Load(c.Request.Context())
	if err != nil {
		return nil, err
	}
	c.Set(siteContextKey, doc)
	return doc, nil
}

// renderHTML 在向模板渲染时自动附加语言与品牌名称。
func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	pref := a.requestLocale(c)
	if _, exists := payload["lang"]; !exists {
		payload["lang"] = pref.HTMLLang
	}
	if title, ok := payload["title"].(string); ok {
		payload["title"] = localizeFixedTitle(pref.Language, title)
	}
	if _, exists := payload["brandName"]; !exists {
		if doc, err := a.publishedSite(c); err == nil {
			payload["brandName"] = doc.BrandName
		} else {
			c.Error(err)
		}
	}

	c.HTML(status, template, payload)
}
