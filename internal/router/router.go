package router

import (
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/guardstation/internal/handler"
	"github.com/guardstation/internal/view"
	"go.uber.org/zap"
)

const sessionName = "guardstation_session"

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, renderer *view.Renderer, sessionSecret string, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(requestLogger(logger), gin.Recovery())

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(api.LocaleMiddleware())

	r.SetHTMLTemplate(renderer.Templates())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	r.GET("/", api.ShowHome)
	r.GET("/pages/:slug", api.ShowPage)
	r.NoRoute(api.NotFound)

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.GET("/login", api.ShowLoginPage)
		admin.POST("/login", api.Login)
		admin.GET("/logout", api.Logout)

		// 需要认证的后台路由
		auth := admin.Group("")
		auth.Use(api.AuthRequired())
		{
			auth.GET("/dashboard", api.ShowDashboard)
			auth.GET("/preview", api.Preview)

			// API路由
			apiGroup := auth.Group("/api")
			{
				apiGroup.GET("/content", api.GetContent)
				apiGroup.PUT("/global", api.UpdateGlobal)
				apiGroup.POST("/publish", api.Publish)
				apiGroup.POST("/discard", api.Discard)
				apiGroup.POST("/images", api.UploadImage)

				apiGroup.POST("/pages", api.CreatePage)
				apiGroup.PUT("/pages/:id", api.RenamePage)
				apiGroup.DELETE("/pages/:id", api.DeletePage)

				apiGroup.POST("/pages/:id/sections", api.CreateSection)
				apiGroup.PATCH("/pages/:id/sections/:sid", api.UpdateSection)
				apiGroup.DELETE("/pages/:id/sections/:sid", api.DeleteSection)
				apiGroup.POST("/pages/:id/sections/:sid/move", api.MoveSection)

				apiGroup.POST("/pages/:id/sections/:sid/slides", api.AddSlide)
				apiGroup.DELETE("/pages/:id/sections/:sid/slides/:item", api.DeleteSlide)
				apiGroup.POST("/pages/:id/sections/:sid/faqs", api.AddFAQ)
				apiGroup.DELETE("/pages/:id/sections/:sid/faqs/:item", api.DeleteFAQ)
				apiGroup.POST("/pages/:id/sections/:sid/columns", api.AddPriceColumn)
				apiGroup.DELETE("/pages/:id/sections/:sid/columns/:index", api.DeletePriceColumn)
				apiGroup.POST("/pages/:id/sections/:sid/rows", api.AddPriceRow)
				apiGroup.DELETE("/pages/:id/sections/:sid/rows/:index", api.DeletePriceRow)
			}
		}
	}

	return r
}

// requestLogger writes one structured line per request.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			logger.Error("request", fields...)
		case status >= 400:
			logger.Warn("request", fields...)
		default:
			logger.Debug("request", fields...)
		}
	}
}
