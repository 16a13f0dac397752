package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/guardstation/internal/content"
	"github.com/guardstation/internal/locale"
	"github.com/guardstation/internal/service"
	"github.com/guardstation/internal/view"
	"go.uber.org/zap"
)

const (
	sessionUserKey = "username"
	userContextKey = "__admin_user"
)

type sectionTypeOption struct {
	Type  string
	Label string
}

var sectionTypeLabels = map[content.SectionType]string{
	content.SectionHeroSlider:   "🖼️ 輪播展示",
	content.SectionFeatureBlock: "📰 圖文特色",
	content.SectionPriceTable:   "💰 報價表格",
	content.SectionFAQ:          "❓ 常見問答",
}

// ShowLoginPage 渲染登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	if _, ok := a.sessionUser(c); ok {
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}
	a.renderHTML(c, http.StatusOK, view.TemplateLogin, gin.H{
		"title": "管理員登入",
	})
}

// Login 校验表单账号，成功后写入会话并跳转到后台。
func (a *API) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := a.auth.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		status := http.StatusUnauthorized
		if !errors.Is(err, service.ErrInvalidCredentials) {
			status = http.StatusServiceUnavailable
		}
		a.renderHTML(c, status, view.TemplateLogin, gin.H{
			"title":    "管理員登入",
			"error":    a.text(c, locale.MsgInvalidCredentials),
			"username": strings.TrimSpace(username),
		})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserKey, user.Username)
	if err := session.Save(); err != nil {
		a.logger.Error("save session", zap.Error(err))
		a.renderHTML(c, http.StatusInternalServerError, view.TemplateLogin, gin.H{
			"title": "管理員登入",
			"error": a.text(c, locale.MsgSessionSaveFailed),
		})
		return
	}

	a.logger.Info("admin logged in", zap.String("user", user.Username))
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

// Logout 处理用户登出
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		c.Error(err)
	}
	c.Redirect(http.StatusFound, "/admin/login")
}

// ShowDashboard 渲染后台主面板
func (a *API) ShowDashboard(c *gin.Context) {
	user := currentUser(c)

	options := make([]sectionTypeOption, 0, len(content.SectionTypes))
	for _, t := range content.SectionTypes {
		options = append(options, sectionTypeOption{Type: string(t), Label: sectionTypeLabels[t]})
	}

	a.renderHTML(c, http.StatusOK, view.TemplateDashboard, gin.H{
		"title":        "管理面板",
		"username":     user.Username,
		"sectionTypes": options,
	})
}

// Preview 渲染当前用户草稿中的页面，供后台即时预览。
func (a *API) Preview(c *gin.Context) {
	user := currentUser(c)
	ws, err := a.editor.Workspace(c.Request.Context(), user.Username)
	if err != nil {
		a.logger.Error("load workspace for preview", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	page, _ := ws.Draft.FindPage(strings.TrimSpace(c.Query("page")))
	if page == nil {
		home, ok := ws.Draft.Home()
		if !ok {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		page = home
	}

	pv := view.BuildPage(ws.Draft, page, view.Options{
		Year:    a.clock().Year(),
		Lang:    a.requestLocale(c).HTMLLang,
		Preview: true,
	})
	c.HTML(http.StatusOK, view.TemplatePage, pv)
}

// AuthRequired 是一个简单的认证中间件。页面请求跳转到登录页，API 请求返回 401。
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := a.sessionUser(c)
		if !ok {
			if strings.HasPrefix(c.Request.URL.Path, "/admin/api/") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": a.text(c, locale.MsgInvalidCredentials)})
				return
			}
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

func (a *API) sessionUser(c *gin.Context) (content.User, bool) {
	session := sessions.Default(c)
	return a.auth.UserFromSession(session.Get(sessionUserKey))
}

func currentUser(c *gin.Context) content.User {
	if value, exists := c.Get(userContextKey); exists {
		if user, ok := value.(content.User); ok {
			return user
		}
	}
	return content.User{}
}
