package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guardstation/internal/content"
	"github.com/guardstation/internal/locale"
	"github.com/guardstation/internal/view"
	"go.uber.org/zap"
)

// ShowHome renders the published home page.
func (a *API) ShowHome(c *gin.Context) {
	a.showPublishedPage(c, content.HomeSlug)
}

// ShowPage renders a published page by slug. The home slug redirects to /.
func (a *API) ShowPage(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == content.HomeSlug {
		c.Redirect(http.StatusMovedPermanently, "/")
		return
	}
	a.showPublishedPage(c, slug)
}

// NotFound 渲染站点 404 页面。
func (a *API) NotFound(c *gin.Context) {
	a.renderHTML(c, http.StatusNotFound, view.TemplateNotFound, gin.H{
		"title":   "找不到頁面",
		"message": a.text(c, locale.MsgPageNotFound),
	})
}

func (a *API) showPublishedPage(c *gin.Context, slug string) {
	site, err := a.publishedSite(c)
	if err != nil {
		a.logger.Error("load published content", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	page, ok := site.PageBySlug(slug)
	if !ok {
		a.NotFound(c)
		return
	}

	pv := view.BuildPage(site, page, view.Options{
		Year: a.clock().Year(),
		Lang: a.requestLocale(c).HTMLLang,
	})
	c.HTML(http.StatusOK, view.TemplatePage, pv)
}
