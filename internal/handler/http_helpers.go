package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guardstation/internal/content"
	"github.com/guardstation/internal/locale"
	"github.com/guardstation/internal/service"
	"go.uber.org/zap"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseIndexParam(c *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(c.Param(key))
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return index, nil
}

// classifyError maps domain errors to a status code and user-facing message.
func classifyError(err error) (int, locale.Message) {
	switch {
	case errors.Is(err, content.ErrPageTitleRequired):
		return http.StatusBadRequest, locale.MsgPageTitleRequired
	case errors.Is(err, content.ErrPageSlugInvalid):
		return http.StatusBadRequest, locale.MsgPageSlugInvalid
	case errors.Is(err, content.ErrPageSlugConflict):
		return http.StatusConflict, locale.MsgPageSlugConflict
	case errors.Is(err, content.ErrPageNotFound):
		return http.StatusNotFound, locale.MsgPageNotFound
	case errors.Is(err, content.ErrHomePageProtected):
		return http.StatusConflict, locale.MsgHomePageProtected
	case errors.Is(err, content.ErrSectionNotFound):
		return http.StatusNotFound, locale.MsgSectionNotFound
	case errors.Is(err, content.ErrSectionTypeInvalid), errors.Is(err, content.ErrSectionTypeUnknown):
		return http.StatusBadRequest, locale.MsgSectionTypeInvalid
	case errors.Is(err, content.ErrSectionPatchInvalid):
		return http.StatusBadRequest, locale.MsgSectionPatchInvalid
	case errors.Is(err, content.ErrPriceTableShape):
		return http.StatusBadRequest, locale.MsgPriceTableShape
	case errors.Is(err, content.ErrItemNotFound):
		return http.StatusNotFound, locale.MsgItemNotFound
	case errors.Is(err, content.ErrLastItemProtected):
		return http.StatusConflict, locale.MsgLastItemProtected
	case errors.Is(err, content.ErrHomePageMissing), errors.Is(err, content.ErrDuplicateID):
		return http.StatusBadRequest, locale.MsgBadRequest
	case errors.Is(err, service.ErrImageMissing):
		return http.StatusBadRequest, locale.MsgImageMissing
	case errors.Is(err, service.ErrImageTypeInvalid):
		return http.StatusBadRequest, locale.MsgImageTypeInvalid
	case errors.Is(err, service.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge, locale.MsgImageTooLarge
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, locale.MsgSaveFailed
	}
	return http.StatusInternalServerError, locale.MsgSaveFailed
}

func (a *API) respondServiceError(c *gin.Context, err error) {
	status, msg := classifyError(err)
	if status >= http.StatusInternalServerError {
		a.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.Error(err)
	}
	respondError(c, status, a.text(c, msg))
}

func (a *API) text(c *gin.Context, msg locale.Message) string {
	return locale.Text(a.requestLocale(c).Language, msg)
}
