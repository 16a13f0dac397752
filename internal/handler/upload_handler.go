package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guardstation/internal/service"
	"go.uber.org/zap"
)

// UploadImage 处理图片上传请求，图片以 data URL 形式返回并直接写入内容文档。
func (a *API) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		a.respondServiceError(c, service.ErrImageMissing)
		return
	}

	src, err := file.Open()
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	defer src.Close()

	img, err := a.images.Encode(src, file.Size)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	a.logger.Debug("image accepted",
		zap.String("filename", file.Filename),
		zap.String("mime", img.MIMEType),
		zap.Int64("size", img.Size),
	)
	c.JSON(http.StatusOK, gin.H{
		"success": 1,
		"url":     img.DataURL,
		"data":    img,
	})
}
