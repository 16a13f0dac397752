package service

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxImageBytes 是单张图片的大小上限（2 MiB）。
const DefaultMaxImageBytes int64 = 2 << 20

var (
	ErrImageMissing     = errors.New("image is required")
	ErrImageTypeInvalid = errors.New("file is not an image")
	ErrImageTooLarge    = errors.New("image exceeds size limit")
)

// EncodedImage is an accepted upload inlined as a data URL.
type EncodedImage struct {
	DataURL  string `json:"dataUrl"`
	MIMEType string `json:"mimeType"`
	Size     int64  `json:"size"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// ImageService 将上传的图片整体编码为 data URL，不做压缩或缩放。
type ImageService struct {
	maxBytes int64
}

// NewImageService constructs an ImageService; non-positive limits use the default.
func NewImageService(maxBytes int64) *ImageService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	return &ImageService{maxBytes: maxBytes}
}

// MaxBytes returns the size ceiling.
func (s *ImageService) MaxBytes() int64 {
	return s.maxBytes
}

// Encode reads the whole upload, checks its size and sniffed type, and returns
// it as a data URL. declaredSize, when known, short-circuits oversized uploads.
func (s *ImageService) Encode(r io.Reader, declaredSize int64) (*EncodedImage, error) {
	if r == nil {
		return nil, ErrImageMissing
	}
	if declaredSize > s.maxBytes {
		return nil, ErrImageTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrImageMissing
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ErrImageTooLarge
	}

	mimeType, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, ErrImageTypeInvalid
	}

	encoded := &EncodedImage{
		DataURL:  "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data),
		MIMEType: mimeType,
		Size:     int64(len(data)),
	}
	// Vector formats such as SVG have no raster config; dimensions stay zero.
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		encoded.Width = cfg.Width
		encoded.Height = cfg.Height
	}
	return encoded, nil
}
