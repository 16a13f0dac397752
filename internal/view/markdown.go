package view

import (
	"bytes"
	"html/template"
	"net/url"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

var (
	// 只解析段落与链接：列表、标题、强调等语法按原文显示。
	markdownEngine = goldmark.New(
		goldmark.WithParser(parser.NewParser(
			parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 1000)),
			parser.WithInlineParsers(
				util.Prioritized(parser.NewLinkParser(), 200),
				util.Prioritized(parser.NewAutoLinkParser(), 300),
			),
		)),
		goldmark.WithExtensions(extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()

	colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]{3,20})$`)
)

const fallbackSlideColor = "#333"

// renderMarkdown converts editor text to sanitised HTML. Text is kept as
// written, line breaks included; only links become anchors.
func renderMarkdown(text string) template.HTML {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}

// safeColor 只放行十六进制或颜色名，其他值一律回退，避免注入 style 属性。
func safeColor(raw, fallback string) string {
	trimmed := strings.TrimSpace(raw)
	if colorPattern.MatchString(trimmed) {
		return trimmed
	}
	return fallback
}

// safeImageURL trusts inline image data URLs, absolute http(s) URLs and
// site-relative paths. Anything else is dropped.
func safeImageURL(raw string) template.URL {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lower, "data:image/"):
		if strings.ContainsAny(trimmed, "\"'<> ") {
			return ""
		}
		return template.URL(trimmed)
	case strings.HasPrefix(lower, "https://"), strings.HasPrefix(lower, "http://"):
		if _, err := url.Parse(trimmed); err != nil {
			return ""
		}
		return template.URL(trimmed)
	case strings.HasPrefix(trimmed, "/") && !strings.HasPrefix(trimmed, "//"):
		return template.URL(trimmed)
	}
	return ""
}

func telURL(phone string) template.URL {
	var b strings.Builder
	for _, r := range phone {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return template.URL("tel:" + b.String())
}
