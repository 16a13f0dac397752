package handler

import "github.com/guardstation/internal/locale"

var fixedTitleMap = map[string]string{
	"管理員登入": "Admin Login",
	"管理面板":   "Dashboard",
	"找不到頁面": "Page Not Found",
	"頁面預覽":   "Preview",
}

func localizeFixedTitle(language, title string) string {
	if title == "" {
		return title
	}
	normalized := locale.NormalizeLanguage(language)
	if normalized == locale.LanguageEnglish {
		if mapped, ok := fixedTitleMap[title]; ok {
			return mapped
		}
		return title
	}
	for key, value := range fixedTitleMap {
		if value == title {
			return key
		}
	}
	return title
}
