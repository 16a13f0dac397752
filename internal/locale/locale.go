package locale

import "strings"

const (
	LanguageChinese = "zh"
	LanguageEnglish = "en"
)

// Preference 描述一次请求最终使用的语言。
type Preference struct {
	Language string
	HTMLLang string
}

func NormalizeLanguage(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "zh") || trimmed == "tw" {
		return LanguageChinese
	}
	if strings.HasPrefix(trimmed, "en") {
		return LanguageEnglish
	}
	return ""
}

// LanguageFromAcceptLanguage picks the first supported language in the header,
// honouring the order the client listed them in.
func LanguageFromAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag, _, _ := strings.Cut(part, ";")
		if lang := NormalizeLanguage(tag); lang != "" {
			return lang
		}
	}
	return ""
}

func PreferenceForLanguage(language string) Preference {
	if NormalizeLanguage(language) == LanguageEnglish {
		return Preference{Language: LanguageEnglish, HTMLLang: "en"}
	}
	return Preference{Language: LanguageChinese, HTMLLang: "zh-Hant-TW"}
}
