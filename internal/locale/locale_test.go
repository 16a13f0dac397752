package locale

import "testing"

func TestNormalizeLanguage(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "zh", want: LanguageChinese},
		{input: "zh-TW", want: LanguageChinese},
		{input: "ZH_hant", want: LanguageChinese},
		{input: "en", want: LanguageEnglish},
		{input: "en-US", want: LanguageEnglish},
		{input: "fr", want: ""},
		{input: "", want: ""},
	}

	for _, tc := range cases {
		if got := NormalizeLanguage(tc.input); got != tc.want {
			t.Fatalf("NormalizeLanguage(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestLanguageFromAcceptLanguage(t *testing.T) {
	cases := map[string]string{
		"en-US,en;q=0.9,zh-TW;q=0.8": LanguageEnglish,
		"fr-FR, zh-TW;q=0.7":         LanguageChinese,
		"de":                         "",
		"":                           "",
	}
	for header, want := range cases {
		if got := LanguageFromAcceptLanguage(header); got != want {
			t.Fatalf("LanguageFromAcceptLanguage(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestTextFallsBackToChinese(t *testing.T) {
	if got := Text("fr", MsgHomePageProtected); got != "首頁為系統核心，無法刪除" {
		t.Fatalf("unexpected text %q", got)
	}
	if got := Text("en", MsgHomePageProtected); got != "The home page cannot be deleted." {
		t.Fatalf("unexpected text %q", got)
	}
	if got := Text("en", Message("unknown")); got != "unknown" {
		t.Fatalf("unknown messages should echo their id, got %q", got)
	}
}
