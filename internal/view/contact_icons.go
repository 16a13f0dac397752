package view

import (
	"html/template"
	"strings"
)

const (
	ContactPhone   = "phone"
	ContactAddress = "address"
	ContactEmail   = "email"
	ContactWebsite = "website"
)

type contactIconAsset struct {
	Key   string
	SVG   string
	Label string
}

var (
	contactIconDefinitions = []contactIconAsset{
		{Key: ContactPhone, Label: "電話", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><path d="M2.25 6.75c0 8.284 6.716 15 15 15h2.25a2.25 2.25 0 0 0 2.25-2.25v-1.372c0-.516-.351-.966-.852-1.091l-4.423-1.106c-.44-.11-.902.055-1.173.417l-.97 1.293c-.282.376-.769.542-1.21.38a12.035 12.035 0 0 1-7.143-7.143c-.162-.441.004-.928.38-1.21l1.293-.97c.363-.271.527-.734.417-1.173L6.963 3.102a1.125 1.125 0 0 0-1.091-.852H4.5A2.25 2.25 0 0 0 2.25 4.5v2.25Z"/></svg>`},
		{Key: ContactAddress, Label: "地址", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><path d="M15 10.5a3 3 0 1 1-6 0 3 3 0 0 1 6 0Z"/><path d="M19.5 10.5c0 7.142-7.5 11.25-7.5 11.25S4.5 17.642 4.5 10.5a7.5 7.5 0 1 1 15 0Z"/></svg>`},
		{Key: ContactEmail, Label: "信箱", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><path d="M21.75 6.75v10.5a2.25 2.25 0 0 1-2.25 2.25h-15A2.25 2.25 0 0 1 2.25 17.25V6.75M21.75 6.75A2.25 2.25 0 0 0 19.5 4.5h-15A2.25 2.25 0 0 0 2.25 6.75v.243c0 .781.405 1.506 1.071 1.916l7.5 4.615a2.25 2.25 0 0 0 2.157 0l7.5-4.615a2.25 2.25 0 0 0 1.072-1.916V6.75"/></svg>`},
		{Key: ContactWebsite, Label: "網站", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><path d="M12 21c4.193 0 7.716-2.867 8.716-6.747M12 21c-4.193 0-7.716-2.867-8.716-6.747M12 21c2.485 0 4.5-4.03 4.5-9s-2.015-9-4.5-9m0 18c-2.485 0-4.5-4.03-4.5-9s2.015-9 4.5-9m0-0c3.365 0 6.299 1.847 7.843 4.582M12 3c-3.365 0-6.299 1.847-7.843 4.582m15.686 0c.737 1.305 1.157 2.812 1.157 4.418 0 .778-.099 1.533-.284 2.253m-.873 4.836C18.133 15.685 15.162 16.5 12 16.5s-6.134-.815-8.716-2.247m0 0A8.948 8.948 0 0 1 3 12c0-1.605.42-3.112 1.157-4.417"/></svg>`},
	}
	defaultContactIcon = contactIconAsset{Key: "default", Label: "聯絡", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><path d="M17.982 18.725C16.612 16.918 14.442 15.75 12 15.75s-4.612 1.168-5.982 2.975M17.982 18.725A8.97 8.97 0 0 0 21 12c0-4.971-4.03-9-9-9s-9 4.029-9 9a8.97 8.97 0 0 0 3.018 6.725M17.982 18.725C16.392 20.14 14.296 21 12 21s-4.392-.86-5.982-2.275M15 9.75a3 3 0 1 1-6 0 3 3 0 0 1 6 0Z"/></svg>`}
	contactIconLookup  = func() map[string]contactIconAsset {
		lookup := make(map[string]contactIconAsset, len(contactIconDefinitions)+1)
		for _, icon := range contactIconDefinitions {
			lookup[icon.Key] = icon
		}
		lookup[defaultContactIcon.Key] = defaultContactIcon
		return lookup
	}()
)

// ContactIconSVG resolves the inline SVG for a contact kind, falling back to the default icon.
func ContactIconSVG(kind string) template.HTML {
	return template.HTML(lookupContactIcon(kind).SVG)
}

// ContactLabel 返回页脚联络方式的显示名称。
func ContactLabel(kind string) string {
	return lookupContactIcon(kind).Label
}

func lookupContactIcon(kind string) contactIconAsset {
	trimmed := strings.ToLower(strings.TrimSpace(kind))
	if icon, ok := contactIconLookup[trimmed]; ok {
		return icon
	}
	return defaultContactIcon
}
