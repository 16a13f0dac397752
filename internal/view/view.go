// Package view turns the content document into template-ready view models.
// BuildPage is pure: the same document and options always produce the same
// view, so the public site and the admin preview share one code path.
package view

import (
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/guardstation/internal/content"
	"github.com/guardstation/internal/slider"
)

// Options 控制一次渲染的上下文。
type Options struct {
	Year    int
	Lang    string
	Preview bool
}

// PageView is everything page.html needs.
type PageView struct {
	Lang     string
	Site     SiteView
	Nav      []NavItem
	Title    string
	Slug     string
	Sections []SectionView
	Year     int
	Preview  bool
}

// SiteView 是页眉页脚使用的站点信息。
type SiteView struct {
	BrandName    string
	PrimaryColor string
	AccentColor  string
	Contacts     []ContactView
	PhoneHref    template.URL
}

// ContactView is one footer contact line.
type ContactView struct {
	Kind  string
	Label string
	Value string
	Href  template.URL
	Icon  template.HTML
}

// NavItem is one entry of the site map.
type NavItem struct {
	Title  string
	URL    string
	Active bool
}

// SectionView 是一个内容模块的渲染数据，按 Kind 只填充其中一个字段。
type SectionView struct {
	ID      string
	Kind    string
	Hero    *HeroView
	Feature *FeatureView
	Prices  *PriceView
	FAQ     *FAQView
}

// HeroView carries the augmented frame list and slider timings.
type HeroView struct {
	Frames         []SlideView
	Dots           []int
	StartIndex     int
	Looping        bool
	AutoplayMS     int64
	TransitionMS   int64
	SwipeThreshold float64
	AxisLockPX     float64
	Easing         string
}

// SlideView is one frame of the slider track.
type SlideView struct {
	ID      string
	Text    string
	BgColor string
	Image   template.URL
}

// FeatureView is an image and text block.
type FeatureView struct {
	Title       string
	Description template.HTML
	Image       template.URL
	Reverse     bool
}

// PriceView is a price table.
type PriceView struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// FAQView is a list of questions.
type FAQView struct {
	Title string
	Items []FAQItemView
}

// FAQItemView is one question with its rendered answer.
type FAQItemView struct {
	ID       string
	Question string
	Answer   template.HTML
}

const (
	KindHero    = "hero"
	KindFeature = "feature"
	KindPrices  = "prices"
	KindFAQ     = "faq"
)

// PageURL returns the public path of a page.
func PageURL(slug string) string {
	if slug == "" || slug == content.HomeSlug {
		return "/"
	}
	return "/pages/" + url.PathEscape(slug)
}

// PreviewURL returns the admin preview path of a page.
func PreviewURL(pageID string) string {
	return "/admin/preview?page=" + url.QueryEscape(pageID)
}

// BuildPage renders page of site into a PageView. Sections whose type is not
// recognised are left out.
func BuildPage(site *content.SiteContent, page *content.Page, opts Options) PageView {
	pv := PageView{
		Lang:    opts.Lang,
		Site:    buildSite(site),
		Title:   page.Title,
		Slug:    page.Slug,
		Year:    opts.Year,
		Preview: opts.Preview,
	}
	if pv.Lang == "" {
		pv.Lang = "zh-Hant-TW"
	}

	for _, p := range site.Pages {
		link := PageURL(p.Slug)
		if opts.Preview {
			link = PreviewURL(p.ID)
		}
		pv.Nav = append(pv.Nav, NavItem{Title: p.Title, URL: link, Active: p.ID == page.ID})
	}

	for _, section := range page.Sections {
		if sv, ok := buildSection(section); ok {
			pv.Sections = append(pv.Sections, sv)
		}
	}
	return pv
}

func buildSite(site *content.SiteContent) SiteView {
	sv := SiteView{
		BrandName:    site.BrandName,
		PrimaryColor: safeColor(site.PrimaryColor, content.DefaultPrimaryColor),
		AccentColor:  safeColor(site.AccentColor, content.DefaultAccentColor),
	}

	if phone := strings.TrimSpace(site.ContactPhone); phone != "" {
		sv.PhoneHref = telURL(phone)
		sv.Contacts = append(sv.Contacts, newContact(ContactPhone, phone, sv.PhoneHref))
	}
	if address := strings.TrimSpace(site.ContactAddress); address != "" {
		sv.Contacts = append(sv.Contacts, newContact(ContactAddress, address, ""))
	}
	if email := strings.TrimSpace(site.ContactEmail); email != "" {
		sv.Contacts = append(sv.Contacts, newContact(ContactEmail, email, template.URL("mailto:"+url.PathEscape(email))))
	}
	return sv
}

func newContact(kind, value string, href template.URL) ContactView {
	return ContactView{
		Kind:  kind,
		Label: ContactLabel(kind),
		Value: value,
		Href:  href,
		Icon:  ContactIconSVG(kind),
	}
}

func buildSection(section content.Section) (SectionView, bool) {
	sv := SectionView{ID: section.ID}

	switch c := section.Content.(type) {
	case *content.HeroSlider:
		sv.Kind = KindHero
		sv.Hero = buildHero(c)
	case *content.FeatureBlock:
		sv.Kind = KindFeature
		sv.Feature = &FeatureView{
			Title:       c.Title,
			Description: renderMarkdown(c.Description),
			Image:       safeImageURL(c.Image),
			Reverse:     c.Reverse,
		}
	case *content.PriceTable:
		sv.Kind = KindPrices
		sv.Prices = &PriceView{Title: c.Title, Headers: c.Headers, Rows: c.Rows}
	case *content.FAQSection:
		sv.Kind = KindFAQ
		faq := &FAQView{Title: c.Title}
		for _, item := range c.Items {
			faq.Items = append(faq.Items, FAQItemView{
				ID:       item.ID,
				Question: item.Question,
				Answer:   renderMarkdown(item.Answer),
			})
		}
		sv.FAQ = faq
	default:
		return SectionView{}, false
	}
	return sv, true
}

func buildHero(h *content.HeroSlider) *HeroView {
	cfg := slider.DefaultConfig()
	slides := make([]SlideView, 0, len(h.Items))
	for _, item := range h.Items {
		slides = append(slides, SlideView{
			ID:      item.ID,
			Text:    item.Text,
			BgColor: safeColor(item.BgColor, fallbackSlideColor),
			Image:   safeImageURL(item.ImageURL),
		})
	}

	dots := make([]int, len(slides))
	for i := range dots {
		dots[i] = i
	}
	return &HeroView{
		Frames:         slider.Augment(slides),
		Dots:           dots,
		StartIndex:     slider.StartIndex(len(slides)),
		Looping:        len(slides) >= 2,
		AutoplayMS:     cfg.AutoplayInterval.Milliseconds(),
		TransitionMS:   cfg.TransitionDuration.Milliseconds(),
		SwipeThreshold: cfg.SwipeThreshold,
		AxisLockPX:     cfg.AxisLockDistance,
		Easing:         easingAttr(cfg.Easing),
	}
}

func easingAttr(points [4]float64) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = strconv.FormatFloat(p, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}
