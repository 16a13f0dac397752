package content

import (
	"encoding/json"
	"errors"
	"fmt"
)

// HomeSlug 是首页固定的路径，首页不可删除。
const HomeSlug = "home"

// SiteContent 描述整个站点的内容文档，每次发布都整体覆盖保存。
type SiteContent struct {
	BrandName      string `json:"brandName"`
	ContactPhone   string `json:"contactPhone"`
	ContactAddress string `json:"contactAddress"`
	ContactEmail   string `json:"contactEmail"`
	PrimaryColor   string `json:"primaryColor,omitempty"`
	AccentColor    string `json:"accentColor,omitempty"`
	Pages          []Page `json:"pages"`
}

// Page 是一个可路由的内容页面。
type Page struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Slug     string    `json:"slug"`
	Sections []Section `json:"sections"`
}

// User 表示当前登录的后台用户，仅由会话推导，不做持久化。
type User struct {
	Username      string
	Authenticated bool
}

// FindPage returns the page with the given id.
func (s *SiteContent) FindPage(id string) (*Page, int) {
	for i := range s.Pages {
		if s.Pages[i].ID == id {
			return &s.Pages[i], i
		}
	}
	return nil, -1
}

// PageBySlug returns the page routed at slug.
func (s *SiteContent) PageBySlug(slug string) (*Page, bool) {
	for i := range s.Pages {
		if s.Pages[i].Slug == slug {
			return &s.Pages[i], true
		}
	}
	return nil, false
}

// Home returns the home page. A validated document always has one.
func (s *SiteContent) Home() (*Page, bool) {
	return s.PageBySlug(HomeSlug)
}

// FindSection returns the section with the given id.
func (p *Page) FindSection(id string) (*Section, int) {
	for i := range p.Sections {
		if p.Sections[i].ID == id {
			return &p.Sections[i], i
		}
	}
	return nil, -1
}

// Clone returns a deep copy by round-tripping through the JSON codec.
func (s *SiteContent) Clone() (*SiteContent, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("clone site content: %w", err)
	}
	var out SiteContent
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("clone site content: %w", err)
	}
	return &out, nil
}

// Decode parses and validates a persisted document.
func Decode(raw []byte) (*SiteContent, error) {
	var doc SiteContent
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode site content: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Encode serialises the document into its canonical JSON form.
func Encode(doc *SiteContent) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("site content is nil")
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode site content: %w", err)
	}
	return raw, nil
}
