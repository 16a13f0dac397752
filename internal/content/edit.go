package content

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Direction 表示模块移动方向。
type Direction int

const (
	MoveUp Direction = iota
	MoveDown
)

// ParseDirection accepts "up" and "down".
func ParseDirection(raw string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "up":
		return MoveUp, true
	case "down":
		return MoveDown, true
	}
	return 0, false
}

// Globals 汇总站点级字段（品牌、联系方式、主题色）。
type Globals struct {
	BrandName      string `json:"brandName"`
	ContactPhone   string `json:"contactPhone"`
	ContactAddress string `json:"contactAddress"`
	ContactEmail   string `json:"contactEmail"`
	PrimaryColor   string `json:"primaryColor"`
	AccentColor    string `json:"accentColor"`
}

// Globals returns the site-wide fields.
func (s *SiteContent) Globals() Globals {
	return Globals{
		BrandName:      s.BrandName,
		ContactPhone:   s.ContactPhone,
		ContactAddress: s.ContactAddress,
		ContactEmail:   s.ContactEmail,
		PrimaryColor:   s.PrimaryColor,
		AccentColor:    s.AccentColor,
	}
}

// SetGlobals overwrites the site-wide fields. Empty colours fall back to the
// default theme.
func (s *SiteContent) SetGlobals(g Globals) {
	s.BrandName = strings.TrimSpace(g.BrandName)
	s.ContactPhone = strings.TrimSpace(g.ContactPhone)
	s.ContactAddress = strings.TrimSpace(g.ContactAddress)
	s.ContactEmail = strings.TrimSpace(g.ContactEmail)
	s.PrimaryColor = strings.TrimSpace(g.PrimaryColor)
	s.AccentColor = strings.TrimSpace(g.AccentColor)
	if s.PrimaryColor == "" {
		s.PrimaryColor = DefaultPrimaryColor
	}
	if s.AccentColor == "" {
		s.AccentColor = DefaultAccentColor
	}
}

// AddPage appends a page whose slug is derived from title. The new page starts
// with a single hero slider.
func (s *SiteContent) AddPage(title string, ids IDGenerator) (*Page, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return nil, ErrPageTitleRequired
	}
	slug := Slugify(trimmed)
	if slug == "" {
		return nil, ErrPageSlugInvalid
	}
	if _, exists := s.PageBySlug(slug); exists {
		return nil, ErrPageSlugConflict
	}

	page := Page{
		ID:    ids.NewID(),
		Title: trimmed,
		Slug:  slug,
		Sections: []Section{{
			ID: ids.NewID(),
			Content: &HeroSlider{Items: []SlideItem{{
				ID:      ids.NewID(),
				Text:    fmt.Sprintf(newPageSlideText, trimmed),
				BgColor: DefaultPrimaryColor,
			}}},
		}},
	}
	s.Pages = append(s.Pages, page)
	return &s.Pages[len(s.Pages)-1], nil
}

// RenamePage changes the display title. The slug is kept so links stay valid.
func (s *SiteContent) RenamePage(pageID, title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return ErrPageTitleRequired
	}
	page, _ := s.FindPage(pageID)
	if page == nil {
		return ErrPageNotFound
	}
	page.Title = trimmed
	return nil
}

// DeletePage removes a page. The home page is protected.
func (s *SiteContent) DeletePage(pageID string) error {
	page, idx := s.FindPage(pageID)
	if page == nil {
		return ErrPageNotFound
	}
	if page.Slug == HomeSlug {
		return ErrHomePageProtected
	}
	s.Pages = append(s.Pages[:idx], s.Pages[idx+1:]...)
	return nil
}

// AddSection appends a section of type t with its starter content.
func (s *SiteContent) AddSection(pageID string, t SectionType, ids IDGenerator) (*Section, error) {
	page, _ := s.FindPage(pageID)
	if page == nil {
		return nil, ErrPageNotFound
	}
	payload, err := NewSectionContent(t, ids)
	if err != nil {
		return nil, err
	}
	page.Sections = append(page.Sections, Section{ID: ids.NewID(), Content: payload})
	return &page.Sections[len(page.Sections)-1], nil
}

// RemoveSection drops a section from its page.
func (s *SiteContent) RemoveSection(pageID, sectionID string) error {
	page, _ := s.FindPage(pageID)
	if page == nil {
		return ErrPageNotFound
	}
	_, idx := page.FindSection(sectionID)
	if idx < 0 {
		return ErrSectionNotFound
	}
	page.Sections = append(page.Sections[:idx], page.Sections[idx+1:]...)
	return nil
}

// MoveSection swaps the section at index with its neighbour. Moving past either
// end is a no-op and reports false.
func (s *SiteContent) MoveSection(pageID string, index int, dir Direction) (bool, error) {
	page, _ := s.FindPage(pageID)
	if page == nil {
		return false, ErrPageNotFound
	}
	target := index + 1
	if dir == MoveUp {
		target = index - 1
	}
	if index < 0 || index >= len(page.Sections) || target < 0 || target >= len(page.Sections) {
		return false, nil
	}
	page.Sections[index], page.Sections[target] = page.Sections[target], page.Sections[index]
	return true, nil
}

// UpdateSection shallow-merges patch into the section content: top-level keys
// in patch replace the existing ones, absent keys are preserved. The merged
// content must keep the same minimums the list operations enforce.
func (s *SiteContent) UpdateSection(pageID, sectionID string, patch json.RawMessage) (*Section, error) {
	section, err := s.section(pageID, sectionID)
	if err != nil {
		return nil, err
	}
	next, err := mergeContent(section.Content, patch)
	if err != nil {
		return nil, err
	}
	if err := checkListMinimums(next); err != nil {
		return nil, err
	}
	section.Content = next
	return section, nil
}

// checkListMinimums 与 RemoveSlide、RemovePriceColumn、RemovePriceRow 的保护规则一致。
func checkListMinimums(c SectionContent) error {
	switch v := c.(type) {
	case *HeroSlider:
		if len(v.Items) == 0 {
			return ErrLastItemProtected
		}
	case *PriceTable:
		if err := v.Validate(); err != nil {
			return err
		}
		if len(v.Headers) == 0 || len(v.Rows) == 0 {
			return ErrLastItemProtected
		}
	}
	return nil
}

// AddSlide appends a slide to a hero slider.
func (s *SiteContent) AddSlide(pageID, sectionID string, ids IDGenerator) (*SlideItem, error) {
	slider, err := sectionAs[*HeroSlider](s, pageID, sectionID)
	if err != nil {
		return nil, err
	}
	slider.Items = append(slider.Items, SlideItem{ID: ids.NewID(), Text: newSlideText, BgColor: newSlideColor})
	return &slider.Items[len(slider.Items)-1], nil
}

// RemoveSlide removes a slide; a slider always keeps at least one.
func (s *SiteContent) RemoveSlide(pageID, sectionID, slideID string) error {
	slider, err := sectionAs[*HeroSlider](s, pageID, sectionID)
	if err != nil {
		return err
	}
	idx := -1
	for i, item := range slider.Items {
		if item.ID == slideID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrItemNotFound
	}
	if len(slider.Items) <= 1 {
		return ErrLastItemProtected
	}
	slider.Items = append(slider.Items[:idx], slider.Items[idx+1:]...)
	return nil
}

// AddFAQ appends an empty question.
func (s *SiteContent) AddFAQ(pageID, sectionID string, ids IDGenerator) (*FAQItem, error) {
	faq, err := sectionAs[*FAQSection](s, pageID, sectionID)
	if err != nil {
		return nil, err
	}
	faq.Items = append(faq.Items, FAQItem{ID: ids.NewID()})
	return &faq.Items[len(faq.Items)-1], nil
}

// RemoveFAQ removes a question. The list may become empty.
func (s *SiteContent) RemoveFAQ(pageID, sectionID, itemID string) error {
	faq, err := sectionAs[*FAQSection](s, pageID, sectionID)
	if err != nil {
		return err
	}
	kept := make([]FAQItem, 0, len(faq.Items))
	for _, item := range faq.Items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(faq.Items) {
		return ErrItemNotFound
	}
	faq.Items = kept
	return nil
}

// AddPriceColumn appends a header and one cell to every row.
func (s *SiteContent) AddPriceColumn(pageID, sectionID, header string) error {
	table, err := sectionAs[*PriceTable](s, pageID, sectionID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(header) == "" {
		header = newColumnHeader
	}
	table.Headers = append(table.Headers, header)
	for i := range table.Rows {
		table.Rows[i] = append(table.Rows[i], newColumnCell)
	}
	return nil
}

// RemovePriceColumn removes column index from the headers and every row.
func (s *SiteContent) RemovePriceColumn(pageID, sectionID string, index int) error {
	table, err := sectionAs[*PriceTable](s, pageID, sectionID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(table.Headers) {
		return ErrItemNotFound
	}
	if len(table.Headers) <= 1 {
		return ErrLastItemProtected
	}
	table.Headers = removeAt(table.Headers, index)
	for i := range table.Rows {
		table.Rows[i] = removeAt(table.Rows[i], index)
	}
	return nil
}

// AddPriceRow appends a row of placeholder cells.
func (s *SiteContent) AddPriceRow(pageID, sectionID string) error {
	table, err := sectionAs[*PriceTable](s, pageID, sectionID)
	if err != nil {
		return err
	}
	row := make([]string, len(table.Headers))
	for i := range row {
		row[i] = newRowCell
	}
	table.Rows = append(table.Rows, row)
	return nil
}

// RemovePriceRow removes a row; a table always keeps at least one.
func (s *SiteContent) RemovePriceRow(pageID, sectionID string, index int) error {
	table, err := sectionAs[*PriceTable](s, pageID, sectionID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(table.Rows) {
		return ErrItemNotFound
	}
	if len(table.Rows) <= 1 {
		return ErrLastItemProtected
	}
	table.Rows = append(table.Rows[:index], table.Rows[index+1:]...)
	return nil
}

func (s *SiteContent) section(pageID, sectionID string) (*Section, error) {
	page, _ := s.FindPage(pageID)
	if page == nil {
		return nil, ErrPageNotFound
	}
	section, _ := page.FindSection(sectionID)
	if section == nil {
		return nil, ErrSectionNotFound
	}
	return section, nil
}

func sectionAs[T SectionContent](s *SiteContent, pageID, sectionID string) (T, error) {
	var zero T
	section, err := s.section(pageID, sectionID)
	if err != nil {
		return zero, err
	}
	typed, ok := section.Content.(T)
	if !ok {
		return zero, ErrSectionTypeInvalid
	}
	return typed, nil
}

func removeAt(values []string, index int) []string {
	out := make([]string, 0, len(values)-1)
	out = append(out, values[:index]...)
	return append(out, values[index+1:]...)
}
