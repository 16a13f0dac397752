package content

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SectionType 是内容模块的类型标签。
type SectionType string

const (
	SectionHeroSlider   SectionType = "HERO_SLIDER"
	SectionFeatureBlock SectionType = "FEATURE_BLOCK"
	SectionPriceTable   SectionType = "PRICE_TABLE"
	SectionFAQ          SectionType = "FAQ_SECTION"
)

// SectionTypes lists every section type the editor can create, in menu order.
var SectionTypes = []SectionType{
	SectionHeroSlider,
	SectionFeatureBlock,
	SectionPriceTable,
	SectionFAQ,
}

// ParseSectionType normalises a type tag coming from a request.
func ParseSectionType(raw string) (SectionType, bool) {
	for _, t := range SectionTypes {
		if string(t) == raw {
			return t, true
		}
	}
	return "", false
}

// SectionContent is the payload of a section. The set of implementations is
// closed: HeroSlider, FeatureBlock, PriceTable, FAQSection and UnknownContent.
type SectionContent interface {
	Type() SectionType
	sectionContent()
}

// SlideItem 是轮播图中的一张幻灯片。
type SlideItem struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	BgColor  string `json:"bgColor"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// HeroSlider 是首屏轮播模块。
type HeroSlider struct {
	Items []SlideItem `json:"items"`
}

// FeatureBlock 是图文介绍模块，Reverse 为 true 时图片在右侧。
type FeatureBlock struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	Reverse     bool   `json:"reverse"`
}

// PriceTable 是维修价目表，每一行的单元格数量必须等于表头数量。
type PriceTable struct {
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// FAQItem 是一条常见问题。
type FAQItem struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQSection 是常见问题模块。
type FAQSection struct {
	Title string    `json:"title"`
	Items []FAQItem `json:"items"`
}

// UnknownContent keeps the payload of a section whose type tag this build does
// not recognise, so the document still round-trips. Renderers skip it.
type UnknownContent struct {
	Tag SectionType
	Raw json.RawMessage
}

func (*HeroSlider) Type() SectionType       { return SectionHeroSlider }
func (*FeatureBlock) Type() SectionType     { return SectionFeatureBlock }
func (*PriceTable) Type() SectionType       { return SectionPriceTable }
func (*FAQSection) Type() SectionType       { return SectionFAQ }
func (u *UnknownContent) Type() SectionType { return u.Tag }

func (*HeroSlider) sectionContent()     {}
func (*FeatureBlock) sectionContent()   {}
func (*PriceTable) sectionContent()     {}
func (*FAQSection) sectionContent()     {}
func (*UnknownContent) sectionContent() {}

// Section 是页面中的一个内容模块。
type Section struct {
	ID      string
	Content SectionContent
}

// Type returns the tag of the section payload.
func (s Section) Type() SectionType {
	if s.Content == nil {
		return ""
	}
	return s.Content.Type()
}

type sectionWire struct {
	ID      string          `json:"id"`
	Type    SectionType     `json:"type"`
	Content json.RawMessage `json:"content"`
}

// MarshalJSON writes the section as {"id","type","content"}.
func (s Section) MarshalJSON() ([]byte, error) {
	wire := sectionWire{ID: s.ID, Type: s.Type()}
	switch c := s.Content.(type) {
	case nil:
		wire.Content = json.RawMessage("null")
	case *UnknownContent:
		wire.Content = c.Raw
		if len(wire.Content) == 0 {
			wire.Content = json.RawMessage("null")
		}
	default:
		raw, err := json.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("encode section %s: %w", s.ID, err)
		}
		wire.Content = raw
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes the payload according to the type tag.
func (s *Section) UnmarshalJSON(data []byte) error {
	var wire sectionWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	payload, err := decodeContent(wire.Type, wire.Content)
	if err != nil {
		return fmt.Errorf("decode section %s: %w", wire.ID, err)
	}

	s.ID = wire.ID
	s.Content = payload
	return nil
}

func newContent(t SectionType) SectionContent {
	switch t {
	case SectionHeroSlider:
		return &HeroSlider{}
	case SectionFeatureBlock:
		return &FeatureBlock{}
	case SectionPriceTable:
		return &PriceTable{}
	case SectionFAQ:
		return &FAQSection{}
	}
	return nil
}

func decodeContent(t SectionType, raw json.RawMessage) (SectionContent, error) {
	target := newContent(t)
	if target == nil {
		return &UnknownContent{Tag: t, Raw: append(json.RawMessage(nil), raw...)}, nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return target, nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return nil, err
	}
	normalizeLists(target)
	return target, nil
}

// normalizeLists replaces null lists with empty ones so the payload always
// encodes lists as JSON arrays.
func normalizeLists(c SectionContent) {
	switch v := c.(type) {
	case *HeroSlider:
		if v.Items == nil {
			v.Items = []SlideItem{}
		}
	case *FAQSection:
		if v.Items == nil {
			v.Items = []FAQItem{}
		}
	case *PriceTable:
		if v.Headers == nil {
			v.Headers = []string{}
		}
		if v.Rows == nil {
			v.Rows = [][]string{}
		}
		for i := range v.Rows {
			if v.Rows[i] == nil {
				v.Rows[i] = []string{}
			}
		}
	}
}

// mergeContent overlays the top-level keys of patch onto the JSON object of
// current and decodes the result into a fresh payload of the same type.
func mergeContent(current SectionContent, patch json.RawMessage) (SectionContent, error) {
	if _, ok := current.(*UnknownContent); ok {
		return nil, ErrSectionTypeUnknown
	}

	var overlay map[string]json.RawMessage
	if err := json.Unmarshal(patch, &overlay); err != nil || overlay == nil {
		return nil, ErrSectionPatchInvalid
	}

	base, err := json.Marshal(current)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}
	for key, value := range overlay {
		fields[key] = value
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	next := newContent(current.Type())
	if err := json.Unmarshal(merged, next); err != nil {
		return nil, ErrSectionPatchInvalid
	}
	normalizeLists(next)
	return next, nil
}
