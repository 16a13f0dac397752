package content

// 默认主题色，与原站视觉保持一致。
const (
	DefaultPrimaryColor = "#1FC81F"
	DefaultAccentColor  = "#f5c339"
)

const (
	newSlideText     = "新標題文字"
	newSlideColor    = "#333"
	newColumnHeader  = "新欄位"
	newColumnCell    = "$0"
	newRowCell       = "-"
	newPageSlideText = "%s 專業現場快修"
)

// Default returns the document served before anything has been published.
func Default() *SiteContent {
	return &SiteContent{
		BrandName:      "GUARD STATION | 保衛站",
		ContactPhone:   "03-1234567",
		ContactAddress: "桃園市某某路123號",
		ContactEmail:   "service@guardstation.tw",
		PrimaryColor:   DefaultPrimaryColor,
		AccentColor:    DefaultAccentColor,
		Pages: []Page{
			{
				ID:    "page-home",
				Title: "首頁",
				Slug:  HomeSlug,
				Sections: []Section{
					{ID: "sec-hero", Content: &HeroSlider{Items: []SlideItem{
						{ID: "s1", Text: "iPhone 螢幕現場快修", BgColor: "#85868A", ImageURL: "https://images.unsplash.com/photo-1510557880182-3d4d3cba35a5?auto=format&fit=crop&q=80&w=2000"},
						{ID: "s2", Text: "原廠等級電池更換", BgColor: "#A0A1A5", ImageURL: "https://images.unsplash.com/photo-1597740985671-2a8a3b80502e?auto=format&fit=crop&q=80&w=2000"},
						{ID: "s3", Text: "全台連鎖 售後無憂", BgColor: "#6C6D71", ImageURL: "https://images.unsplash.com/photo-1556656793-062ff987b50c?auto=format&fit=crop&q=80&w=2000"},
						{ID: "s4", Text: "年度維修優惠中", BgColor: "#4D4E52", ImageURL: "https://images.unsplash.com/photo-1512499617640-c74ae3a49dd5?auto=format&fit=crop&q=80&w=2000"},
					}}},
					{ID: "sec-repair", Content: &FeatureBlock{
						Title:       "iPhone 螢幕維修",
						Description: "我們提供現場 30 分鐘快速更換螢幕服務。不論是顯示異常、觸控失靈、或是玻璃破裂，我們都能完美修復。",
						Image:       "https://images.unsplash.com/photo-1512499617640-c74ae3a49dd5?auto=format&fit=crop&q=80&w=1000",
					}},
					{ID: "sec-prices", Content: &PriceTable{
						Title:   "維修價格透明化",
						Headers: []string{"機型名稱", "更換電池", "更換螢幕", "鏡頭維修", "主機板", "背蓋玻璃"},
						Rows: [][]string{
							{"iPhone 15 Pro", "$2,200", "$11,500", "$4,500", "現場檢測", "$5,000"},
							{"iPhone 15", "$2,000", "$9,500", "$3,800", "現場檢測", "$4,500"},
							{"iPhone 14 Pro", "$1,900", "$9,500", "$3,800", "現場檢測", "$4,500"},
							{"iPhone 14", "$1,800", "$8,500", "$3,500", "現場檢測", "$4,000"},
						},
					}},
					{ID: "sec-faq", Content: &FAQSection{
						Title: "客戶常見問題",
						Items: []FAQItem{
							{ID: "f1", Question: "維修資料會不見嗎？", Answer: "正常維修不會動到資料，但建議維修前仍先進行資料備份以策萬全。"},
							{ID: "f2", Question: "維修需要留機嗎？", Answer: "大部分零件更換（螢幕、電池）皆可現場取件，若為主機板故障則需 1-3 個工作天。"},
						},
					}},
				},
			},
			{
				ID:    "page-about",
				Title: "About Us",
				Slug:  "about-us",
				Sections: []Section{
					{ID: "sec-about", Content: &FeatureBlock{
						Title:       "關於保衛站",
						Description: "保衛站專注於 iPhone 現場快修，所有維修皆由認證技師執行並提供保固。",
					}},
				},
			},
		},
	}
}

// NewSectionContent returns the starter payload the editor inserts for a new
// section of type t.
func NewSectionContent(t SectionType, ids IDGenerator) (SectionContent, error) {
	switch t {
	case SectionHeroSlider:
		return &HeroSlider{Items: []SlideItem{{ID: ids.NewID(), Text: "在此輸入大標題", BgColor: newSlideColor}}}, nil
	case SectionFeatureBlock:
		return &FeatureBlock{Title: "服務特色標題", Description: "請輸入內容描述..."}, nil
	case SectionPriceTable:
		return &PriceTable{
			Title:   "官方維修報價單",
			Headers: []string{"機型", "電池更換", "螢幕總成"},
			Rows:    [][]string{{"iPhone 15", "$2,000", "$9,500"}},
		}, nil
	case SectionFAQ:
		return &FAQSection{
			Title: "客戶常見問題",
			Items: []FAQItem{{ID: ids.NewID(), Question: "問題文字？", Answer: "回答內容。"}},
		}, nil
	}
	return nil, ErrSectionTypeInvalid
}
