package locale

// Message 是面向用户的提示文案标识。
type Message string

const (
	MsgInvalidCredentials  Message = "invalid_credentials"
	MsgSessionSaveFailed   Message = "session_save_failed"
	MsgBadRequest          Message = "bad_request"
	MsgPageTitleRequired   Message = "page_title_required"
	MsgPageSlugConflict    Message = "page_slug_conflict"
	MsgPageSlugInvalid     Message = "page_slug_invalid"
	MsgPageNotFound        Message = "page_not_found"
	MsgHomePageProtected   Message = "home_page_protected"
	MsgSectionNotFound     Message = "section_not_found"
	MsgSectionTypeInvalid  Message = "section_type_invalid"
	MsgSectionPatchInvalid Message = "section_patch_invalid"
	MsgPriceTableShape     Message = "price_table_shape"
	MsgItemNotFound        Message = "item_not_found"
	MsgLastItemProtected   Message = "last_item_protected"
	MsgImageMissing        Message = "image_missing"
	MsgImageTypeInvalid    Message = "image_type_invalid"
	MsgImageTooLarge       Message = "image_too_large"
	MsgPublished           Message = "published"
	MsgSaveFailed          Message = "save_failed"
)

type translation struct {
	zh string
	en string
}

var catalog = map[Message]translation{
	MsgInvalidCredentials:  {zh: "帳號或密碼錯誤。請使用測試帳號。", en: "Incorrect username or password."},
	MsgSessionSaveFailed:   {zh: "登入狀態保存失敗，請稍後再試", en: "Could not save your session, please retry."},
	MsgBadRequest:          {zh: "請求格式不正確", en: "Malformed request."},
	MsgPageTitleRequired:   {zh: "請輸入頁面名稱", en: "Please enter a page title."},
	MsgPageSlugConflict:    {zh: "該網址路徑已存在，請更換名稱。", en: "A page with this URL already exists, please choose another title."},
	MsgPageSlugInvalid:     {zh: "頁面名稱無法轉換為網址路徑", en: "The title cannot be turned into a URL."},
	MsgPageNotFound:        {zh: "找不到該頁面", en: "Page not found."},
	MsgHomePageProtected:   {zh: "首頁為系統核心，無法刪除", en: "The home page cannot be deleted."},
	MsgSectionNotFound:     {zh: "找不到該內容模組", en: "Section not found."},
	MsgSectionTypeInvalid:  {zh: "不支援的模組類型", en: "Unsupported section type."},
	MsgSectionPatchInvalid: {zh: "模組內容格式不正確", en: "Malformed section content."},
	MsgPriceTableShape:     {zh: "每一列的欄位數必須與表頭一致", en: "Every row must have one cell per column."},
	MsgItemNotFound:        {zh: "找不到該項目", en: "Item not found."},
	MsgLastItemProtected:   {zh: "至少需保留一個項目", en: "At least one item must remain."},
	MsgImageMissing:        {zh: "未找到上傳的圖片", en: "No image was uploaded."},
	MsgImageTypeInvalid:    {zh: "請選擇圖片檔案", en: "Please choose an image file."},
	MsgImageTooLarge:       {zh: "檔案過大（上限 2MB），實際部署建議使用雲端儲存服務。", en: "The file is too large (2 MB limit)."},
	MsgPublished:           {zh: "網站內容已成功發佈！", en: "Site content published!"},
	MsgSaveFailed:          {zh: "儲存失敗，請稍後重試", en: "Saving failed, please retry."},
}

// Text returns the message in language, defaulting to Traditional Chinese.
func Text(language string, msg Message) string {
	entry, ok := catalog[msg]
	if !ok {
		return string(msg)
	}
	if NormalizeLanguage(language) == LanguageEnglish && entry.en != "" {
		return entry.en
	}
	return entry.zh
}
