package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry 是一条键值记录，整份站点内容以 JSON 形式存放在单个键下。
type Entry struct {
	gorm.Model
	Key   string `gorm:"size:191;uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (Entry) TableName() string {
	return "store_entries"
}

const (
	// KeySiteContent 存放已发布的站点内容。
	KeySiteContent = "site_content"
	// keyDraftPrefix 加上用户名即为该用户的编辑草稿。
	keyDraftPrefix = "site_content_draft:"
)

// DraftKey returns the key holding username's unpublished draft.
func DraftKey(username string) string {
	return keyDraftPrefix + username
}

// GetEntry reads the value stored under key. ok is false when nothing is stored.
func GetEntry(tx *gorm.DB, key string) (value string, ok bool, err error) {
	var entry Entry
	if err := tx.Where("key = ?", key).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get entry %s: %w", key, err)
	}
	return entry.Value, true, nil
}

// PutEntry overwrites the value stored under key.
func PutEntry(tx *gorm.DB, key, value string) error {
	entry := Entry{Key: key, Value: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&entry).Error; err != nil {
		return fmt.Errorf("put entry %s: %w", key, err)
	}
	return nil
}

// DeleteEntry removes key. Missing keys are not an error.
func DeleteEntry(tx *gorm.DB, key string) error {
	if err := tx.Unscoped().Where("key = ?", key).Delete(&Entry{}).Error; err != nil {
		return fmt.Errorf("delete entry %s: %w", key, err)
	}
	return nil
}
