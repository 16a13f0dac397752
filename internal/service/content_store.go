package service

import (
	"context"
	"fmt"

	"github.com/guardstation/internal/content"
	"github.com/guardstation/internal/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ContentStore 负责站点内容文档的整体读写，每次保存都覆盖整份文档。
type ContentStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewContentStore constructs a ContentStore. A nil logger discards warnings.
func NewContentStore(gdb *gorm.DB, logger *zap.Logger) *ContentStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentStore{db: gdb, logger: logger}
}

// Load returns the published document. When nothing has been published, or
// the stored JSON cannot be decoded, the default document is returned; only
// storage failures are reported as errors.
func (s *ContentStore) Load(ctx context.Context) (*content.SiteContent, error) {
	doc, ok, err := s.read(ctx, db.KeySiteContent)
	if err != nil {
		return nil, err
	}
	if !ok {
		return content.Default(), nil
	}
	return doc, nil
}

// Save validates doc and overwrites the published document.
func (s *ContentStore) Save(ctx context.Context, doc *content.SiteContent) error {
	return s.write(ctx, db.KeySiteContent, doc)
}

// Reset drops the published document so Load falls back to the default.
func (s *ContentStore) Reset(ctx context.Context) error {
	return db.DeleteEntry(s.db.WithContext(ctx), db.KeySiteContent)
}

// Publish 在同一事务中覆盖已发布内容并删除 username 的草稿。
func (s *ContentStore) Publish(ctx context.Context, username string, doc *content.SiteContent) error {
	raw, err := encodeForSave(db.KeySiteContent, doc)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := db.PutEntry(tx, db.KeySiteContent, raw); err != nil {
			return err
		}
		return db.DeleteEntry(tx, db.DraftKey(username))
	})
}

// LoadDraft returns username's draft, if one exists and decodes.
func (s *ContentStore) LoadDraft(ctx context.Context, username string) (*content.SiteContent, bool, error) {
	return s.read(ctx, db.DraftKey(username))
}

// SaveDraft overwrites username's draft.
func (s *ContentStore) SaveDraft(ctx context.Context, username string, doc *content.SiteContent) error {
	return s.write(ctx, db.DraftKey(username), doc)
}

// DeleteDraft drops username's draft.
func (s *ContentStore) DeleteDraft(ctx context.Context, username string) error {
	return db.DeleteEntry(s.db.WithContext(ctx), db.DraftKey(username))
}

func (s *ContentStore) read(ctx context.Context, key string) (*content.SiteContent, bool, error) {
	raw, ok, err := db.GetEntry(s.db.WithContext(ctx), key)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	doc, err := content.Decode([]byte(raw))
	if err != nil {
		s.logger.Warn("discarding unreadable site content",
			zap.String("key", key),
			zap.Int("bytes", len(raw)),
			zap.Error(err),
		)
		return nil, false, nil
	}
	return doc, true, nil
}

func (s *ContentStore) write(ctx context.Context, key string, doc *content.SiteContent) error {
	raw, err := encodeForSave(key, doc)
	if err != nil {
		return err
	}
	return db.PutEntry(s.db.WithContext(ctx), key, raw)
}

func encodeForSave(key string, doc *content.SiteContent) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("save %s: document is nil", key)
	}
	if err := doc.Validate(); err != nil {
		return "", err
	}
	raw, err := content.Encode(doc)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
