package service

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/guardstation/internal/content"
	"go.uber.org/zap"
)

// Workspace 是某个管理员当前的编辑状态。
type Workspace struct {
	Draft     *content.SiteContent `json:"draft"`
	Published *content.SiteContent `json:"published"`
	Dirty     bool                 `json:"dirty"`
}

// EditorService 在草稿上执行编辑操作，发布时整体覆盖已发布内容。
// Drafts are stored per user; every mutation is a read-modify-write of the
// whole draft, serialised by mu.
type EditorService struct {
	store        *ContentStore
	ids          content.IDGenerator
	publishDelay time.Duration
	logger       *zap.Logger
	mu           sync.Mutex
}

// NewEditorService constructs an EditorService. publishDelay simulates the
// latency of a remote publish.
func NewEditorService(store *ContentStore, ids content.IDGenerator, publishDelay time.Duration, logger *zap.Logger) *EditorService {
	if ids == nil {
		ids = content.UUIDGenerator{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EditorService{
		store:        store,
		ids:          ids,
		publishDelay: publishDelay,
		logger:       logger,
	}
}

// Workspace returns the user's draft, the published baseline and whether they
// differ. A user without a draft sees a copy of the published document.
func (s *EditorService) Workspace(ctx context.Context, user string) (*Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	published, draft, err := s.load(ctx, user)
	if err != nil {
		return nil, err
	}
	return newWorkspace(draft, published)
}

// Edit applies fn to the user's draft and saves it. If fn or validation fails
// the stored draft is left untouched.
func (s *EditorService) Edit(ctx context.Context, user string, fn func(doc *content.SiteContent) error) (*Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	published, draft, err := s.load(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := fn(draft); err != nil {
		return nil, err
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.SaveDraft(ctx, user, draft); err != nil {
		return nil, err
	}
	return newWorkspace(draft, published)
}

// UpdateGlobal overwrites the brand, contact and theme fields.
func (s *EditorService) UpdateGlobal(ctx context.Context, user string, g content.Globals) (*Workspace, error) {
	return s.Edit(ctx, user, func(doc *content.SiteContent) error {
		doc.SetGlobals(g)
		return nil
	})
}

// AddPage creates a page from title and returns its id.
func (s *EditorService) AddPage(ctx context.Context, user, title string) (string, *Workspace, error) {
	var id string
	ws, err := s.Edit(ctx, user, func(doc *content.SiteContent) error {
		page, err := doc.AddPage(title, s.ids)
		if err != nil {
			return err
		}
		id = page.ID
		return nil
	})
	return id, ws, err
}

// RenamePage changes a page title.
func (s *EditorService) RenamePage(ctx context.Context, user, pageID, title string) (*Workspace, error) {
	return s.Edit(ctx, user, func(doc *content.SiteContent) error {
		return doc.RenamePage(pageID, title)
	})
}

// DeletePage removes a page other than home.
func (s *EditorService) DeletePage(ctx context.Context, user, pageID string) (*Workspace, error) {
	return s.Edit(ctx, user, func(doc *content.SiteContent) error {
		return doc.DeletePage(pageID)
	})
}

// AddSection appends a section of type t and returns its id.
func (s *EditorService) AddSection(ctx context.Context, user, pageID string, t content.SectionType) (string, *Workspace, error) {
	var id string
	ws, err := s.Edit(ctx, user, func(doc *content.SiteContent) error {
		section, err := doc.AddSection(pageID, t, s.ids)
		if err != nil {
			return err
		}
		id = section.ID
		return nil
	})
	return id, ws, err
}

// RemoveSection drops a section.
func (s *EditorService) RemoveSection(ctx context.Context, user, pageID, sectionID string) (*Workspace, error) {
	return s.Edit(ctx, user, func(doc *content.SiteContent) error {
		return doc.RemoveSection(pageID, sectionID)
	})
}

// MoveSection swaps a section with its neighbour; moves past the ends change
// nothing.
func (s *EditorService) MoveSection(ctx context.Context, user, pageID string, index int, dir content.Direction) (*Workspace, error) {
	return s.Edit(ctx, user, func(doc *content.SiteContent) error {
		_, err := doc.MoveSection(pageID, index, dir)
		return err
	})
}

// MoveSectionByID moves the section identified by sectionID one step in dir.
func (s *EditorService) MoveSectionByID(ctx context.Context, user, pageID, sectionID string, dir content.Direction) (*Workspace, error) {
	return s.Edit(ctx, user, func(doc *content.SiteContent) error {
		page, _ := doc.FindPage(pageID)
		if page == nil {
			return content.ErrPageNotFound
		}
		_, index := page.FindSection(sectionID)
		if index < 0 {
			return content.ErrSectionNotFound
		}
		_, err := doc.MoveSection(pageID, index, dir)
		return err
	})
}

// UpdateSection shallow-merges patch into a section's content.
func (s *EditorService) UpdateSection(ctx context.Context, user, pageID, sectionID string, patch json.RawMessage) (*Workspace, error) {
	return s.Edit(ctx, user, func(doc *content.SiteContent) error {
		_, err := doc.UpdateSection(pageID, sectionID, patch)
		return err
	})
}

// AddSlide appends a slide to a hero slider and returns its id.
func (s *EditorService) AddSlide(ctx context.Context, user, pageID, sectionID string) (string, *Workspace, error) {
	var id string
	ws, err := s.Edit(ctx, user, func(doc *content.SiteContent) error {
		item, err := doc.AddSlide(pageID, sectionID, s.ids)
		if err != nil {
			return err
		}
		id = item.ID
		return nil
	})
	return id, ws, err
}

// RemoveSlide removes a slide, keeping at least one.
func (s *EditorService) RemoveSlide(ctx context.Context, user, pageID, sectionID, slideID string) (*Workspace, error) {
	return s.Edit(ctx, user, func(doc *content.SiteContent) error {
		return doc.RemoveSlide(pageID, sectionID, slideID)
	})
}

// AddFAQ appends an empty question and returns its id.
func (s *EditorService) AddFAQ(ctx context.Context, user, pageID, sectionID string) (string, *Workspace, error) {
	var id string
	ws, err := s.Edit(ctx, user, func(doc *content.SiteContent) error {
		item, err := doc.AddFAQ(pageID, sectionID, s.ids)
		if err != nil {
			return err
		}
		id = item.ID
		return nil
	})
	return id, ws, err
}

// RemoveFAQ removes a question.
func (s *EditorService) RemoveFAQ(ctx context.Context, user, pageID, sectionID, itemID string) (*Workspace, error) {
	return s.Edit(ctx, user, func(doc *content.SiteContent) error {
		return doc.RemoveFAQ(pageID, sectionID, itemID)
	})
}

// AddPriceColumn appends a column to a price table.
func (s *EditorService) AddPriceColumn(ctx context.Context, user, pageID, sectionID, header string) (*Workspace, error) {
	return s.Edit(ctx, user, func(doc *content.SiteContent) error {
		return doc.AddPriceColumn(pageID, sectionID, header)
	})
}

// RemovePriceColumn removes a column from a price table.
func (s *EditorService) RemovePriceColumn(ctx context.Context, user, pageID, sectionID string, index int) (*Workspace, error) {
	return s.Edit(ctx, user, func(doc *content.SiteContent) error {
		return doc.RemovePriceColumn(pageID, sectionID, index)
	})
}

// AddPriceRow appends a row to a price table.
func (s *EditorService) AddPriceRow(ctx context.Context, user, pageID, sectionID string) (*Workspace, error) {
	return s.Edit(ctx, user, func(doc *content.SiteContent) error {
		return doc.AddPriceRow(pageID, sectionID)
	})
}

// RemovePriceRow removes a row from a price table.
func (s *EditorService) RemovePriceRow(ctx context.Context, user, pageID, sectionID string, index int) (*Workspace, error) {
	return s.Edit(ctx, user, func(doc *content.SiteContent) error {
		return doc.RemovePriceRow(pageID, sectionID, index)
	})
}

// Discard drops the user's draft so the workspace is clean again.
func (s *EditorService) Discard(ctx context.Context, user string) (*Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteDraft(ctx, user); err != nil {
		return nil, err
	}
	published, draft, err := s.load(ctx, user)
	if err != nil {
		return nil, err
	}
	return newWorkspace(draft, published)
}

// Publish waits the simulated publish latency, then stores the user's draft as
// the published document. The draft becomes the new clean baseline.
func (s *EditorService) Publish(ctx context.Context, user string) (*Workspace, error) {
	if s.publishDelay > 0 {
		timer := time.NewTimer(s.publishDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, draft, err := s.load(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := s.store.Publish(ctx, user, draft); err != nil {
		return nil, err
	}

	s.logger.Info("site content published",
		zap.String("user", user),
		zap.Int("pages", len(draft.Pages)),
	)
	return newWorkspace(draft, draft)
}

func (s *EditorService) load(ctx context.Context, user string) (published, draft *content.SiteContent, err error) {
	published, err = s.store.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	draft, ok, err := s.store.LoadDraft(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		draft, err = published.Clone()
		if err != nil {
			return nil, nil, err
		}
	}
	return published, draft, nil
}

func newWorkspace(draft, published *content.SiteContent) (*Workspace, error) {
	dirty, err := differs(draft, published)
	if err != nil {
		return nil, err
	}
	return &Workspace{Draft: draft, Published: published, Dirty: dirty}, nil
}

// differs compares the canonical JSON encodings of two documents.
func differs(a, b *content.SiteContent) (bool, error) {
	left, err := content.Encode(a)
	if err != nil {
		return false, err
	}
	right, err := content.Encode(b)
	if err != nil {
		return false, err
	}
	return !bytes.Equal(left, right), nil
}
