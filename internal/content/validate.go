package content

import (
	"errors"
	"fmt"
)

var (
	ErrPageTitleRequired   = errors.New("page title is required")
	ErrPageSlugInvalid     = errors.New("page slug is invalid")
	ErrPageSlugConflict    = errors.New("page slug already exists")
	ErrPageNotFound        = errors.New("page not found")
	ErrHomePageProtected   = errors.New("home page cannot be deleted")
	ErrHomePageMissing     = errors.New("exactly one home page is required")
	ErrDuplicateID         = errors.New("duplicate identifier")
	ErrSectionNotFound     = errors.New("section not found")
	ErrSectionTypeInvalid  = errors.New("section type is invalid")
	ErrSectionTypeUnknown  = errors.New("section type is not editable")
	ErrSectionPatchInvalid = errors.New("section patch is invalid")
	ErrPriceTableShape     = errors.New("price table row width must match header count")
	ErrItemNotFound        = errors.New("item not found")
	ErrLastItemProtected   = errors.New("the last item cannot be removed")
)

// Validate checks the document invariants: one home page, unique page ids and
// slugs, unique section ids per page and rectangular price tables.
func (s *SiteContent) Validate() error {
	homes := 0
	pageIDs := make(map[string]struct{}, len(s.Pages))
	slugs := make(map[string]struct{}, len(s.Pages))

	for i := range s.Pages {
		page := &s.Pages[i]
		if page.Slug == HomeSlug {
			homes++
		}
		if page.ID == "" || page.Slug == "" {
			return fmt.Errorf("page %d: %w", i, ErrPageSlugInvalid)
		}
		if _, dup := pageIDs[page.ID]; dup {
			return fmt.Errorf("page %s: %w", page.ID, ErrDuplicateID)
		}
		pageIDs[page.ID] = struct{}{}
		if _, dup := slugs[page.Slug]; dup {
			return fmt.Errorf("page %s: %w", page.Slug, ErrPageSlugConflict)
		}
		slugs[page.Slug] = struct{}{}

		if err := page.validateSections(); err != nil {
			return fmt.Errorf("page %s: %w", page.Slug, err)
		}
	}

	if homes != 1 {
		return ErrHomePageMissing
	}
	return nil
}

func (p *Page) validateSections() error {
	ids := make(map[string]struct{}, len(p.Sections))
	for _, section := range p.Sections {
		if section.Content == nil {
			return fmt.Errorf("section %s: %w", section.ID, ErrSectionTypeInvalid)
		}
		if _, dup := ids[section.ID]; dup {
			return fmt.Errorf("section %s: %w", section.ID, ErrDuplicateID)
		}
		ids[section.ID] = struct{}{}

		if table, ok := section.Content.(*PriceTable); ok {
			if err := table.Validate(); err != nil {
				return fmt.Errorf("section %s: %w", section.ID, err)
			}
		}
	}
	return nil
}

// Validate enforces the row-width invariant.
func (t *PriceTable) Validate() error {
	for _, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return ErrPriceTableShape
		}
	}
	return nil
}
