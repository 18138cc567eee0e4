package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-consignment-leads/internal/domain"
	"github.com/tbourn/go-consignment-leads/internal/repo"
)

// TemplateService manages message templates. Templates are rotated in
// creation order during exports.
type TemplateService struct {
	DB *gorm.DB

	// MaxRunes caps the template length. Zero disables the check.
	MaxRunes int
}

func (s *TemplateService) clean(text string) (string, error) {
	text = cleanText(text)
	if text == "" {
		return "", invalid("body", "is required")
	}
	if s.MaxRunes > 0 && len([]rune(text)) > s.MaxRunes {
		return "", invalid("body", "must be at most %d characters", s.MaxRunes)
	}
	return text, nil
}

// Add stores a new template and returns its id.
func (s *TemplateService) Add(ctx context.Context, text string) (uint, error) {
	body, err := s.clean(text)
	if err != nil {
		return 0, err
	}
	t, err := repo.CreateTemplate(ctx, s.DB, body)
	if err != nil {
		return 0, storageErr("create template", err)
	}
	return t.ID, nil
}

// Update replaces the body of template id. The boolean reports whether the
// template existed.
func (s *TemplateService) Update(ctx context.Context, id uint, text string) (bool, error) {
	body, err := s.clean(text)
	if err != nil {
		return false, err
	}
	ok, err := repo.UpdateTemplate(ctx, s.DB, id, body)
	return ok, storageErr("update template", err)
}

// Delete removes template id even when export logs reference it; those rows
// keep the old id. The boolean reports whether the template existed.
func (s *TemplateService) Delete(ctx context.Context, id uint) (bool, error) {
	ok, err := repo.DeleteTemplate(ctx, s.DB, id)
	return ok, storageErr("delete template", err)
}

// List returns every template in rotation order.
func (s *TemplateService) List(ctx context.Context) ([]domain.MessageTemplate, error) {
	out, err := repo.ListTemplates(ctx, s.DB)
	if err != nil {
		return nil, storageErr("list templates", err)
	}
	if out == nil {
		out = []domain.MessageTemplate{}
	}
	return out, nil
}
