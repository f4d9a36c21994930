package service

import (
	"Drawer/internal/model"
	"Drawer/internal/repo"
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// TagIndex: бизнес-логика тегов и закреплённых снимков.
type TagIndex struct {
	repo   repo.TagRepository
	logger *zap.SugaredLogger
}

func NewTagIndex(r repo.TagRepository, logger *zap.SugaredLogger) *TagIndex {
	return &TagIndex{repo: r, logger: logger}
}

// AddTag создаёт тег. Занятое имя → *model.DuplicateNameError.
func (t *TagIndex) AddTag(ctx context.Context, name string) (model.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Tag{}, fmt.Errorf("%w: tag name is required", model.ErrValidation)
	}
	tag, err := t.repo.Create(ctx, name)
	if err != nil {
		return model.Tag{}, err
	}
	t.logger.Infow("tag created", "id", tag.ID, "name", tag.Name)
	return *tag, nil
}

// GetAllTag возвращает все теги.
func (t *TagIndex) GetAllTag(ctx context.Context) ([]model.Tag, error) {
	tags, err := t.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []model.Tag{}
	}
	return tags, nil
}

// DeleteTag удаляет тег и все его снимки одной транзакцией.
func (t *TagIndex) DeleteTag(ctx context.Context, id int64) error {
	if err := t.repo.DeleteCascade(ctx, id); err != nil {
		return fmt.Errorf("delete tag %d: %w", id, err)
	}
	t.logger.Infow("tag deleted", "id", id)
	return nil
}

// Pin закрепляет копию записи в теге.
func (t *TagIndex) Pin(ctx context.Context, entry model.ClipboardEntry, tagID int64) (model.TagClipboard, error) {
	snap := model.SnapshotOf(entry, tagID)
	if err := t.repo.AddClipboard(ctx, &snap); err != nil {
		return model.TagClipboard{}, fmt.Errorf("pin to tag %d: %w", tagID, err)
	}
	return snap, nil
}

// ListByTag возвращает снимки тега в порядке закрепления.
func (t *TagIndex) ListByTag(ctx context.Context, tagID int64) ([]model.TagClipboard, error) {
	return t.repo.ListClipboards(ctx, tagID)
}

// DeleteTagClipboard удаляет один снимок.
func (t *TagIndex) DeleteTagClipboard(ctx context.Context, id int64) error {
	if err := t.repo.DeleteClipboard(ctx, id); err != nil {
		return fmt.Errorf("delete pinned entry %d: %w", id, err)
	}
	return nil
}
