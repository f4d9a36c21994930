package repo

import (
	"Drawer/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// TagRepository: теги и закреплённые в них снимки записей.
type TagRepository interface {
	// Create создаёт тег; занятое имя → *model.DuplicateNameError.
	Create(ctx context.Context, name string) (*model.Tag, error)

	// List возвращает все теги по возрастанию id.
	List(ctx context.Context) ([]model.Tag, error)

	// DeleteCascade удаляет тег вместе со всеми его снимками в одной транзакции.
	DeleteCascade(ctx context.Context, id int64) error

	// AddClipboard сохраняет снимок в существующий тег.
	AddClipboard(ctx context.Context, tc *model.TagClipboard) error

	// ListClipboards возвращает снимки тега в порядке вставки (по индексу tag_id).
	ListClipboards(ctx context.Context, tagID int64) ([]model.TagClipboard, error)

	// DeleteClipboard удаляет один снимок.
	DeleteClipboard(ctx context.Context, id int64) error
}

type tagRepo struct {
	db *gorm.DB
}

// NewTagRepository создаёт реализацию репозитория тегов.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepo{db: db}
}

func (r *tagRepo) Create(ctx context.Context, name string) (*model.Tag, error) {
	tag := &model.Tag{Name: name}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.Tag{}).Where("name = ?", name).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return &model.DuplicateNameError{Name: name}
		}
		if err := tx.Create(tag).Error; err != nil {
			// гонка с параллельной вставкой ловится уникальным индексом
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &model.DuplicateNameError{Name: name}
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tag, nil
}

func (r *tagRepo) List(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepo) DeleteCascade(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&model.TagClipboard{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Tag{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.ErrNotFound
		}
		return nil
	})
}

func (r *tagRepo) AddClipboard(ctx context.Context, tc *model.TagClipboard) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.Tag{}).Where("id = ?", tc.TagID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return model.ErrNotFound
		}
		tc.ID = 0
		return tx.Create(tc).Error
	})
}

func (r *tagRepo) ListClipboards(ctx context.Context, tagID int64) ([]model.TagClipboard, error) {
	items := []model.TagClipboard{}
	if err := r.db.WithContext(ctx).Where("tag_id = ?", tagID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *tagRepo) DeleteClipboard(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.TagClipboard{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
