package repo

import (
	"Drawer/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// ClipboardRepository: журнал записей истории, ключ - время захвата.
type ClipboardRepository interface {
	// InsertIfChanged добавляет запись, если её Data отличается от последней вставленной.
	// capturedAt: момент захвата в мс; при коллизии id берётся как last+1.
	// Возвращает inserted=false для дубликата.
	InsertIfChanged(ctx context.Context, entry *model.ClipboardEntry, capturedAt int64) (bool, error)

	// ListAll возвращает все записи по возрастанию id.
	ListAll(ctx context.Context) ([]model.ClipboardEntry, error)

	// GetByID находит запись по id.
	GetByID(ctx context.Context, id int64) (*model.ClipboardEntry, error)

	// DeleteUpTo удаляет все записи с id <= cutoff и возвращает их количество.
	DeleteUpTo(ctx context.Context, cutoff int64) (int64, error)
}

type clipboardRepo struct {
	db *gorm.DB
}

// NewClipboardRepository создаёт реализацию репозитория истории.
func NewClipboardRepository(db *gorm.DB) ClipboardRepository {
	return &clipboardRepo{db: db}
}

func (r *clipboardRepo) InsertIfChanged(ctx context.Context, entry *model.ClipboardEntry, capturedAt int64) (bool, error) {
	inserted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last model.ClipboardEntry
		err := tx.Order("id DESC").Take(&last).Error
		found := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		// окно дедупликации - ровно одна предыдущая запись
		if found && last.Data.Equal(entry.Data) {
			return nil
		}
		id := capturedAt
		if found && id <= last.ID {
			id = last.ID + 1
		}
		entry.ID = id
		entry.CapturedAt = id
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		inserted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return inserted, nil
}

func (r *clipboardRepo) ListAll(ctx context.Context) ([]model.ClipboardEntry, error) {
	var entries []model.ClipboardEntry
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *clipboardRepo) GetByID(ctx context.Context, id int64) (*model.ClipboardEntry, error) {
	var e model.ClipboardEntry
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *clipboardRepo) DeleteUpTo(ctx context.Context, cutoff int64) (int64, error) {
	tx := r.db.WithContext(ctx).Where("id <= ?", cutoff).Delete(&model.ClipboardEntry{})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}
