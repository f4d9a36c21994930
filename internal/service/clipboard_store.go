package service

import (
	"Drawer/internal/model"
	"Drawer/internal/notify"
	"Drawer/internal/repo"
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultRetention: сколько хранится история до вытеснения.
const DefaultRetention = 24 * time.Hour

// ClipboardStore инкапсулирует журнал истории: дедупликацию, вытеснение по TTL и уведомления.
type ClipboardStore struct {
	repo      repo.ClipboardRepository
	hub       *notify.Hub
	logger    *zap.SugaredLogger
	now       func() time.Time
	retention time.Duration

	// mu упорядочивает запись и публикацию событий, а также выдачу Init подписчику
	mu sync.Mutex
}

// NewClipboardStore создаёт хранилище. now == nil означает time.Now, retention <= 0 - DefaultRetention.
func NewClipboardStore(r repo.ClipboardRepository, hub *notify.Hub, logger *zap.SugaredLogger, now func() time.Time, retention time.Duration) *ClipboardStore {
	if now == nil {
		now = time.Now
	}
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &ClipboardStore{repo: r, hub: hub, logger: logger, now: now, retention: retention}
}

// Store сохраняет запись, если её данные отличаются от последней вставленной.
// Дубликат возвращает false без ошибки и без уведомления.
func (s *ClipboardStore) Store(ctx context.Context, entry *model.ClipboardEntry) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inserted, err := s.repo.InsertIfChanged(ctx, entry, s.now().UnixMilli())
	if err != nil {
		return false, fmt.Errorf("store entry: %w", err)
	}
	if !inserted {
		s.logger.Debugw("duplicate clipboard entry skipped", "type", entry.Type)
		return false, nil
	}
	s.hub.Publish(notify.Append(*entry))
	s.logger.Debugw("clipboard entry stored", "id", entry.ID, "type", entry.Type)
	return true, nil
}

// GetAll возвращает всю историю по возрастанию id.
func (s *ClipboardStore) GetAll(ctx context.Context) ([]model.ClipboardEntry, error) {
	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	if entries == nil {
		entries = []model.ClipboardEntry{}
	}
	return entries, nil
}

// Get возвращает запись по id (model.ErrNotFound, если её нет).
func (s *ClipboardStore) Get(ctx context.Context, id int64) (*model.ClipboardEntry, error) {
	return s.repo.GetByID(ctx, id)
}

// ClearOutdated удаляет записи старше окна хранения и публикует DeleteOld с их количеством.
func (s *ClipboardStore) ClearOutdated(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.retention).UnixMilli()
	n, err := s.repo.DeleteUpTo(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("clear outdated: %w", err)
	}
	s.hub.Publish(notify.DeleteOld(n))
	if n > 0 {
		s.logger.Infow("outdated clipboard entries removed", "count", n, "cutoff", cutoff)
	}
	return n, nil
}

// Subscribe отдаёт обработчику Init со всей историей и регистрирует его на последующие события.
func (s *ClipboardStore) Subscribe(ctx context.Context, h notify.Handler) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	h(notify.Init(entries))
	return s.hub.Subscribe(h), nil
}
