package service

import (
	"Drawer/internal/notify"
	"Drawer/internal/repo"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repo.InitDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close(db) })
	return db
}

// fakeClock: управляемые часы для тестов вытеснения.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(t *testing.T, clock *fakeClock) (*ClipboardStore, *notify.Hub) {
	t.Helper()
	hub := notify.NewHub()
	s := NewClipboardStore(repo.NewClipboardRepository(newTestDB(t)), hub, zap.NewNop().Sugar(), clock.Now, 24*time.Hour)
	return s, hub
}

func newTestTagIndex(t *testing.T) *TagIndex {
	t.Helper()
	return NewTagIndex(repo.NewTagRepository(newTestDB(t)), zap.NewNop().Sugar())
}
