package service

import (
	"Drawer/internal/model"
	"Drawer/internal/notify"
	"Drawer/internal/repo"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTagIndex_AddTagDuplicate(t *testing.T) {
	ti := newTestTagIndex(t)
	ctx := context.Background()

	_, err := ti.AddTag(ctx, "work")
	require.NoError(t, err)

	_, err = ti.AddTag(ctx, "work")
	var dup *model.DuplicateNameError
	assert.ErrorAs(t, err, &dup)

	tags, err := ti.GetAllTag(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)

	_, err = ti.AddTag(ctx, "   ")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestTagIndex_PinSurvivesEviction(t *testing.T) {
	db := newTestDB(t)
	clock := &fakeClock{t: time.UnixMilli(1_700_000_000_000)}
	store := NewClipboardStore(repo.NewClipboardRepository(db), notify.NewHub(), zap.NewNop().Sugar(), clock.Now, 24*time.Hour)
	ti := NewTagIndex(repo.NewTagRepository(db), zap.NewNop().Sugar())
	ctx := context.Background()

	e := &model.ClipboardEntry{Type: model.TypeFile, Data: model.Payload{Text: "/tmp/a.txt"}, Preview: "icon:text/plain", Description: "/tmp/a.txt"}
	ok, err := store.Store(ctx, e)
	require.NoError(t, err)
	require.True(t, ok)

	tag, err := ti.AddTag(ctx, "docs")
	require.NoError(t, err)
	_, err = ti.Pin(ctx, *e, tag.ID)
	require.NoError(t, err)

	clock.Advance(25 * time.Hour)
	n, err := store.ClearOutdated(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	items, err := ti.ListByTag(ctx, tag.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	got := items[0]
	assert.Equal(t, e.Type, got.Type)
	assert.True(t, e.Data.Equal(got.Data))
	assert.Equal(t, e.Preview, got.Preview)
	assert.Equal(t, e.Description, got.Description)
	assert.Equal(t, e.CapturedAt, got.CapturedAt)
}

func TestTagIndex_DeleteTagCascades(t *testing.T) {
	ti := newTestTagIndex(t)
	ctx := context.Background()

	tag, err := ti.AddTag(ctx, "three")
	require.NoError(t, err)
	for i, s := range []string{"a", "b", "c"} {
		_, err := ti.Pin(ctx, model.ClipboardEntry{ID: int64(i + 1), Type: model.TypeText, Data: model.Payload{Text: s}, CapturedAt: int64(i + 1)}, tag.ID)
		require.NoError(t, err)
	}

	require.NoError(t, ti.DeleteTag(ctx, tag.ID))

	items, err := ti.ListByTag(ctx, tag.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.ErrorIs(t, ti.DeleteTag(ctx, tag.ID), model.ErrNotFound)
}

func TestTagIndex_IndependentSnapshotsPerTag(t *testing.T) {
	ti := newTestTagIndex(t)
	ctx := context.Background()

	a, err := ti.AddTag(ctx, "a")
	require.NoError(t, err)
	b, err := ti.AddTag(ctx, "b")
	require.NoError(t, err)

	e := model.ClipboardEntry{ID: 1, Type: model.TypeURL, Data: model.Payload{Text: "https://x"}, CapturedAt: 1}
	pa, err := ti.Pin(ctx, e, a.ID)
	require.NoError(t, err)
	_, err = ti.Pin(ctx, e, b.ID)
	require.NoError(t, err)

	require.NoError(t, ti.DeleteTagClipboard(ctx, pa.ID))
	assert.ErrorIs(t, ti.DeleteTagClipboard(ctx, pa.ID), model.ErrNotFound)

	inA, err := ti.ListByTag(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, inA)
	inB, err := ti.ListByTag(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, inB, 1)

	_, err = ti.Pin(ctx, e, 999)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
