package handlers_test

import (
	"Drawer/internal/handlers"
	"Drawer/internal/middleware"
	"Drawer/internal/model"
	"Drawer/internal/notify"
	"Drawer/internal/repo"
	"Drawer/internal/service"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

type fakeRestorer struct {
	mu       sync.Mutex
	restored []model.ClipboardEntry
	err      error
}

func (f *fakeRestorer) Restore(_ context.Context, e model.ClipboardEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.restored = append(f.restored, e)
	return nil
}

type testEnv struct {
	router   http.Handler
	store    *service.ClipboardStore
	restorer *fakeRestorer
	token    string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := repo.InitDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close(db) })

	logger := zap.NewNop().Sugar()
	store := service.NewClipboardStore(repo.NewClipboardRepository(db), notify.NewHub(), logger, nil, 24*time.Hour)
	tags := service.NewTagIndex(repo.NewTagRepository(db), logger)
	restorer := &fakeRestorer{}
	commands := service.NewCommands(tags, restorer, logger)

	token, err := middleware.IssueToken(testSecret, "test", time.Hour)
	require.NoError(t, err)

	h := handlers.NewHandler(store, commands, logger, testSecret)
	return &testEnv{router: h.Router, store: store, restorer: restorer, token: token}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer "+e.token)
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) storeText(t *testing.T, s string) model.ClipboardEntry {
	t.Helper()
	entry := &model.ClipboardEntry{Type: model.TypeText, Data: model.Payload{Text: s}}
	ok, err := e.store.Store(context.Background(), entry)
	require.NoError(t, err)
	require.True(t, ok)
	return *entry
}
