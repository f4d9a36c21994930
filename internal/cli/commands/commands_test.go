package commands

import (
	fsrepo "Drawer/internal/cli/repo/fs"
	"Drawer/internal/config"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestConfig поднимает фейковый API и кладёт токен во временный файл.
func newTestConfig(t *testing.T, h http.HandlerFunc) *config.Config {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		h(w, r)
	}))
	t.Cleanup(ts.Close)

	tokenFile := filepath.Join(t.TempDir(), "token")
	require.NoError(t, fsrepo.TokenFile{Path: tokenFile}.Save("tok"))
	return &config.Config{ServerURL: ts.URL, TokenFile: tokenFile}
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestHistory_PrintsEntries(t *testing.T) {
	cfg := newTestConfig(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/clipboards", r.URL.Path)
		writeJSON(w, http.StatusOK, `[
			{"id":1700000000000,"type":"text","data":"hello\nworld","description":"11 characters","capturedAt":1700000000000},
			{"id":1700000000001,"type":"richtext","data":{"rtf":"{\\rtf1}","text":"rich"},"description":"4 characters","capturedAt":1700000000001},
			{"id":1700000000002,"type":"image","data":"data:image/png;base64,AA==","description":"2 × 3","capturedAt":1700000000002}
		]`)
	})

	out := withStdoutCapture(t, func() {
		require.NoError(t, historyCmd{}.Run(context.Background(), cfg, nil))
	})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "hello world")
	assert.Contains(t, lines[1], "rich")
	assert.Contains(t, lines[2], "[image 2 × 3]")

	out = withStdoutCapture(t, func() {
		require.NoError(t, historyCmd{}.Run(context.Background(), cfg, []string{"1"}))
	})
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, "image")

	assert.ErrorIs(t, historyCmd{}.Run(context.Background(), cfg, []string{"zero"}), ErrUsage)
}

func TestTagCommands(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []string
	)
	cfg := newTestConfig(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.Method+" "+r.URL.Path)
		mu.Unlock()
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/tags":
			var req map[string]string
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req["name"] == "dup" {
				writeJSON(w, http.StatusConflict, `{"error":"tag name already exists: dup"}`)
				return
			}
			writeJSON(w, http.StatusCreated, `{"id":3,"name":"`+req["name"]+`"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/api/tags":
			writeJSON(w, http.StatusOK, `[{"id":3,"name":"my work"}]`)
		case r.Method == http.MethodPost && r.URL.Path == "/api/tags/3/clipboards":
			var req map[string]int64
			_ = json.NewDecoder(r.Body).Decode(&req)
			assert.Equal(t, int64(42), req["entry_id"])
			writeJSON(w, http.StatusCreated, `{"id":9,"tagId":3,"type":"url","data":"https://x"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/api/tags/3/clipboards":
			writeJSON(w, http.StatusOK, `[{"id":9,"tagId":3,"type":"url","data":"https://x","capturedAt":42}]`)
		case r.Method == http.MethodDelete && r.URL.Path == "/api/tag-clipboards/9",
			r.Method == http.MethodDelete && r.URL.Path == "/api/tags/3",
			r.Method == http.MethodPost && r.URL.Path == "/api/clipboards/42/restore":
			w.WriteHeader(http.StatusNoContent)
		default:
			writeJSON(w, http.StatusNotFound, `{"error":"not found"}`)
		}
	})
	ctx := context.Background()

	out := withStdoutCapture(t, func() {
		require.NoError(t, tagAddCmd{}.Run(ctx, cfg, []string{"my", "work"}))
		require.NoError(t, tagsCmd{}.Run(ctx, cfg, nil))
		require.NoError(t, pinCmd{}.Run(ctx, cfg, []string{"42", "3"}))
		require.NoError(t, tagItemsCmd{}.Run(ctx, cfg, []string{"3"}))
		require.NoError(t, unpinCmd{}.Run(ctx, cfg, []string{"9"}))
		require.NoError(t, restoreCmd{}.Run(ctx, cfg, []string{"42"}))
		require.NoError(t, tagDeleteCmd{}.Run(ctx, cfg, []string{"3"}))
	})
	assert.Contains(t, out, "Tag created: 3 my work")
	assert.Contains(t, out, "Pinned as 9")
	assert.Contains(t, out, "https://x")
	assert.Contains(t, out, "Tag deleted 3")
	mu.Lock()
	assert.Len(t, calls, 7)
	mu.Unlock()

	err := tagAddCmd{}.Run(ctx, cfg, []string{"dup"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	err = tagDeleteCmd{}.Run(ctx, cfg, []string{"77"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestCommands_UsageErrors(t *testing.T) {
	cfg := &config.Config{}
	ctx := context.Background()
	for _, tc := range []struct {
		cmd  Command
		args []string
	}{
		{restoreCmd{}, nil},
		{restoreCmd{}, []string{"abc"}},
		{tagsCmd{}, []string{"x"}},
		{tagAddCmd{}, nil},
		{tagAddCmd{}, []string{"  "}},
		{tagDeleteCmd{}, []string{"-1"}},
		{tagItemsCmd{}, nil},
		{pinCmd{}, []string{"1"}},
		{pinCmd{}, []string{"1", "x"}},
		{unpinCmd{}, []string{"0"}},
	} {
		err := tc.cmd.Run(ctx, cfg, tc.args)
		assert.True(t, errors.Is(err, ErrUsage), "%s %v: got %v", tc.cmd.Name(), tc.args, err)
	}
}

func TestCommands_MissingToken(t *testing.T) {
	cfg := &config.Config{ServerURL: "http://127.0.0.1:1", TokenFile: filepath.Join(t.TempDir(), "absent")}
	err := tagsCmd{}.Run(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "drawerd")
}
