package commands

import (
	"Drawer/internal/cli/api"
	fsrepo "Drawer/internal/cli/repo/fs"
	"Drawer/internal/config"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// newClient читает токен, который демон записал при старте.
func newClient(cfg *config.Config) (*api.Client, error) {
	token, err := fsrepo.TokenFile{Path: cfg.TokenFile}.Load()
	if err != nil {
		return nil, fmt.Errorf("read token (is drawerd running?): %w", err)
	}
	return api.NewClient(cfg.ServerURL, token), nil
}

// entryView: запись истории или закреплённый снимок в том виде, как их отдаёт API.
type entryView struct {
	ID          int64           `json:"id"`
	TagID       int64           `json:"tagId,omitempty"`
	Type        string          `json:"type"`
	Data        json.RawMessage `json:"data"`
	Description string          `json:"description"`
	CapturedAt  int64           `json:"capturedAt"`
}

type tagView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

const summaryLen = 60

// summary: короткое однострочное представление данных записи.
func (e entryView) summary() string {
	var s string
	switch e.Type {
	case "image":
		s = "[image " + e.Description + "]"
	case "richtext":
		var rt struct {
			Text string `json:"text"`
		}
		_ = json.Unmarshal(e.Data, &rt)
		s = rt.Text
	default:
		_ = json.Unmarshal(e.Data, &s)
	}
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) > summaryLen {
		s = string([]rune(s)[:summaryLen-1]) + "…"
	}
	return s
}

func (e entryView) line() string {
	at := time.UnixMilli(e.CapturedAt).Local().Format("2006-01-02 15:04:05")
	return fmt.Sprintf("%-14d %-19s %-8s %s", e.ID, at, e.Type, e.summary())
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: %w", s, ErrUsage)
	}
	return id, nil
}
