package model

import "encoding/json"

// Tag: пользовательская коллекция закреплённых записей.
type Tag struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null;uniqueIndex:idx_tags_name" json:"name"`
}

// TagClipboard: закреплённая (pinned) копия записи внутри тега.
// Снимок полей отвязан от исходной записи и переживает её удаление.
type TagClipboard struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TagID       int64     `gorm:"not null;index:idx_tag_clipboards_tag_id" json:"tagId"`
	Type        EntryType `gorm:"not null" json:"type"`
	Data        Payload   `gorm:"not null" json:"-"`
	Preview     string    `json:"preview,omitempty"`
	Description string    `json:"description"`
	CapturedAt  int64     `gorm:"not null" json:"capturedAt"`
}

// SnapshotOf копирует отображаемые поля записи по значению.
func SnapshotOf(e ClipboardEntry, tagID int64) TagClipboard {
	data := e.Data
	if e.Data.Image != nil {
		data.Image = append([]byte(nil), e.Data.Image...)
	}
	return TagClipboard{
		TagID:       tagID,
		Type:        e.Type,
		Data:        data,
		Preview:     e.Preview,
		Description: e.Description,
		CapturedAt:  e.CapturedAt,
	}
}

// Entry возвращает снимок в виде записи истории (без собственного id).
func (tc TagClipboard) Entry() ClipboardEntry {
	return ClipboardEntry{
		ID:          tc.CapturedAt,
		Type:        tc.Type,
		Data:        tc.Data,
		Preview:     tc.Preview,
		Description: tc.Description,
		CapturedAt:  tc.CapturedAt,
	}
}

// MarshalJSON: data в том же виде, что и у ClipboardEntry.
func (tc TagClipboard) MarshalJSON() ([]byte, error) {
	type alias TagClipboard
	return json.Marshal(struct {
		alias
		Data any `json:"data"`
	}{alias: alias(tc), Data: renderData(tc.Type, tc.Data)})
}
