package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// EntryType: вид содержимого буфера обмена.
type EntryType string

const (
	TypeFile     EntryType = "file"
	TypeRichText EntryType = "richtext"
	TypeImage    EntryType = "image"
	TypeColor    EntryType = "color"
	TypeURL      EntryType = "url"
	TypeText     EntryType = "text"
)

// Payload: данные записи, зависящие от типа.
// file, color, url, text используют Text; richtext - RTF и Text; image - Image (PNG).
type Payload struct {
	Text  string
	RTF   string
	Image []byte
}

// Equal сравнивает два payload структурно.
func (p Payload) Equal(o Payload) bool {
	return p.Text == o.Text && p.RTF == o.RTF && bytes.Equal(p.Image, o.Image)
}

// storedPayload: представление Payload в колонке БД.
type storedPayload struct {
	Text  string `json:"text,omitempty"`
	RTF   string `json:"rtf,omitempty"`
	Image []byte `json:"image,omitempty"`
}

// Value реализует driver.Valuer.
func (p Payload) Value() (driver.Value, error) {
	b, err := json.Marshal(storedPayload(p))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan реализует sql.Scanner.
func (p *Payload) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*p = Payload{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported payload column type %T", src)
	}
	var sp storedPayload
	if err := json.Unmarshal(raw, &sp); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	*p = Payload(sp)
	return nil
}

// GormDataType хранит payload как текст (JSON).
func (Payload) GormDataType() string { return "text" }

// ClipboardEntry: одна сохранённая запись истории буфера обмена.
// ID совпадает с моментом захвата в миллисекундах.
type ClipboardEntry struct {
	ID          int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Type        EntryType `gorm:"not null" json:"type"`
	Data        Payload   `gorm:"not null" json:"-"`
	Preview     string    `json:"preview,omitempty"`
	Description string    `json:"description"`
	CapturedAt  int64     `gorm:"not null" json:"capturedAt"`
}

// MarshalJSON отдаёт data в том виде, который ожидает список истории.
func (e ClipboardEntry) MarshalJSON() ([]byte, error) {
	type alias ClipboardEntry
	return json.Marshal(struct {
		alias
		Data any `json:"data"`
	}{alias: alias(e), Data: renderData(e.Type, e.Data)})
}

// renderData: строка для file/color/url/text, {rtf, text} для richtext, data URL для image.
func renderData(t EntryType, p Payload) any {
	switch t {
	case TypeRichText:
		return map[string]string{"rtf": p.RTF, "text": p.Text}
	case TypeImage:
		return "data:image/png;base64," + base64.StdEncoding.EncodeToString(p.Image)
	default:
		return p.Text
	}
}
