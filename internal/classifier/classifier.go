// Package classifier turns a raw clipboard snapshot into a typed history entry.
package classifier

import (
	"Drawer/internal/model"
	"Drawer/internal/preview"
	"context"
	"fmt"
	"regexp"
	"slices"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Format identifiers reported by a Snapshot.
const (
	FormatFileURL = "public.file-url"
	FormatRTF     = "text/rtf"
	FormatPNG     = "image/png"
	FormatText    = "text/plain"
)

var (
	colorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	urlRe   = regexp.MustCompile(`^(http|https)://.+`)
)

// Snapshot is read access to the current clipboard contents.
type Snapshot interface {
	Formats(ctx context.Context) ([]string, error)
	FilePath(ctx context.Context) (string, error)
	RichText(ctx context.Context) (rtf, text string, err error)
	Image(ctx context.Context) ([]byte, error)
	Text(ctx context.Context) (string, error)
}

// Thumbnailer renders PNG thumbnails.
type Thumbnailer interface {
	FromFile(ctx context.Context, path string) ([]byte, error)
	FromBytes(ctx context.Context, data []byte) ([]byte, error)
}

// Classifier applies the resolution order file → richtext → image → text.
type Classifier struct {
	thumbs  Thumbnailer
	iconFor func(path string) string
	logger  *zap.SugaredLogger
}

// New creates a classifier. iconFor == nil falls back to preview.IconFor.
func New(thumbs Thumbnailer, iconFor func(string) string, logger *zap.SugaredLogger) *Classifier {
	if iconFor == nil {
		iconFor = preview.IconFor
	}
	return &Classifier{thumbs: thumbs, iconFor: iconFor, logger: logger}
}

// Classify reads snap and returns the entry it represents, or nil when the
// clipboard holds nothing worth recording. The returned entry has no ID yet.
func (c *Classifier) Classify(ctx context.Context, snap Snapshot) (*model.ClipboardEntry, error) {
	path, err := snap.FilePath(ctx)
	if err != nil {
		return nil, fmt.Errorf("read file reference: %w", err)
	}
	if path != "" {
		return c.file(ctx, path), nil
	}

	formats, err := snap.Formats(ctx)
	if err != nil {
		return nil, fmt.Errorf("read formats: %w", err)
	}

	if slices.Contains(formats, FormatRTF) {
		rtf, text, err := snap.RichText(ctx)
		if err != nil {
			return nil, fmt.Errorf("read rich text: %w", err)
		}
		return &model.ClipboardEntry{
			Type:        model.TypeRichText,
			Data:        model.Payload{RTF: rtf, Text: text},
			Description: characters(text),
		}, nil
	}

	if slices.Contains(formats, FormatPNG) {
		img, err := snap.Image(ctx)
		if err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
		if len(img) > 0 {
			return c.image(ctx, img), nil
		}
	}

	text, err := snap.Text(ctx)
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}
	return ClassifyText(text), nil
}

// ClassifyText applies the plain-text rules. Empty text yields nil.
func ClassifyText(text string) *model.ClipboardEntry {
	switch {
	case text == "":
		return nil
	case colorRe.MatchString(text):
		return &model.ClipboardEntry{Type: model.TypeColor, Data: model.Payload{Text: text}}
	case urlRe.MatchString(text):
		return &model.ClipboardEntry{Type: model.TypeURL, Data: model.Payload{Text: text}}
	default:
		return &model.ClipboardEntry{
			Type:        model.TypeText,
			Data:        model.Payload{Text: text},
			Description: characters(text),
		}
	}
}

func (c *Classifier) file(ctx context.Context, path string) *model.ClipboardEntry {
	e := &model.ClipboardEntry{
		Type:        model.TypeFile,
		Data:        model.Payload{Text: path},
		Description: path,
	}
	if c.thumbs != nil {
		thumb, err := c.thumbs.FromFile(ctx, path)
		if err == nil {
			e.Preview = preview.DataURL(thumb)
			return e
		}
		c.logger.Debugw("thumbnail unavailable, using icon", "path", path, "error", err)
	}
	e.Preview = c.iconFor(path)
	return e
}

func (c *Classifier) image(ctx context.Context, img []byte) *model.ClipboardEntry {
	e := &model.ClipboardEntry{
		Type: model.TypeImage,
		Data: model.Payload{Image: img},
	}
	if w, h, err := preview.Dimensions(img); err == nil {
		e.Description = fmt.Sprintf("%d × %d", w, h)
	} else {
		c.logger.Debugw("image header unreadable", "error", err)
	}
	if c.thumbs != nil {
		if thumb, err := c.thumbs.FromBytes(ctx, img); err == nil {
			e.Preview = preview.DataURL(thumb)
		} else {
			c.logger.Debugw("image thumbnail failed", "error", err)
		}
	}
	return e
}

func characters(s string) string {
	return fmt.Sprintf("%d characters", utf8.RuneCountInString(s))
}
