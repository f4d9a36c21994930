// Package clipboard adapts the host clipboard to the capture pipeline: it
// reads snapshots, writes entries back and produces change ticks.
package clipboard

import (
	"Drawer/internal/classifier"
	"Drawer/internal/model"
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.design/x/clipboard"
)

// Backend is the subset of golang.design/x/clipboard used by the adapter.
type Backend interface {
	Read(f clipboard.Format) []byte
	Write(f clipboard.Format, buf []byte) <-chan struct{}
	Watch(ctx context.Context, f clipboard.Format) <-chan []byte
}

type systemBackend struct{}

func (systemBackend) Read(f clipboard.Format) []byte { return clipboard.Read(f) }
func (systemBackend) Write(f clipboard.Format, buf []byte) <-chan struct{} {
	return clipboard.Write(f, buf)
}
func (systemBackend) Watch(ctx context.Context, f clipboard.Format) <-chan []byte {
	return clipboard.Watch(ctx, f)
}

// System initialises the OS clipboard and returns a backend bound to it.
func System() (Backend, error) {
	if err := clipboard.Init(); err != nil {
		return nil, fmt.Errorf("init clipboard: %w", err)
	}
	return systemBackend{}, nil
}

const fileScheme = "file://"

// Host reads and writes the clipboard through a Backend.
type Host struct {
	b Backend
}

// NewHost wraps b.
func NewHost(b Backend) *Host {
	return &Host{b: b}
}

var _ classifier.Snapshot = (*Host)(nil)

// Formats lists the formats currently on the clipboard.
func (h *Host) Formats(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var formats []string
	if text := h.b.Read(clipboard.FmtText); len(text) > 0 {
		if strings.HasPrefix(string(text), fileScheme) {
			formats = append(formats, classifier.FormatFileURL)
		}
		formats = append(formats, classifier.FormatText)
	}
	if img := h.b.Read(clipboard.FmtImage); len(img) > 0 {
		formats = append(formats, classifier.FormatPNG)
	}
	return formats, nil
}

// FilePath returns the local path when the clipboard holds a file:// reference.
func (h *Host) FilePath(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text := strings.TrimSpace(string(h.b.Read(clipboard.FmtText)))
	if !strings.HasPrefix(text, fileScheme) {
		return "", nil
	}
	// несколько файлов - берём первый
	first, _, _ := strings.Cut(text, "\n")
	u, err := url.Parse(strings.TrimSpace(first))
	if err != nil || u.Path == "" {
		return "", nil
	}
	return u.Path, nil
}

// RichText is not exposed by the backend.
func (h *Host) RichText(context.Context) (string, string, error) {
	return "", "", fmt.Errorf("%w: rich text", model.ErrUnsupportedFormat)
}

// Image returns the PNG bytes on the clipboard, if any.
func (h *Host) Image(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return h.b.Read(clipboard.FmtImage), nil
}

// Text returns the plain text on the clipboard.
func (h *Host) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return string(h.b.Read(clipboard.FmtText)), nil
}

// encode maps entry to the backend format and bytes Write would store.
func encode(entry model.ClipboardEntry) (clipboard.Format, []byte, error) {
	switch entry.Type {
	case model.TypeImage:
		if len(entry.Data.Image) == 0 {
			return 0, nil, fmt.Errorf("%w: empty image", model.ErrUnsupportedFormat)
		}
		return clipboard.FmtImage, entry.Data.Image, nil
	case model.TypeFile:
		u := url.URL{Scheme: "file", Path: entry.Data.Text}
		return clipboard.FmtText, []byte(u.String()), nil
	case model.TypeRichText, model.TypeColor, model.TypeURL, model.TypeText:
		return clipboard.FmtText, []byte(entry.Data.Text), nil
	default:
		return 0, nil, fmt.Errorf("%w: entry type %q", model.ErrUnsupportedFormat, entry.Type)
	}
}

// SignalsFor reports how many change ticks writing entry will produce.
// The backend only ticks when the bytes of a format change, so rewriting
// the current value produces none.
func (h *Host) SignalsFor(entry model.ClipboardEntry) int {
	format, buf, err := encode(entry)
	if err != nil {
		return 0
	}
	if bytes.Equal(h.b.Read(format), buf) {
		return 0
	}
	return 1
}

// Write puts entry back on the clipboard.
func (h *Host) Write(ctx context.Context, entry model.ClipboardEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	format, buf, err := encode(entry)
	if err != nil {
		return err
	}
	h.b.Write(format, buf)
	return nil
}
