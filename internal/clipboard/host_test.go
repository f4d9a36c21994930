package clipboard

import (
	"Drawer/internal/classifier"
	"Drawer/internal/model"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.design/x/clipboard"
)

// fakeBackend keeps one buffer per format; writing one format clears the others.
type fakeBackend struct {
	mu      sync.Mutex
	data    map[clipboard.Format][]byte
	watches map[clipboard.Format]chan []byte
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		data:    map[clipboard.Format][]byte{},
		watches: map[clipboard.Format]chan []byte{},
	}
}

func (f *fakeBackend) Read(format clipboard.Format) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data[format]
}

func (f *fakeBackend) Write(format clipboard.Format, buf []byte) <-chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = map[clipboard.Format][]byte{format: buf}
	return make(chan struct{})
}

func (f *fakeBackend) Watch(_ context.Context, format clipboard.Format) <-chan []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan []byte)
	f.watches[format] = ch
	return ch
}

func (f *fakeBackend) watch(format clipboard.Format) chan []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.watches[format]
}

func TestHost_TextSnapshot(t *testing.T) {
	b := newFakeBackend()
	b.Write(clipboard.FmtText, []byte("hello"))
	h := NewHost(b)
	ctx := context.Background()

	formats, err := h.Formats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{classifier.FormatText}, formats)

	path, err := h.FilePath(ctx)
	require.NoError(t, err)
	assert.Empty(t, path)

	text, err := h.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	_, _, err = h.RichText(ctx)
	assert.ErrorIs(t, err, model.ErrUnsupportedFormat)
}

func TestHost_FileReference(t *testing.T) {
	b := newFakeBackend()
	b.Write(clipboard.FmtText, []byte("file:///tmp/my%20notes.txt\nfile:///tmp/b.txt"))
	h := NewHost(b)

	formats, err := h.Formats(context.Background())
	require.NoError(t, err)
	assert.Contains(t, formats, classifier.FormatFileURL)

	path, err := h.FilePath(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/tmp/my notes.txt", path)
}

func TestHost_WriteRoundTrip(t *testing.T) {
	b := newFakeBackend()
	h := NewHost(b)
	ctx := context.Background()

	require.NoError(t, h.Write(ctx, model.ClipboardEntry{Type: model.TypeFile, Data: model.Payload{Text: "/tmp/a b.txt"}}))
	path, err := h.FilePath(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/a b.txt", path)

	require.NoError(t, h.Write(ctx, model.ClipboardEntry{Type: model.TypeRichText, Data: model.Payload{RTF: "{\\rtf1 x}", Text: "x"}}))
	text, err := h.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "x", text)

	png := []byte{0x89, 'P', 'N', 'G'}
	require.NoError(t, h.Write(ctx, model.ClipboardEntry{Type: model.TypeImage, Data: model.Payload{Image: png}}))
	img, err := h.Image(ctx)
	require.NoError(t, err)
	assert.Equal(t, png, img)
	formats, err := h.Formats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{classifier.FormatPNG}, formats)

	assert.ErrorIs(t, h.Write(ctx, model.ClipboardEntry{Type: model.TypeImage}), model.ErrUnsupportedFormat)
	assert.ErrorIs(t, h.Write(ctx, model.ClipboardEntry{Type: "video"}), model.ErrUnsupportedFormat)
}

func TestHost_SignalsFor(t *testing.T) {
	b := newFakeBackend()
	b.Write(clipboard.FmtText, []byte("hello"))
	h := NewHost(b)

	// то же значение уже в буфере: backend не пришлёт тик
	assert.Equal(t, 0, h.SignalsFor(model.ClipboardEntry{Type: model.TypeText, Data: model.Payload{Text: "hello"}}))
	assert.Equal(t, 1, h.SignalsFor(model.ClipboardEntry{Type: model.TypeText, Data: model.Payload{Text: "world"}}))
	assert.Equal(t, 1, h.SignalsFor(model.ClipboardEntry{Type: model.TypeImage, Data: model.Payload{Image: []byte{1}}}))
	assert.Equal(t, 0, h.SignalsFor(model.ClipboardEntry{Type: "video"}))

	b.Write(clipboard.FmtText, []byte("file:///tmp/a%20b.txt"))
	assert.Equal(t, 0, h.SignalsFor(model.ClipboardEntry{Type: model.TypeFile, Data: model.Payload{Text: "/tmp/a b.txt"}}))
}

func TestHost_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h := NewHost(newFakeBackend())

	_, err := h.Formats(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, h.Write(ctx, model.ClipboardEntry{Type: model.TypeText, Data: model.Payload{Text: "x"}}), context.Canceled)
}
