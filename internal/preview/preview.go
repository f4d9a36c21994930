// Package preview renders thumbnails and generic file icons for clipboard entries.
package preview

import (
	"Drawer/internal/model"
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

// DefaultSize is the bounding box edge for thumbnails, in pixels.
const DefaultSize = 256

// IconPrefix marks a preview that refers to a generic icon instead of image data.
const IconPrefix = "icon:"

// Generator builds PNG thumbnails that fit into a Size×Size box.
type Generator struct {
	Size int
}

// NewGenerator returns a generator; size <= 0 means DefaultSize.
func NewGenerator(size int) *Generator {
	if size <= 0 {
		size = DefaultSize
	}
	return &Generator{Size: size}
}

// FromFile renders a thumbnail of the image file at path.
func (g *Generator) FromFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrUnsupportedFormat, path, err)
	}
	return g.encode(img)
}

// FromBytes renders a thumbnail of an encoded image.
func (g *Generator) FromBytes(ctx context.Context, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image", model.ErrUnsupportedFormat)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUnsupportedFormat, err)
	}
	return g.encode(img)
}

func (g *Generator) encode(img image.Image) ([]byte, error) {
	b := img.Bounds()
	if b.Dx() > g.Size || b.Dy() > g.Size {
		img = imaging.Fit(img, g.Size, g.Size, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// IconFor returns a generic icon reference for the file at path.
func IconFor(path string) string {
	fi, err := os.Stat(path)
	if err != nil {
		return IconPrefix + "application/octet-stream"
	}
	if fi.IsDir() {
		return IconPrefix + "inode/directory"
	}
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return IconPrefix + "application/octet-stream"
	}
	// text/plain; charset=utf-8 → text/plain
	mime, _, _ := strings.Cut(mt.String(), ";")
	return IconPrefix + mime
}

// DataURL wraps PNG bytes into a data URL.
func DataURL(pngData []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngData)
}

// Dimensions reads the width and height from a PNG header.
func Dimensions(pngData []byte) (int, int, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(pngData))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", model.ErrUnsupportedFormat, err)
	}
	return cfg.Width, cfg.Height, nil
}
