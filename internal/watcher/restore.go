package watcher

import (
	"Drawer/internal/model"
	"context"
	"fmt"
)

// Writer puts an entry back on the host clipboard.
type Writer interface {
	SignalsFor(entry model.ClipboardEntry) int
	Write(ctx context.Context, entry model.ClipboardEntry) error
}

// Restorer writes historical entries back without capturing them again.
type Restorer struct {
	w      *Watcher
	writer Writer
}

func NewRestorer(w *Watcher, writer Writer) *Restorer {
	return &Restorer{w: w, writer: writer}
}

// Restore suppresses the change signals the write will cause, then writes.
// On failure the suppression is withdrawn.
func (r *Restorer) Restore(ctx context.Context, entry model.ClipboardEntry) error {
	n := r.writer.SignalsFor(entry)
	r.w.SuppressNextCapture(n)
	if err := r.writer.Write(ctx, entry); err != nil {
		r.w.CancelSuppression(n)
		return fmt.Errorf("restore entry %d: %w", entry.ID, err)
	}
	r.w.logger.Infow("clipboard entry restored", "id", entry.ID, "type", entry.Type)
	return nil
}
