// Package watcher turns clipboard change ticks into stored history entries,
// filtering out changes the daemon caused itself.
package watcher

import (
	"Drawer/internal/classifier"
	"Drawer/internal/model"
	"context"
	"sync"

	"go.uber.org/zap"
)

// State is the capture state of a Watcher.
type State int

const (
	Idle State = iota
	Capturing
)

func (s State) String() string {
	if s == Capturing {
		return "capturing"
	}
	return "idle"
}

// Classifier builds an entry from a snapshot.
type Classifier interface {
	Classify(ctx context.Context, snap classifier.Snapshot) (*model.ClipboardEntry, error)
}

// Store persists entries.
type Store interface {
	Store(ctx context.Context, entry *model.ClipboardEntry) (bool, error)
}

// Watcher runs at most one capture at a time. Ticks arriving while a capture
// is in flight are dropped; the next real change produces a new tick.
type Watcher struct {
	snap       classifier.Snapshot
	classifier Classifier
	store      Store
	logger     *zap.SugaredLogger

	mu       sync.Mutex
	state    State
	suppress int
	wg       sync.WaitGroup
}

func New(snap classifier.Snapshot, c Classifier, s Store, logger *zap.SugaredLogger) *Watcher {
	return &Watcher{snap: snap, classifier: c, store: s, logger: logger}
}

// Signal handles one change tick.
func (w *Watcher) Signal(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.suppress > 0 {
		w.suppress--
		w.logger.Debugw("self-induced clipboard change ignored", "remaining", w.suppress)
		return
	}
	if w.state == Capturing {
		return
	}
	w.state = Capturing
	w.wg.Add(1)
	go w.capture(ctx)
}

func (w *Watcher) capture(ctx context.Context) {
	defer w.wg.Done()
	defer func() {
		w.mu.Lock()
		w.state = Idle
		w.mu.Unlock()
	}()

	entry, err := w.classifier.Classify(ctx, w.snap)
	if err != nil {
		w.logger.Errorw("clipboard capture failed", "error", &model.CaptureError{Stage: "classify", Err: err})
		return
	}
	if entry == nil {
		return
	}
	if _, err := w.store.Store(ctx, entry); err != nil {
		w.logger.Errorw("clipboard capture failed", "type", entry.Type, "error", &model.CaptureError{Stage: "store", Err: err})
	}
}

// Run consumes ticks until ctx is done or ticks is closed, then waits for the
// in-flight capture.
func (w *Watcher) Run(ctx context.Context, ticks <-chan struct{}) error {
	w.logger.Infow("clipboard watcher started")
	defer w.logger.Infow("clipboard watcher stopped")
	defer w.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			w.Signal(ctx)
		}
	}
}

// SuppressNextCapture makes the watcher drop the next n ticks. Call it before
// writing to the clipboard programmatically.
func (w *Watcher) SuppressNextCapture(n int) {
	if n <= 0 {
		return
	}
	w.mu.Lock()
	w.suppress += n
	w.mu.Unlock()
}

// CancelSuppression takes back up to n suppressed ticks, e.g. after a failed write.
func (w *Watcher) CancelSuppression(n int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.suppress -= n
	if w.suppress < 0 {
		w.suppress = 0
	}
}

func (w *Watcher) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Pending returns the number of ticks still to be suppressed.
func (w *Watcher) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.suppress
}

// Wait blocks until the in-flight capture, if any, finishes.
func (w *Watcher) Wait() {
	w.wg.Wait()
}
