package handlers

import (
	"Drawer/internal/notify"
	"Drawer/internal/service"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// eventBuffer: сколько событий может ждать отправки одному клиенту.
const eventBuffer = 64

// ClipboardHandler отдаёт историю, восстанавливает записи и транслирует события.
type ClipboardHandler struct {
	Store    *service.ClipboardStore
	Commands *service.Commands
	Logger   *zap.SugaredLogger
}

func NewClipboardHandler(store *service.ClipboardStore, commands *service.Commands, logger *zap.SugaredLogger) *ClipboardHandler {
	return &ClipboardHandler{Store: store, Commands: commands, Logger: logger}
}

// List возвращает всю историю по возрастанию id.
func (h *ClipboardHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Store.GetAll(r.Context())
	if err != nil {
		writeError(w, h.Logger, "List", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Restore записывает историческую запись обратно в буфер обмена.
func (h *ClipboardHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	entry, err := h.Store.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.Logger, "Restore", err)
		return
	}
	if _, err := h.Commands.Dispatch(r.Context(), service.RestoreClipboard{Entry: *entry}); err != nil {
		writeError(w, h.Logger, "Restore", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Events: поток Server-Sent Events: сначала clipboard-init, затем изменения.
// Клиент, не успевающий читать, отключается.
func (h *ClipboardHandler) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	events := make(chan notify.Event, eventBuffer)
	overflow := make(chan struct{})
	var once sync.Once
	unsubscribe, err := h.Store.Subscribe(r.Context(), func(e notify.Event) {
		select {
		case events <- e:
		default:
			once.Do(func() { close(overflow) })
		}
	})
	if err != nil {
		writeError(w, h.Logger, "Events", err)
		return
	}
	defer unsubscribe()

	streamID := uuid.NewString()
	h.Logger.Debugw("event stream opened", "stream", streamID)
	defer h.Logger.Debugw("event stream closed", "stream", streamID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	var seq int
	for {
		select {
		case <-r.Context().Done():
			return
		case <-overflow:
			h.Logger.Warnw("event stream dropped: client too slow", "stream", streamID)
			return
		case e := <-events:
			seq++
			data, err := json.Marshal(e)
			if err != nil {
				h.Logger.Errorw("Events: marshal", "kind", e.Kind, "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "id: %s-%d\nevent: %s\ndata: %s\n\n", streamID, seq, e.Kind, data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
