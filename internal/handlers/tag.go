package handlers

import (
	"Drawer/internal/service"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// TagHandler: команды над тегами и закреплёнными снимками.
type TagHandler struct {
	Store    *service.ClipboardStore
	Commands *service.Commands
	Logger   *zap.SugaredLogger
}

func NewTagHandler(store *service.ClipboardStore, commands *service.Commands, logger *zap.SugaredLogger) *TagHandler {
	return &TagHandler{Store: store, Commands: commands, Logger: logger}
}

type createTagRequest struct {
	Name string `json:"name"`
}

type pinRequest struct {
	EntryID int64 `json:"entry_id"`
}

func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Commands.Dispatch(r.Context(), service.GetAllTag{})
	if err != nil {
		writeError(w, h.Logger, "ListTags", err)
		return
	}
	writeJSON(w, http.StatusOK, resp.(service.TagsResponse).Tags)
}

func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("CreateTag: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	resp, err := h.Commands.Dispatch(r.Context(), service.AddTag{Name: req.Name})
	if err != nil {
		writeError(w, h.Logger, "CreateTag", err)
		return
	}
	writeJSON(w, http.StatusCreated, resp.(service.TagResponse).Tag)
}

func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if _, err := h.Commands.Dispatch(r.Context(), service.DeleteTag{TagID: id}); err != nil {
		writeError(w, h.Logger, "DeleteTag", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TagHandler) ListClipboards(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	resp, err := h.Commands.Dispatch(r.Context(), service.GetClipboardByTag{TagID: id})
	if err != nil {
		writeError(w, h.Logger, "ListTagClipboards", err)
		return
	}
	writeJSON(w, http.StatusOK, resp.(service.SnapshotsResponse).Items)
}

// Pin закрепляет запись истории в теге по её id.
func (h *TagHandler) Pin(w http.ResponseWriter, r *http.Request) {
	tagID, ok := idParam(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req pinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.EntryID <= 0 {
		h.Logger.Warnw("Pin: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	entry, err := h.Store.Get(r.Context(), req.EntryID)
	if err != nil {
		writeError(w, h.Logger, "Pin", err)
		return
	}
	resp, err := h.Commands.Dispatch(r.Context(), service.StoreClipboardToTag{Entry: *entry, TagID: tagID})
	if err != nil {
		writeError(w, h.Logger, "Pin", err)
		return
	}
	writeJSON(w, http.StatusCreated, resp.(service.PinResponse).Item)
}

func (h *TagHandler) Unpin(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if _, err := h.Commands.Dispatch(r.Context(), service.DeleteTagClipboard{AssociationID: id}); err != nil {
		writeError(w, h.Logger, "Unpin", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
