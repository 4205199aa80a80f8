package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/homefix-api/internal/application/media"
	"github.com/homefix-api/internal/domain"
	"github.com/homefix-api/internal/transport/http/middleware"
)

// multipartOverhead is the slack allowed on top of the file cap for boundaries and part headers.
const multipartOverhead = 1 << 20

// MediaKeys names the JSON fields a variant's responses use.
type MediaKeys struct {
	Item    string // single upload
	List    string // feed and own listing
	Deleted string // delete confirmation
}

var (
	MediaResponseKeys = MediaKeys{Item: "media", List: "media", Deleted: "deletedMedia"}
	ImageResponseKeys = MediaKeys{Item: "image", List: "images", Deleted: "deletedImage"}
)

// MediaHandler serves one upload variant.
type MediaHandler struct {
	svc  media.Service
	keys MediaKeys
}

func NewMediaHandler(svc media.Service, keys MediaKeys) *MediaHandler {
	return &MediaHandler{svc: svc, keys: keys}
}

// Upload streams the variant's form field straight into the service; the
// request body is never buffered in memory.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, middleware.MsgInvalid)
		return
	}
	v := h.svc.Variant()
	r.Body = http.MaxBytesReader(w, r.Body, v.MaxBytes+multipartOverhead)

	mr, err := r.MultipartReader()
	if err != nil {
		writeError(w, http.StatusBadRequest, v.MsgNoFile)
		return
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, v.MsgNoFile)
			return
		}
		if err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				writeError(w, http.StatusBadRequest, media.MsgFileTooLarge)
				return
			}
			writeError(w, http.StatusBadRequest, v.MsgNoFile)
			return
		}
		if part.FormName() != v.FormField || part.FileName() == "" {
			_ = part.Close()
			continue
		}

		m, err := h.svc.Upload(r.Context(), claims.UserID, media.File{Name: part.FileName(), Body: part})
		_ = part.Close()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"message":   v.MsgUploaded,
			h.keys.Item: m,
		})
		return
	}
}

func (h *MediaHandler) Feed(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, middleware.MsgInvalid)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := h.svc.Feed(r.Context(), claims.UserID, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.writeList(w, items)
}

func (h *MediaHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, middleware.MsgInvalid)
		return
	}
	items, err := h.svc.ListMine(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.writeList(w, items)
}

func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, middleware.MsgInvalid)
		return
	}
	m, err := h.svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":      h.svc.Variant().MsgDeleted,
		h.keys.Deleted: m,
	})
}

func (h *MediaHandler) writeList(w http.ResponseWriter, items []*domain.Media) {
	if items == nil {
		items = []*domain.Media{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(items),
		h.keys.List: items,
	})
}
