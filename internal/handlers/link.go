package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/infinity-school/portfolio-apiserver/internal/services"
	"github.com/infinity-school/portfolio-apiserver/internal/store"
)

// LinkHandler provides HTTP handlers for external links. Creation and
// listing live under /usuarios/{id}/links; deletion is addressed by the
// link's own ID.
type LinkHandler struct {
	linkService *services.LinkService
}

func NewLinkHandler(linkService *services.LinkService) *LinkHandler {
	return &LinkHandler{linkService: linkService}
}

// LinkRouter registers link routes on the given router.
func LinkRouter(r chi.Router, linkService *services.LinkService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewLinkHandler(linkService)

	r.With(authMiddleware).Delete("/{linkID}", handler.DeleteLink)
}

func (h *LinkHandler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "linkID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.linkService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "link not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete link")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
