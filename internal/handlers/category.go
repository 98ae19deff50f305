package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/infinity-school/portfolio-apiserver/internal/services"
	"github.com/infinity-school/portfolio-apiserver/internal/store"
	"github.com/infinity-school/portfolio-apiserver/types"
)

// CategoryHandler provides HTTP handlers for portfolio categories.
type CategoryHandler struct {
	projectService *services.ProjectService
}

func NewCategoryHandler(projectService *services.ProjectService) *CategoryHandler {
	return &CategoryHandler{projectService: projectService}
}

// CategoryRouter registers category routes on the given router.
func CategoryRouter(r chi.Router, projectService *services.ProjectService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewCategoryHandler(projectService)

	r.Get("/", handler.ListCategories)
	r.With(authMiddleware).Post("/", handler.CreateCategory)
}

func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.projectService.ListCategories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

type createCategoryRequest struct {
	Nome string `json:"nome_categoria"`
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Nome = strings.TrimSpace(req.Nome)
	if req.Nome == "" {
		writeError(w, http.StatusBadRequest, "nome_categoria is required")
		return
	}

	category, err := h.projectService.CreateCategory(r.Context(), types.PortfolioCategory{Nome: req.Nome})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusConflict, "category already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create category")
		return
	}

	writeJSON(w, http.StatusCreated, category)
}
