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

// SkillHandler provides HTTP handlers for the skill catalog.
type SkillHandler struct {
	skillService *services.SkillService
}

func NewSkillHandler(skillService *services.SkillService) *SkillHandler {
	return &SkillHandler{skillService: skillService}
}

// SkillRouter registers skill routes on the given router.
func SkillRouter(r chi.Router, skillService *services.SkillService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewSkillHandler(skillService)

	r.Get("/", handler.ListSkills)
	r.With(authMiddleware).Post("/", handler.CreateSkill)
	r.Get("/{skillID}", handler.GetSkill)
}

func (h *SkillHandler) ListSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.skillService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list skills")
		return
	}
	writeJSON(w, http.StatusOK, skills)
}

func (h *SkillHandler) GetSkill(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "skillID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	skill, err := h.skillService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "skill not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch skill")
		return
	}

	writeJSON(w, http.StatusOK, skill)
}

type createSkillRequest struct {
	Nome string `json:"nome_habilidade"`
}

func (h *SkillHandler) CreateSkill(w http.ResponseWriter, r *http.Request) {
	var req createSkillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Nome = strings.TrimSpace(req.Nome)
	if req.Nome == "" {
		writeError(w, http.StatusBadRequest, "nome_habilidade is required")
		return
	}

	skill, err := h.skillService.Create(r.Context(), types.Skill{Nome: req.Nome})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusConflict, "skill already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create skill")
		return
	}

	writeJSON(w, http.StatusCreated, skill)
}
