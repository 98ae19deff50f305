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

const (
	maxImageMemory = 8 << 20
	maxImageBytes  = 16 << 20
	formFieldImage = "imagem"
)

// ProjectHandler provides HTTP handlers for projects and participants.
type ProjectHandler struct {
	projectService *services.ProjectService
	mediaService   *services.MediaService
}

// NewProjectHandler constructs a handler with the provided services.
func NewProjectHandler(projectService *services.ProjectService, mediaService *services.MediaService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		mediaService:   mediaService,
	}
}

// ProjectRouter registers project routes on the given router.
func ProjectRouter(
	r chi.Router,
	projectService *services.ProjectService,
	mediaService *services.MediaService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewProjectHandler(projectService, mediaService)

	r.Get("/", handler.ListProjects)
	r.With(authMiddleware).Post("/", handler.CreateProject)
	r.Route("/{projectID}", func(r chi.Router) {
		r.Get("/", handler.GetProject)
		r.With(authMiddleware).Put("/", handler.UpdateProject)
		r.With(authMiddleware).Delete("/", handler.DeleteProject)

		r.Get("/participantes", handler.ListParticipants)
		r.With(authMiddleware).Post("/participantes", handler.AddParticipant)
		r.With(authMiddleware).Delete("/participantes/{userID}", handler.RemoveParticipant)

		r.With(authMiddleware).Post("/imagem", handler.UploadImage)
	})
}

// ProjectListResponse is the paginated list response payload.
type ProjectListResponse struct {
	Items []types.Project `json:"items"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
	Total int             `json:"total"`
}

func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	page, limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, total, err := h.projectService.List(r.Context(), offset, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}

	writeJSON(w, http.StatusOK, ProjectListResponse{
		Items: items,
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "projectID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.projectService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch project")
		return
	}

	writeJSON(w, http.StatusOK, project)
}

type createProjectRequest struct {
	Nome       string `json:"nome_projeto"`
	Descricao  string `json:"descricao_projeto"`
	Nicho      string `json:"nicho"`
	ImagemURL  string `json:"imagem_projeto_url"`
	CategoryID int    `json:"id_categoria"`
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Nome = strings.TrimSpace(req.Nome)
	if req.Nome == "" {
		writeError(w, http.StatusBadRequest, "nome_projeto is required")
		return
	}
	if req.CategoryID < 1 {
		writeError(w, http.StatusBadRequest, "id_categoria is required")
		return
	}

	project, err := h.projectService.Create(r.Context(), types.Project{
		Nome:       req.Nome,
		Descricao:  req.Descricao,
		Nicho:      req.Nicho,
		ImagemURL:  req.ImagemURL,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create project")
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

// UpdateProject applies a partial update to a project.
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "projectID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var params services.UpdateProjectParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	project, err := h.projectService.UpdatePartial(r.Context(), id, params)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "project or category not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update project")
		return
	}

	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "projectID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.projectService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete project")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProjectHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "projectID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	users, err := h.projectService.ListParticipants(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list participants")
		return
	}

	writeJSON(w, http.StatusOK, users)
}

type addParticipantRequest struct {
	UserID int `json:"id_usuario"`
}

func (h *ProjectHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "projectID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req addParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID < 1 {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	pp, err := h.projectService.AddParticipant(r.Context(), id, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			writeError(w, http.StatusConflict, "user already participates")
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "project or user not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to add participant")
		}
		return
	}

	writeJSON(w, http.StatusCreated, pp)
}

func (h *ProjectHandler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseIDParam(r, "projectID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.projectService.RemoveParticipant(r.Context(), projectID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "participant not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to remove participant")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadImage stores a project image in object storage and writes the
// resulting URL onto the project row.
func (h *ProjectHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "projectID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !h.mediaService.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "media storage is not configured")
		return
	}

	if _, err := h.projectService.Get(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch project")
		return
	}

	upload, err := parseUploadFile(r, formFieldImage, maxImageMemory, maxImageBytes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	url, err := h.mediaService.UploadProjectImage(r.Context(), id, upload.Filename, upload.ContentType, upload.Data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store image")
		return
	}

	project, err := h.projectService.SetImage(r.Context(), id, url)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update project")
		return
	}

	writeJSON(w, http.StatusOK, project)
}
