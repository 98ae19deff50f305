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
	maxPhotoMemory = 8 << 20
	maxPhotoBytes  = 16 << 20
	formFieldPhoto = "foto"
)

// UserHandler provides HTTP handlers for user profiles and the nested
// skill/project/link resources of a user.
type UserHandler struct {
	userService    *services.UserService
	skillService   *services.SkillService
	projectService *services.ProjectService
	linkService    *services.LinkService
	mediaService   *services.MediaService
}

// NewUserHandler constructs a handler with the provided services.
func NewUserHandler(
	userService *services.UserService,
	skillService *services.SkillService,
	projectService *services.ProjectService,
	linkService *services.LinkService,
	mediaService *services.MediaService,
) *UserHandler {
	return &UserHandler{
		userService:    userService,
		skillService:   skillService,
		projectService: projectService,
		linkService:    linkService,
		mediaService:   mediaService,
	}
}

// UserRouter registers user routes on the given router. The core profile
// CRUD stays open; mutations on the nested portfolio resources require a
// token.
func UserRouter(
	r chi.Router,
	userService *services.UserService,
	skillService *services.SkillService,
	projectService *services.ProjectService,
	linkService *services.LinkService,
	mediaService *services.MediaService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewUserHandler(userService, skillService, projectService, linkService, mediaService)

	r.Get("/", handler.ListUsers)
	r.Route("/{userID}", func(r chi.Router) {
		r.Get("/", handler.GetUser)
		r.Put("/", handler.UpdateUser)
		r.Delete("/", handler.DeleteUser)

		r.Get("/habilidades", handler.ListUserSkills)
		r.With(authMiddleware).Post("/habilidades", handler.AttachSkill)
		r.With(authMiddleware).Delete("/habilidades/{skillID}", handler.DetachSkill)

		r.Get("/projetos", handler.ListUserProjects)

		r.Get("/links", handler.ListUserLinks)
		r.With(authMiddleware).Post("/links", handler.CreateUserLink)

		r.With(authMiddleware).Post("/foto", handler.UploadPhoto)
	})
}

// UserListResponse is the paginated list response payload.
type UserListResponse struct {
	Items []types.User `json:"items"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
	Total int          `json:"total"`
}

// UserUpdateResponse wraps the merged row returned by a partial update.
type UserUpdateResponse struct {
	Message string     `json:"message"`
	Usuario types.User `json:"usuario"`
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, total, err := h.userService.List(r.Context(), offset, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	writeJSON(w, http.StatusOK, UserListResponse{
		Items: items,
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UpdateUser applies a partial update: only fields present in the JSON
// body overwrite stored values. Exposed on PUT for compatibility, but the
// semantics are PATCH.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var params services.UpdateUserParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.userService.UpdatePartial(r.Context(), id, params)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update user")
		return
	}

	writeJSON(w, http.StatusOK, UserUpdateResponse{
		Message: "Usuário atualizado com sucesso",
		Usuario: user,
	})
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) ListUserSkills(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	skills, err := h.skillService.ListByUser(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list skills")
		return
	}

	writeJSON(w, http.StatusOK, skills)
}

type attachSkillRequest struct {
	SkillID int `json:"id_habilidade"`
}

func (h *UserHandler) AttachSkill(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req attachSkillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SkillID < 1 {
		writeError(w, http.StatusBadRequest, "invalid skill id")
		return
	}

	us, err := h.skillService.AttachToUser(r.Context(), id, req.SkillID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			writeError(w, http.StatusConflict, "skill already attached")
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "user or skill not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to attach skill")
		}
		return
	}

	writeJSON(w, http.StatusCreated, us)
}

func (h *UserHandler) DetachSkill(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	skillID, err := parseIDParam(r, "skillID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.skillService.DetachFromUser(r.Context(), userID, skillID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "skill not attached")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to detach skill")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) ListUserProjects(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	projects, err := h.projectService.ListByUser(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}

	writeJSON(w, http.StatusOK, projects)
}

func (h *UserHandler) ListUserLinks(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	links, err := h.linkService.ListByUser(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list links")
		return
	}

	writeJSON(w, http.StatusOK, links)
}

type createLinkRequest struct {
	Plataforma string `json:"plataforma"`
	URL        string `json:"url"`
}

func (h *UserHandler) CreateUserLink(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req createLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	link, err := h.linkService.Create(r.Context(), types.ExternalLink{
		UserID:     id,
		Plataforma: strings.TrimSpace(req.Plataforma),
		URL:        strings.TrimSpace(req.URL),
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create link")
		return
	}

	writeJSON(w, http.StatusCreated, link)
}

// UploadPhoto stores a profile photo in object storage and writes the
// resulting URL onto the user row.
func (h *UserHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !h.mediaService.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "media storage is not configured")
		return
	}

	// Reject before touching object storage when the user is missing.
	if _, err := h.userService.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	upload, err := parseUploadFile(r, formFieldPhoto, maxPhotoMemory, maxPhotoBytes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	url, err := h.mediaService.UploadUserPhoto(r.Context(), id, upload.Filename, upload.ContentType, upload.Data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store photo")
		return
	}

	user, err := h.userService.SetProfilePhoto(r.Context(), id, url)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}
