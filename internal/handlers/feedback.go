package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/infinity-school/portfolio-apiserver/internal/services"
	"github.com/infinity-school/portfolio-apiserver/types"
)

// FeedbackHandler provides HTTP handlers for testimonials. Both routes
// are public: testimonials can be left by visitors without an account.
type FeedbackHandler struct {
	feedbackService *services.FeedbackService
}

func NewFeedbackHandler(feedbackService *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// FeedbackRouter registers feedback routes on the given router.
func FeedbackRouter(r chi.Router, feedbackService *services.FeedbackService) {
	handler := NewFeedbackHandler(feedbackService)

	r.Get("/", handler.ListFeedbacks)
	r.Post("/", handler.CreateFeedback)
}

func (h *FeedbackHandler) ListFeedbacks(w http.ResponseWriter, r *http.Request) {
	feedbacks, err := h.feedbackService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list feedbacks")
		return
	}
	writeJSON(w, http.StatusOK, feedbacks)
}

type createFeedbackRequest struct {
	NomeAutor  string `json:"nome_autor"`
	CargoAutor string `json:"cargo_autor"`
	Depoimento string `json:"depoimento"`
	Estrelas   int    `json:"estrelas"`
}

func (h *FeedbackHandler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	var req createFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.NomeAutor = strings.TrimSpace(req.NomeAutor)
	if req.NomeAutor == "" {
		writeError(w, http.StatusBadRequest, "nome_autor is required")
		return
	}
	if req.Estrelas < 1 || req.Estrelas > 5 {
		writeError(w, http.StatusBadRequest, "estrelas must be between 1 and 5")
		return
	}

	feedback, err := h.feedbackService.Create(r.Context(), types.Feedback{
		NomeAutor:  req.NomeAutor,
		CargoAutor: strings.TrimSpace(req.CargoAutor),
		Depoimento: req.Depoimento,
		Estrelas:   req.Estrelas,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create feedback")
		return
	}

	writeJSON(w, http.StatusCreated, feedback)
}
