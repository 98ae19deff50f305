package handlers

import (
	"net/http"
	"testing"

	"github.com/infinity-school/portfolio-apiserver/types"
)

func TestCreateFeedback(t *testing.T) {
	router := newTestRouter(t)

	// No token: testimonials are public.
	recorder := doJSON(t, router, http.MethodPost, "/feedbacks/", "", map[string]any{
		"nome_autor":  "Bruno",
		"cargo_autor": "CTO",
		"depoimento":  "Excelente trabalho.",
		"estrelas":    5,
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", recorder.Code, recorder.Body.String())
	}

	var created types.Feedback
	decodeBody(t, recorder, &created)
	if created.ID != 1 || created.Estrelas != 5 {
		t.Errorf("created = %+v", created)
	}

	recorder = doJSON(t, router, http.MethodGet, "/feedbacks/", "", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("list status = %d", recorder.Code)
	}
	var feedbacks []types.Feedback
	decodeBody(t, recorder, &feedbacks)
	if len(feedbacks) != 1 || feedbacks[0].NomeAutor != "Bruno" {
		t.Errorf("feedbacks = %+v", feedbacks)
	}
}

func TestCreateFeedback_Validation(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing author", map[string]any{"estrelas": 3}},
		{"zero stars", map[string]any{"nome_autor": "B", "estrelas": 0}},
		{"six stars", map[string]any{"nome_autor": "B", "estrelas": 6}},
	}
	for _, tc := range cases {
		recorder := doJSON(t, router, http.MethodPost, "/feedbacks/", "", tc.body)
		if recorder.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, recorder.Code)
		}
	}
}
