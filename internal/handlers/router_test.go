package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/infinity-school/portfolio-apiserver/internal/services"
	"github.com/infinity-school/portfolio-apiserver/internal/store"
	"github.com/infinity-school/portfolio-apiserver/types"
)

const testJWTSecret = "handler-test-secret"

// In-memory fakes backing the real services, so handler tests exercise
// the full request path without a database.

type fakeUserRepo struct {
	users  map[int]types.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int]types.User), nextID: 1}
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int) (types.User, error) {
	user, ok := f.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByCPF(ctx context.Context, cpf string) (types.User, error) {
	for _, user := range f.users {
		if user.CPF == cpf {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUserRepo) ExistsByCPFOrEmail(ctx context.Context, cpf, email string) (bool, error) {
	for _, user := range f.users {
		if user.CPF == cpf || user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) List(ctx context.Context, offset, limit int) ([]types.User, int, error) {
	users := make([]types.User, 0, len(f.users))
	for id := 1; id < f.nextID; id++ {
		if user, ok := f.users[id]; ok {
			users = append(users, user)
		}
	}
	total := len(users)
	if offset >= len(users) {
		return nil, total, nil
	}
	users = users[offset:]
	if len(users) > limit {
		users = users[:limit]
	}
	return users, total, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user types.User) (types.User, error) {
	if _, ok := f.users[user.ID]; !ok {
		return types.User{}, store.ErrNotFound
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int) error {
	if _, ok := f.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeSkillRepo struct {
	skills   map[int]types.Skill
	attached map[[2]int]int // (userID,skillID) -> join row id
	nextID   int
}

func newFakeSkillRepo() *fakeSkillRepo {
	return &fakeSkillRepo{
		skills:   make(map[int]types.Skill),
		attached: make(map[[2]int]int),
		nextID:   1,
	}
}

func (f *fakeSkillRepo) List(ctx context.Context) ([]types.Skill, error) {
	skills := make([]types.Skill, 0, len(f.skills))
	for id := 1; id < f.nextID; id++ {
		if skill, ok := f.skills[id]; ok {
			skills = append(skills, skill)
		}
	}
	return skills, nil
}

func (f *fakeSkillRepo) Get(ctx context.Context, id int) (types.Skill, error) {
	skill, ok := f.skills[id]
	if !ok {
		return types.Skill{}, store.ErrNotFound
	}
	return skill, nil
}

func (f *fakeSkillRepo) Create(ctx context.Context, skill types.Skill) (types.Skill, error) {
	for _, existing := range f.skills {
		if existing.Nome == skill.Nome {
			return types.Skill{}, store.ErrConflict
		}
	}
	skill.ID = f.nextID
	f.nextID++
	f.skills[skill.ID] = skill
	return skill, nil
}

func (f *fakeSkillRepo) Attach(ctx context.Context, userID, skillID int) (types.UserSkill, error) {
	if _, ok := f.skills[skillID]; !ok {
		return types.UserSkill{}, store.ErrNotFound
	}
	key := [2]int{userID, skillID}
	if _, ok := f.attached[key]; ok {
		return types.UserSkill{}, store.ErrConflict
	}
	id := f.nextID
	f.nextID++
	f.attached[key] = id
	return types.UserSkill{ID: id, UserID: userID, SkillID: skillID}, nil
}

func (f *fakeSkillRepo) Detach(ctx context.Context, userID, skillID int) error {
	key := [2]int{userID, skillID}
	if _, ok := f.attached[key]; !ok {
		return store.ErrNotFound
	}
	delete(f.attached, key)
	return nil
}

func (f *fakeSkillRepo) ListByUser(ctx context.Context, userID int) ([]types.Skill, error) {
	skills := make([]types.Skill, 0)
	for key := range f.attached {
		if key[0] == userID {
			skills = append(skills, f.skills[key[1]])
		}
	}
	return skills, nil
}

type fakeLinkRepo struct {
	links  map[int]types.ExternalLink
	nextID int
}

func newFakeLinkRepo() *fakeLinkRepo {
	return &fakeLinkRepo{links: make(map[int]types.ExternalLink), nextID: 1}
}

func (f *fakeLinkRepo) ListByUser(ctx context.Context, userID int) ([]types.ExternalLink, error) {
	links := make([]types.ExternalLink, 0)
	for id := 1; id < f.nextID; id++ {
		if link, ok := f.links[id]; ok && link.UserID == userID {
			links = append(links, link)
		}
	}
	return links, nil
}

func (f *fakeLinkRepo) Create(ctx context.Context, link types.ExternalLink) (types.ExternalLink, error) {
	link.ID = f.nextID
	f.nextID++
	f.links[link.ID] = link
	return link, nil
}

func (f *fakeLinkRepo) Delete(ctx context.Context, id int) error {
	if _, ok := f.links[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.links, id)
	return nil
}

type fakeFeedbackRepo struct {
	feedbacks []types.Feedback
}

func (f *fakeFeedbackRepo) List(ctx context.Context) ([]types.Feedback, error) {
	return append([]types.Feedback(nil), f.feedbacks...), nil
}

func (f *fakeFeedbackRepo) Create(ctx context.Context, feedback types.Feedback) (types.Feedback, error) {
	feedback.ID = len(f.feedbacks) + 1
	f.feedbacks = append(f.feedbacks, feedback)
	return feedback, nil
}

type fakeProjectRepo struct {
	projects map[int]types.Project
	nextID   int
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[int]types.Project), nextID: 1}
}

func (f *fakeProjectRepo) List(ctx context.Context, offset, limit int) ([]types.Project, int, error) {
	return nil, 0, nil
}

func (f *fakeProjectRepo) Get(ctx context.Context, id int) (types.Project, error) {
	project, ok := f.projects[id]
	if !ok {
		return types.Project{}, store.ErrNotFound
	}
	return project, nil
}

func (f *fakeProjectRepo) Create(ctx context.Context, project types.Project) (types.Project, error) {
	project.ID = f.nextID
	f.nextID++
	f.projects[project.ID] = project
	return project, nil
}

func (f *fakeProjectRepo) Update(ctx context.Context, project types.Project) (types.Project, error) {
	if _, ok := f.projects[project.ID]; !ok {
		return types.Project{}, store.ErrNotFound
	}
	f.projects[project.ID] = project
	return project, nil
}

func (f *fakeProjectRepo) Delete(ctx context.Context, id int) error {
	if _, ok := f.projects[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.projects, id)
	return nil
}

func (f *fakeProjectRepo) AddParticipant(ctx context.Context, projectID, userID int) (types.ProjectParticipant, error) {
	return types.ProjectParticipant{}, nil
}

func (f *fakeProjectRepo) RemoveParticipant(ctx context.Context, projectID, userID int) error {
	return nil
}

func (f *fakeProjectRepo) ListParticipants(ctx context.Context, projectID int) ([]types.User, error) {
	return nil, nil
}

func (f *fakeProjectRepo) ListByUser(ctx context.Context, userID int) ([]types.Project, error) {
	return []types.Project{}, nil
}

type fakeCategoryRepo struct {
	categories map[int]types.PortfolioCategory
	nextID     int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[int]types.PortfolioCategory), nextID: 1}
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]types.PortfolioCategory, error) {
	return nil, nil
}

func (f *fakeCategoryRepo) Get(ctx context.Context, id int) (types.PortfolioCategory, error) {
	category, ok := f.categories[id]
	if !ok {
		return types.PortfolioCategory{}, store.ErrNotFound
	}
	return category, nil
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category types.PortfolioCategory) (types.PortfolioCategory, error) {
	category.ID = f.nextID
	f.nextID++
	f.categories[category.ID] = category
	return category, nil
}

// newTestRouter wires the full route tree onto fake repositories,
// mirroring the production server setup.
func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	userService := services.NewUserService(newFakeUserRepo(), nil)
	skillService := services.NewSkillService(newFakeSkillRepo())
	projectService := services.NewProjectService(newFakeProjectRepo(), newFakeCategoryRepo())
	linkService := services.NewLinkService(newFakeLinkRepo())
	feedbackService := services.NewFeedbackService(&fakeFeedbackRepo{}, nil)
	mediaService := services.NewMediaService(nil)

	authMiddleware := RequireAuth(testJWTSecret)

	router := chi.NewRouter()
	router.Get("/", Root)
	router.Get("/healthz", Healthz)
	router.Route("/auth", func(r chi.Router) {
		AuthRouter(r, userService, testJWTSecret)
	})
	router.Route("/usuarios", func(r chi.Router) {
		UserRouter(r, userService, skillService, projectService, linkService, mediaService, authMiddleware)
	})
	router.Route("/habilidades", func(r chi.Router) {
		SkillRouter(r, skillService, authMiddleware)
	})
	router.Route("/categorias", func(r chi.Router) {
		CategoryRouter(r, projectService, authMiddleware)
	})
	router.Route("/projetos", func(r chi.Router) {
		ProjectRouter(r, projectService, mediaService, authMiddleware)
	})
	router.Route("/links", func(r chi.Router) {
		LinkRouter(r, linkService, authMiddleware)
	})
	router.Route("/feedbacks", func(r chi.Router) {
		FeedbackRouter(r, feedbackService)
	})
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.NewDecoder(recorder.Body).Decode(into); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func registerTestUser(t *testing.T, router http.Handler) (userID int, token string) {
	t.Helper()

	recorder := doJSON(t, router, http.MethodPost, "/auth/register", "", map[string]string{
		"national_id": "11122233344",
		"email":       "a@x.com",
		"password":    "p",
		"name":        "Ana",
		"role":        "Dev",
		"bio":         "bio",
		"user_type":   "freelancer",
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", recorder.Code, recorder.Body.String())
	}

	var reg RegisterResponse
	decodeBody(t, recorder, &reg)
	if reg.UserID < 1 {
		t.Fatalf("register user_id = %d, want positive", reg.UserID)
	}

	recorder = doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"national_id": "11122233344",
		"password":    "p",
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", recorder.Code, recorder.Body.String())
	}

	var login LoginResponse
	decodeBody(t, recorder, &login)
	if login.Token == "" {
		t.Fatal("login returned empty token")
	}
	return reg.UserID, login.Token
}
