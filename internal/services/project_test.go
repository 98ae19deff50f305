package services

import (
	"context"
	"errors"
	"testing"

	"github.com/infinity-school/portfolio-apiserver/internal/store"
	"github.com/infinity-school/portfolio-apiserver/types"
)

type fakeProjectRepo struct {
	projects     map[int]types.Project
	participants map[[2]int]int // (projectID,userID) -> join row id
	nextID       int
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{
		projects:     make(map[int]types.Project),
		participants: make(map[[2]int]int),
		nextID:       1,
	}
}

func (f *fakeProjectRepo) List(ctx context.Context, offset, limit int) ([]types.Project, int, error) {
	projects := make([]types.Project, 0, len(f.projects))
	for id := 1; id < f.nextID; id++ {
		if p, ok := f.projects[id]; ok {
			projects = append(projects, p)
		}
	}
	return projects, len(projects), nil
}

func (f *fakeProjectRepo) Get(ctx context.Context, id int) (types.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return types.Project{}, store.ErrNotFound
	}
	return p, nil
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
	if _, ok := f.projects[projectID]; !ok {
		return types.ProjectParticipant{}, store.ErrNotFound
	}
	key := [2]int{projectID, userID}
	if _, ok := f.participants[key]; ok {
		return types.ProjectParticipant{}, store.ErrConflict
	}
	id := f.nextID
	f.nextID++
	f.participants[key] = id
	return types.ProjectParticipant{ID: id, UserID: userID, ProjectID: projectID}, nil
}

func (f *fakeProjectRepo) RemoveParticipant(ctx context.Context, projectID, userID int) error {
	key := [2]int{projectID, userID}
	if _, ok := f.participants[key]; !ok {
		return store.ErrNotFound
	}
	delete(f.participants, key)
	return nil
}

func (f *fakeProjectRepo) ListParticipants(ctx context.Context, projectID int) ([]types.User, error) {
	return nil, nil
}

func (f *fakeProjectRepo) ListByUser(ctx context.Context, userID int) ([]types.Project, error) {
	projects := make([]types.Project, 0)
	for key := range f.participants {
		if key[1] == userID {
			projects = append(projects, f.projects[key[0]])
		}
	}
	return projects, nil
}

type fakeCategoryRepo struct {
	categories map[int]types.PortfolioCategory
	nextID     int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[int]types.PortfolioCategory), nextID: 1}
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]types.PortfolioCategory, error) {
	categories := make([]types.PortfolioCategory, 0, len(f.categories))
	for id := 1; id < f.nextID; id++ {
		if c, ok := f.categories[id]; ok {
			categories = append(categories, c)
		}
	}
	return categories, nil
}

func (f *fakeCategoryRepo) Get(ctx context.Context, id int) (types.PortfolioCategory, error) {
	c, ok := f.categories[id]
	if !ok {
		return types.PortfolioCategory{}, store.ErrNotFound
	}
	return c, nil
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category types.PortfolioCategory) (types.PortfolioCategory, error) {
	for _, existing := range f.categories {
		if existing.Nome == category.Nome {
			return types.PortfolioCategory{}, store.ErrConflict
		}
	}
	category.ID = f.nextID
	f.nextID++
	f.categories[category.ID] = category
	return category, nil
}

func newTestProjectService(t *testing.T) (*ProjectService, *fakeProjectRepo, types.PortfolioCategory) {
	t.Helper()

	repo := newFakeProjectRepo()
	categories := newFakeCategoryRepo()
	svc := NewProjectService(repo, categories)

	category, err := svc.CreateCategory(context.Background(), types.PortfolioCategory{Nome: "Dev"})
	if err != nil {
		t.Fatalf("CreateCategory() error = %v", err)
	}
	return svc, repo, category
}

func TestProjectCreate_UnknownCategory(t *testing.T) {
	svc, repo, category := newTestProjectService(t)

	_, err := svc.Create(context.Background(), types.Project{Nome: "Site", CategoryID: category.ID + 100})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Create() error = %v, want ErrNotFound", err)
	}
	if len(repo.projects) != 0 {
		t.Fatalf("project row created under unknown category")
	}
}

func TestProjectUpdatePartial(t *testing.T) {
	svc, _, category := newTestProjectService(t)

	created, err := svc.Create(context.Background(), types.Project{
		Nome:       "Site",
		Descricao:  "landing page",
		Nicho:      "web",
		CategoryID: category.ID,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	nicho := "mobile"
	updated, err := svc.UpdatePartial(context.Background(), created.ID, UpdateProjectParams{Nicho: &nicho})
	if err != nil {
		t.Fatalf("UpdatePartial() error = %v", err)
	}
	if updated.Nicho != "mobile" {
		t.Fatalf("Nicho = %q, want %q", updated.Nicho, "mobile")
	}
	if updated.Nome != "Site" || updated.Descricao != "landing page" || updated.CategoryID != category.ID {
		t.Fatalf("absent fields were overwritten: %+v", updated)
	}
}

func TestProjectParticipants(t *testing.T) {
	svc, _, category := newTestProjectService(t)

	project, err := svc.Create(context.Background(), types.Project{Nome: "Site", CategoryID: category.ID})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := svc.AddParticipant(context.Background(), project.ID, 7); err != nil {
		t.Fatalf("AddParticipant() error = %v", err)
	}
	if _, err := svc.AddParticipant(context.Background(), project.ID, 7); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("duplicate AddParticipant() error = %v, want ErrConflict", err)
	}

	projects, err := svc.ListByUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(projects) != 1 || projects[0].ID != project.ID {
		t.Fatalf("ListByUser() = %+v, want the joined project", projects)
	}

	if err := svc.RemoveParticipant(context.Background(), project.ID, 7); err != nil {
		t.Fatalf("RemoveParticipant() error = %v", err)
	}
	if err := svc.RemoveParticipant(context.Background(), project.ID, 7); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("second RemoveParticipant() error = %v, want ErrNotFound", err)
	}
}
