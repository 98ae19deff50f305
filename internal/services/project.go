package services

import (
	"context"

	"github.com/infinity-school/portfolio-apiserver/types"
)

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	List(ctx context.Context, offset, limit int) ([]types.Project, int, error)
	Get(ctx context.Context, id int) (types.Project, error)
	Create(ctx context.Context, project types.Project) (types.Project, error)
	Update(ctx context.Context, project types.Project) (types.Project, error)
	Delete(ctx context.Context, id int) error
	AddParticipant(ctx context.Context, projectID, userID int) (types.ProjectParticipant, error)
	RemoveParticipant(ctx context.Context, projectID, userID int) error
	ListParticipants(ctx context.Context, projectID int) ([]types.User, error)
	ListByUser(ctx context.Context, userID int) ([]types.Project, error)
}

// CategoryRepository defines persistence operations for portfolio categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]types.PortfolioCategory, error)
	Get(ctx context.Context, id int) (types.PortfolioCategory, error)
	Create(ctx context.Context, category types.PortfolioCategory) (types.PortfolioCategory, error)
}

// UpdateProjectParams carries the optional fields of a partial project
// update. Nil fields leave the stored value untouched.
type UpdateProjectParams struct {
	Nome       *string `json:"nome_projeto"`
	Descricao  *string `json:"descricao_projeto"`
	Nicho      *string `json:"nicho"`
	ImagemURL  *string `json:"imagem_projeto_url"`
	CategoryID *int    `json:"id_categoria"`
}

// ProjectService encapsulates project and category use-cases.
type ProjectService struct {
	repo       ProjectRepository
	categories CategoryRepository
}

func NewProjectService(repo ProjectRepository, categories CategoryRepository) *ProjectService {
	return &ProjectService{repo: repo, categories: categories}
}

func (s *ProjectService) List(ctx context.Context, offset, limit int) ([]types.Project, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, offset, limit)
}

func (s *ProjectService) Get(ctx context.Context, id int) (types.Project, error) {
	return s.repo.Get(ctx, id)
}

// Create verifies the owning category before inserting the project, so an
// unknown category reads as not-found rather than a constraint failure.
func (s *ProjectService) Create(ctx context.Context, project types.Project) (types.Project, error) {
	if _, err := s.categories.Get(ctx, project.CategoryID); err != nil {
		return types.Project{}, err
	}
	return s.repo.Create(ctx, project)
}

// UpdatePartial applies only the fields present in params to the stored
// project and writes the merged row back.
func (s *ProjectService) UpdatePartial(ctx context.Context, id int, params UpdateProjectParams) (types.Project, error) {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Project{}, err
	}

	if params.Nome != nil {
		project.Nome = *params.Nome
	}
	if params.Descricao != nil {
		project.Descricao = *params.Descricao
	}
	if params.Nicho != nil {
		project.Nicho = *params.Nicho
	}
	if params.ImagemURL != nil {
		project.ImagemURL = *params.ImagemURL
	}
	if params.CategoryID != nil {
		if _, err := s.categories.Get(ctx, *params.CategoryID); err != nil {
			return types.Project{}, err
		}
		project.CategoryID = *params.CategoryID
	}

	return s.repo.Update(ctx, project)
}

// SetImage updates only the image URL of an existing project.
func (s *ProjectService) SetImage(ctx context.Context, id int, url string) (types.Project, error) {
	return s.UpdatePartial(ctx, id, UpdateProjectParams{ImagemURL: &url})
}

func (s *ProjectService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func (s *ProjectService) AddParticipant(ctx context.Context, projectID, userID int) (types.ProjectParticipant, error) {
	return s.repo.AddParticipant(ctx, projectID, userID)
}

func (s *ProjectService) RemoveParticipant(ctx context.Context, projectID, userID int) error {
	return s.repo.RemoveParticipant(ctx, projectID, userID)
}

func (s *ProjectService) ListParticipants(ctx context.Context, projectID int) ([]types.User, error) {
	return s.repo.ListParticipants(ctx, projectID)
}

func (s *ProjectService) ListByUser(ctx context.Context, userID int) ([]types.Project, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *ProjectService) ListCategories(ctx context.Context) ([]types.PortfolioCategory, error) {
	return s.categories.List(ctx)
}

func (s *ProjectService) CreateCategory(ctx context.Context, category types.PortfolioCategory) (types.PortfolioCategory, error) {
	return s.categories.Create(ctx, category)
}
