package services

import (
	"context"

	"github.com/infinity-school/portfolio-apiserver/types"
)

// LinkRepository defines persistence operations for external links.
type LinkRepository interface {
	ListByUser(ctx context.Context, userID int) ([]types.ExternalLink, error)
	Create(ctx context.Context, link types.ExternalLink) (types.ExternalLink, error)
	Delete(ctx context.Context, id int) error
}

// LinkService encapsulates external-link use-cases.
type LinkService struct {
	repo LinkRepository
}

func NewLinkService(repo LinkRepository) *LinkService {
	return &LinkService{repo: repo}
}

func (s *LinkService) ListByUser(ctx context.Context, userID int) ([]types.ExternalLink, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *LinkService) Create(ctx context.Context, link types.ExternalLink) (types.ExternalLink, error) {
	return s.repo.Create(ctx, link)
}

func (s *LinkService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
