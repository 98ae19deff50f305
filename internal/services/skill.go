package services

import (
	"context"

	"github.com/infinity-school/portfolio-apiserver/types"
)

// SkillRepository defines persistence operations for skills.
type SkillRepository interface {
	List(ctx context.Context) ([]types.Skill, error)
	Get(ctx context.Context, id int) (types.Skill, error)
	Create(ctx context.Context, skill types.Skill) (types.Skill, error)
	Attach(ctx context.Context, userID, skillID int) (types.UserSkill, error)
	Detach(ctx context.Context, userID, skillID int) error
	ListByUser(ctx context.Context, userID int) ([]types.Skill, error)
}

// SkillService encapsulates skill use-cases.
type SkillService struct {
	repo SkillRepository
}

func NewSkillService(repo SkillRepository) *SkillService {
	return &SkillService{repo: repo}
}

func (s *SkillService) List(ctx context.Context) ([]types.Skill, error) {
	return s.repo.List(ctx)
}

func (s *SkillService) Get(ctx context.Context, id int) (types.Skill, error) {
	return s.repo.Get(ctx, id)
}

func (s *SkillService) Create(ctx context.Context, skill types.Skill) (types.Skill, error) {
	return s.repo.Create(ctx, skill)
}

func (s *SkillService) AttachToUser(ctx context.Context, userID, skillID int) (types.UserSkill, error) {
	return s.repo.Attach(ctx, userID, skillID)
}

func (s *SkillService) DetachFromUser(ctx context.Context, userID, skillID int) error {
	return s.repo.Detach(ctx, userID, skillID)
}

func (s *SkillService) ListByUser(ctx context.Context, userID int) ([]types.Skill, error) {
	return s.repo.ListByUser(ctx, userID)
}
