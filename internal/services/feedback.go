package services

import (
	"context"

	"github.com/infinity-school/portfolio-apiserver/types"
)

// FeedbackRepository defines persistence operations for testimonials.
type FeedbackRepository interface {
	List(ctx context.Context) ([]types.Feedback, error)
	Create(ctx context.Context, feedback types.Feedback) (types.Feedback, error)
}

// FeedbackService encapsulates testimonial use-cases.
type FeedbackService struct {
	repo   FeedbackRepository
	events *EventPublisher
}

func NewFeedbackService(repo FeedbackRepository, events *EventPublisher) *FeedbackService {
	return &FeedbackService{repo: repo, events: events}
}

func (s *FeedbackService) List(ctx context.Context) ([]types.Feedback, error) {
	return s.repo.List(ctx)
}

func (s *FeedbackService) Create(ctx context.Context, feedback types.Feedback) (types.Feedback, error) {
	created, err := s.repo.Create(ctx, feedback)
	if err != nil {
		return types.Feedback{}, err
	}
	s.events.FeedbackCreated(ctx, created)
	return created, nil
}
