package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/infinity-school/portfolio-apiserver/internal/mq"
	"github.com/infinity-school/portfolio-apiserver/types"
)

const (
	channelUserRegistered  = "user.registered"
	channelFeedbackCreated = "feedback.created"

	publishTimeout = 5 * time.Second
)

// EventPublisher pushes domain events onto the message queue. Publishing
// is best-effort: failures never fail the originating request, and a nil
// publisher (no broker configured) is a no-op.
type EventPublisher struct {
	queue *mq.MQ
}

func NewEventPublisher(queue *mq.MQ) *EventPublisher {
	return &EventPublisher{queue: queue}
}

// UserRegistered announces a freshly registered account.
func (p *EventPublisher) UserRegistered(ctx context.Context, user types.User) {
	p.publish(ctx, channelUserRegistered, map[string]any{
		"id_usuario": user.ID,
		"cpf":        user.CPF,
		"email":      user.Email,
	})
}

// FeedbackCreated announces a new testimonial.
func (p *EventPublisher) FeedbackCreated(ctx context.Context, feedback types.Feedback) {
	p.publish(ctx, channelFeedbackCreated, map[string]any{
		"id_feedback": feedback.ID,
		"estrelas":    feedback.Estrelas,
	})
}

func (p *EventPublisher) publish(ctx context.Context, channel string, payload map[string]any) {
	if p == nil || p.queue == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	_, _ = p.queue.Publish(ctx, channel, data, map[string]string{
		"content-type": "application/json",
	})
}
