package store

import (
	"context"
	"database/sql"

	"github.com/infinity-school/portfolio-apiserver/types"
)

// FeedbackRepository handles persistence for testimonials.
type FeedbackRepository struct {
	db *sql.DB
}

func NewFeedbackRepository(db *sql.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) List(ctx context.Context) ([]types.Feedback, error) {
	const query = `
		SELECT id_feedback, nome_autor, cargo_autor, depoimento, estrelas
		FROM feedbacks
		ORDER BY id_feedback`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	feedbacks := make([]types.Feedback, 0)
	for rows.Next() {
		var feedback types.Feedback
		if err := rows.Scan(
			&feedback.ID,
			&feedback.NomeAutor,
			&feedback.CargoAutor,
			&feedback.Depoimento,
			&feedback.Estrelas,
		); err != nil {
			return nil, err
		}
		feedbacks = append(feedbacks, feedback)
	}
	return feedbacks, rows.Err()
}

func (r *FeedbackRepository) Create(ctx context.Context, feedback types.Feedback) (types.Feedback, error) {
	const query = `
		INSERT INTO feedbacks (nome_autor, cargo_autor, depoimento, estrelas)
		VALUES ($1, $2, $3, $4)
		RETURNING id_feedback`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		feedback.NomeAutor,
		feedback.CargoAutor,
		feedback.Depoimento,
		feedback.Estrelas,
	).Scan(&feedback.ID); err != nil {
		return types.Feedback{}, err
	}
	return feedback, nil
}
