package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/infinity-school/portfolio-apiserver/types"
)

// CategoryRepository handles persistence for portfolio categories.
type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]types.PortfolioCategory, error) {
	const query = `
		SELECT id_categoria, nome_categoria
		FROM categorias_portfolio
		ORDER BY id_categoria`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]types.PortfolioCategory, 0)
	for rows.Next() {
		var category types.PortfolioCategory
		if err := rows.Scan(&category.ID, &category.Nome); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) Get(ctx context.Context, id int) (types.PortfolioCategory, error) {
	const query = `
		SELECT id_categoria, nome_categoria
		FROM categorias_portfolio
		WHERE id_categoria = $1`
	var category types.PortfolioCategory
	err := r.db.QueryRowContext(ctx, query, id).Scan(&category.ID, &category.Nome)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.PortfolioCategory{}, ErrNotFound
		}
		return types.PortfolioCategory{}, err
	}
	return category, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category types.PortfolioCategory) (types.PortfolioCategory, error) {
	const query = `
		INSERT INTO categorias_portfolio (nome_categoria)
		VALUES ($1)
		RETURNING id_categoria`
	if err := r.db.QueryRowContext(ctx, query, category.Nome).Scan(&category.ID); err != nil {
		return types.PortfolioCategory{}, mapConstraintErr(err)
	}
	return category, nil
}
