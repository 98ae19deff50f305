package store

import (
	"context"
	"database/sql"

	"github.com/infinity-school/portfolio-apiserver/types"
)

// LinkRepository handles persistence for external links.
type LinkRepository struct {
	db *sql.DB
}

func NewLinkRepository(db *sql.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

func (r *LinkRepository) ListByUser(ctx context.Context, userID int) ([]types.ExternalLink, error) {
	const query = `
		SELECT id_link, id_usuario, plataforma, url
		FROM links_externos
		WHERE id_usuario = $1
		ORDER BY id_link`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := make([]types.ExternalLink, 0)
	for rows.Next() {
		var link types.ExternalLink
		if err := rows.Scan(&link.ID, &link.UserID, &link.Plataforma, &link.URL); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

func (r *LinkRepository) Create(ctx context.Context, link types.ExternalLink) (types.ExternalLink, error) {
	const query = `
		INSERT INTO links_externos (id_usuario, plataforma, url)
		VALUES ($1, $2, $3)
		RETURNING id_link`
	if err := r.db.QueryRowContext(ctx, query, link.UserID, link.Plataforma, link.URL).Scan(&link.ID); err != nil {
		return types.ExternalLink{}, mapConstraintErr(err)
	}
	return link, nil
}

func (r *LinkRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM links_externos WHERE id_link = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
