package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/infinity-school/portfolio-apiserver/types"
)

// ProjectRepository handles persistence for projects and participants.
type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) List(ctx context.Context, offset, limit int) ([]types.Project, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 20
	}

	const countQuery = `SELECT COUNT(1) FROM projetos`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	const listQuery = `
		SELECT id_projeto, nome_projeto, descricao_projeto, nicho, imagem_projeto_url, id_categoria
		FROM projetos
		ORDER BY id_projeto
		OFFSET $1 LIMIT $2`
	rows, err := r.db.QueryContext(ctx, listQuery, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	projects := make([]types.Project, 0, limit)
	for rows.Next() {
		var project types.Project
		if err := rows.Scan(
			&project.ID,
			&project.Nome,
			&project.Descricao,
			&project.Nicho,
			&project.ImagemURL,
			&project.CategoryID,
		); err != nil {
			return nil, 0, err
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

func (r *ProjectRepository) Get(ctx context.Context, id int) (types.Project, error) {
	const query = `
		SELECT id_projeto, nome_projeto, descricao_projeto, nicho, imagem_projeto_url, id_categoria
		FROM projetos
		WHERE id_projeto = $1`
	var project types.Project
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&project.ID,
		&project.Nome,
		&project.Descricao,
		&project.Nicho,
		&project.ImagemURL,
		&project.CategoryID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Project{}, ErrNotFound
		}
		return types.Project{}, err
	}
	return project, nil
}

func (r *ProjectRepository) Create(ctx context.Context, project types.Project) (types.Project, error) {
	const query = `
		INSERT INTO projetos (nome_projeto, descricao_projeto, nicho, imagem_projeto_url, id_categoria)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id_projeto`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		project.Nome,
		project.Descricao,
		project.Nicho,
		project.ImagemURL,
		project.CategoryID,
	).Scan(&project.ID); err != nil {
		return types.Project{}, mapConstraintErr(err)
	}
	return project, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project types.Project) (types.Project, error) {
	const query = `
		UPDATE projetos
		SET nome_projeto = $1,
			descricao_projeto = $2,
			nicho = $3,
			imagem_projeto_url = $4,
			id_categoria = $5
		WHERE id_projeto = $6`
	result, err := r.db.ExecContext(
		ctx,
		query,
		project.Nome,
		project.Descricao,
		project.Nicho,
		project.ImagemURL,
		project.CategoryID,
		project.ID,
	)
	if err != nil {
		return types.Project{}, mapConstraintErr(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Project{}, err
	}
	if affected == 0 {
		return types.Project{}, ErrNotFound
	}
	return project, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM projetos WHERE id_projeto = $1`
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

// AddParticipant links a user to a project. Duplicate pairs map to
// ErrConflict, missing parents to ErrNotFound.
func (r *ProjectRepository) AddParticipant(ctx context.Context, projectID, userID int) (types.ProjectParticipant, error) {
	pp := types.ProjectParticipant{UserID: userID, ProjectID: projectID}

	const query = `
		INSERT INTO participantes_projeto (id_usuario, id_projeto)
		VALUES ($1, $2)
		RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, userID, projectID).Scan(&pp.ID); err != nil {
		return types.ProjectParticipant{}, mapConstraintErr(err)
	}
	return pp, nil
}

func (r *ProjectRepository) RemoveParticipant(ctx context.Context, projectID, userID int) error {
	const query = `
		DELETE FROM participantes_projeto
		WHERE id_projeto = $1 AND id_usuario = $2`
	result, err := r.db.ExecContext(ctx, query, projectID, userID)
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

func (r *ProjectRepository) ListParticipants(ctx context.Context, projectID int) ([]types.User, error) {
	const query = `
		SELECT u.id_usuario, u.cpf, u.email, u.senha, u.nome, u.cargo, u.descricao_pessoal,
			u.tipo_usuario, u.foto_perfil_url, u.google_id, u.apple_id, u.empresa, u.localizacao,
			u.telefone, u.data_nascimento, u.created_at, u.updated_at
		FROM usuarios u
		JOIN participantes_projeto pp ON pp.id_usuario = u.id_usuario
		WHERE pp.id_projeto = $1
		ORDER BY u.id_usuario`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]types.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *ProjectRepository) ListByUser(ctx context.Context, userID int) ([]types.Project, error) {
	const query = `
		SELECT p.id_projeto, p.nome_projeto, p.descricao_projeto, p.nicho, p.imagem_projeto_url, p.id_categoria
		FROM projetos p
		JOIN participantes_projeto pp ON pp.id_projeto = p.id_projeto
		WHERE pp.id_usuario = $1
		ORDER BY p.id_projeto`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]types.Project, 0)
	for rows.Next() {
		var project types.Project
		if err := rows.Scan(
			&project.ID,
			&project.Nome,
			&project.Descricao,
			&project.Nicho,
			&project.ImagemURL,
			&project.CategoryID,
		); err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}
