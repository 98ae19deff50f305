package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/infinity-school/portfolio-apiserver/types"
)

// SkillRepository handles persistence for skills and user-skill rows.
type SkillRepository struct {
	db *sql.DB
}

func NewSkillRepository(db *sql.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

func (r *SkillRepository) List(ctx context.Context) ([]types.Skill, error) {
	const query = `
		SELECT id_habilidade, nome_habilidade
		FROM habilidades
		ORDER BY id_habilidade`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := make([]types.Skill, 0)
	for rows.Next() {
		var skill types.Skill
		if err := rows.Scan(&skill.ID, &skill.Nome); err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}
	return skills, rows.Err()
}

func (r *SkillRepository) Get(ctx context.Context, id int) (types.Skill, error) {
	const query = `
		SELECT id_habilidade, nome_habilidade
		FROM habilidades
		WHERE id_habilidade = $1`
	var skill types.Skill
	err := r.db.QueryRowContext(ctx, query, id).Scan(&skill.ID, &skill.Nome)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Skill{}, ErrNotFound
		}
		return types.Skill{}, err
	}
	return skill, nil
}

func (r *SkillRepository) Create(ctx context.Context, skill types.Skill) (types.Skill, error) {
	const query = `
		INSERT INTO habilidades (nome_habilidade)
		VALUES ($1)
		RETURNING id_habilidade`
	if err := r.db.QueryRowContext(ctx, query, skill.Nome).Scan(&skill.ID); err != nil {
		return types.Skill{}, mapConstraintErr(err)
	}
	return skill, nil
}

// Attach links a skill to a user. A duplicate pair maps to ErrConflict and
// a missing user or skill to ErrNotFound, both via constraint errors.
func (r *SkillRepository) Attach(ctx context.Context, userID, skillID int) (types.UserSkill, error) {
	us := types.UserSkill{UserID: userID, SkillID: skillID}

	const query = `
		INSERT INTO usuario_habilidades (id_usuario, id_habilidade)
		VALUES ($1, $2)
		RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, userID, skillID).Scan(&us.ID); err != nil {
		return types.UserSkill{}, mapConstraintErr(err)
	}
	return us, nil
}

func (r *SkillRepository) Detach(ctx context.Context, userID, skillID int) error {
	const query = `
		DELETE FROM usuario_habilidades
		WHERE id_usuario = $1 AND id_habilidade = $2`
	result, err := r.db.ExecContext(ctx, query, userID, skillID)
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

func (r *SkillRepository) ListByUser(ctx context.Context, userID int) ([]types.Skill, error) {
	const query = `
		SELECT h.id_habilidade, h.nome_habilidade
		FROM habilidades h
		JOIN usuario_habilidades uh ON uh.id_habilidade = h.id_habilidade
		WHERE uh.id_usuario = $1
		ORDER BY h.id_habilidade`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := make([]types.Skill, 0)
	for rows.Next() {
		var skill types.Skill
		if err := rows.Scan(&skill.ID, &skill.Nome); err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}
	return skills, rows.Err()
}
