package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/infinity-school/portfolio-apiserver/types"
)

// UserRepository handles persistence for users.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id_usuario, cpf, email, senha, nome, cargo, descricao_pessoal,
		tipo_usuario, foto_perfil_url, google_id, apple_id, empresa, localizacao,
		telefone, data_nascimento, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (types.User, error) {
	var user types.User
	err := row.Scan(
		&user.ID,
		&user.CPF,
		&user.Email,
		&user.PasswordHash,
		&user.Nome,
		&user.Cargo,
		&user.DescricaoPessoal,
		&user.TipoUsuario,
		&user.FotoPerfilURL,
		&user.GoogleID,
		&user.AppleID,
		&user.Empresa,
		&user.Localizacao,
		&user.Telefone,
		&user.DataNascimento,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (types.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM usuarios
		WHERE id_usuario = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetByCPF(ctx context.Context, cpf string) (types.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM usuarios
		WHERE cpf = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, cpf))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

// ExistsByCPFOrEmail reports whether any user already holds the given cpf
// or email. A single query covers both natural keys.
func (r *UserRepository) ExistsByCPFOrEmail(ctx context.Context, cpf, email string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM usuarios WHERE cpf = $1 OR email = $2
		)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, cpf, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]types.User, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 20
	}

	const countQuery = `SELECT COUNT(1) FROM usuarios`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	const listQuery = `
		SELECT ` + userColumns + `
		FROM usuarios
		ORDER BY id_usuario
		OFFSET $1 LIMIT $2`
	rows, err := r.db.QueryContext(ctx, listQuery, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]types.User, 0, limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	const query = `
		INSERT INTO usuarios (cpf, email, senha, nome, cargo, descricao_pessoal,
			tipo_usuario, foto_perfil_url, google_id, apple_id, empresa, localizacao,
			telefone, data_nascimento, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id_usuario`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		user.CPF,
		user.Email,
		user.PasswordHash,
		user.Nome,
		user.Cargo,
		user.DescricaoPessoal,
		user.TipoUsuario,
		user.FotoPerfilURL,
		user.GoogleID,
		user.AppleID,
		user.Empresa,
		user.Localizacao,
		user.Telefone,
		user.DataNascimento,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID); err != nil {
		return types.User{}, mapConstraintErr(err)
	}
	return user, nil
}

func (r *UserRepository) Update(ctx context.Context, user types.User) (types.User, error) {
	user.UpdatedAt = time.Now()

	const query = `
		UPDATE usuarios
		SET nome = $1,
			cargo = $2,
			descricao_pessoal = $3,
			tipo_usuario = $4,
			foto_perfil_url = $5,
			google_id = $6,
			apple_id = $7,
			empresa = $8,
			localizacao = $9,
			telefone = $10,
			data_nascimento = $11,
			updated_at = $12
		WHERE id_usuario = $13`
	result, err := r.db.ExecContext(
		ctx,
		query,
		user.Nome,
		user.Cargo,
		user.DescricaoPessoal,
		user.TipoUsuario,
		user.FotoPerfilURL,
		user.GoogleID,
		user.AppleID,
		user.Empresa,
		user.Localizacao,
		user.Telefone,
		user.DataNascimento,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return types.User{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.User{}, err
	}
	if affected == 0 {
		return types.User{}, ErrNotFound
	}
	return user, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM usuarios WHERE id_usuario = $1`
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
