package services

import (
	"context"
	"errors"

	"github.com/infinity-school/portfolio-apiserver/internal/store"
	"github.com/infinity-school/portfolio-apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when a login attempt fails. Unknown
// cpf and wrong password are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByCPF(ctx context.Context, cpf string) (types.User, error)
	ExistsByCPFOrEmail(ctx context.Context, cpf, email string) (bool, error)
	List(ctx context.Context, offset, limit int) ([]types.User, int, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Update(ctx context.Context, user types.User) (types.User, error)
	Delete(ctx context.Context, id int) error
}

// UpdateUserParams carries the optional fields of a partial user update.
// Nil fields leave the stored value untouched.
type UpdateUserParams struct {
	Nome             *string `json:"nome"`
	Cargo            *string `json:"cargo"`
	DescricaoPessoal *string `json:"descricao_pessoal"`
	TipoUsuario      *string `json:"tipo_usuario"`
	FotoPerfilURL    *string `json:"foto_perfil_url"`
	Empresa          *string `json:"empresa"`
	Localizacao      *string `json:"localizacao"`
	Telefone         *string `json:"telefone"`
	DataNascimento   *string `json:"data_nascimento"`
}

// UserService encapsulates user use-cases.
type UserService struct {
	repo   UserRepository
	events *EventPublisher
}

func NewUserService(repo UserRepository, events *EventPublisher) *UserService {
	return &UserService{repo: repo, events: events}
}

// Register hashes the password, rejects duplicate cpf/email with
// store.ErrConflict and inserts the user. The pre-check is a single query
// ORed over both natural keys; a concurrent insert that slips past it is
// still surfaced as ErrConflict by the store's constraint mapping.
func (s *UserService) Register(ctx context.Context, user types.User, password string) (types.User, error) {
	taken, err := s.repo.ExistsByCPFOrEmail(ctx, user.CPF, user.Email)
	if err != nil {
		return types.User{}, err
	}
	if taken {
		return types.User{}, store.ErrConflict
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return types.User{}, err
	}
	user.PasswordHash = string(hashed)

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return types.User{}, err
	}

	s.events.UserRegistered(ctx, created)
	return created, nil
}

// Authenticate verifies cpf+password. A missing user and a wrong password
// both return ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, cpf, password string) (types.User, error) {
	user, err := s.repo.GetByCPF(ctx, cpf)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrInvalidCredentials
		}
		return types.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, offset, limit int) ([]types.User, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, offset, limit)
}

// UpdatePartial applies only the fields present in params to the stored
// user and writes the merged row back. cpf, email and the password hash
// are not reachable through this path.
func (s *UserService) UpdatePartial(ctx context.Context, id int, params UpdateUserParams) (types.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return types.User{}, err
	}

	if params.Nome != nil {
		user.Nome = *params.Nome
	}
	if params.Cargo != nil {
		user.Cargo = *params.Cargo
	}
	if params.DescricaoPessoal != nil {
		user.DescricaoPessoal = *params.DescricaoPessoal
	}
	if params.TipoUsuario != nil {
		user.TipoUsuario = *params.TipoUsuario
	}
	if params.FotoPerfilURL != nil {
		user.FotoPerfilURL = *params.FotoPerfilURL
	}
	if params.Empresa != nil {
		user.Empresa = *params.Empresa
	}
	if params.Localizacao != nil {
		user.Localizacao = *params.Localizacao
	}
	if params.Telefone != nil {
		user.Telefone = *params.Telefone
	}
	if params.DataNascimento != nil {
		user.DataNascimento = *params.DataNascimento
	}

	return s.repo.Update(ctx, user)
}

// SetProfilePhoto updates only the photo URL of an existing user.
func (s *UserService) SetProfilePhoto(ctx context.Context, id int, url string) (types.User, error) {
	return s.UpdatePartial(ctx, id, UpdateUserParams{FotoPerfilURL: &url})
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
