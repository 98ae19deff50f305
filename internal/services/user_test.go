package services

import (
	"context"
	"errors"
	"testing"

	"github.com/infinity-school/portfolio-apiserver/internal/store"
	"github.com/infinity-school/portfolio-apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserRepo is an in-memory implementation of UserRepository. A fake
// keeps these tests free of a database and easy to read.
type fakeUserRepo struct {
	users  map[int]types.User
	nextID int

	// set to a non-nil error to simulate a database failure
	failWith error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int]types.User), nextID: 1}
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int) (types.User, error) {
	if f.failWith != nil {
		return types.User{}, f.failWith
	}
	user, ok := f.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByCPF(ctx context.Context, cpf string) (types.User, error) {
	if f.failWith != nil {
		return types.User{}, f.failWith
	}
	for _, user := range f.users {
		if user.CPF == cpf {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUserRepo) ExistsByCPFOrEmail(ctx context.Context, cpf, email string) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	for _, user := range f.users {
		if user.CPF == cpf || user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) List(ctx context.Context, offset, limit int) ([]types.User, int, error) {
	if f.failWith != nil {
		return nil, 0, f.failWith
	}
	users := make([]types.User, 0, len(f.users))
	for id := 1; id < f.nextID; id++ {
		if user, ok := f.users[id]; ok {
			users = append(users, user)
		}
	}
	total := len(users)
	if offset >= len(users) {
		return nil, total, nil
	}
	users = users[offset:]
	if len(users) > limit {
		users = users[:limit]
	}
	return users, total, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	if f.failWith != nil {
		return types.User{}, f.failWith
	}
	for _, existing := range f.users {
		if existing.CPF == user.CPF || existing.Email == user.Email {
			return types.User{}, store.ErrConflict
		}
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user types.User) (types.User, error) {
	if f.failWith != nil {
		return types.User{}, f.failWith
	}
	if _, ok := f.users[user.ID]; !ok {
		return types.User{}, store.ErrNotFound
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func sampleUser() types.User {
	return types.User{
		CPF:              "11122233344",
		Email:            "a@x.com",
		Nome:             "Ana",
		Cargo:            "Dev",
		DescricaoPessoal: "bio",
		TipoUsuario:      "freelancer",
	}
}

func TestRegister(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, nil)

	created, err := svc.Register(context.Background(), sampleUser(), "p")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if created.ID < 1 {
		t.Fatalf("Register() assigned id %d, want positive", created.ID)
	}
	if created.PasswordHash == "" || created.PasswordHash == "p" {
		t.Fatalf("Register() stored password %q, want bcrypt hash", created.PasswordHash)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("p")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}

	got, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Nome != "Ana" || got.CPF != "11122233344" || got.TipoUsuario != "freelancer" {
		t.Fatalf("GetByID() = %+v, profile fields changed", got)
	}
}

func TestRegister_DuplicateCPF(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, nil)

	if _, err := svc.Register(context.Background(), sampleUser(), "p"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	dup := sampleUser()
	dup.Email = "other@x.com"
	_, err := svc.Register(context.Background(), dup, "p")
	if !errors.Is(err, store.ErrConflict) {
		t.Fatalf("second Register() error = %v, want ErrConflict", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("got %d rows after duplicate register, want 1", len(repo.users))
	}
}

func TestAuthenticate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, nil)

	created, err := svc.Register(context.Background(), sampleUser(), "secret")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, err := svc.Authenticate(context.Background(), "11122233344", "secret")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("Authenticate() id = %d, want %d", user.ID, created.ID)
	}

	// Unknown cpf and wrong password must be indistinguishable.
	if _, err := svc.Authenticate(context.Background(), "00000000000", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown cpf error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Authenticate(context.Background(), "11122233344", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
}

func TestUpdatePartial(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, nil)

	created, err := svc.Register(context.Background(), sampleUser(), "p")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	nome := "X"
	updated, err := svc.UpdatePartial(context.Background(), created.ID, UpdateUserParams{Nome: &nome})
	if err != nil {
		t.Fatalf("UpdatePartial() error = %v", err)
	}
	if updated.Nome != "X" {
		t.Fatalf("Nome = %q, want %q", updated.Nome, "X")
	}
	if updated.Cargo != "Dev" || updated.DescricaoPessoal != "bio" || updated.TipoUsuario != "freelancer" {
		t.Fatalf("absent fields were overwritten: %+v", updated)
	}
	if updated.CPF != created.CPF || updated.Email != created.Email {
		t.Fatalf("immutable fields changed: %+v", updated)
	}
	if updated.PasswordHash != created.PasswordHash {
		t.Fatalf("password hash changed on profile update")
	}
}

func TestUpdatePartial_NotFound(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, nil)

	nome := "X"
	_, err := svc.UpdatePartial(context.Background(), 42, UpdateUserParams{Nome: &nome})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("UpdatePartial() error = %v, want ErrNotFound", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("row was created by failed update")
	}
}

func TestDelete(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, nil)

	created, err := svc.Register(context.Background(), sampleUser(), "p")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.GetByID(context.Background(), created.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("GetByID() after delete error = %v, want ErrNotFound", err)
	}

	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("second Delete() error = %v, want ErrNotFound", err)
	}
}
