package types

import "time"

// User represents a registered profile in the system.
// JSON field names follow the persisted column names.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id_usuario" db:"id_usuario"`

	// CPF is the user's national ID. It is unique and doubles as the
	// login key.
	CPF string `json:"cpf" db:"cpf"`

	// Email is the user's email address, unique across users.
	Email string `json:"email" db:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"senha"`

	// Nome is the user's display or full name.
	Nome string `json:"nome" db:"nome"`

	// Cargo is the user's role or job title (e.g. "Dev", "Designer").
	Cargo string `json:"cargo" db:"cargo"`

	// DescricaoPessoal is the user's free-form bio.
	DescricaoPessoal string `json:"descricao_pessoal" db:"descricao_pessoal"`

	// TipoUsuario tags the kind of account (e.g. "freelancer", "empresa").
	TipoUsuario string `json:"tipo_usuario" db:"tipo_usuario"`

	// FotoPerfilURL points at the user's profile photo.
	FotoPerfilURL string `json:"foto_perfil_url" db:"foto_perfil_url"`

	// GoogleID and AppleID hold external-auth identifiers when the
	// account was linked to a third-party provider.
	GoogleID string `json:"google_id" db:"google_id"`
	AppleID  string `json:"apple_id" db:"apple_id"`

	// Empresa, Localizacao and Telefone are optional profile attributes.
	Empresa     string `json:"empresa" db:"empresa"`
	Localizacao string `json:"localizacao" db:"localizacao"`
	Telefone    string `json:"telefone" db:"telefone"`

	// DataNascimento is the birth date as supplied by the client. It is
	// stored verbatim, not parsed.
	DataNascimento string `json:"data_nascimento" db:"data_nascimento"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the account.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
