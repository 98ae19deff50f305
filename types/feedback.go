package types

// Feedback is a standalone testimonial. It is not tied to a user row.
type Feedback struct {
	ID int `json:"id_feedback" db:"id_feedback"`

	// NomeAutor is the display name of whoever left the testimonial.
	NomeAutor string `json:"nome_autor" db:"nome_autor"`

	CargoAutor string `json:"cargo_autor" db:"cargo_autor"`
	Depoimento string `json:"depoimento" db:"depoimento"`

	// Estrelas is the star rating, 1 through 5.
	Estrelas int `json:"estrelas" db:"estrelas"`
}
