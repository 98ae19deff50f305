package types

// ExternalLink points at a user's presence on another platform
// (GitHub, Behance, LinkedIn, ...).
type ExternalLink struct {
	ID         int    `json:"id_link" db:"id_link"`
	UserID     int    `json:"id_usuario" db:"id_usuario"`
	Plataforma string `json:"plataforma" db:"plataforma"`
	URL        string `json:"url" db:"url"`
}
