package types

// PortfolioCategory groups projects (e.g. "Design", "Dev").
type PortfolioCategory struct {
	ID   int    `json:"id_categoria" db:"id_categoria"`
	Nome string `json:"nome_categoria" db:"nome_categoria"`
}

// Project is a portfolio project belonging to one category.
type Project struct {
	ID int `json:"id_projeto" db:"id_projeto"`

	// Nome is the project name. It is the only required attribute.
	Nome string `json:"nome_projeto" db:"nome_projeto"`

	Descricao string `json:"descricao_projeto" db:"descricao_projeto"`

	// Nicho tags the market niche of the project.
	Nicho string `json:"nicho" db:"nicho"`

	ImagemURL string `json:"imagem_projeto_url" db:"imagem_projeto_url"`

	// CategoryID references the owning portfolio category.
	CategoryID int `json:"id_categoria" db:"id_categoria"`
}

// ProjectParticipant is the join row between a user and a project.
type ProjectParticipant struct {
	ID        int `json:"id" db:"id"`
	UserID    int `json:"id_usuario" db:"id_usuario"`
	ProjectID int `json:"id_projeto" db:"id_projeto"`
}
