package types

// Skill is a technical skill users can attach to their profile.
type Skill struct {
	ID   int    `json:"id_habilidade" db:"id_habilidade"`
	Nome string `json:"nome_habilidade" db:"nome_habilidade"`
}

// UserSkill is the join row between a user and a skill.
type UserSkill struct {
	ID      int `json:"id" db:"id"`
	UserID  int `json:"id_usuario" db:"id_usuario"`
	SkillID int `json:"id_habilidade" db:"id_habilidade"`
}
