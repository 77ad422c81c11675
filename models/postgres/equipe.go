package postgres

import (
	"time"
)

/*
 * 'Equipe' defines a standing team of players. It is referenced by
 * EquipeMembro and keeps the same aggregate stat columns as Usuario.
 */
type Equipe struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Nome      string `gorm:"size:100;not null" json:"nome"`
	Descricao string `gorm:"type:text" json:"descricao"`

	PontuacaoTotal  int `gorm:"default:0" json:"pontuacao_total"`
	PartidasJogadas int `gorm:"default:0" json:"partidas_jogadas"`
	Vitorias        int `gorm:"default:0" json:"vitorias"`
	Derrotas        int `gorm:"default:0" json:"derrotas"`

	LiderID uint `gorm:"not null;index:idx_equipes_lider" json:"lider_id"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Lider   Usuario        `gorm:"foreignKey:LiderID" json:"lider,omitempty"`
	Membros []EquipeMembro `gorm:"foreignKey:EquipeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"membros,omitempty"`
}
