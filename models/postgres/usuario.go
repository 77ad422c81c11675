package postgres

import (
	"time"
)

/*
 * 'Usuario' contains the blueprint definition of a registered player.
 * Accounts are soft-deactivated through the Ativo flag, never deleted.
 */
type Usuario struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Nome      string      `gorm:"size:100;not null" json:"nome"`
	Email     string      `gorm:"size:255;not null;uniqueIndex" json:"email"`
	SenhaHash string      `gorm:"size:255;not null" json:"-"`
	Tipo      TipoUsuario `gorm:"size:20;not null;default:iniciante" json:"tipo"`
	// No column default: a false value written through GORM must stick
	// instead of being replaced by the database default on insert.
	Ativo bool `json:"ativo"`

	// Aggregate stats, updated when a match is finalized
	PontuacaoTotal  int `gorm:"default:0" json:"pontuacao_total"`
	PartidasJogadas int `gorm:"default:0" json:"partidas_jogadas"`
	Vitorias        int `gorm:"default:0" json:"vitorias"`
	Derrotas        int `gorm:"default:0" json:"derrotas"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	PartidasOrganizadas []Partida `gorm:"foreignKey:OrganizadorID" json:"-"`
	ConvitesEnviados    []Convite `gorm:"foreignKey:MandanteID" json:"-"`
	ConvitesRecebidos   []Convite `gorm:"foreignKey:ConvidadoID" json:"-"`
}
