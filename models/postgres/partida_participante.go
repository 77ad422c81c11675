package postgres

import (
	"time"
)

/*
 * 'PartidaParticipante' represents one player inside a match roster. It
 * carries the per-edge attendance metadata and references Partida and
 * Usuario through a composite primary key.
 */
type PartidaParticipante struct {
	// NOTE: composite primary key definition
	PartidaID uint `gorm:"primaryKey" json:"partida_id"`
	UsuarioID uint `gorm:"primaryKey;index" json:"usuario_id"`

	Confirmado      bool       `gorm:"default:false" json:"confirmado"`
	DataConfirmacao *time.Time `json:"data_confirmacao,omitempty"`
	// Set when the player entered through an accepted invitation
	ConvidadoPorID *uint     `json:"convidado_por_id,omitempty"`
	DataEntrada    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"data_entrada"`

	// Relationship with the match and the player
	Partida Partida `gorm:"foreignKey:PartidaID" json:"-"`
	Usuario Usuario `gorm:"foreignKey:UsuarioID" json:"usuario,omitempty"`
}
