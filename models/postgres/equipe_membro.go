package postgres

import (
	"time"
)

/*
 * 'EquipeMembro' links a player to a team. Composite primary key over
 * (equipe_id, usuario_id).
 */
type EquipeMembro struct {
	EquipeID  uint `gorm:"primaryKey" json:"equipe_id"`
	UsuarioID uint `gorm:"primaryKey;index" json:"usuario_id"`

	DataEntrada time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"data_entrada"`

	// Relationships
	Equipe  Equipe  `gorm:"foreignKey:EquipeID" json:"-"`
	Usuario Usuario `gorm:"foreignKey:UsuarioID" json:"usuario,omitempty"`
}
