package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

/*
 * 'Convite' represents an invitation to a private match. It contains
 * references to Partida and to the sending and invited Usuario.
 */
type Convite struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Mensagem      string        `gorm:"type:text" json:"mensagem"`
	Status        StatusConvite `gorm:"size:20;not null;default:pendente;index:idx_convites_status" json:"status"`
	DataExpiracao *time.Time    `json:"data_expiracao,omitempty"`

	MandanteID  uint `gorm:"not null;index:idx_convites_mandante" json:"mandante_id"`
	ConvidadoID uint `gorm:"not null;index:idx_convites_convidado" json:"convidado_id"`
	PartidaID   uint `gorm:"not null;index:idx_convites_partida" json:"partida_id"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Mandante  Usuario `gorm:"foreignKey:MandanteID" json:"mandante,omitempty"`
	Convidado Usuario `gorm:"foreignKey:ConvidadoID" json:"convidado,omitempty"`
	Partida   Partida `gorm:"foreignKey:PartidaID" json:"-"`
}

// GORM hook to ensure an invitation never targets its own sender
func (cv *Convite) BeforeSave(tx *gorm.DB) error {
	if cv.MandanteID == cv.ConvidadoID {
		return errors.New("não é possível convidar a si mesmo")
	}
	return nil
}

// Ativo reports whether the invitation still blocks a duplicate for the
// same (sender, recipient, match) triple.
func (cv *Convite) Ativo() bool {
	return cv.Status == ConvitePendente || cv.Status == ConviteAceito
}
