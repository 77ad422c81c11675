package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'Partida' defines the structure of a volleyball match. It contains
 * references to Usuario (organizer) and PartidaParticipante (roster edges).
 */
type Partida struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	Titulo    string           `gorm:"size:200;not null" json:"titulo"`
	Descricao string           `gorm:"type:text" json:"descricao"`
	Tipo      TipoPartida      `gorm:"size:20;not null;default:amistosa" json:"tipo"`
	Categoria CategoriaPartida `gorm:"size:20;not null;default:livre" json:"categoria"`
	Status    StatusPartida    `gorm:"size:20;not null;default:ativa;index:idx_partidas_status" json:"status"`

	DataPartida     time.Time  `gorm:"not null" json:"data_partida"`
	DataFim         *time.Time `json:"data_fim,omitempty"`
	DuracaoEstimada int        `gorm:"default:120" json:"duracao_estimada"` // minutes
	Local           string     `gorm:"size:255" json:"local"`

	MaxParticipantes int `gorm:"default:12" json:"max_participantes"`
	// No column default: GORM would skip a false value on insert and the
	// database default would silently make the match public.
	Publica bool `json:"publica"`

	PontuacaoEquipeA int `gorm:"default:0" json:"pontuacao_equipe_a"`
	PontuacaoEquipeB int `gorm:"default:0" json:"pontuacao_equipe_b"`

	// Per-player points awarded when the match was finalized, kept for history
	ResumoFinalizacao datatypes.JSON `gorm:"type:jsonb" json:"resumo_finalizacao,omitempty"`

	OrganizadorID uint `gorm:"not null;index:idx_partidas_organizador" json:"organizador_id"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Organizador   Usuario               `gorm:"foreignKey:OrganizadorID" json:"organizador,omitempty"`
	Participantes []PartidaParticipante `gorm:"foreignKey:PartidaID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"participantes,omitempty"`
}

// HorarioFim returns the explicit end time, or start plus the estimated
// duration when none was set.
func (p *Partida) HorarioFim() time.Time {
	if p.DataFim != nil {
		return *p.DataFim
	}
	return p.DataPartida.Add(time.Duration(p.DuracaoEstimada) * time.Minute)
}

// Terminal reports whether the match reached a read-only state.
func (p *Partida) Terminal() bool {
	return p.Status == PartidaFinalizada || p.Status == PartidaCancelada
}

// Confirmados counts the roster edges with a standing confirmation.
func (p *Partida) Confirmados() int {
	n := 0
	for _, part := range p.Participantes {
		if part.Confirmado {
			n++
		}
	}
	return n
}

// Lotada reports whether the roster is at capacity.
func (p *Partida) Lotada() bool {
	return len(p.Participantes) >= p.MaxParticipantes
}
