package partida

import (
	"time"

	models "Quadra/models/postgres"

	"gorm.io/gorm"
)

/*
 * Lifecycle status is a function of wall-clock time and the confirmation
 * state of the roster. There is no scheduler: every read and every mutation
 * path recomputes it through Refresh and persists the result when it moved.
 */

// Refresh computes the status the match should have at instant now. It does
// not touch the database; the caller persists the new status when changed
// is true. The roster edges must already be loaded on p.
//
// Transitions:
//  1. finalizada/cancelada are terminal, nothing moves.
//  2. past the end time, the match is finalizada no matter what.
//  3. between start and end it is em_andamento.
//  4. before the start it is marcada when every participant (at least one)
//     confirmed, and falls back to ativa when a marcada match loses a
//     confirmation.
func Refresh(p *models.Partida, now time.Time) (models.StatusPartida, bool) {
	if p.Terminal() {
		return p.Status, false
	}

	fim := p.HorarioFim()

	if now.After(fim) {
		return models.PartidaFinalizada, p.Status != models.PartidaFinalizada
	}

	if !p.DataPartida.After(now) && now.Before(fim) { // data_partida <= now < fim
		return models.PartidaEmAndamento, p.Status != models.PartidaEmAndamento
	}

	if !now.Before(p.DataPartida) {
		return p.Status, false
	}

	// now < data_partida: confirmation-driven oscillation
	total := len(p.Participantes)
	confirmados := p.Confirmados()

	if total > 0 && confirmados == total {
		return models.PartidaMarcada, p.Status != models.PartidaMarcada
	}
	if p.Status == models.PartidaMarcada {
		return models.PartidaAtiva, true
	}
	return p.Status, false
}

// atualizarStatus applies Refresh to p and writes the new status inside tx
// when it changed. p is mutated to carry the fresh status either way.
func atualizarStatus(tx *gorm.DB, p *models.Partida, now time.Time) error {
	novo, mudou := Refresh(p, now)
	if !mudou {
		p.Status = novo
		return nil
	}
	p.Status = novo
	return tx.Model(&models.Partida{}).
		Where("id = ?", p.ID).
		Update("status", novo).Error
}

// refrescarStatus commits the lazy refresh on its own, before a mutation
// opens its transaction. A mutation that is then rejected still leaves the
// recomputed status in the store, the same as a plain read would.
func (s *Service) refrescarStatus(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		p, err := carregar(tx, id)
		if err != nil {
			return err
		}
		return atualizarStatus(tx, p, s.Now())
	})
}
