package convite

import (
	"errors"
	"time"

	"Quadra/apperrors"
	models "Quadra/models/postgres"
	"Quadra/services/categoria"
	"Quadra/services/partida"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Invitations without an explicit expiration live for a week.
const ValidadePadrao = 7 * 24 * time.Hour

// Service implements the invitation workflow for private matches.
type Service struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db, Now: time.Now}
}

// EnviarConvite carries the request to invite a player.
type EnviarConvite struct {
	ConvidadoID   uint       `json:"convidado_id"`
	PartidaID     uint       `json:"partida_id"`
	Mensagem      string     `json:"mensagem"`
	DataExpiracao *time.Time `json:"data_expiracao"`
}

// Enviar creates a pending invitation for a private match. Only the
// organizer may invite, and only players the category admits.
func (s *Service) Enviar(dados EnviarConvite, mandante *models.Usuario) (*models.Convite, error) {
	var out *models.Convite
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var p models.Partida
		if err := tx.First(&p, dados.PartidaID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("partida não encontrada")
			}
			return err
		}
		if p.Publica {
			return apperrors.InvalidState("não é possível enviar convites para partidas públicas")
		}
		if p.OrganizadorID != mandante.ID {
			return apperrors.Forbidden("apenas o organizador da partida pode enviar convites")
		}

		var convidado models.Usuario
		if err := tx.First(&convidado, dados.ConvidadoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("usuário convidado não encontrado")
			}
			return err
		}
		if mandante.ID == convidado.ID {
			return apperrors.Duplicate("você não pode convidar a si mesmo")
		}
		if !categoria.PodeParticipar(convidado.Tipo, p.Categoria) {
			return apperrors.Eligibility("usuário %s não pode participar desta partida. Categoria: %s. Nível do usuário: %s",
				convidado.Nome, categoria.Descricao(p.Categoria), convidado.Tipo)
		}

		var ativos int64
		if err := tx.Model(&models.Convite{}).
			Where("mandante_id = ? AND convidado_id = ? AND partida_id = ? AND status IN (?)",
				mandante.ID, convidado.ID, p.ID,
				[]models.StatusConvite{models.ConvitePendente, models.ConviteAceito}).
			Count(&ativos).Error; err != nil {
			return err
		}
		if ativos > 0 {
			return apperrors.Duplicate("já existe um convite ativo para este usuário nesta partida")
		}

		var participantes int64
		if err := tx.Model(&models.PartidaParticipante{}).
			Where("partida_id = ?", p.ID).Count(&participantes).Error; err != nil {
			return err
		}
		var jaParticipa int64
		if err := tx.Model(&models.PartidaParticipante{}).
			Where("partida_id = ? AND usuario_id = ?", p.ID, convidado.ID).
			Count(&jaParticipa).Error; err != nil {
			return err
		}
		if jaParticipa > 0 {
			return apperrors.Duplicate("o usuário já está participando desta partida")
		}
		if int(participantes) >= p.MaxParticipantes {
			return apperrors.Capacity("a partida já atingiu o número máximo de participantes")
		}

		expiracao := dados.DataExpiracao
		if expiracao == nil {
			padrao := s.Now().Add(ValidadePadrao)
			expiracao = &padrao
		}

		cv := models.Convite{
			Mensagem:      dados.Mensagem,
			Status:        models.ConvitePendente,
			DataExpiracao: expiracao,
			MandanteID:    mandante.ID,
			ConvidadoID:   convidado.ID,
			PartidaID:     p.ID,
		}
		if err := tx.Create(&cv).Error; err != nil {
			return err
		}
		out = &cv
		return nil
	})
	return out, err
}

// Aceitar flips a pending invitation to aceito and seats the recipient in
// the match. When the roster filled in the meantime the invitation goes
// back to pendente and the call fails, so invitation state and roster never
// disagree.
func (s *Service) Aceitar(conviteID uint, convidado *models.Usuario) (*models.Convite, error) {
	var out *models.Convite
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		cv, err := s.pendenteDoConvidado(tx, conviteID, convidado.ID)
		if err != nil {
			return err
		}

		cv.Status = models.ConviteAceito
		if err := tx.Model(cv).Update("status", models.ConviteAceito).Error; err != nil {
			return err
		}

		var p models.Partida
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&p, cv.PartidaID).Error; err != nil {
			return err
		}

		var participantes int64
		if err := tx.Model(&models.PartidaParticipante{}).
			Where("partida_id = ?", p.ID).Count(&participantes).Error; err != nil {
			return err
		}
		if int(participantes) >= p.MaxParticipantes {
			// Compensate: the seat is gone, the invitation stays claimable
			cv.Status = models.ConvitePendente
			if err := tx.Model(cv).Update("status", models.ConvitePendente).Error; err != nil {
				return err
			}
			return apperrors.Capacity("a partida já atingiu o número máximo de participantes")
		}

		var jaParticipa int64
		if err := tx.Model(&models.PartidaParticipante{}).
			Where("partida_id = ? AND usuario_id = ?", p.ID, convidado.ID).
			Count(&jaParticipa).Error; err != nil {
			return err
		}
		if jaParticipa == 0 {
			agora := s.Now()
			edge := models.PartidaParticipante{
				PartidaID:      p.ID,
				UsuarioID:      convidado.ID,
				ConvidadoPorID: &cv.MandanteID,
				DataEntrada:    agora,
			}
			if err := tx.Create(&edge).Error; err != nil {
				return err
			}

			// The new seat is unconfirmed, which may pull a marcada match
			// back to ativa before the next read.
			if err := tx.Where("partida_id = ?", p.ID).
				Order("data_entrada, usuario_id").
				Find(&p.Participantes).Error; err != nil {
				return err
			}
			if novo, mudou := partida.Refresh(&p, agora); mudou {
				if err := tx.Model(&models.Partida{}).
					Where("id = ?", p.ID).
					Update("status", novo).Error; err != nil {
					return err
				}
			}
		}
		out = cv
		return nil
	})
	return out, err
}

// Recusar flips a pending invitation to recusado.
func (s *Service) Recusar(conviteID uint, convidado *models.Usuario) (*models.Convite, error) {
	var out *models.Convite
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		cv, err := s.pendenteDoConvidado(tx, conviteID, convidado.ID)
		if err != nil {
			return err
		}
		cv.Status = models.ConviteRecusado
		if err := tx.Model(cv).Update("status", models.ConviteRecusado).Error; err != nil {
			return err
		}
		out = cv
		return nil
	})
	return out, err
}

// Cancelar deletes a still-pending invitation. Sender only.
func (s *Service) Cancelar(conviteID uint, atual *models.Usuario) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var cv models.Convite
		if err := tx.First(&cv, conviteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("convite não encontrado")
			}
			return err
		}
		if cv.MandanteID != atual.ID {
			return apperrors.Forbidden("apenas quem enviou o convite pode cancelá-lo")
		}
		if cv.Status != models.ConvitePendente {
			return apperrors.InvalidState("apenas convites pendentes podem ser cancelados")
		}
		return tx.Delete(&cv).Error
	})
}

// ExpirarAntigos flips every pending invitation past its expiration to
// expirado and returns how many moved. Triggered by an external periodic
// caller, not by the live request path.
func (s *Service) ExpirarAntigos() (int64, error) {
	res := s.DB.Model(&models.Convite{}).
		Where("status = ? AND data_expiracao IS NOT NULL AND data_expiracao < ?",
			models.ConvitePendente, s.Now()).
		Update("status", models.ConviteExpirado)
	return res.RowsAffected, res.Error
}

// Enviados lists invitations sent by the user, newest first.
func (s *Service) Enviados(usuarioID uint, offset, limit int) ([]models.Convite, error) {
	var convites []models.Convite
	err := s.DB.Preload("Convidado").
		Where("mandante_id = ?", usuarioID).
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&convites).Error
	return convites, err
}

// Recebidos lists invitations received by the user, newest first.
func (s *Service) Recebidos(usuarioID uint, offset, limit int) ([]models.Convite, error) {
	var convites []models.Convite
	err := s.DB.Preload("Mandante").
		Where("convidado_id = ?", usuarioID).
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&convites).Error
	return convites, err
}

// Pendentes lists the user's still-pending received invitations.
func (s *Service) Pendentes(usuarioID uint) ([]models.Convite, error) {
	var convites []models.Convite
	err := s.DB.Preload("Mandante").
		Where("convidado_id = ? AND status = ?", usuarioID, models.ConvitePendente).
		Order("created_at desc").
		Find(&convites).Error
	return convites, err
}

// DaPartida lists every invitation of a match. Organizer-only view.
func (s *Service) DaPartida(partidaID uint, atual *models.Usuario) ([]models.Convite, error) {
	var p models.Partida
	if err := s.DB.First(&p, partidaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("partida não encontrada")
		}
		return nil, err
	}
	if p.OrganizadorID != atual.ID {
		return nil, apperrors.Forbidden("apenas o organizador pode ver os convites da partida")
	}
	var convites []models.Convite
	err := s.DB.Preload("Convidado").
		Where("partida_id = ?", partidaID).
		Order("created_at desc").
		Find(&convites).Error
	return convites, err
}

// ObterPorID returns one invitation, visible only to its sender or
// recipient.
func (s *Service) ObterPorID(conviteID uint, atual *models.Usuario) (*models.Convite, error) {
	var cv models.Convite
	if err := s.DB.Preload("Mandante").Preload("Convidado").
		First(&cv, conviteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("convite não encontrado")
		}
		return nil, err
	}
	if cv.MandanteID != atual.ID && cv.ConvidadoID != atual.ID {
		return nil, apperrors.Forbidden("você não tem permissão para ver este convite")
	}
	return &cv, nil
}

func (s *Service) pendenteDoConvidado(tx *gorm.DB, conviteID, convidadoID uint) (*models.Convite, error) {
	var cv models.Convite
	err := tx.Where("id = ? AND convidado_id = ? AND status = ?",
		conviteID, convidadoID, models.ConvitePendente).
		First(&cv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("convite não encontrado ou não pode ser respondido")
		}
		return nil, err
	}
	return &cv, nil
}
