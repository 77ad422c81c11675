package partida

import (
	"encoding/json"
	"errors"
	"time"

	"Quadra/apperrors"
	models "Quadra/models/postgres"
	"Quadra/services/categoria"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Points awarded when a match is finalized
const (
	PontosVitoria = 10
	PontosDerrota = 5
)

// Service holds the business logic for matches and their rosters. Every
// mutation runs inside one transaction with the match row locked, so the
// capacity invariant holds under concurrent requests.
type Service struct {
	DB *gorm.DB
	// Now is swapped in tests to control the clock
	Now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db, Now: time.Now}
}

// lockForUpdate adds a row lock where the dialect supports one. SQLite
// (used by the test suite) has no FOR UPDATE and serializes writers anyway.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// carregar loads the match row (locked) plus its roster edges in join
// order. The join order matters: Finalizar splits teams by it.
func carregar(tx *gorm.DB, id uint) (*models.Partida, error) {
	var p models.Partida
	if err := lockForUpdate(tx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("partida não encontrada")
		}
		return nil, err
	}
	if err := tx.Where("partida_id = ?", id).
		Order("data_entrada, usuario_id").
		Find(&p.Participantes).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Criar validates and persists a new match owned by organizador.
func (s *Service) Criar(p *models.Partida, organizador *models.Usuario) (*models.Partida, error) {
	if p.Titulo == "" {
		return nil, apperrors.Validation("título é obrigatório")
	}
	if !p.DataPartida.After(s.Now()) {
		return nil, apperrors.Validation("data da partida deve ser no futuro")
	}
	if p.MaxParticipantes <= 0 {
		p.MaxParticipantes = 12
	}
	if p.DuracaoEstimada <= 0 {
		p.DuracaoEstimada = 120
	}
	if p.Tipo == "" {
		p.Tipo = models.PartidaAmistosa
	}
	if p.Categoria == "" {
		p.Categoria = models.CategoriaLivre
	}
	if err := s.validarTipoOrganizador(organizador, p.Tipo); err != nil {
		return nil, err
	}

	p.OrganizadorID = organizador.ID
	p.Status = models.PartidaAtiva

	if err := s.DB.Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// AtualizarPartida carries the optional fields of an edit request. Nil
// pointers leave the column untouched.
type AtualizarPartida struct {
	Titulo           *string                  `json:"titulo"`
	Descricao        *string                  `json:"descricao"`
	Tipo             *models.TipoPartida      `json:"tipo"`
	Categoria        *models.CategoriaPartida `json:"categoria"`
	DataPartida      *time.Time               `json:"data_partida"`
	DataFim          *time.Time               `json:"data_fim"`
	DuracaoEstimada  *int                     `json:"duracao_estimada"`
	Local            *string                  `json:"local"`
	MaxParticipantes *int                     `json:"max_participantes"`
}

// Atualizar edits a match. Only the organizer (or a profissional acting as
// admin) may edit, and terminal matches are read-only.
func (s *Service) Atualizar(id uint, dados AtualizarPartida, atual *models.Usuario) (*models.Partida, error) {
	var out *models.Partida
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		p, err := carregar(tx, id)
		if err != nil {
			return err
		}
		if p.OrganizadorID != atual.ID && atual.Tipo != models.TipoProfissional {
			return apperrors.Forbidden("sem permissão para alterar esta partida")
		}
		if p.Terminal() {
			return apperrors.InvalidState("partida %s não pode ser alterada", p.Status)
		}
		if dados.Tipo != nil {
			if err := s.validarTipoOrganizador(atual, *dados.Tipo); err != nil {
				return err
			}
		}
		if dados.DataPartida != nil && !dados.DataPartida.After(s.Now()) {
			return apperrors.Validation("data da partida deve ser no futuro")
		}

		campos := map[string]interface{}{}
		if dados.Titulo != nil {
			campos["titulo"] = *dados.Titulo
		}
		if dados.Descricao != nil {
			campos["descricao"] = *dados.Descricao
		}
		if dados.Tipo != nil {
			campos["tipo"] = *dados.Tipo
		}
		if dados.Categoria != nil {
			campos["categoria"] = *dados.Categoria
		}
		if dados.DataPartida != nil {
			campos["data_partida"] = *dados.DataPartida
		}
		if dados.DataFim != nil {
			campos["data_fim"] = *dados.DataFim
		}
		if dados.DuracaoEstimada != nil {
			campos["duracao_estimada"] = *dados.DuracaoEstimada
		}
		if dados.Local != nil {
			campos["local"] = *dados.Local
		}
		if dados.MaxParticipantes != nil {
			campos["max_participantes"] = *dados.MaxParticipantes
		}
		if len(campos) > 0 {
			if err := tx.Model(p).Updates(campos).Error; err != nil {
				return err
			}
		}
		out = p
		return nil
	})
	return out, err
}

// Obter loads a match with organizer and roster, refreshing the lazy
// status before it is observed.
func (s *Service) Obter(id uint) (*models.Partida, error) {
	var out *models.Partida
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		p, err := carregar(tx, id)
		if err != nil {
			return err
		}
		if err := atualizarStatus(tx, p, s.Now()); err != nil {
			return err
		}
		if err := tx.First(&p.Organizador, p.OrganizadorID).Error; err != nil {
			return err
		}
		out = p
		return nil
	})
	return out, err
}

// ListarAtivas lists active matches, optionally filtered by category or
// restricted to what usuario's tier may join.
func (s *Service) ListarAtivas(cat models.CategoriaPartida, usuario *models.Usuario, offset, limit int) ([]models.Partida, error) {
	q := s.DB.Preload("Organizador").
		Where("status = ?", models.PartidaAtiva).
		Order("data_partida desc")
	if cat != "" {
		q = q.Where("categoria = ?", cat)
	}
	if usuario != nil {
		q = q.Where("categoria IN (?)", categoria.CategoriasPermitidas(usuario.Tipo))
	}
	var partidas []models.Partida
	err := q.Offset(offset).Limit(limit).Find(&partidas).Error
	return partidas, err
}

// ListarPorTipo lists active matches of the given type.
func (s *Service) ListarPorTipo(tipo models.TipoPartida, offset, limit int) ([]models.Partida, error) {
	var partidas []models.Partida
	err := s.DB.Preload("Organizador").
		Where("tipo = ? AND status = ?", tipo, models.PartidaAtiva).
		Order("data_partida").
		Offset(offset).Limit(limit).
		Find(&partidas).Error
	return partidas, err
}

// ListarProximas lists upcoming active matches.
func (s *Service) ListarProximas(offset, limit int) ([]models.Partida, error) {
	var partidas []models.Partida
	err := s.DB.Preload("Organizador").
		Where("status = ? AND data_partida >= ?", models.PartidaAtiva, s.Now()).
		Order("data_partida").
		Offset(offset).Limit(limit).
		Find(&partidas).Error
	return partidas, err
}

// ListarMinhas lists matches organized by the user.
func (s *Service) ListarMinhas(usuarioID uint, offset, limit int) ([]models.Partida, error) {
	var partidas []models.Partida
	err := s.DB.Preload("Participantes").
		Where("organizador_id = ?", usuarioID).
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&partidas).Error
	return partidas, err
}

// ListarParticipando lists matches the user joined.
func (s *Service) ListarParticipando(usuarioID uint, offset, limit int) ([]models.Partida, error) {
	var partidas []models.Partida
	err := s.DB.Preload("Organizador").
		Joins("JOIN partida_participantes pp ON pp.partida_id = partidas.id").
		Where("pp.usuario_id = ?", usuarioID).
		Order("data_partida desc").
		Offset(offset).Limit(limit).
		Find(&partidas).Error
	return partidas, err
}

// Ativar puts a match back on the public listing. Organizer only.
func (s *Service) Ativar(id uint, atual *models.Usuario) (*models.Partida, error) {
	return s.alternarStatus(id, atual, models.PartidaAtiva, false)
}

// Desativar hides a match from the listing. Organizer or profissional.
func (s *Service) Desativar(id uint, atual *models.Usuario) (*models.Partida, error) {
	return s.alternarStatus(id, atual, models.PartidaInativa, true)
}

func (s *Service) alternarStatus(id uint, atual *models.Usuario, novo models.StatusPartida, admin bool) (*models.Partida, error) {
	var out *models.Partida
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		p, err := carregar(tx, id)
		if err != nil {
			return err
		}
		autorizado := p.OrganizadorID == atual.ID || (admin && atual.Tipo == models.TipoProfissional)
		if !autorizado {
			return apperrors.Forbidden("apenas o organizador pode alterar o status da partida")
		}
		if p.Terminal() {
			return apperrors.InvalidState("partida %s não pode ser alterada", p.Status)
		}
		p.Status = novo
		if err := tx.Model(p).Update("status", novo).Error; err != nil {
			return err
		}
		out = p
		return nil
	})
	return out, err
}

// Participar adds usuario to a public match. Direct joins arrive
// pre-confirmed, so a full roster can flip straight to marcada.
func (s *Service) Participar(id uint, usuario *models.Usuario) (*models.Partida, error) {
	if err := s.refrescarStatus(id); err != nil {
		return nil, err
	}
	var out *models.Partida
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		p, err := carregar(tx, id)
		if err != nil {
			return err
		}
		agora := s.Now()
		if err := atualizarStatus(tx, p, agora); err != nil {
			return err
		}
		if !p.Publica {
			return apperrors.InvalidState("partidas privadas exigem convite para participar")
		}
		switch p.Status {
		case models.PartidaFinalizada, models.PartidaCancelada, models.PartidaEmAndamento:
			return apperrors.InvalidState("não é possível participar de uma partida %s", p.Status)
		}
		if !categoria.PodeParticipar(usuario.Tipo, p.Categoria) {
			return apperrors.Eligibility("usuário %s não pode participar desta partida. Categoria: %s. Nível do usuário: %s",
				usuario.Nome, categoria.Descricao(p.Categoria), usuario.Tipo)
		}
		if p.Lotada() {
			return apperrors.Capacity("a partida já atingiu o número máximo de participantes")
		}
		for _, part := range p.Participantes {
			if part.UsuarioID == usuario.ID {
				return apperrors.Duplicate("o usuário já está participando desta partida")
			}
		}

		edge := models.PartidaParticipante{
			PartidaID:       p.ID,
			UsuarioID:       usuario.ID,
			Confirmado:      true,
			DataConfirmacao: &agora,
			DataEntrada:     agora,
		}
		if err := tx.Create(&edge).Error; err != nil {
			return err
		}
		p.Participantes = append(p.Participantes, edge)

		if err := atualizarStatus(tx, p, agora); err != nil {
			return err
		}
		out = p
		return nil
	})
	return out, err
}

// Sair removes usuario from the roster.
func (s *Service) Sair(id uint, usuario *models.Usuario) (*models.Partida, error) {
	return s.removerDaPartida(id, usuario.ID, func(p *models.Partida) error { return nil })
}

// RemoverParticipante lets the organizer kick a player. The organizer
// leaves through Sair like everyone else.
func (s *Service) RemoverParticipante(id, alvoID uint, atual *models.Usuario) (*models.Partida, error) {
	return s.removerDaPartida(id, alvoID, func(p *models.Partida) error {
		if p.OrganizadorID != atual.ID {
			return apperrors.Forbidden("apenas o organizador pode remover participantes")
		}
		if alvoID == atual.ID {
			return apperrors.InvalidState("para sair da própria partida use a saída normal")
		}
		return nil
	})
}

func (s *Service) removerDaPartida(id, usuarioID uint, autorizar func(*models.Partida) error) (*models.Partida, error) {
	if err := s.refrescarStatus(id); err != nil {
		return nil, err
	}
	var out *models.Partida
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		p, err := carregar(tx, id)
		if err != nil {
			return err
		}
		agora := s.Now()
		if err := atualizarStatus(tx, p, agora); err != nil {
			return err
		}
		if err := autorizar(p); err != nil {
			return err
		}
		if p.Terminal() {
			return apperrors.InvalidState("partida %s não pode ter participantes removidos", p.Status)
		}

		idx := -1
		for i, part := range p.Participantes {
			if part.UsuarioID == usuarioID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return apperrors.NotFound("usuário não está participando desta partida")
		}

		if err := tx.Where("partida_id = ? AND usuario_id = ?", p.ID, usuarioID).
			Delete(&models.PartidaParticipante{}).Error; err != nil {
			return err
		}
		p.Participantes = append(p.Participantes[:idx], p.Participantes[idx+1:]...)

		// A marcada match loses its full confirmation when someone leaves
		if err := atualizarStatus(tx, p, agora); err != nil {
			return err
		}
		out = p
		return nil
	})
	return out, err
}

// ConfirmarPresenca marks the participant's attendance.
func (s *Service) ConfirmarPresenca(id uint, usuario *models.Usuario) (*models.Partida, error) {
	return s.alternarConfirmacao(id, usuario, true)
}

// CancelarConfirmacao withdraws a confirmation given earlier.
func (s *Service) CancelarConfirmacao(id uint, usuario *models.Usuario) (*models.Partida, error) {
	return s.alternarConfirmacao(id, usuario, false)
}

func (s *Service) alternarConfirmacao(id uint, usuario *models.Usuario, confirmado bool) (*models.Partida, error) {
	if err := s.refrescarStatus(id); err != nil {
		return nil, err
	}
	var out *models.Partida
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		p, err := carregar(tx, id)
		if err != nil {
			return err
		}
		agora := s.Now()
		if p.Terminal() {
			return apperrors.InvalidState("partida %s não aceita alterações de confirmação", p.Status)
		}
		if !agora.Before(p.DataPartida) {
			return apperrors.InvalidState("a partida já começou, confirmações estão encerradas")
		}

		idx := -1
		for i, part := range p.Participantes {
			if part.UsuarioID == usuario.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return apperrors.NotFound("usuário não está participando desta partida")
		}

		campos := map[string]interface{}{"confirmado": confirmado}
		if confirmado {
			campos["data_confirmacao"] = agora
		} else {
			campos["data_confirmacao"] = nil
		}
		if err := tx.Model(&models.PartidaParticipante{}).
			Where("partida_id = ? AND usuario_id = ?", p.ID, usuario.ID).
			Updates(campos).Error; err != nil {
			return err
		}
		p.Participantes[idx].Confirmado = confirmado
		if confirmado {
			p.Participantes[idx].DataConfirmacao = &agora
		} else {
			p.Participantes[idx].DataConfirmacao = nil
		}

		if err := atualizarStatus(tx, p, agora); err != nil {
			return err
		}
		out = p
		return nil
	})
	return out, err
}

// premiacao is one entry of the finalization summary stored on the match.
type premiacao struct {
	UsuarioID uint   `json:"usuario_id"`
	Equipe    string `json:"equipe"`
	Venceu    bool   `json:"venceu"`
	Pontos    int    `json:"pontos"`
}

// Finalizar closes a match with its score and propagates stats to every
// participant inside the same transaction as the score write.
//
// Team split is positional: the first half of the roster in join order is
// team A. Finalizing always terminates the match, tie or not; on a tie
// everyone receives the losing share and no win or loss is recorded.
func (s *Service) Finalizar(id uint, pontosA, pontosB int, atual *models.Usuario) (*models.Partida, error) {
	if pontosA < 0 || pontosB < 0 {
		return nil, apperrors.Validation("pontuações não podem ser negativas")
	}
	var out *models.Partida
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		p, err := carregar(tx, id)
		if err != nil {
			return err
		}
		if p.OrganizadorID != atual.ID {
			return apperrors.Forbidden("apenas o organizador pode finalizar a partida")
		}
		if p.Terminal() {
			return apperrors.InvalidState("partida %s não pode ser finalizada novamente", p.Status)
		}

		empate := pontosA == pontosB
		venceuA := pontosA > pontosB
		meio := len(p.Participantes) / 2

		dobro := 1
		if p.Tipo == models.PartidaCompetitiva {
			dobro = 2 // ranked matches double the points
		}

		resumo := make([]premiacao, 0, len(p.Participantes))
		for i, part := range p.Participantes {
			equipeA := i < meio
			venceu := !empate && ((equipeA && venceuA) || (!equipeA && !venceuA))

			pontos := PontosDerrota * dobro
			if venceu {
				pontos = PontosVitoria * dobro
			}

			incs := map[string]interface{}{
				"partidas_jogadas": gorm.Expr("partidas_jogadas + 1"),
				"pontuacao_total":  gorm.Expr("pontuacao_total + ?", pontos),
			}
			if !empate {
				if venceu {
					incs["vitorias"] = gorm.Expr("vitorias + 1")
				} else {
					incs["derrotas"] = gorm.Expr("derrotas + 1")
				}
			}
			if err := tx.Model(&models.Usuario{}).
				Where("id = ?", part.UsuarioID).
				Updates(incs).Error; err != nil {
				return err
			}

			equipe := "B"
			if equipeA {
				equipe = "A"
			}
			resumo = append(resumo, premiacao{
				UsuarioID: part.UsuarioID,
				Equipe:    equipe,
				Venceu:    venceu,
				Pontos:    pontos,
			})
		}

		resumoJSON, err := json.Marshal(map[string]interface{}{
			"pontos_a":      pontosA,
			"pontos_b":      pontosB,
			"empate":        empate,
			"premiacoes":    resumo,
			"finalizada_em": s.Now(),
		})
		if err != nil {
			return err
		}

		p.PontuacaoEquipeA = pontosA
		p.PontuacaoEquipeB = pontosB
		p.Status = models.PartidaFinalizada
		p.ResumoFinalizacao = datatypes.JSON(resumoJSON)
		if err := tx.Model(p).Updates(map[string]interface{}{
			"pontuacao_equipe_a": pontosA,
			"pontuacao_equipe_b": pontosB,
			"status":             models.PartidaFinalizada,
			"resumo_finalizacao": datatypes.JSON(resumoJSON),
		}).Error; err != nil {
			return err
		}
		out = p
		return nil
	})
	return out, err
}

// validarTipoOrganizador keeps competitive matches restricted to
// intermediario tiers and above.
func (s *Service) validarTipoOrganizador(organizador *models.Usuario, tipo models.TipoPartida) error {
	if tipo != models.PartidaCompetitiva {
		return nil
	}
	switch organizador.Tipo {
	case models.TipoIntermediario, models.TipoAvancado, models.TipoProfissional:
		return nil
	}
	return apperrors.Forbidden("apenas usuários intermediários ou acima podem organizar partidas competitivas")
}
