package convite

import (
	"fmt"
	"testing"
	"time"

	"Quadra/apperrors"
	models "Quadra/models/postgres"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func abrirBanco(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Usuario{},
		&models.Partida{},
		&models.PartidaParticipante{},
		&models.Convite{},
	))
	return db
}

func criarUsuario(t *testing.T, db *gorm.DB, nome string, tipo models.TipoUsuario) *models.Usuario {
	t.Helper()
	u := &models.Usuario{
		Nome:      nome,
		Email:     fmt.Sprintf("%s@quadra.test", nome),
		SenhaHash: "x",
		Tipo:      tipo,
		Ativo:     true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func criarPartidaPrivada(t *testing.T, db *gorm.DB, org *models.Usuario, extra func(*models.Partida)) *models.Partida {
	t.Helper()
	p := &models.Partida{
		Titulo:           "Privada",
		Status:           models.PartidaAtiva,
		Categoria:        models.CategoriaLivre,
		Tipo:             models.PartidaAmistosa,
		DataPartida:      time.Now().Add(24 * time.Hour),
		DuracaoEstimada:  120,
		MaxParticipantes: 12,
		Publica:          false,
		OrganizadorID:    org.ID,
	}
	if extra != nil {
		extra(p)
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func servicoFixo(db *gorm.DB, agora time.Time) *Service {
	s := NewService(db)
	s.Now = func() time.Time { return agora }
	return s
}

func TestEnviarConvitePendente(t *testing.T) {
	db := abrirBanco(t)
	agora := time.Now()
	s := servicoFixo(db, agora)
	org := criarUsuario(t, db, "org", models.TipoIniciante)
	convidado := criarUsuario(t, db, "convidado", models.TipoIniciante)
	p := criarPartidaPrivada(t, db, org, nil)

	cv, err := s.Enviar(EnviarConvite{
		ConvidadoID: convidado.ID,
		PartidaID:   p.ID,
		Mensagem:    "Bora jogar?",
	}, org)
	require.NoError(t, err)

	assert.Equal(t, models.ConvitePendente, cv.Status)
	require.NotNil(t, cv.DataExpiracao)
	assert.WithinDuration(t, agora.Add(ValidadePadrao), *cv.DataExpiracao, time.Second)
}

func TestEnviarConviteValidacoes(t *testing.T) {
	db := abrirBanco(t)
	agora := time.Now()
	s := servicoFixo(db, agora)
	org := criarUsuario(t, db, "org", models.TipoIniciante)
	convidado := criarUsuario(t, db, "convidado", models.TipoIniciante)
	outro := criarUsuario(t, db, "outro", models.TipoIniciante)
	p := criarPartidaPrivada(t, db, org, nil)

	_, err := s.Enviar(EnviarConvite{ConvidadoID: convidado.ID, PartidaID: 999}, org)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	_, err = s.Enviar(EnviarConvite{ConvidadoID: convidado.ID, PartidaID: p.ID}, outro)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))

	_, err = s.Enviar(EnviarConvite{ConvidadoID: org.ID, PartidaID: p.ID}, org)
	assert.Equal(t, apperrors.KindDuplicate, apperrors.KindOf(err))

	_, err = s.Enviar(EnviarConvite{ConvidadoID: 999, PartidaID: p.ID}, org)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestEnviarConvitePartidaPublica(t *testing.T) {
	db := abrirBanco(t)
	s := servicoFixo(db, time.Now())
	org := criarUsuario(t, db, "org", models.TipoIniciante)
	convidado := criarUsuario(t, db, "convidado", models.TipoIniciante)
	p := criarPartidaPrivada(t, db, org, func(p *models.Partida) { p.Publica = true })

	_, err := s.Enviar(EnviarConvite{ConvidadoID: convidado.ID, PartidaID: p.ID}, org)
	assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))
}

func TestEnviarConviteCategoriaRestrita(t *testing.T) {
	db := abrirBanco(t)
	s := servicoFixo(db, time.Now())
	org := criarUsuario(t, db, "org", models.TipoProfissional)
	novato := criarUsuario(t, db, "novato", models.TipoIniciante)
	p := criarPartidaPrivada(t, db, org, func(p *models.Partida) {
		p.Categoria = models.CategoriaProfissional
	})

	_, err := s.Enviar(EnviarConvite{ConvidadoID: novato.ID, PartidaID: p.ID}, org)
	assert.Equal(t, apperrors.KindEligibility, apperrors.KindOf(err))
}

func TestEnviarConviteDuplicadoAtivo(t *testing.T) {
	db := abrirBanco(t)
	s := servicoFixo(db, time.Now())
	org := criarUsuario(t, db, "org", models.TipoIniciante)
	convidado := criarUsuario(t, db, "convidado", models.TipoIniciante)
	p := criarPartidaPrivada(t, db, org, nil)

	_, err := s.Enviar(EnviarConvite{ConvidadoID: convidado.ID, PartidaID: p.ID}, org)
	require.NoError(t, err)

	_, err = s.Enviar(EnviarConvite{ConvidadoID: convidado.ID, PartidaID: p.ID}, org)
	assert.Equal(t, apperrors.KindDuplicate, apperrors.KindOf(err))
}

func TestEnviarConviteAposRecusaPermitido(t *testing.T) {
	db := abrirBanco(t)
	s := servicoFixo(db, time.Now())
	org := criarUsuario(t, db, "org", models.TipoIniciante)
	convidado := criarUsuario(t, db, "convidado", models.TipoIniciante)
	p := criarPartidaPrivada(t, db, org, nil)

	cv, err := s.Enviar(EnviarConvite{ConvidadoID: convidado.ID, PartidaID: p.ID}, org)
	require.NoError(t, err)
	_, err = s.Recusar(cv.ID, convidado)
	require.NoError(t, err)

	// A refused invitation no longer blocks a new one
	_, err = s.Enviar(EnviarConvite{ConvidadoID: convidado.ID, PartidaID: p.ID}, org)
	assert.NoError(t, err)
}

func TestAceitarConviteEntraNaPartida(t *testing.T) {
	db := abrirBanco(t)
	agora := time.Now()
	s := servicoFixo(db, agora)
	org := criarUsuario(t, db, "org", models.TipoIniciante)
	convidado := criarUsuario(t, db, "convidado", models.TipoIniciante)
	p := criarPartidaPrivada(t, db, org, nil)

	cv, err := s.Enviar(EnviarConvite{ConvidadoID: convidado.ID, PartidaID: p.ID}, org)
	require.NoError(t, err)

	out, err := s.Aceitar(cv.ID, convidado)
	require.NoError(t, err)
	assert.Equal(t, models.ConviteAceito, out.Status)

	var edge models.PartidaParticipante
	require.NoError(t, db.Where("partida_id = ? AND usuario_id = ?", p.ID, convidado.ID).
		First(&edge).Error)
	// Invited players still owe a confirmation, unlike direct joins
	assert.False(t, edge.Confirmado)
	require.NotNil(t, edge.ConvidadoPorID)
	assert.Equal(t, org.ID, *edge.ConvidadoPorID)
}

func TestAceitarConviteDeOutroUsuario(t *testing.T) {
	db := abrirBanco(t)
	s := servicoFixo(db, time.Now())
	org := criarUsuario(t, db, "org", models.TipoIniciante)
	convidado := criarUsuario(t, db, "convidado", models.TipoIniciante)
	intruso := criarUsuario(t, db, "intruso", models.TipoIniciante)
	p := criarPartidaPrivada(t, db, org, nil)

	cv, err := s.Enviar(EnviarConvite{ConvidadoID: convidado.ID, PartidaID: p.ID}, org)
	require.NoError(t, err)

	_, err = s.Aceitar(cv.ID, intruso)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestAceitarConvitePartidaLotadaReverte(t *testing.T) {
	db := abrirBanco(t)
	agora := time.Now()
	s := servicoFixo(db, agora)
	org := criarUsuario(t, db, "org", models.TipoIniciante)
	convidado := criarUsuario(t, db, "convidado", models.TipoIniciante)
	ocupante := criarUsuario(t, db, "ocupante", models.TipoIniciante)
	p := criarPartidaPrivada(t, db, org, func(p *models.Partida) {
		p.MaxParticipantes = 1
	})

	cv, err := s.Enviar(EnviarConvite{ConvidadoID: convidado.ID, PartidaID: p.ID}, org)
	require.NoError(t, err)

	// Someone else takes the last seat before the acceptance lands
	require.NoError(t, db.Create(&models.PartidaParticipante{
		PartidaID:   p.ID,
		UsuarioID:   ocupante.ID,
		DataEntrada: agora,
	}).Error)

	_, err = s.Aceitar(cv.ID, convidado)
	assert.Equal(t, apperrors.KindCapacity, apperrors.KindOf(err))

	// The invitation survives as pendente and no roster edge was created
	var salvo models.Convite
	require.NoError(t, db.First(&salvo, cv.ID).Error)
	assert.Equal(t, models.ConvitePendente, salvo.Status)

	var edges int64
	db.Model(&models.PartidaParticipante{}).
		Where("partida_id = ? AND usuario_id = ?", p.ID, convidado.ID).
		Count(&edges)
	assert.Zero(t, edges)
}

func TestAceitarConviteDesmarcaPartida(t *testing.T) {
	db := abrirBanco(t)
	agora := time.Now()
	s := servicoFixo(db, agora)
	org := criarUsuario(t, db, "org", models.TipoIniciante)
	titular := criarUsuario(t, db, "titular", models.TipoIniciante)
	convidado := criarUsuario(t, db, "convidado", models.TipoIniciante)
	p := criarPartidaPrivada(t, db, org, nil)

	// Fully confirmed roster, the match already flipped to marcada
	require.NoError(t, db.Create(&models.PartidaParticipante{
		PartidaID:       p.ID,
		UsuarioID:       titular.ID,
		Confirmado:      true,
		DataConfirmacao: &agora,
		DataEntrada:     agora,
	}).Error)
	require.NoError(t, db.Model(p).Update("status", models.PartidaMarcada).Error)

	cv, err := s.Enviar(EnviarConvite{ConvidadoID: convidado.ID, PartidaID: p.ID}, org)
	require.NoError(t, err)
	_, err = s.Aceitar(cv.ID, convidado)
	require.NoError(t, err)

	// The unconfirmed seat pulls the match back to ativa immediately,
	// not on the next read
	var salva models.Partida
	require.NoError(t, db.First(&salva, p.ID).Error)
	assert.Equal(t, models.PartidaAtiva, salva.Status)
}

func TestRecusarConvite(t *testing.T) {
	db := abrirBanco(t)
	s := servicoFixo(db, time.Now())
	org := criarUsuario(t, db, "org", models.TipoIniciante)
	convidado := criarUsuario(t, db, "convidado", models.TipoIniciante)
	p := criarPartidaPrivada(t, db, org, nil)

	cv, err := s.Enviar(EnviarConvite{ConvidadoID: convidado.ID, PartidaID: p.ID}, org)
	require.NoError(t, err)

	out, err := s.Recusar(cv.ID, convidado)
	require.NoError(t, err)
	assert.Equal(t, models.ConviteRecusado, out.Status)

	// A settled invitation cannot be answered again
	_, err = s.Aceitar(cv.ID, convidado)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestCancelarConvite(t *testing.T) {
	db := abrirBanco(t)
	s := servicoFixo(db, time.Now())
	org := criarUsuario(t, db, "org", models.TipoIniciante)
	convidado := criarUsuario(t, db, "convidado", models.TipoIniciante)
	p := criarPartidaPrivada(t, db, org, nil)

	cv, err := s.Enviar(EnviarConvite{ConvidadoID: convidado.ID, PartidaID: p.ID}, org)
	require.NoError(t, err)

	err = s.Cancelar(cv.ID, convidado)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))

	require.NoError(t, s.Cancelar(cv.ID, org))

	var restantes int64
	db.Model(&models.Convite{}).Where("id = ?", cv.ID).Count(&restantes)
	assert.Zero(t, restantes)
}

func TestCancelarConviteJaRespondido(t *testing.T) {
	db := abrirBanco(t)
	s := servicoFixo(db, time.Now())
	org := criarUsuario(t, db, "org", models.TipoIniciante)
	convidado := criarUsuario(t, db, "convidado", models.TipoIniciante)
	p := criarPartidaPrivada(t, db, org, nil)

	cv, err := s.Enviar(EnviarConvite{ConvidadoID: convidado.ID, PartidaID: p.ID}, org)
	require.NoError(t, err)
	_, err = s.Aceitar(cv.ID, convidado)
	require.NoError(t, err)

	err = s.Cancelar(cv.ID, org)
	assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))
}

func TestExpirarAntigos(t *testing.T) {
	db := abrirBanco(t)
	agora := time.Now()
	s := servicoFixo(db, agora)
	org := criarUsuario(t, db, "org", models.TipoIniciante)
	a := criarUsuario(t, db, "a", models.TipoIniciante)
	b := criarUsuario(t, db, "b", models.TipoIniciante)
	p := criarPartidaPrivada(t, db, org, nil)

	vencido := agora.Add(-time.Hour)
	_, err := s.Enviar(EnviarConvite{ConvidadoID: a.ID, PartidaID: p.ID, DataExpiracao: &vencido}, org)
	require.NoError(t, err)
	_, err = s.Enviar(EnviarConvite{ConvidadoID: b.ID, PartidaID: p.ID}, org)
	require.NoError(t, err)

	movidos, err := s.ExpirarAntigos()
	require.NoError(t, err)
	assert.EqualValues(t, 1, movidos)

	pendentes, err := s.Pendentes(b.ID)
	require.NoError(t, err)
	assert.Len(t, pendentes, 1)

	expirados, err := s.Recebidos(a.ID, 0, 100)
	require.NoError(t, err)
	require.Len(t, expirados, 1)
	assert.Equal(t, models.ConviteExpirado, expirados[0].Status)
}

func TestVisibilidadeDosConvites(t *testing.T) {
	db := abrirBanco(t)
	s := servicoFixo(db, time.Now())
	org := criarUsuario(t, db, "org", models.TipoIniciante)
	convidado := criarUsuario(t, db, "convidado", models.TipoIniciante)
	intruso := criarUsuario(t, db, "intruso", models.TipoIniciante)
	p := criarPartidaPrivada(t, db, org, nil)

	cv, err := s.Enviar(EnviarConvite{ConvidadoID: convidado.ID, PartidaID: p.ID}, org)
	require.NoError(t, err)

	_, err = s.ObterPorID(cv.ID, org)
	assert.NoError(t, err)
	_, err = s.ObterPorID(cv.ID, convidado)
	assert.NoError(t, err)
	_, err = s.ObterPorID(cv.ID, intruso)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))

	_, err = s.DaPartida(p.ID, intruso)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))

	daPartida, err := s.DaPartida(p.ID, org)
	require.NoError(t, err)
	assert.Len(t, daPartida, 1)

	enviados, err := s.Enviados(org.ID, 0, 100)
	require.NoError(t, err)
	assert.Len(t, enviados, 1)
}
