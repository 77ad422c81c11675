package partida

import (
	"testing"
	"time"

	models "Quadra/models/postgres"

	"github.com/stretchr/testify/assert"
)

func partidaEm(inicio time.Time, status models.StatusPartida) *models.Partida {
	return &models.Partida{
		Titulo:           "Teste",
		Status:           status,
		DataPartida:      inicio,
		DuracaoEstimada:  120,
		MaxParticipantes: 12,
	}
}

func TestRefreshEstadoTerminalNaoMuda(t *testing.T) {
	agora := time.Now()
	for _, status := range []models.StatusPartida{models.PartidaFinalizada, models.PartidaCancelada} {
		p := partidaEm(agora.Add(-3*time.Hour), status)
		novo, mudou := Refresh(p, agora)
		assert.Equal(t, status, novo)
		assert.False(t, mudou)
	}
}

func TestRefreshFinalizadaAposFim(t *testing.T) {
	agora := time.Now()
	p := partidaEm(agora.Add(-3*time.Hour), models.PartidaAtiva)

	novo, mudou := Refresh(p, agora)
	assert.Equal(t, models.PartidaFinalizada, novo)
	assert.True(t, mudou)
}

func TestRefreshDataFimExplicitaPrevalece(t *testing.T) {
	agora := time.Now()
	fim := agora.Add(-time.Minute)
	p := partidaEm(agora.Add(-10*time.Hour), models.PartidaEmAndamento)
	p.DataFim = &fim

	novo, mudou := Refresh(p, agora)
	assert.Equal(t, models.PartidaFinalizada, novo)
	assert.True(t, mudou)
}

func TestRefreshEmAndamentoDentroDaJanela(t *testing.T) {
	agora := time.Now()
	p := partidaEm(agora.Add(-time.Hour), models.PartidaAtiva)

	novo, mudou := Refresh(p, agora)
	assert.Equal(t, models.PartidaEmAndamento, novo)
	assert.True(t, mudou)

	// No churn once it already moved
	p.Status = models.PartidaEmAndamento
	novo, mudou = Refresh(p, agora)
	assert.Equal(t, models.PartidaEmAndamento, novo)
	assert.False(t, mudou)
}

func TestRefreshInicioExatoContaComoEmAndamento(t *testing.T) {
	agora := time.Now()
	p := partidaEm(agora, models.PartidaAtiva)

	novo, _ := Refresh(p, agora)
	assert.Equal(t, models.PartidaEmAndamento, novo)
}

func TestRefreshMarcadaQuandoTodosConfirmam(t *testing.T) {
	agora := time.Now()
	p := partidaEm(agora.Add(2*time.Hour), models.PartidaAtiva)
	p.Participantes = []models.PartidaParticipante{
		{UsuarioID: 1, Confirmado: true},
		{UsuarioID: 2, Confirmado: true},
	}

	novo, mudou := Refresh(p, agora)
	assert.Equal(t, models.PartidaMarcada, novo)
	assert.True(t, mudou)
}

func TestRefreshSemParticipantesNaoMarca(t *testing.T) {
	agora := time.Now()
	p := partidaEm(agora.Add(2*time.Hour), models.PartidaAtiva)

	novo, mudou := Refresh(p, agora)
	assert.Equal(t, models.PartidaAtiva, novo)
	assert.False(t, mudou)
}

func TestRefreshMarcadaVoltaParaAtiva(t *testing.T) {
	agora := time.Now()
	p := partidaEm(agora.Add(2*time.Hour), models.PartidaMarcada)
	p.Participantes = []models.PartidaParticipante{
		{UsuarioID: 1, Confirmado: true},
		{UsuarioID: 2, Confirmado: false},
	}

	novo, mudou := Refresh(p, agora)
	assert.Equal(t, models.PartidaAtiva, novo)
	assert.True(t, mudou)
}

func TestRefreshIdempotente(t *testing.T) {
	agora := time.Now()
	p := partidaEm(agora.Add(2*time.Hour), models.PartidaAtiva)
	p.Participantes = []models.PartidaParticipante{{UsuarioID: 1, Confirmado: true}}

	novo, _ := Refresh(p, agora)
	p.Status = novo
	outra, mudou := Refresh(p, agora)
	assert.Equal(t, novo, outra)
	assert.False(t, mudou)
}
