package controllers

import (
	"net/http"
	"strconv"
	"time"

	"Quadra/middleware"
	models "Quadra/models/postgres"
	"Quadra/services/partida"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type criarPartidaRequest struct {
	Titulo           string                  `json:"titulo" binding:"required"`
	Descricao        string                  `json:"descricao"`
	Tipo             models.TipoPartida      `json:"tipo"`
	Categoria        models.CategoriaPartida `json:"categoria"`
	DataPartida      time.Time               `json:"data_partida" binding:"required"`
	DataFim          *time.Time              `json:"data_fim"`
	DuracaoEstimada  int                     `json:"duracao_estimada"`
	Local            string                  `json:"local"`
	MaxParticipantes int                     `json:"max_participantes"`
	Publica          *bool                   `json:"publica"`
}

// @Summary Create a match
// @Description Creates a new match owned by the authenticated user
// @Tags partidas
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param dados body criarPartidaRequest true "Match data"
// @Success 201 {object} object{id=integer,titulo=string,status=string}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /partidas [post]
// @Security ApiKeyAuth
func CriarPartida(db *gorm.DB) gin.HandlerFunc {
	svc := partida.NewService(db)
	return func(c *gin.Context) {
		var req criarPartidaRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dados da partida inválidos"})
			return
		}

		publica := true
		if req.Publica != nil {
			publica = *req.Publica
		}

		p := models.Partida{
			Titulo:           req.Titulo,
			Descricao:        req.Descricao,
			Tipo:             req.Tipo,
			Categoria:        req.Categoria,
			DataPartida:      req.DataPartida,
			DataFim:          req.DataFim,
			DuracaoEstimada:  req.DuracaoEstimada,
			Local:            req.Local,
			MaxParticipantes: req.MaxParticipantes,
			Publica:          publica,
		}

		criada, err := svc.Criar(&p, middleware.CurrentUser(c))
		if err != nil {
			respondErro(c, err)
			return
		}
		c.JSON(http.StatusCreated, criada)
	}
}

// @Summary List active matches
// @Description Lists active matches, optionally filtered by category or
// restricted to what the user's tier may join
// @Tags partidas
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param categoria query string false "Category filter"
// @Param apenas_acessiveis query bool false "Only matches the user can join"
// @Success 200 {array} object{id=integer,titulo=string}
// @Failure 500 {object} object{error=string}
// @Router /partidas [get]
// @Security ApiKeyAuth
func ListarPartidas(db *gorm.DB) gin.HandlerFunc {
	svc := partida.NewService(db)
	return func(c *gin.Context) {
		offset, limit := paginacao(c)
		cat := models.CategoriaPartida(c.Query("categoria"))

		var usuario *models.Usuario
		if acessiveis, _ := strconv.ParseBool(c.Query("apenas_acessiveis")); acessiveis {
			usuario = middleware.CurrentUser(c)
		}

		partidas, err := svc.ListarAtivas(cat, usuario, offset, limit)
		if err != nil {
			respondErro(c, err)
			return
		}
		c.JSON(http.StatusOK, partidas)
	}
}

// @Summary List matches by type
// @Tags partidas
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param tipo path string true "amistosa or competitiva"
// @Success 200 {array} object{id=integer,titulo=string}
// @Router /partidas/tipo/{tipo} [get]
// @Security ApiKeyAuth
func ListarPartidasPorTipo(db *gorm.DB) gin.HandlerFunc {
	svc := partida.NewService(db)
	return func(c *gin.Context) {
		offset, limit := paginacao(c)
		partidas, err := svc.ListarPorTipo(models.TipoPartida(c.Param("tipo")), offset, limit)
		if err != nil {
			respondErro(c, err)
			return
		}
		c.JSON(http.StatusOK, partidas)
	}
}

// @Summary List upcoming matches
// @Tags partidas
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{id=integer,titulo=string}
// @Router /partidas/proximas [get]
// @Security ApiKeyAuth
func ListarProximasPartidas(db *gorm.DB) gin.HandlerFunc {
	svc := partida.NewService(db)
	return func(c *gin.Context) {
		offset, limit := paginacao(c)
		partidas, err := svc.ListarProximas(offset, limit)
		if err != nil {
			respondErro(c, err)
			return
		}
		c.JSON(http.StatusOK, partidas)
	}
}

// @Summary List matches organized by the user
// @Tags partidas
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{id=integer,titulo=string}
// @Router /partidas/minhas [get]
// @Security ApiKeyAuth
func ListarMinhasPartidas(db *gorm.DB) gin.HandlerFunc {
	svc := partida.NewService(db)
	return func(c *gin.Context) {
		offset, limit := paginacao(c)
		partidas, err := svc.ListarMinhas(middleware.CurrentUser(c).ID, offset, limit)
		if err != nil {
			respondErro(c, err)
			return
		}
		c.JSON(http.StatusOK, partidas)
	}
}

// @Summary List matches the user joined
// @Tags partidas
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{id=integer,titulo=string}
// @Router /partidas/participando [get]
// @Security ApiKeyAuth
func ListarPartidasParticipando(db *gorm.DB) gin.HandlerFunc {
	svc := partida.NewService(db)
	return func(c *gin.Context) {
		offset, limit := paginacao(c)
		partidas, err := svc.ListarParticipando(middleware.CurrentUser(c).ID, offset, limit)
		if err != nil {
			respondErro(c, err)
			return
		}
		c.JSON(http.StatusOK, partidas)
	}
}

// @Summary Get a match
// @Description Returns the match with organizer and roster. Reading
// refreshes the lazy lifecycle status first.
// @Tags partidas
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path int true "Match id"
// @Success 200 {object} object{id=integer,titulo=string,status=string}
// @Failure 404 {object} object{error=string}
// @Router /partidas/{id} [get]
// @Security ApiKeyAuth
func ObterPartida(db *gorm.DB) gin.HandlerFunc {
	svc := partida.NewService(db)
	return func(c *gin.Context) {
		id, ok := paramUint(c, "id")
		if !ok {
			return
		}
		p, err := svc.Obter(id)
		if err != nil {
			respondErro(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// @Summary Edit a match
// @Description Updates match fields. Organizer only; terminal matches are
// read-only.
// @Tags partidas
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path int true "Match id"
// @Success 200 {object} object{id=integer,titulo=string}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /partidas/{id} [put]
// @Security ApiKeyAuth
func AtualizarPartida(db *gorm.DB) gin.HandlerFunc {
	svc := partida.NewService(db)
	return func(c *gin.Context) {
		id, ok := paramUint(c, "id")
		if !ok {
			return
		}
		var dados partida.AtualizarPartida
		if err := c.ShouldBindJSON(&dados); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dados da partida inválidos"})
			return
		}
		p, err := svc.Atualizar(id, dados, middleware.CurrentUser(c))
		if err != nil {
			respondErro(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// @Summary Activate a match
// @Tags partidas
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path int true "Match id"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Router /partidas/{id}/ativar [patch]
// @Security ApiKeyAuth
func AtivarPartida(db *gorm.DB) gin.HandlerFunc {
	svc := partida.NewService(db)
	return func(c *gin.Context) {
		id, ok := paramUint(c, "id")
		if !ok {
			return
		}
		if _, err := svc.Ativar(id, middleware.CurrentUser(c)); err != nil {
			respondErro(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "partida ativada com sucesso"})
	}
}

// @Summary Deactivate a match
// @Tags partidas
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path int true "Match id"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Router /partidas/{id}/desativar [patch]
// @Security ApiKeyAuth
func DesativarPartida(db *gorm.DB) gin.HandlerFunc {
	svc := partida.NewService(db)
	return func(c *gin.Context) {
		id, ok := paramUint(c, "id")
		if !ok {
			return
		}
		if _, err := svc.Desativar(id, middleware.CurrentUser(c)); err != nil {
			respondErro(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "partida desativada com sucesso"})
	}
}

// @Summary Join a match
// @Description Joins a public match. Direct joins are pre-confirmed.
// @Tags partidas
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path int true "Match id"
// @Success 200 {object} object{id=integer,status=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /partidas/{id}/participar [post]
// @Security ApiKeyAuth
func ParticiparPartida(db *gorm.DB) gin.HandlerFunc {
	svc := partida.NewService(db)
	return func(c *gin.Context) {
		id, ok := paramUint(c, "id")
		if !ok {
			return
		}
		p, err := svc.Participar(id, middleware.CurrentUser(c))
		if err != nil {
			respondErro(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// @Summary Leave a match
// @Tags partidas
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path int true "Match id"
// @Success 200 {object} object{id=integer,status=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /partidas/{id}/participar [delete]
// @Security ApiKeyAuth
func SairPartida(db *gorm.DB) gin.HandlerFunc {
	svc := partida.NewService(db)
	return func(c *gin.Context) {
		id, ok := paramUint(c, "id")
		if !ok {
			return
		}
		p, err := svc.Sair(id, middleware.CurrentUser(c))
		if err != nil {
			respondErro(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// @Summary Remove a participant
// @Description Kicks a player from the roster. Organizer only.
// @Tags partidas
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path int true "Match id"
// @Param usuario_id path int true "User to remove"
// @Success 200 {object} object{id=integer,status=string}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /partidas/{id}/participantes/{usuario_id} [delete]
// @Security ApiKeyAuth
func RemoverParticipante(db *gorm.DB) gin.HandlerFunc {
	svc := partida.NewService(db)
	return func(c *gin.Context) {
		id, ok := paramUint(c, "id")
		if !ok {
			return
		}
		alvoID, ok := paramUint(c, "usuario_id")
		if !ok {
			return
		}
		p, err := svc.RemoverParticipante(id, alvoID, middleware.CurrentUser(c))
		if err != nil {
			respondErro(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// @Summary Confirm attendance
// @Description Confirms the participant's presence ahead of the start
// @Tags partidas
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path int true "Match id"
// @Success 200 {object} object{id=integer,status=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /partidas/{id}/confirmar [post]
// @Security ApiKeyAuth
func ConfirmarPresenca(db *gorm.DB) gin.HandlerFunc {
	svc := partida.NewService(db)
	return func(c *gin.Context) {
		id, ok := paramUint(c, "id")
		if !ok {
			return
		}
		p, err := svc.ConfirmarPresenca(id, middleware.CurrentUser(c))
		if err != nil {
			respondErro(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// @Summary Withdraw the attendance confirmation
// @Tags partidas
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path int true "Match id"
// @Success 200 {object} object{id=integer,status=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /partidas/{id}/cancelar-confirmacao [post]
// @Security ApiKeyAuth
func CancelarConfirmacao(db *gorm.DB) gin.HandlerFunc {
	svc := partida.NewService(db)
	return func(c *gin.Context) {
		id, ok := paramUint(c, "id")
		if !ok {
			return
		}
		p, err := svc.CancelarConfirmacao(id, middleware.CurrentUser(c))
		if err != nil {
			respondErro(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// @Summary Finalize a match
// @Description Records the score, terminates the match and propagates
// stats to the participants. Organizer only.
// @Tags partidas
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path int true "Match id"
// @Param pontos_a query int true "Team A score"
// @Param pontos_b query int true "Team B score"
// @Success 200 {object} object{id=integer,status=string}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /partidas/{id}/finalizar [patch]
// @Security ApiKeyAuth
func FinalizarPartida(db *gorm.DB) gin.HandlerFunc {
	svc := partida.NewService(db)
	return func(c *gin.Context) {
		id, ok := paramUint(c, "id")
		if !ok {
			return
		}
		pontosA, errA := strconv.Atoi(c.Query("pontos_a"))
		pontosB, errB := strconv.Atoi(c.Query("pontos_b"))
		if errA != nil || errB != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "pontuações inválidas"})
			return
		}
		p, err := svc.Finalizar(id, pontosA, pontosB, middleware.CurrentUser(c))
		if err != nil {
			respondErro(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}
