package controllers

import (
	"net/http"

	"Quadra/middleware"
	models "Quadra/models/postgres"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type equipeRequest struct {
	Nome      string `json:"nome" binding:"required"`
	Descricao string `json:"descricao"`
}

// @Summary Create a team
// @Description Creates a team led by the authenticated user
// @Tags equipes
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param dados body equipeRequest true "Team data"
// @Success 201 {object} object{id=integer,nome=string}
// @Failure 400 {object} object{error=string}
// @Router /equipes [post]
// @Security ApiKeyAuth
func CriarEquipe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req equipeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dados da equipe inválidos"})
			return
		}
		lider := middleware.CurrentUser(c)

		equipe := models.Equipe{
			Nome:      req.Nome,
			Descricao: req.Descricao,
			LiderID:   lider.ID,
		}
		if err := db.Create(&equipe).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao criar equipe"})
			return
		}

		// The leader is a member from day one
		membro := models.EquipeMembro{EquipeID: equipe.ID, UsuarioID: lider.ID}
		if err := db.Create(&membro).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao registrar líder como membro"})
			return
		}
		c.JSON(http.StatusCreated, equipe)
	}
}

// @Summary List teams
// @Tags equipes
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{id=integer,nome=string}
// @Router /equipes [get]
// @Security ApiKeyAuth
func ListarEquipes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, limit := paginacao(c)
		var equipes []models.Equipe
		if err := db.Order("nome").Offset(offset).Limit(limit).Find(&equipes).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao listar equipes"})
			return
		}
		c.JSON(http.StatusOK, equipes)
	}
}

// @Summary Team ranking
// @Tags equipes
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{id=integer,nome=string,pontuacao_total=integer}
// @Router /equipes/ranking [get]
// @Security ApiKeyAuth
func RankingEquipes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var equipes []models.Equipe
		if err := db.Order("pontuacao_total desc").Limit(10).Find(&equipes).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao montar ranking"})
			return
		}
		c.JSON(http.StatusOK, equipes)
	}
}

// @Summary Get a team
// @Description Returns the team with leader and members
// @Tags equipes
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path int true "Team id"
// @Success 200 {object} object{id=integer,nome=string}
// @Failure 404 {object} object{error=string}
// @Router /equipes/{id} [get]
// @Security ApiKeyAuth
func ObterEquipe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramUint(c, "id")
		if !ok {
			return
		}
		var equipe models.Equipe
		err := db.Preload("Lider").Preload("Membros.Usuario").First(&equipe, id).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "equipe não encontrada"})
			return
		}
		c.JSON(http.StatusOK, equipe)
	}
}

// @Summary Edit a team
// @Description Updates name and description. Leader only.
// @Tags equipes
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path int true "Team id"
// @Param dados body equipeRequest true "Team data"
// @Success 200 {object} object{id=integer,nome=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /equipes/{id} [put]
// @Security ApiKeyAuth
func AtualizarEquipe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramUint(c, "id")
		if !ok {
			return
		}
		var equipe models.Equipe
		if err := db.First(&equipe, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "equipe não encontrada"})
			return
		}
		if equipe.LiderID != middleware.CurrentUser(c).ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "apenas o líder pode alterar a equipe"})
			return
		}

		var req equipeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dados da equipe inválidos"})
			return
		}
		if err := db.Model(&equipe).Updates(map[string]interface{}{
			"nome":      req.Nome,
			"descricao": req.Descricao,
		}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao atualizar equipe"})
			return
		}
		c.JSON(http.StatusOK, equipe)
	}
}

// @Summary Add a team member
// @Description Adds a player to the team. Leader only.
// @Tags equipes
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path int true "Team id"
// @Param usuario_id path int true "User to add"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /equipes/{id}/membros/{usuario_id} [post]
// @Security ApiKeyAuth
func AdicionarMembroEquipe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramUint(c, "id")
		if !ok {
			return
		}
		usuarioID, ok := paramUint(c, "usuario_id")
		if !ok {
			return
		}

		var equipe models.Equipe
		if err := db.First(&equipe, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "equipe não encontrada"})
			return
		}
		if equipe.LiderID != middleware.CurrentUser(c).ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "apenas o líder pode adicionar membros"})
			return
		}
		var usuario models.Usuario
		if err := db.First(&usuario, usuarioID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "usuário não encontrado"})
			return
		}

		var existentes int64
		db.Model(&models.EquipeMembro{}).
			Where("equipe_id = ? AND usuario_id = ?", id, usuarioID).
			Count(&existentes)
		if existentes > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "usuário já é membro da equipe"})
			return
		}

		membro := models.EquipeMembro{EquipeID: id, UsuarioID: usuarioID}
		if err := db.Create(&membro).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao adicionar membro"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "membro adicionado com sucesso"})
	}
}

// @Summary Remove a team member
// @Description Removes a player from the team. Leader only; the leader
// cannot remove themselves.
// @Tags equipes
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path int true "Team id"
// @Param usuario_id path int true "User to remove"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /equipes/{id}/membros/{usuario_id} [delete]
// @Security ApiKeyAuth
func RemoverMembroEquipe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramUint(c, "id")
		if !ok {
			return
		}
		usuarioID, ok := paramUint(c, "usuario_id")
		if !ok {
			return
		}

		var equipe models.Equipe
		if err := db.First(&equipe, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "equipe não encontrada"})
			return
		}
		if equipe.LiderID != middleware.CurrentUser(c).ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "apenas o líder pode remover membros"})
			return
		}
		if usuarioID == equipe.LiderID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "o líder não pode ser removido da equipe"})
			return
		}

		res := db.Where("equipe_id = ? AND usuario_id = ?", id, usuarioID).
			Delete(&models.EquipeMembro{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao remover membro"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "usuário não é membro da equipe"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "membro removido com sucesso"})
	}
}
