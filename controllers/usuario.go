package controllers

import (
	"log"
	"net/http"

	"Quadra/middleware"
	models "Quadra/models/postgres"
	"Quadra/services/categoria"
	"Quadra/services/redis"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// @Summary List users
// @Description Returns the registered users, paginated
// @Tags usuarios
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{id=integer,nome=string,tipo=string}
// @Failure 500 {object} object{error=string}
// @Router /usuarios [get]
// @Security ApiKeyAuth
func ListarUsuarios(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, limit := paginacao(c)

		var usuarios []models.Usuario
		if err := db.Order("nome").Offset(offset).Limit(limit).Find(&usuarios).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao listar usuários"})
			return
		}
		c.JSON(http.StatusOK, usuarios)
	}
}

// @Summary List users by tier
// @Description Returns the users of the given skill tier
// @Tags usuarios
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param tipo path string true "Skill tier"
// @Success 200 {array} object{id=integer,nome=string,tipo=string}
// @Failure 500 {object} object{error=string}
// @Router /usuarios/tipo/{tipo} [get]
// @Security ApiKeyAuth
func ListarUsuariosPorTipo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, limit := paginacao(c)
		tipo := models.TipoUsuario(c.Param("tipo"))

		var usuarios []models.Usuario
		if err := db.Where("tipo = ?", tipo).
			Order("pontuacao_total desc").
			Offset(offset).Limit(limit).
			Find(&usuarios).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao listar usuários"})
			return
		}
		c.JSON(http.StatusOK, usuarios)
	}
}

// rankingEntrada is the cached shape of one ranking row.
type rankingEntrada struct {
	ID              uint               `json:"id"`
	Nome            string             `json:"nome"`
	Tipo            models.TipoUsuario `json:"tipo"`
	PontuacaoTotal  int                `json:"pontuacao_total"`
	PartidasJogadas int                `json:"partidas_jogadas"`
	Vitorias        int                `json:"vitorias"`
}

// @Summary Player ranking
// @Description Returns the top players by total score. Served from the
// Redis cache when warm.
// @Tags usuarios
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{id=integer,nome=string,pontuacao_total=integer}
// @Failure 500 {object} object{error=string}
// @Router /usuarios/ranking [get]
// @Security ApiKeyAuth
func RankingUsuarios(db *gorm.DB, rc *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ranking []rankingEntrada

		if rc != nil {
			if err := rc.ObterRanking("usuarios", &ranking); err == nil {
				c.JSON(http.StatusOK, ranking)
				return
			}
		}

		err := db.Model(&models.Usuario{}).
			Where("ativo = ?", true).
			Order("pontuacao_total desc").
			Limit(10).
			Find(&ranking).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao montar ranking"})
			return
		}

		if rc != nil {
			if err := rc.SalvarRanking("usuarios", ranking); err != nil {
				log.Printf("ranking cache write failed: %v", err)
			}
		}
		c.JSON(http.StatusOK, ranking)
	}
}

// @Summary Get a user
// @Description Returns the public profile of a user
// @Tags usuarios
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path int true "User id"
// @Success 200 {object} object{id=integer,nome=string,tipo=string}
// @Failure 404 {object} object{error=string}
// @Router /usuarios/{id} [get]
// @Security ApiKeyAuth
func ObterUsuario(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramUint(c, "id")
		if !ok {
			return
		}
		var usuario models.Usuario
		if err := db.First(&usuario, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "usuário não encontrado"})
			return
		}
		c.JSON(http.StatusOK, usuario)
	}
}

type atualizarUsuarioRequest struct {
	Nome  *string             `json:"nome"`
	Email *string             `json:"email"`
	Senha *string             `json:"senha"`
	Tipo  *models.TipoUsuario `json:"tipo"`
}

// @Summary Update a user
// @Description Updates profile fields. Users edit themselves; profissional
// accounts may edit anyone (including promoting tiers).
// @Tags usuarios
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path int true "User id"
// @Param dados body atualizarUsuarioRequest true "Fields to update"
// @Success 200 {object} object{id=integer,nome=string,tipo=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /usuarios/{id} [put]
// @Security ApiKeyAuth
func AtualizarUsuario(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramUint(c, "id")
		if !ok {
			return
		}
		atual := middleware.CurrentUser(c)
		if atual.ID != id && atual.Tipo != models.TipoProfissional {
			c.JSON(http.StatusForbidden, gin.H{"error": "sem permissão para alterar este usuário"})
			return
		}

		var req atualizarUsuarioRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dados inválidos"})
			return
		}

		var usuario models.Usuario
		if err := db.First(&usuario, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "usuário não encontrado"})
			return
		}

		campos := map[string]interface{}{}
		if req.Nome != nil {
			campos["nome"] = *req.Nome
		}
		if req.Email != nil {
			campos["email"] = *req.Email
		}
		if req.Tipo != nil {
			campos["tipo"] = *req.Tipo
		}
		if req.Senha != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(*req.Senha), bcrypt.DefaultCost)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao processar senha"})
				return
			}
			campos["senha_hash"] = string(hash)
		}

		if len(campos) > 0 {
			if err := db.Model(&usuario).Updates(campos).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao atualizar usuário"})
				return
			}
		}
		c.JSON(http.StatusOK, usuario)
	}
}

// @Summary Deactivate a user
// @Description Soft-deactivates the account. Self or profissional only.
// @Tags usuarios
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path int true "User id"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /usuarios/{id} [delete]
// @Security ApiKeyAuth
func DesativarUsuario(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramUint(c, "id")
		if !ok {
			return
		}
		atual := middleware.CurrentUser(c)
		if atual.ID != id && atual.Tipo != models.TipoProfissional {
			c.JSON(http.StatusForbidden, gin.H{"error": "sem permissão para desativar este usuário"})
			return
		}

		res := db.Model(&models.Usuario{}).Where("id = ?", id).Update("ativo", false)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao desativar usuário"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "usuário não encontrado"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "usuário desativado com sucesso"})
	}
}

// @Summary Categories the user may join
// @Description Returns every match category open to the authenticated
// user's tier, with its description
// @Tags usuarios
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{categoria=string,descricao=string}
// @Router /usuarios/categorias-permitidas [get]
// @Security ApiKeyAuth
func CategoriasPermitidas() gin.HandlerFunc {
	return func(c *gin.Context) {
		usuario := middleware.CurrentUser(c)
		permitidas := categoria.CategoriasPermitidas(usuario.Tipo)

		resposta := make([]gin.H, len(permitidas))
		for i, cat := range permitidas {
			resposta[i] = gin.H{
				"categoria": cat,
				"descricao": categoria.Descricao(cat),
			}
		}
		c.JSON(http.StatusOK, resposta)
	}
}
