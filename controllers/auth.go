package controllers

import (
	"net/http"
	"strings"

	"Quadra/middleware"
	models "Quadra/models/postgres"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type registrarRequest struct {
	Nome  string             `json:"nome" binding:"required"`
	Email string             `json:"email" binding:"required,email"`
	Senha string             `json:"senha" binding:"required,min=6"`
	Tipo  models.TipoUsuario `json:"tipo"`
}

type loginRequest struct {
	Email string `json:"email" binding:"required"`
	Senha string `json:"senha" binding:"required"`
}

// @Summary Register a new user
// @Description Creates an account and returns a bearer token for it
// @Tags auth
// @Accept json
// @Produce json
// @Param dados body registrarRequest true "Registration data"
// @Success 201 {object} object{token=string,usuario=object}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/registrar [post]
func Registrar(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registrarRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dados de cadastro inválidos"})
			return
		}

		if req.Tipo == "" {
			req.Tipo = models.TipoIniciante
		}

		var existentes int64
		if err := db.Model(&models.Usuario{}).
			Where("email = ?", strings.ToLower(req.Email)).
			Count(&existentes).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao verificar email"})
			return
		}
		if existentes > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email já cadastrado"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao processar senha"})
			return
		}

		usuario := models.Usuario{
			Nome:      req.Nome,
			Email:     strings.ToLower(req.Email),
			SenhaHash: string(hash),
			Tipo:      req.Tipo,
			Ativo:     true,
		}
		if err := db.Create(&usuario).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao criar usuário"})
			return
		}

		token, err := middleware.GenerateJWT(usuario.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao gerar token"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"token": token, "usuario": usuario})
	}
}

// @Summary Authenticate a user
// @Description Validates the credentials and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param dados body loginRequest true "Credentials"
// @Success 200 {object} object{token=string,usuario=object}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /auth/login [post]
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dados de login inválidos"})
			return
		}

		var usuario models.Usuario
		if err := db.Where("email = ?", strings.ToLower(req.Email)).First(&usuario).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "email ou senha inválidos"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(usuario.SenhaHash), []byte(req.Senha)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "email ou senha inválidos"})
			return
		}
		if !usuario.Ativo {
			c.JSON(http.StatusBadRequest, gin.H{"error": "usuário inativo"})
			return
		}

		token, err := middleware.GenerateJWT(usuario.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao gerar token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "usuario": usuario})
	}
}

// @Summary Refresh the bearer token
// @Description Issues a fresh token for the authenticated user
// @Tags auth
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{token=string}
// @Failure 401 {object} object{error=string}
// @Router /auth/refresh [post]
// @Security ApiKeyAuth
func Refresh() gin.HandlerFunc {
	return func(c *gin.Context) {
		usuario := middleware.CurrentUser(c)
		token, err := middleware.GenerateJWT(usuario.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao gerar token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// @Summary Current user info
// @Description Returns the profile of the authenticated user
// @Tags auth
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{usuario=object}
// @Failure 401 {object} object{error=string}
// @Router /auth/me [get]
// @Security ApiKeyAuth
func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"usuario": middleware.CurrentUser(c)})
	}
}
