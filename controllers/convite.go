package controllers

import (
	"net/http"

	"Quadra/middleware"
	"Quadra/services/convite"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Send an invitation
// @Description Invites a player to a private match. Organizer only.
// @Tags convites
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param dados body convite.EnviarConvite true "Invitation data"
// @Success 201 {object} object{id=integer,status=string}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /convites [post]
// @Security ApiKeyAuth
func EnviarConvite(db *gorm.DB) gin.HandlerFunc {
	svc := convite.NewService(db)
	return func(c *gin.Context) {
		var dados convite.EnviarConvite
		if err := c.ShouldBindJSON(&dados); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dados do convite inválidos"})
			return
		}
		cv, err := svc.Enviar(dados, middleware.CurrentUser(c))
		if err != nil {
			respondErro(c, err)
			return
		}
		c.JSON(http.StatusCreated, cv)
	}
}

// @Summary Accept an invitation
// @Description Accepts a pending invitation and seats the user in the
// match. Fails without seating when the roster filled in the meantime.
// @Tags convites
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path int true "Invitation id"
// @Success 200 {object} object{id=integer,status=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /convites/{id}/aceitar [put]
// @Security ApiKeyAuth
func AceitarConvite(db *gorm.DB) gin.HandlerFunc {
	svc := convite.NewService(db)
	return func(c *gin.Context) {
		id, ok := paramUint(c, "id")
		if !ok {
			return
		}
		cv, err := svc.Aceitar(id, middleware.CurrentUser(c))
		if err != nil {
			respondErro(c, err)
			return
		}
		c.JSON(http.StatusOK, cv)
	}
}

// @Summary Decline an invitation
// @Tags convites
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path int true "Invitation id"
// @Success 200 {object} object{id=integer,status=string}
// @Failure 404 {object} object{error=string}
// @Router /convites/{id}/recusar [put]
// @Security ApiKeyAuth
func RecusarConvite(db *gorm.DB) gin.HandlerFunc {
	svc := convite.NewService(db)
	return func(c *gin.Context) {
		id, ok := paramUint(c, "id")
		if !ok {
			return
		}
		cv, err := svc.Recusar(id, middleware.CurrentUser(c))
		if err != nil {
			respondErro(c, err)
			return
		}
		c.JSON(http.StatusOK, cv)
	}
}

// @Summary Cancel an invitation
// @Description Deletes a still-pending invitation. Sender only.
// @Tags convites
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path int true "Invitation id"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /convites/{id} [delete]
// @Security ApiKeyAuth
func CancelarConvite(db *gorm.DB) gin.HandlerFunc {
	svc := convite.NewService(db)
	return func(c *gin.Context) {
		id, ok := paramUint(c, "id")
		if !ok {
			return
		}
		if err := svc.Cancelar(id, middleware.CurrentUser(c)); err != nil {
			respondErro(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "convite cancelado com sucesso"})
	}
}

// @Summary Invitations sent by the user
// @Tags convites
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{id=integer,status=string}
// @Router /convites/enviados [get]
// @Security ApiKeyAuth
func ConvitesEnviados(db *gorm.DB) gin.HandlerFunc {
	svc := convite.NewService(db)
	return func(c *gin.Context) {
		offset, limit := paginacao(c)
		convites, err := svc.Enviados(middleware.CurrentUser(c).ID, offset, limit)
		if err != nil {
			respondErro(c, err)
			return
		}
		c.JSON(http.StatusOK, convites)
	}
}

// @Summary Invitations received by the user
// @Tags convites
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{id=integer,status=string}
// @Router /convites/recebidos [get]
// @Security ApiKeyAuth
func ConvitesRecebidos(db *gorm.DB) gin.HandlerFunc {
	svc := convite.NewService(db)
	return func(c *gin.Context) {
		offset, limit := paginacao(c)
		convites, err := svc.Recebidos(middleware.CurrentUser(c).ID, offset, limit)
		if err != nil {
			respondErro(c, err)
			return
		}
		c.JSON(http.StatusOK, convites)
	}
}

// @Summary Pending invitations of the user
// @Tags convites
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{id=integer,status=string}
// @Router /convites/pendentes [get]
// @Security ApiKeyAuth
func ConvitesPendentes(db *gorm.DB) gin.HandlerFunc {
	svc := convite.NewService(db)
	return func(c *gin.Context) {
		convites, err := svc.Pendentes(middleware.CurrentUser(c).ID)
		if err != nil {
			respondErro(c, err)
			return
		}
		c.JSON(http.StatusOK, convites)
	}
}

// @Summary Invitations of a match
// @Description Lists every invitation of the match. Organizer only.
// @Tags convites
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path int true "Match id"
// @Success 200 {array} object{id=integer,status=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /convites/partida/{id} [get]
// @Security ApiKeyAuth
func ConvitesDaPartida(db *gorm.DB) gin.HandlerFunc {
	svc := convite.NewService(db)
	return func(c *gin.Context) {
		id, ok := paramUint(c, "id")
		if !ok {
			return
		}
		convites, err := svc.DaPartida(id, middleware.CurrentUser(c))
		if err != nil {
			respondErro(c, err)
			return
		}
		c.JSON(http.StatusOK, convites)
	}
}

// @Summary Get an invitation
// @Description Returns one invitation. Sender or recipient only.
// @Tags convites
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path int true "Invitation id"
// @Success 200 {object} object{id=integer,status=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /convites/{id} [get]
// @Security ApiKeyAuth
func ObterConvite(db *gorm.DB) gin.HandlerFunc {
	svc := convite.NewService(db)
	return func(c *gin.Context) {
		id, ok := paramUint(c, "id")
		if !ok {
			return
		}
		cv, err := svc.ObterPorID(id, middleware.CurrentUser(c))
		if err != nil {
			respondErro(c, err)
			return
		}
		c.JSON(http.StatusOK, cv)
	}
}

// @Summary Expire stale invitations
// @Description Flips every pending invitation past its expiration to
// expirado. Meant to be hit by an external periodic caller.
// @Tags convites
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{expirados=integer}
// @Failure 500 {object} object{error=string}
// @Router /convites/expirar-antigos [post]
// @Security ApiKeyAuth
func ExpirarConvitesAntigos(db *gorm.DB) gin.HandlerFunc {
	svc := convite.NewService(db)
	return func(c *gin.Context) {
		n, err := svc.ExpirarAntigos()
		if err != nil {
			respondErro(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"expirados": n})
	}
}
