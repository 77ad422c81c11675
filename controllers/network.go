package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Liveness probe
// @Description Returns pong when the server is up
// @Tags network
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
