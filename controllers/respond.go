package controllers

import (
	"log"
	"net/http"
	"strconv"

	"Quadra/apperrors"

	"github.com/gin-gonic/gin"
)

// respondErro maps a service failure to the HTTP status of its kind.
// Untyped errors are logged and hidden behind a 500.
func respondErro(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, gin.H{"error": "erro interno"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// paramUint reads a numeric path parameter. The bool is false after an
// error response was already written.
func paramUint(c *gin.Context, nome string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(nome), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "parâmetro " + nome + " inválido"})
		return 0, false
	}
	return uint(v), true
}

// paginacao reads the optional skip/limit query parameters.
func paginacao(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	if offset < 0 {
		offset = 0
	}
	if limit < 1 || limit > 100 {
		limit = 100
	}
	return offset, limit
}
