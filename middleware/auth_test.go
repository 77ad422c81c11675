package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextoComHeader(valor string) *gin.Context {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if valor != "" {
		c.Request.Header.Set("Authorization", valor)
	}
	return c
}

func TestJWTRoundTrip(t *testing.T) {
	os.Setenv("JWT_SECRET", "segredo-de-teste")

	token, err := GenerateJWT(42)
	require.NoError(t, err)

	id, err := JWT_decoder(contextoComHeader("Bearer " + token))
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)
}

func TestJWTDecoderRejeitaHeaderInvalido(t *testing.T) {
	os.Setenv("JWT_SECRET", "segredo-de-teste")

	_, err := JWT_decoder(contextoComHeader(""))
	assert.Error(t, err)

	_, err = JWT_decoder(contextoComHeader("Basic abc"))
	assert.Error(t, err)

	_, err = JWT_decoder(contextoComHeader("Bearer nao-e-um-token"))
	assert.Error(t, err)
}

func TestJWTDecoderRejeitaOutroSegredo(t *testing.T) {
	os.Setenv("JWT_SECRET", "segredo-a")
	token, err := GenerateJWT(7)
	require.NoError(t, err)

	os.Setenv("JWT_SECRET", "segredo-b")
	_, err = JWT_decoder(contextoComHeader("Bearer " + token))
	assert.Error(t, err)
}
