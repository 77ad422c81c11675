package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("x")))
	assert.Equal(t, KindCapacity, KindOf(Capacity("x")))
	assert.Equal(t, KindUnknown, KindOf(errors.New("x")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindSobreviveAWrap(t *testing.T) {
	err := fmt.Errorf("contexto: %w", Forbidden("sem permissão"))
	assert.Equal(t, KindForbidden, KindOf(err))
}

func TestErrorsIsPorKind(t *testing.T) {
	err := NotFound("partida não encontrada")
	assert.True(t, errors.Is(err, NotFound("qualquer mensagem")))
	assert.False(t, errors.Is(err, Forbidden("qualquer mensagem")))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("x")))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(Forbidden("x")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validation("x")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Duplicate("x")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("x")))
}
