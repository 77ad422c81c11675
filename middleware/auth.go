package middleware

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	models "Quadra/models/postgres"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// Context key under which AuthRequired stores the authenticated user
const UsuarioKey = "usuario"

// Token lifetime for login and refresh
const TokenValidade = 24 * time.Hour

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GenerateJWT issues a signed bearer token whose subject is the user id.
func GenerateJWT(usuarioID uint) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(usuarioID), 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenValidade)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// JWT_decoder validates the Authorization header and returns the user id
// inside the token.
func JWT_decoder(c *gin.Context) (uint, error) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return 0, errors.New("missing bearer token")
	}
	raw := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return 0, errors.New("invalid token claims")
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, errors.New("invalid token subject")
	}
	return uint(id), nil
}

// AuthRequired validates the bearer token, loads the user and rejects
// deactivated accounts. The user is left in the context for the handlers.
func AuthRequired(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := JWT_decoder(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "credenciais inválidas"})
			return
		}

		var usuario models.Usuario
		if err := db.First(&usuario, id).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "credenciais inválidas"})
			return
		}
		if !usuario.Ativo {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "usuário inativo"})
			return
		}

		c.Set(UsuarioKey, &usuario)
		c.Next()
	}
}

// CurrentUser returns the user AuthRequired stored in the context.
func CurrentUser(c *gin.Context) *models.Usuario {
	v, ok := c.Get(UsuarioKey)
	if !ok {
		return nil
	}
	usuario, ok := v.(*models.Usuario)
	if !ok {
		return nil
	}
	return usuario
}
