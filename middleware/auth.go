package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/amartinp/contenido-backend/services"
)

// AuthMiddleware valida el token Bearer contra el servicio externo de
// usuarios y guarda la identidad en el contexto para los controllers.
// Un fallo del servicio de usuarios se distingue de un token inválido:
// 503, nunca 401.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Falta token Bearer"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header no válido"})
			c.Abort()
			return
		}

		identity, err := services.VerifyIdentity(parts[1])
		if err != nil {
			if errors.Is(err, services.ErrServicioNoDisponible) {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Servicio de usuarios no disponible"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
			}
			c.Abort()
			return
		}

		c.Set("identity", identity)
		c.Set("user_email", identity.Email())
		c.Set("user_type", identity.UserType)
		c.Next()
	}
}

// Identity recupera la identidad guardada por AuthMiddleware.
func Identity(c *gin.Context) (*services.Identity, bool) {
	v, ok := c.Get("identity")
	if !ok {
		return nil, false
	}
	identity, ok := v.(*services.Identity)
	return identity, ok
}
