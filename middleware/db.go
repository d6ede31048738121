package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DBMiddleware inyecta la conexión en el contexto para las rutas de lectura.
func DBMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("db", db)
		c.Next()
	}
}

// Transaction abre una transacción por petición para las rutas que escriben:
// el handler la recibe como "db", se hace commit si respondió 2xx y rollback
// en cualquier otro caso (incluido panic). Así cada operación de escritura
// es atómica de extremo a extremo.
func Transaction(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tx := db.Begin()
		if tx.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo abrir la transacción"})
			c.Abort()
			return
		}

		c.Set("db", tx)

		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
				panic(r)
			}
		}()

		c.Next()

		status := c.Writer.Status()
		if c.IsAborted() || status >= http.StatusBadRequest {
			tx.Rollback()
			return
		}

		if err := tx.Commit().Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo confirmar la transacción"})
		}
	}
}
