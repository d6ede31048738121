package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amartinp/contenido-backend/models"
)

// GET /api/generos — nombres de todos los géneros, ordenados
func ListGenres(c *gin.Context) {
	db := getDB(c)

	var names []string
	err := db.Model(&models.Genre{}).
		Order("name ASC").
		Pluck("name", &names).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, names)
}
