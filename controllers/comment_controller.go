package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amartinp/contenido-backend/models"
)

type commentCreateRequest struct {
	Content string `json:"content" binding:"required"`
}

// GET /api/canciones/:id/comentarios
func ListSongComments(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	db := getDB(c)

	var comments []models.Comentario
	err := db.Where("cancion_id = ?", id).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, comments)
}

// POST /api/canciones/:id/comentarios
func CreateSongComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req commentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email, ok := currentEmail(c)
	if !ok {
		return
	}
	db := getDB(c)

	var song models.Cancion
	err := db.First(&song, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Canción no encontrada"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	comment := models.Comentario{
		UserRef:   email,
		Content:   req.Content,
		CancionID: &song.ID,
	}
	if err := db.Create(&comment).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No se pudo crear el comentario", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// GET /api/albumes/:id/comentarios
func ListAlbumComments(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	db := getDB(c)

	var comments []models.Comentario
	err := db.Where("album_id = ?", id).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, comments)
}

// POST /api/albumes/:id/comentarios
func CreateAlbumComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req commentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email, ok := currentEmail(c)
	if !ok {
		return
	}
	db := getDB(c)

	var album models.Album
	err := db.First(&album, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Álbum no encontrado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	comment := models.Comentario{
		UserRef: email,
		Content: req.Content,
		AlbumID: &album.ID,
	}
	if err := db.Create(&comment).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No se pudo crear el comentario", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, comment)
}
