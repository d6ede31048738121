package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amartinp/contenido-backend/models"
	"github.com/amartinp/contenido-backend/services"
)

// GET /api/canciones?genero=&popularidad={top|tendencia|reciente}
func ListSongs(c *gin.Context) {
	db := getDB(c)

	q := db.Model(&models.Cancion{}).Preload("Genres").Preload("Artistas")

	if genero := c.Query("genero"); genero != "" {
		q = q.Joins("JOIN cancion_genero ON cancion_genero.cancion_id = cancion.id").
			Joins("JOIN genre ON genre.id = cancion_genero.genre_id").
			Where("LOWER(genre.name) LIKE ?", "%"+strings.ToLower(genero)+"%").
			Distinct("cancion.*")
	}

	switch c.Query("popularidad") {
	case "top":
		q = q.Order("num_likes DESC")
	case "tendencia":
		q = q.Order("num_visualizaciones DESC")
	case "reciente":
		q = q.Order("id DESC")
	}

	var songs []models.Cancion
	if err := q.Limit(200).Find(&songs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, cancionesResponse(songs))
}

// GET /api/canciones/:id
func GetSong(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	db := getDB(c)

	var song models.Cancion
	err := db.Preload("Genres").Preload("Artistas").First(&song, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Canción no encontrada"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, cancionResponse(&song))
}

// GET /api/canciones/artista?email=...
func GetSongsByArtist(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Falta el parámetro email"})
		return
	}
	db := getDB(c)

	var songs []models.Cancion
	err := db.Preload("Genres").Preload("Artistas").
		Joins("JOIN cancion_artista ON cancion_artista.cancion_id = cancion.id").
		Where("cancion_artista.artista_email = ?", email).
		Find(&songs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, cancionesResponse(songs))
}

type cancionUpdateRequest struct {
	NomCancion *string  `json:"nomCancion"`
	ImgPortada *string  `json:"imgPortada"`
	Date       *string  `json:"date"`
	Precio     *float64 `json:"precio"`
	Generos    []string `json:"generos"`
	IDAlbum    *uint    `json:"idAlbum"`
}

// PUT /api/canciones/:id
// Actualización parcial: solo cambian los campos presentes. Lista cerrada de
// campos actualizables; id y contadores nunca se escriben desde aquí.
func UpdateSong(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req cancionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := getDB(c)

	var song models.Cancion
	err := db.Preload("Genres").Preload("Artistas").First(&song, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Canción no encontrada"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.NomCancion != nil {
		updates["nom_cancion"] = *req.NomCancion
	}
	if req.ImgPortada != nil {
		updates["img_portada"] = services.NormalizeImgPath(*req.ImgPortada)
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date debe ser YYYY-MM-DD"})
			return
		}
		updates["date"] = date
	}
	if req.Precio != nil {
		if *req.Precio < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "El precio no puede ser negativo"})
			return
		}
		updates["precio"] = *req.Precio
	}
	if req.IDAlbum != nil {
		updates["id_album"] = *req.IDAlbum
	}

	if len(updates) > 0 {
		if err := db.Model(&song).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	// Reemplazo completo de la asociación de géneros si viene la lista
	if req.Generos != nil {
		if err := services.ReplaceSongGenres(db, &song, req.Generos); err != nil {
			var unknown *services.UnknownGenresError
			if errors.As(err, &unknown) {
				c.JSON(http.StatusBadRequest, gin.H{"error": unknown.Error(), "generos_no_validos": unknown.Names})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	if err := db.Preload("Genres").Preload("Artistas").First(&song, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cancionResponse(&song))
}

type precioUpdateRequest struct {
	Precio *float64 `json:"precio" binding:"required"`
}

// PATCH /api/canciones/:id/precio
func UpdateSongPrice(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req precioUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *req.Precio < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El precio no puede ser negativo"})
		return
	}

	db := getDB(c)

	res := db.Model(&models.Cancion{}).Where("id = ?", id).Update("precio", *req.Precio)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Canción no encontrada"})
		return
	}

	var song models.Cancion
	if err := db.Preload("Genres").Preload("Artistas").First(&song, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cancionResponse(&song))
}

// POST /api/canciones/:id/visualizaciones
func IncrementSongViews(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	db := getDB(c)

	res := db.Model(&models.Cancion{}).Where("id = ?", id).
		UpdateColumn("num_visualizaciones", gorm.Expr("num_visualizaciones + ?", 1))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Canción no encontrada"})
		return
	}

	var song models.Cancion
	if err := db.Preload("Genres").Preload("Artistas").First(&song, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cancionResponse(&song))
}

// DELETE /api/canciones/:id
// Borra la canción y sus filas dependientes (enlaces de artista, géneros,
// compras, comentarios, apariciones en playlists).
func DeleteSong(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
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

	if err := db.Where("cancion_id = ?", id).Delete(&models.PlaylistCancion{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := db.Select("Genres", "Artistas", "Compras", "Comentarios").Delete(&song).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
