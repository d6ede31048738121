package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amartinp/contenido-backend/config"
	"github.com/amartinp/contenido-backend/models"
	"github.com/amartinp/contenido-backend/services"
	"github.com/amartinp/contenido-backend/utils"
)

func loadAlbum(db *gorm.DB, id uint) (*models.Album, error) {
	var album models.Album
	err := db.Preload("Genres").Preload("Artistas").
		Preload("Canciones").Preload("Canciones.Genres").Preload("Canciones.Artistas").
		First(&album, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &album, nil
}

// GET /api/albumes?titulo=
func ListAlbums(c *gin.Context) {
	db := getDB(c)

	q := db.Model(&models.Album{}).Preload("Genres").Preload("Artistas").
		Preload("Canciones").Preload("Canciones.Genres").Preload("Canciones.Artistas")

	if titulo := c.Query("titulo"); titulo != "" {
		q = q.Where("LOWER(titulo) LIKE ?", "%"+strings.ToLower(titulo)+"%")
	}

	var albums []models.Album
	if err := q.Limit(200).Find(&albums).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, albumesResponse(albums))
}

// GET /api/albumes/:id
func GetAlbum(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	db := getDB(c)

	album, err := loadAlbum(db, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Álbum no encontrado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, albumResponse(album))
}

// GET /api/albumes/:id/canciones
func ListAlbumSongs(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	db := getDB(c)

	album, err := loadAlbum(db, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Álbum no encontrado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, cancionesResponse(album.Canciones))
}

// GET /api/albumes/artista?email=...
func GetAlbumsByArtist(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Falta el parámetro email"})
		return
	}
	db := getDB(c)

	var albums []models.Album
	err := db.Preload("Genres").Preload("Artistas").
		Preload("Canciones").Preload("Canciones.Genres").Preload("Canciones.Artistas").
		Joins("JOIN album_artista ON album_artista.album_id = album.id").
		Where("album_artista.artista_email = ?", email).
		Find(&albums).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, albumesResponse(albums))
}

type albumAdminCreateRequest struct {
	Titulo        string   `json:"titulo" binding:"required"`
	Precio        float64  `json:"precio"`
	Date          *string  `json:"date"`
	ImgPortada    *string  `json:"imgPortada"`
	GenreNames    []string `json:"genre_names"`
	CancionesIDs  []uint   `json:"canciones_ids"`
	ArtistaEmails []string `json:"artista_emails"`
}

// POST /api/admin/albumes
// Superficie de administración: acepta cualquier lista de artista_emails y
// no comprueba propiedad de las canciones. La superficie self-serve
// (POST /api/albumes) es la que fuerza el email del token.
func CreateAlbumAdmin(c *gin.Context) {
	var req albumAdminCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Precio < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El precio no puede ser negativo"})
		return
	}

	db := getDB(c)

	album := models.Album{Titulo: req.Titulo, Precio: req.Precio}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date debe ser YYYY-MM-DD"})
			return
		}
		album.Date = &date
	}
	if req.ImgPortada != nil {
		normalized := services.NormalizeImgPath(*req.ImgPortada)
		album.ImgPortada = &normalized
	}

	if err := db.Create(&album).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear el álbum", "details": err.Error()})
		return
	}

	if err := applyAlbumRelations(c, db, &album, req.GenreNames, req.CancionesIDs, req.ArtistaEmails); err != nil {
		return
	}

	album2, err := loadAlbum(db, album.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, albumResponse(album2))
}

// applyAlbumRelations valida y reemplaza géneros, pertenencia de canciones y
// enlaces de artista. Escribe la respuesta de error y devuelve err si algo
// falla, para que el caller corte.
func applyAlbumRelations(c *gin.Context, db *gorm.DB, album *models.Album, genreNames []string, cancionesIDs []uint, artistaEmails []string) error {
	if genreNames != nil {
		if err := services.ReplaceAlbumGenres(db, album, genreNames); err != nil {
			var unknown *services.UnknownGenresError
			if errors.As(err, &unknown) {
				c.JSON(http.StatusBadRequest, gin.H{"error": unknown.Error(), "generos_no_validos": unknown.Names})
				return err
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return err
		}
	}

	if cancionesIDs != nil {
		if err := services.ReplaceAlbumSongs(db, album, cancionesIDs); err != nil {
			var unknown *services.UnknownSongsError
			if errors.As(err, &unknown) {
				c.JSON(http.StatusBadRequest, gin.H{"error": unknown.Error(), "canciones_no_encontradas": unknown.IDs})
				return err
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return err
		}
	}

	if artistaEmails != nil {
		if err := services.SetAlbumArtists(db, album, artistaEmails); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return err
		}
	}

	return nil
}

// PUT /api/albumes/:id (multipart: datos + portada opcional)
func UpdateAlbum(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
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

	updates := map[string]interface{}{}
	if titulo := c.PostForm("titulo"); titulo != "" {
		updates["titulo"] = titulo
	}
	if v := c.PostForm("precio"); v != "" {
		precio, err := strconv.ParseFloat(v, 64)
		if err != nil || precio < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "precio no válido"})
			return
		}
		updates["precio"] = precio
	}
	if d := c.PostForm("date"); d != "" {
		date, err := time.Parse("2006-01-02", d)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date debe ser YYYY-MM-DD"})
			return
		}
		updates["date"] = date
	}

	if portada, err := c.FormFile("portada"); err == nil && portada != nil {
		if err := utils.ValidateUpload(portada, config.AllowedImageExts, config.MaxImageMB(), "portada", "image/"); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		path, err := services.SaveUpload(portada, "img")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo guardar la portada", "details": err.Error()})
			return
		}
		updates["img_portada"] = path
	}

	if len(updates) > 0 {
		if err := db.Model(&album).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	var genreNames []string
	if _, present := c.GetPostFormArray("genre"); present {
		genreNames = c.PostFormArray("genre")
	}
	var cancionesIDs []uint
	if raw, present := c.GetPostFormArray("canciones_ids"); present {
		cancionesIDs, err = utils.ParseIDList(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if cancionesIDs == nil {
			cancionesIDs = []uint{}
		}
	}
	var artistaEmails []string
	if _, present := c.GetPostFormArray("artista_emails"); present {
		artistaEmails = c.PostFormArray("artista_emails")
	}

	if err := applyAlbumRelations(c, db, &album, genreNames, cancionesIDs, artistaEmails); err != nil {
		return
	}

	album2, err := loadAlbum(db, album.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, albumResponse(album2))
}

// PATCH /api/albumes/:id/precio
func UpdateAlbumPrice(c *gin.Context) {
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

	res := db.Model(&models.Album{}).Where("id = ?", id).Update("precio", *req.Precio)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Álbum no encontrado"})
		return
	}

	album, err := loadAlbum(db, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, albumResponse(album))
}

// DELETE /api/albumes/:id
// Borra el álbum en cascada (compras, comentarios, enlaces, géneros), pero
// las canciones miembro solo pierden su id_album: siguen existiendo.
func DeleteAlbum(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
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

	if err := db.Model(&models.Cancion{}).Where("id_album = ?", id).
		Update("id_album", nil).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := db.Select("Genres", "Artistas", "Compras", "Comentarios").Delete(&album).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
