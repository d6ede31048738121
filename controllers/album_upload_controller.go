package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amartinp/contenido-backend/config"
	"github.com/amartinp/contenido-backend/middleware"
	"github.com/amartinp/contenido-backend/models"
	"github.com/amartinp/contenido-backend/services"
	"github.com/amartinp/contenido-backend/utils"
)

// POST /api/albumes (multipart)
// Creación self-serve: solo artistas, y el enlace de artista del álbum se
// fuerza al email verificado del token, ignorando lo que mande el cliente.
// Todas las canciones agrupadas deben pertenecer ya al artista.
func CreateAlbumWithUpload(c *gin.Context) {
	db := getDB(c)

	identity, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuario no identificado"})
		return
	}
	if !identity.IsArtist() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Solo artistas pueden crear álbumes"})
		return
	}
	artistEmail := identity.Email()

	titulo := c.PostForm("titulo")
	if strings.TrimSpace(titulo) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "titulo es obligatorio"})
		return
	}

	precio, err := strconv.ParseFloat(c.PostForm("precio"), 64)
	if err != nil || precio < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "precio no válido"})
		return
	}

	var date *time.Time
	if d := c.PostForm("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date debe ser YYYY-MM-DD"})
			return
		}
		date = &parsed
	}

	// Ids repetidos o CSV
	ids, err := utils.ParseIDList(c.PostFormArray("canciones_ids"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Existencia en lote: el error lista todos los ids que faltan
	songs, err := services.ResolveSongs(db, ids)
	if err != nil {
		var unknown *services.UnknownSongsError
		if errors.As(err, &unknown) {
			c.JSON(http.StatusBadRequest, gin.H{"error": unknown.Error(), "canciones_no_encontradas": unknown.IDs})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Propiedad: todas las canciones deben listar al artista del token
	if err := services.AssertSongsOwnedBy(songs, artistEmail); err != nil {
		var notOwner *services.NotOwnerError
		if errors.As(err, &notOwner) {
			c.JSON(http.StatusForbidden, gin.H{"error": notOwner.Error(), "canciones_ajenas": notOwner.IDs})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var genreNames []string
	if _, present := c.GetPostFormArray("genre"); present {
		genreNames = c.PostFormArray("genre")
	}

	var portadaPath *string
	if portada, err := c.FormFile("portada"); err == nil && portada != nil {
		if err := utils.ValidateUpload(portada, config.AllowedImageExts, config.MaxImageMB(), "portada", "image/"); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		p, err := services.SaveUpload(portada, "img")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo guardar la portada", "details": err.Error()})
			return
		}
		portadaPath = &p
	}

	album := models.Album{
		Titulo:     titulo,
		Precio:     precio,
		Date:       date,
		ImgPortada: portadaPath,
	}
	if err := db.Create(&album).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear el álbum", "details": err.Error()})
		return
	}

	// Solo el email del token, venga lo que venga en la petición
	if err := applyAlbumRelations(c, db, &album, genreNames, ids, []string{artistEmail}); err != nil {
		return
	}

	album2, err := loadAlbum(db, album.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, albumResponse(album2))
}
