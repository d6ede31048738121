package controllers

import (
	"errors"
	"net/http"
	"path/filepath"
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

// POST /api/canciones (multipart)
// Subida de canción suelta: audio obligatorio, portada opcional.
func CreateSongWithUpload(c *gin.Context) {
	db := getDB(c)

	identity, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuario no identificado"})
		return
	}

	nomCancion := c.PostForm("nomCancion")
	if strings.TrimSpace(nomCancion) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nomCancion es obligatorio"})
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

	var idAlbum *uint
	if v := c.PostForm("idAlbum"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "idAlbum no válido"})
			return
		}
		id := uint(n)
		idAlbum = &id
	}

	artistasEmails := c.PostFormArray("artistas_emails")

	// Si sube un artista, la canción queda enlazada a su propio email; no
	// puede publicar en nombre de otro artista.
	if identity.IsArtist() {
		if len(artistasEmails) == 0 {
			artistasEmails = []string{identity.Email()}
		} else {
			propio := false
			for _, e := range artistasEmails {
				if e == identity.Email() {
					propio = true
					break
				}
			}
			if !propio {
				c.JSON(http.StatusForbidden, gin.H{"error": "No puedes subir en nombre de otro artista"})
				return
			}
		}
	}

	// Géneros: acepta "genres" repetido y "genre" suelto por compatibilidad
	genreNames := c.PostFormArray("genres")
	if g := c.PostForm("genre"); g != "" {
		genreNames = append(genreNames, g)
	}

	genres, err := services.ResolveGenres(db, genreNames)
	if err != nil {
		var unknown *services.UnknownGenresError
		if errors.As(err, &unknown) {
			c.JSON(http.StatusBadRequest, gin.H{"error": unknown.Error(), "generos_no_validos": unknown.Names})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	audio, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Falta el fichero de audio"})
		return
	}
	if err := utils.ValidateUpload(audio, config.AllowedAudioExts, config.MaxAudioMB(), "audio", "audio/"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	portada, _ := c.FormFile("portada")
	if portada != nil {
		if err := utils.ValidateUpload(portada, config.AllowedImageExts, config.MaxImageMB(), "portada", "image/"); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	// Duración solo para mp3; el resto de formatos se quedan en 0
	duracionSec := 0
	if strings.ToLower(filepath.Ext(audio.Filename)) == ".mp3" {
		if f, err := audio.Open(); err == nil {
			if dur, err := services.GetMP3Duration(f); err == nil {
				duracionSec = int(dur)
			}
			f.Close()
		}
	}

	audioPath, err := services.SaveUpload(audio, "audio")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo guardar el audio", "details": err.Error()})
		return
	}

	var portadaPath *string
	if portada != nil {
		p, err := services.SaveUpload(portada, "img")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo guardar la portada", "details": err.Error()})
			return
		}
		portadaPath = &p
	}

	song := models.Cancion{
		NomCancion:  nomCancion,
		ArchivoMp3:  audioPath,
		ImgPortada:  portadaPath,
		Date:        date,
		Precio:      precio,
		DuracionSec: duracionSec,
		IDAlbum:     idAlbum,
	}
	if err := db.Create(&song).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear la canción", "details": err.Error()})
		return
	}

	if len(genres) > 0 {
		if err := db.Model(&song).Association("Genres").Replace(&genres); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		song.Genres = genres
	}

	if err := services.SetSongArtists(db, &song, artistasEmails); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, cancionResponse(&song))
}
