package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amartinp/contenido-backend/models"
	"github.com/amartinp/contenido-backend/services"
)

func getDB(c *gin.Context) *gorm.DB {
	return c.MustGet("db").(*gorm.DB)
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " no válido"})
		return 0, false
	}
	return uint(n), true
}

// currentEmail saca el email verificado que dejó AuthMiddleware.
func currentEmail(c *gin.Context) (string, bool) {
	email := c.GetString("user_email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuario no identificado o token inválido"})
		return "", false
	}
	return email, true
}

// Al serializar, las rutas relativas de ficheros se reescriben al prefijo
// público; las URLs absolutas se dejan tal cual.
func cancionResponse(song *models.Cancion) gin.H {
	var portada interface{}
	if song.ImgPortada != nil && *song.ImgPortada != "" {
		portada = services.PublicURL(*song.ImgPortada)
	}

	return gin.H{
		"id":                 song.ID,
		"nomCancion":         song.NomCancion,
		"archivoMp3":         services.PublicURL(song.ArchivoMp3),
		"imgPortada":         portada,
		"date":               song.Date,
		"precio":             song.Precio,
		"numVisualizaciones": song.NumVisualizaciones,
		"numIngresos":        song.NumIngresos,
		"numLikes":           song.NumLikes,
		"duracionSec":        song.DuracionSec,
		"idAlbum":            song.IDAlbum,
		"generos":            song.Generos(),
		"artistas_emails":    song.ArtistasEmails(),
	}
}

func cancionesResponse(songs []models.Cancion) []gin.H {
	out := make([]gin.H, 0, len(songs))
	for i := range songs {
		out = append(out, cancionResponse(&songs[i]))
	}
	return out
}

func albumResponse(album *models.Album) gin.H {
	var portada interface{}
	if album.ImgPortada != nil && *album.ImgPortada != "" {
		portada = services.PublicURL(*album.ImgPortada)
	}

	return gin.H{
		"id":             album.ID,
		"titulo":         album.Titulo,
		"imgPortada":     portada,
		"date":           album.Date,
		"precio":         album.Precio,
		"generos":        album.Generos(),
		"artista_emails": album.ArtistasEmails(),
		"canciones_ids":  album.CancionIDs(),
		"canciones":      cancionesResponse(album.Canciones),
	}
}

func albumesResponse(albums []models.Album) []gin.H {
	out := make([]gin.H, 0, len(albums))
	for i := range albums {
		out = append(out, albumResponse(&albums[i]))
	}
	return out
}

func playlistResponse(playlist *models.Playlist) gin.H {
	songs := make([]gin.H, 0, len(playlist.Songs))
	for _, ps := range playlist.Songs {
		songs = append(songs, gin.H{
			"cancion_id": ps.CancionID,
			"position":   ps.Position,
		})
	}

	return gin.H{
		"id":          playlist.ID,
		"name":        playlist.Name,
		"description": playlist.Description,
		"owner_ref":   playlist.OwnerRef,
		"created_at":  playlist.CreatedAt,
		"updated_at":  playlist.UpdatedAt,
		"song_ids":    playlist.SongIDs(),
		"songs":       songs,
	}
}
