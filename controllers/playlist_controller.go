package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amartinp/contenido-backend/services"
)

// GET /api/playlists — playlists del usuario autenticado
func ListMyPlaylists(c *gin.Context) {
	email, ok := currentEmail(c)
	if !ok {
		return
	}
	db := getDB(c)

	playlists, err := services.ListPlaylistsByOwner(db, email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(playlists))
	for i := range playlists {
		out = append(out, playlistResponse(&playlists[i]))
	}
	c.JSON(http.StatusOK, out)
}

type playlistCreateRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	SongIDs     []uint  `json:"song_ids"`
}

// POST /api/playlists
func CreatePlaylist(c *gin.Context) {
	var req playlistCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email, ok := currentEmail(c)
	if !ok {
		return
	}
	db := getDB(c)

	playlist, err := services.CreatePlaylist(db, email, req.Name, req.Description, req.SongIDs)
	if err != nil {
		var unknown *services.UnknownSongsError
		if errors.As(err, &unknown) {
			c.JSON(http.StatusBadRequest, gin.H{"error": unknown.Error(), "canciones_no_encontradas": unknown.IDs})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, playlistResponse(playlist))
}

// ownPlaylist carga la playlist y comprueba que el email verificado coincide
// con owner_ref. Escribe la respuesta de error si no.
func ownPlaylist(c *gin.Context, playlistID uint) (string, bool) {
	email, ok := currentEmail(c)
	if !ok {
		return "", false
	}
	db := getDB(c)

	playlist, err := services.GetPlaylist(db, playlistID)
	if err != nil {
		if errors.Is(err, services.ErrPlaylistNoEncontrada) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Playlist no encontrada"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return "", false
	}

	if playlist.OwnerRef != email {
		c.JSON(http.StatusForbidden, gin.H{"error": "No puedes acceder a esta playlist"})
		return "", false
	}

	return email, true
}

// GET /api/playlists/:id
func GetPlaylist(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := ownPlaylist(c, id); !ok {
		return
	}

	playlist, err := services.GetPlaylist(getDB(c), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, playlistResponse(playlist))
}

type playlistUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// PATCH /api/playlists/:id
func UpdatePlaylist(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req playlistUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := ownPlaylist(c, id); !ok {
		return
	}

	playlist, err := services.UpdatePlaylist(getDB(c), id, req.Name, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, playlistResponse(playlist))
}

// DELETE /api/playlists/:id
func DeletePlaylist(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := ownPlaylist(c, id); !ok {
		return
	}

	if err := services.DeletePlaylist(getDB(c), id); err != nil {
		if errors.Is(err, services.ErrPlaylistNoEncontrada) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Playlist no encontrada"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

type playlistAddSongRequest struct {
	SongID uint `json:"song_id" binding:"required"`
}

// POST /api/playlists/:id/songs
// Añadido idempotente: si la canción ya está, la playlist vuelve sin cambios.
func AddPlaylistSong(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req playlistAddSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := ownPlaylist(c, id); !ok {
		return
	}

	playlist, err := services.AppendPlaylistSong(getDB(c), id, req.SongID)
	if err != nil {
		var unknown *services.UnknownSongsError
		if errors.As(err, &unknown) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Canción no encontrada", "canciones_no_encontradas": unknown.IDs})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, playlistResponse(playlist))
}

// DELETE /api/playlists/:id/songs/:song_id
func RemovePlaylistSong(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	songID, ok := parseIDParam(c, "song_id")
	if !ok {
		return
	}

	if _, ok := ownPlaylist(c, id); !ok {
		return
	}

	playlist, err := services.RemovePlaylistSong(getDB(c), id, songID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, playlistResponse(playlist))
}
