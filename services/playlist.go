package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/amartinp/contenido-backend/models"
)

var ErrPlaylistNoEncontrada = errors.New("playlist no encontrada")

// nextPosition devuelve 1 + max(position) de la playlist (0 si está vacía).
// Las posiciones crecen de forma monótona; borrar deja huecos a propósito.
func nextPosition(db *gorm.DB, playlistID uint) (int, error) {
	var maxPos *int
	err := db.Model(&models.PlaylistCancion{}).
		Where("playlist_id = ?", playlistID).
		Select("MAX(position)").Scan(&maxPos).Error
	if err != nil {
		return 0, err
	}
	if maxPos == nil {
		return 0, nil
	}
	return *maxPos + 1, nil
}

// CreatePlaylist crea una playlist para owner_ref con una lista inicial
// opcional de canciones. Los ids se validan en lote antes de escribir nada.
func CreatePlaylist(db *gorm.DB, ownerRef, name string, description *string, songIDs []uint) (*models.Playlist, error) {
	songs, err := ResolveSongs(db, songIDs)
	if err != nil {
		return nil, err
	}

	playlist := models.Playlist{
		OwnerRef:    ownerRef,
		Name:        name,
		Description: description,
	}
	if err := db.Create(&playlist).Error; err != nil {
		return nil, err
	}

	pos := 0
	for _, s := range songs {
		link := models.PlaylistCancion{
			PlaylistID: playlist.ID,
			CancionID:  s.ID,
			Position:   pos,
		}
		if err := db.Create(&link).Error; err != nil {
			return nil, err
		}
		pos++
	}

	return GetPlaylist(db, playlist.ID)
}

func GetPlaylist(db *gorm.DB, playlistID uint) (*models.Playlist, error) {
	var playlist models.Playlist
	err := db.Preload("Songs", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&playlist, "id = ?", playlistID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlaylistNoEncontrada
	}
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

func ListPlaylistsByOwner(db *gorm.DB, ownerRef string) ([]models.Playlist, error) {
	var playlists []models.Playlist
	err := db.Preload("Songs", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("owner_ref = ?", ownerRef).
		Order("created_at DESC").
		Find(&playlists).Error
	return playlists, err
}

// AppendPlaylistSong añade una canción al final. Si el par ya existe es un
// no-op que devuelve la playlist sin cambios (añadido idempotente).
func AppendPlaylistSong(db *gorm.DB, playlistID, songID uint) (*models.Playlist, error) {
	if _, err := GetPlaylist(db, playlistID); err != nil {
		return nil, err
	}

	if _, err := ResolveSongs(db, []uint{songID}); err != nil {
		return nil, err
	}

	var link models.PlaylistCancion
	err := db.Where("playlist_id = ? AND cancion_id = ?", playlistID, songID).
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		pos, err := nextPosition(db, playlistID)
		if err != nil {
			return nil, err
		}
		link = models.PlaylistCancion{
			PlaylistID: playlistID,
			CancionID:  songID,
			Position:   pos,
		}
		if err := db.Create(&link).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return GetPlaylist(db, playlistID)
}

// RemovePlaylistSong quita el enlace si existe; no-op si no está. Las
// posiciones restantes NO se renumeran: el orden sigue bien definido porque
// se comparan posiciones, no se exige contigüidad.
func RemovePlaylistSong(db *gorm.DB, playlistID, songID uint) (*models.Playlist, error) {
	if _, err := GetPlaylist(db, playlistID); err != nil {
		return nil, err
	}

	if err := db.Where("playlist_id = ? AND cancion_id = ?", playlistID, songID).
		Delete(&models.PlaylistCancion{}).Error; err != nil {
		return nil, err
	}

	return GetPlaylist(db, playlistID)
}

// UpdatePlaylist actualiza solo los campos presentes.
func UpdatePlaylist(db *gorm.DB, playlistID uint, name, description *string) (*models.Playlist, error) {
	playlist, err := GetPlaylist(db, playlistID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if description != nil {
		updates["description"] = *description
	}
	if len(updates) > 0 {
		if err := db.Model(&models.Playlist{}).Where("id = ?", playlistID).
			Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return GetPlaylist(db, playlist.ID)
}

func DeletePlaylist(db *gorm.DB, playlistID uint) error {
	if err := db.Where("playlist_id = ?", playlistID).Delete(&models.PlaylistCancion{}).Error; err != nil {
		return err
	}
	res := db.Delete(&models.Playlist{}, "id = ?", playlistID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPlaylistNoEncontrada
	}
	return nil
}
