package services

import (
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/amartinp/contenido-backend/models"
)

// Error de validación en lote: lista TODOS los nombres de género que no
// existen, no solo el primero.
type UnknownGenresError struct {
	Names []string
}

func (e *UnknownGenresError) Error() string {
	return fmt.Sprintf("Géneros no válidos: %v", e.Names)
}

// Lo mismo para IDs de canciones desconocidos.
type UnknownSongsError struct {
	IDs []uint
}

func (e *UnknownSongsError) Error() string {
	return fmt.Sprintf("Las siguientes canciones no existen: %v", e.IDs)
}

// ResolveGenres normaliza los nombres recibidos (trim + minúsculas para la
// búsqueda) y devuelve las filas Genre existentes. Si algún nombre no
// corresponde a un género, falla con UnknownGenresError listando todos los
// que faltan. Nunca crea géneros.
func ResolveGenres(db *gorm.DB, names []string) ([]models.Genre, error) {
	seen := make(map[string]bool)
	var norm []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		lower := strings.ToLower(name)
		if !seen[lower] {
			seen[lower] = true
			norm = append(norm, lower)
		}
	}
	if len(norm) == 0 {
		return nil, nil
	}

	var found []models.Genre
	if err := db.Where("LOWER(name) IN ?", norm).Find(&found).Error; err != nil {
		return nil, err
	}

	if len(found) != len(norm) {
		have := make(map[string]bool, len(found))
		for _, g := range found {
			have[strings.ToLower(g.Name)] = true
		}
		var missing []string
		for _, name := range norm {
			if !have[name] {
				missing = append(missing, name)
			}
		}
		sort.Strings(missing)
		return nil, &UnknownGenresError{Names: missing}
	}

	return found, nil
}

// ResolveSongs busca canciones por id y falla con UnknownSongsError si falta
// alguna, listando todos los ids ausentes.
func ResolveSongs(db *gorm.DB, ids []uint) ([]models.Cancion, error) {
	uniq := make(map[uint]bool)
	var wanted []uint
	for _, id := range ids {
		if !uniq[id] {
			uniq[id] = true
			wanted = append(wanted, id)
		}
	}
	if len(wanted) == 0 {
		return nil, nil
	}

	var songs []models.Cancion
	if err := db.Preload("Genres").Preload("Artistas").Where("id IN ?", wanted).Find(&songs).Error; err != nil {
		return nil, err
	}

	if len(songs) != len(wanted) {
		have := make(map[uint]bool, len(songs))
		for _, s := range songs {
			have[s.ID] = true
		}
		var missing []uint
		for _, id := range wanted {
			if !have[id] {
				missing = append(missing, id)
			}
		}
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		return nil, &UnknownSongsError{IDs: missing}
	}

	return songs, nil
}

// dedupeEmails conserva el orden de la primera aparición
func dedupeEmails(emails []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range emails {
		e = strings.TrimSpace(e)
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// SetSongArtists reemplaza el conjunto completo de enlaces de artista de una
// canción. No se valida contra ningún directorio: la identidad del artista
// es externa y cualquier email es una referencia válida.
func SetSongArtists(db *gorm.DB, song *models.Cancion, emails []string) error {
	if err := db.Where("cancion_id = ?", song.ID).Delete(&models.CancionArtista{}).Error; err != nil {
		return err
	}
	links := make([]models.CancionArtista, 0)
	for _, e := range dedupeEmails(emails) {
		links = append(links, models.CancionArtista{CancionID: song.ID, ArtistaEmail: e})
	}
	if len(links) > 0 {
		if err := db.Create(&links).Error; err != nil {
			return err
		}
	}
	song.Artistas = links
	return nil
}

// SetAlbumArtists reemplaza los enlaces de artista de un álbum.
func SetAlbumArtists(db *gorm.DB, album *models.Album, emails []string) error {
	if err := db.Where("album_id = ?", album.ID).Delete(&models.AlbumArtista{}).Error; err != nil {
		return err
	}
	links := make([]models.AlbumArtista, 0)
	for _, e := range dedupeEmails(emails) {
		links = append(links, models.AlbumArtista{AlbumID: album.ID, ArtistaEmail: e})
	}
	if len(links) > 0 {
		if err := db.Create(&links).Error; err != nil {
			return err
		}
	}
	album.Artistas = links
	return nil
}

// ReplaceSongGenres valida y reemplaza la asociación completa canción-género.
func ReplaceSongGenres(db *gorm.DB, song *models.Cancion, names []string) error {
	genres, err := ResolveGenres(db, names)
	if err != nil {
		return err
	}
	if err := db.Model(song).Association("Genres").Replace(&genres); err != nil {
		return err
	}
	song.Genres = genres
	return nil
}

// ReplaceAlbumGenres valida y reemplaza la asociación completa álbum-género.
func ReplaceAlbumGenres(db *gorm.DB, album *models.Album, names []string) error {
	genres, err := ResolveGenres(db, names)
	if err != nil {
		return err
	}
	if err := db.Model(album).Association("Genres").Replace(&genres); err != nil {
		return err
	}
	album.Genres = genres
	return nil
}

// ReplaceAlbumSongs reemplaza la pertenencia de canciones del álbum: las que
// salen solo pierden su id_album, nunca se borran.
func ReplaceAlbumSongs(db *gorm.DB, album *models.Album, songIDs []uint) error {
	songs, err := ResolveSongs(db, songIDs)
	if err != nil {
		return err
	}

	// Desvincular los miembros actuales que no están en la nueva lista
	keep := make(map[uint]bool, len(songs))
	for _, s := range songs {
		keep[s.ID] = true
	}
	var current []models.Cancion
	if err := db.Where("id_album = ?", album.ID).Find(&current).Error; err != nil {
		return err
	}
	for _, s := range current {
		if !keep[s.ID] {
			if err := db.Model(&models.Cancion{}).Where("id = ?", s.ID).
				Update("id_album", nil).Error; err != nil {
				return err
			}
		}
	}

	if len(songs) > 0 {
		ids := make([]uint, 0, len(songs))
		for _, s := range songs {
			ids = append(ids, s.ID)
		}
		if err := db.Model(&models.Cancion{}).Where("id IN ?", ids).
			Update("id_album", album.ID).Error; err != nil {
			return err
		}
	}

	album.Canciones = songs
	return nil
}
