package services

import (
	"fmt"
	"sort"

	"github.com/amartinp/contenido-backend/models"
)

// NotOwnerError lista TODAS las canciones que no pertenecen al artista, no
// solo la primera.
type NotOwnerError struct {
	IDs []uint
}

func (e *NotOwnerError) Error() string {
	return fmt.Sprintf("No puedes incluir canciones que no son tuyas: %v", e.IDs)
}

// AssertSongsOwnedBy comprueba que el email del artista figura entre los
// enlaces de artista de todas las canciones dadas. Se usa en la creación
// self-serve de álbumes: un artista solo agrupa canciones propias.
func AssertSongsOwnedBy(songs []models.Cancion, artistEmail string) error {
	var notOwned []uint
	for _, s := range songs {
		owned := false
		for _, ref := range s.Artistas {
			if ref.ArtistaEmail == artistEmail {
				owned = true
				break
			}
		}
		if !owned {
			notOwned = append(notOwned, s.ID)
		}
	}
	if len(notOwned) > 0 {
		sort.Slice(notOwned, func(i, j int) bool { return notOwned[i] < notOwned[j] })
		return &NotOwnerError{IDs: notOwned}
	}
	return nil
}
