package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/amartinp/contenido-backend/models"
)

// Géneros creados en el arranque. Es el único sitio donde se crean géneros
// implícitamente; el resto del sistema solo acepta nombres ya existentes.
var DefaultGenres = []string{"rock", "pop", "reggaeton", "hip hop", "electronic", "jazz", "classical"}

func EnsureSeedGenres(db *gorm.DB) error {
	var existing []string
	if err := db.Model(&models.Genre{}).Pluck("LOWER(name)", &existing).Error; err != nil {
		return err
	}

	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[name] = true
	}

	var toAdd []models.Genre
	for _, name := range DefaultGenres {
		if !have[strings.ToLower(name)] {
			toAdd = append(toAdd, models.Genre{Name: name})
		}
	}

	if len(toAdd) == 0 {
		return nil
	}
	return db.Create(&toAdd).Error
}
