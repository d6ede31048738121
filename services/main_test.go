package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/amartinp/contenido-backend/config"
	"github.com/amartinp/contenido-backend/models"
)

// BD en memoria por test. MaxOpenConns(1) porque :memory: crea una BD nueva
// por conexión.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

func seedGenre(t *testing.T, db *gorm.DB, name string) models.Genre {
	t.Helper()
	g := models.Genre{Name: name}
	require.NoError(t, db.Create(&g).Error)
	return g
}

func seedSong(t *testing.T, db *gorm.DB, name string, precio float64) models.Cancion {
	t.Helper()
	s := models.Cancion{NomCancion: name, ArchivoMp3: "uploads/audio/" + name + ".mp3", Precio: precio}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func seedAlbum(t *testing.T, db *gorm.DB, titulo string, precio float64, songIDs ...uint) models.Album {
	t.Helper()
	a := models.Album{Titulo: titulo, Precio: precio}
	require.NoError(t, db.Create(&a).Error)
	if len(songIDs) > 0 {
		require.NoError(t, db.Model(&models.Cancion{}).Where("id IN ?", songIDs).
			Update("id_album", a.ID).Error)
	}
	return a
}
