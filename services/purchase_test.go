package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amartinp/contenido-backend/models"
)

func TestPurchaseSongIdempotente(t *testing.T) {
	db := testDB(t)
	song := seedSong(t, db, "uno", 1.99)

	first, err := PurchaseSong(db, song.ID, "a@x.com", nil)
	require.NoError(t, err)
	assert.Equal(t, 1.99, first.PricePaid)

	// Segunda compra: misma fila, sin tocar el precio almacenado
	otherPrice := 5.00
	second, err := PurchaseSong(db, song.ID, "a@x.com", &otherPrice)
	require.NoError(t, err)
	assert.Equal(t, first.PricePaid, second.PricePaid)
	assert.Equal(t, first.PurchasedAt.Unix(), second.PurchasedAt.Unix())

	var count int64
	require.NoError(t, db.Model(&models.CompraCancion{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPurchaseSongCapturaPrecioActual(t *testing.T) {
	db := testDB(t)
	song := seedSong(t, db, "uno", 2.50)

	compra, err := PurchaseSong(db, song.ID, "a@x.com", nil)
	require.NoError(t, err)
	assert.Equal(t, 2.50, compra.PricePaid)

	// Subir el precio después no altera la compra pasada
	require.NoError(t, db.Model(&models.Cancion{}).Where("id = ?", song.ID).
		Update("precio", 9.99).Error)

	again, err := PurchaseSong(db, song.ID, "a@x.com", nil)
	require.NoError(t, err)
	assert.Equal(t, 2.50, again.PricePaid)
}

func TestPurchaseSongNoExiste(t *testing.T) {
	db := testDB(t)

	_, err := PurchaseSong(db, 999, "a@x.com", nil)
	assert.ErrorIs(t, err, ErrCancionNoEncontrada)
}

func TestPurchaseSongCarreraDuplicada(t *testing.T) {
	db := testDB(t)
	song := seedSong(t, db, "uno", 3.00)

	// Simula la inserción concurrente que ganó la carrera
	require.NoError(t, db.Create(&models.CompraCancion{
		CancionID: song.ID,
		UserRef:   "a@x.com",
		PricePaid: 3.00,
	}).Error)

	// El perdedor debe resolver a la fila ganadora, no a un error, y su
	// resultado es el precio que quedó almacenado
	price := 7.00
	compra, err := PurchaseSong(db, song.ID, "a@x.com", &price)
	require.NoError(t, err)
	assert.Equal(t, 3.00, compra.PricePaid)

	var count int64
	require.NoError(t, db.Model(&models.CompraCancion{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestHasPurchaseYListados(t *testing.T) {
	db := testDB(t)
	s1 := seedSong(t, db, "uno", 1)
	s2 := seedSong(t, db, "dos", 2)

	_, err := PurchaseSong(db, s1.ID, "a@x.com", nil)
	require.NoError(t, err)

	ok, err := HasPurchase(db, s1.ID, "a@x.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = HasPurchase(db, s2.ID, "a@x.com")
	require.NoError(t, err)
	assert.False(t, ok)

	ids, err := ListUserSongIDs(db, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, []uint{s1.ID}, ids)

	count, err := CountSongPurchases(db, s1.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPurchaseAlbumSueloDePrecio(t *testing.T) {
	db := testDB(t)
	album := seedAlbum(t, db, "disco", 5.00)

	low := 1.00
	_, err := PurchaseAlbum(db, album.ID, "a@x.com", &low)
	assert.ErrorIs(t, err, ErrPrecioInferior)

	exact := 5.00
	compra, err := PurchaseAlbum(db, album.ID, "a@x.com", &exact)
	require.NoError(t, err)
	assert.Equal(t, 5.00, compra.PricePaid)
}

func TestPurchaseAlbumPrecioPorDefecto(t *testing.T) {
	db := testDB(t)
	album := seedAlbum(t, db, "disco", 5.00)

	compra, err := PurchaseAlbum(db, album.ID, "b@x.com", nil)
	require.NoError(t, err)
	assert.Equal(t, 5.00, compra.PricePaid)
}

func TestPurchaseAlbumImplicaCanciones(t *testing.T) {
	db := testDB(t)
	s1 := seedSong(t, db, "uno", 1.00)
	s2 := seedSong(t, db, "dos", 2.00)
	album := seedAlbum(t, db, "disco", 5.00, s1.ID, s2.ID)

	_, err := PurchaseAlbum(db, album.ID, "a@x.com", nil)
	require.NoError(t, err)

	for _, id := range []uint{s1.ID, s2.ID} {
		ok, err := HasPurchase(db, id, "a@x.com")
		require.NoError(t, err)
		assert.True(t, ok, "canción %d debería estar comprada", id)
	}

	// Cada canción al precio propio, no al del álbum
	var compra models.CompraCancion
	require.NoError(t, db.First(&compra, "cancion_id = ? AND user_ref = ?", s2.ID, "a@x.com").Error)
	assert.Equal(t, 2.00, compra.PricePaid)
}

func TestPurchaseAlbumIdempotente(t *testing.T) {
	db := testDB(t)
	album := seedAlbum(t, db, "disco", 5.00)

	first, err := PurchaseAlbum(db, album.ID, "a@x.com", nil)
	require.NoError(t, err)

	big := 50.0
	second, err := PurchaseAlbum(db, album.ID, "a@x.com", &big)
	require.NoError(t, err)
	assert.Equal(t, first.PricePaid, second.PricePaid)

	var count int64
	require.NoError(t, db.Model(&models.CompraAlbum{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPurchaseAlbumNoExiste(t *testing.T) {
	db := testDB(t)

	_, err := PurchaseAlbum(db, 42, "a@x.com", nil)
	assert.ErrorIs(t, err, ErrAlbumNoEncontrado)
}

func TestCheckMultiple(t *testing.T) {
	db := testDB(t)
	s1 := seedSong(t, db, "uno", 1)
	s2 := seedSong(t, db, "dos", 1)
	s3 := seedSong(t, db, "tres", 1)

	_, err := PurchaseSong(db, s1.ID, "a@x.com", nil)
	require.NoError(t, err)
	_, err = PurchaseSong(db, s3.ID, "a@x.com", nil)
	require.NoError(t, err)

	owned, missing, err := CheckMultiple(db, "a@x.com", []uint{s1.ID, s2.ID, s3.ID})
	require.NoError(t, err)
	assert.Equal(t, []uint{s1.ID, s3.ID}, owned)
	assert.Equal(t, []uint{s2.ID}, missing)
}

func TestCheckMultipleVacio(t *testing.T) {
	db := testDB(t)

	owned, missing, err := CheckMultiple(db, "nadie@x.com", nil)
	require.NoError(t, err)
	assert.Empty(t, owned)
	assert.Empty(t, missing)
}
