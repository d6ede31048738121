package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amartinp/contenido-backend/models"
)

func TestAppendPlaylistSongPosiciones(t *testing.T) {
	db := testDB(t)
	s7 := seedSong(t, db, "siete", 1)
	s9 := seedSong(t, db, "nueve", 1)

	playlist, err := CreatePlaylist(db, "a@x.com", "mi lista", nil, nil)
	require.NoError(t, err)

	// Primera canción: posición 0
	playlist, err = AppendPlaylistSong(db, playlist.ID, s7.ID)
	require.NoError(t, err)
	require.Len(t, playlist.Songs, 1)
	assert.Equal(t, 0, playlist.Songs[0].Position)

	// Repetir es un no-op: sigue habiendo un enlace en posición 0
	playlist, err = AppendPlaylistSong(db, playlist.ID, s7.ID)
	require.NoError(t, err)
	require.Len(t, playlist.Songs, 1)
	assert.Equal(t, 0, playlist.Songs[0].Position)

	// La siguiente canción va detrás
	playlist, err = AppendPlaylistSong(db, playlist.ID, s9.ID)
	require.NoError(t, err)
	require.Len(t, playlist.Songs, 2)
	assert.Equal(t, 1, playlist.Songs[1].Position)
	assert.Equal(t, s9.ID, playlist.Songs[1].CancionID)
}

func TestRemovePlaylistSongDejaHuecos(t *testing.T) {
	db := testDB(t)
	s1 := seedSong(t, db, "uno", 1)
	s2 := seedSong(t, db, "dos", 1)
	s3 := seedSong(t, db, "tres", 1)

	playlist, err := CreatePlaylist(db, "a@x.com", "lista", nil, []uint{s1.ID, s2.ID, s3.ID})
	require.NoError(t, err)
	require.Len(t, playlist.Songs, 3)

	// Quitar la del medio NO renumera las demás
	playlist, err = RemovePlaylistSong(db, playlist.ID, s2.ID)
	require.NoError(t, err)
	require.Len(t, playlist.Songs, 2)
	assert.Equal(t, 0, playlist.Songs[0].Position)
	assert.Equal(t, 2, playlist.Songs[1].Position)

	// Añadir después del hueco sigue siendo monótono (max+1)
	playlist, err = AppendPlaylistSong(db, playlist.ID, s2.ID)
	require.NoError(t, err)
	require.Len(t, playlist.Songs, 3)
	assert.Equal(t, 3, playlist.Songs[2].Position)
}

func TestRemovePlaylistSongAusenteEsNoOp(t *testing.T) {
	db := testDB(t)
	s1 := seedSong(t, db, "uno", 1)

	playlist, err := CreatePlaylist(db, "a@x.com", "lista", nil, []uint{s1.ID})
	require.NoError(t, err)

	playlist, err = RemovePlaylistSong(db, playlist.ID, 999)
	require.NoError(t, err)
	assert.Len(t, playlist.Songs, 1)
}

func TestCreatePlaylistValidaCanciones(t *testing.T) {
	db := testDB(t)

	_, err := CreatePlaylist(db, "a@x.com", "lista", nil, []uint{123})
	require.Error(t, err)

	var unknown *UnknownSongsError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, []uint{123}, unknown.IDs)

	// Fail-fast: no quedó ninguna playlist a medias
	var count int64
	require.NoError(t, db.Model(&models.Playlist{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestAppendPlaylistSongDesconocida(t *testing.T) {
	db := testDB(t)

	playlist, err := CreatePlaylist(db, "a@x.com", "lista", nil, nil)
	require.NoError(t, err)

	_, err = AppendPlaylistSong(db, playlist.ID, 555)
	var unknown *UnknownSongsError
	require.ErrorAs(t, err, &unknown)
}

func TestDeletePlaylistBorraEnlaces(t *testing.T) {
	db := testDB(t)
	s1 := seedSong(t, db, "uno", 1)

	playlist, err := CreatePlaylist(db, "a@x.com", "lista", nil, []uint{s1.ID})
	require.NoError(t, err)

	require.NoError(t, DeletePlaylist(db, playlist.ID))

	var links int64
	require.NoError(t, db.Model(&models.PlaylistCancion{}).Count(&links).Error)
	assert.Equal(t, int64(0), links)

	// La canción sobrevive
	var song models.Cancion
	assert.NoError(t, db.First(&song, "id = ?", s1.ID).Error)
}
