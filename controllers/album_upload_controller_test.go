package controllers_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amartinp/contenido-backend/models"
)

// doForm manda un multipart sin ficheros (solo campos).
func doForm(r *gin.Engine, method, path, token string, fields map[string][]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, values := range fields {
		for _, v := range values {
			mw.WriteField(name, v)
		}
	}
	mw.Close()

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAlbumSelfServe(t *testing.T) {
	r, db := testServer(t)
	s1 := seedSong(t, db, "uno", 1)
	require.NoError(t, db.Create(&models.CancionArtista{
		CancionID: s1.ID, ArtistaEmail: "luisa@x.com",
	}).Error)

	w := doForm(r, "POST", "/api/albumes", "token-luisa", map[string][]string{
		"titulo":        {"mi disco"},
		"precio":        {"6.00"},
		"canciones_ids": {fmt.Sprintf("%d", s1.ID)},
		// El cliente intenta colar otro artista: se ignora
		"artista_emails": {"otro@x.com"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res struct {
		ArtistaEmails []string `json:"artista_emails"`
		CancionesIDs  []uint   `json:"canciones_ids"`
	}
	decodeBody(t, w, &res)
	assert.Equal(t, []string{"luisa@x.com"}, res.ArtistaEmails)
	assert.Equal(t, []uint{s1.ID}, res.CancionesIDs)
}

func TestCreateAlbumSelfServeSoloArtistas(t *testing.T) {
	r, _ := testServer(t)

	w := doForm(r, "POST", "/api/albumes", "token-ana", map[string][]string{
		"titulo": {"disco"},
		"precio": {"5"},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateAlbumSelfServeCancionesAjenas(t *testing.T) {
	r, db := testServer(t)
	propia := seedSong(t, db, "propia", 1)
	ajena := seedSong(t, db, "ajena", 1)
	require.NoError(t, db.Create(&models.CancionArtista{
		CancionID: propia.ID, ArtistaEmail: "luisa@x.com",
	}).Error)
	require.NoError(t, db.Create(&models.CancionArtista{
		CancionID: ajena.ID, ArtistaEmail: "otro@x.com",
	}).Error)

	w := doForm(r, "POST", "/api/albumes", "token-luisa", map[string][]string{
		"titulo":        {"disco"},
		"precio":        {"5"},
		"canciones_ids": {fmt.Sprintf("%d,%d", propia.ID, ajena.ID)},
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	var res struct {
		Ajenas []uint `json:"canciones_ajenas"`
	}
	decodeBody(t, w, &res)
	assert.Equal(t, []uint{ajena.ID}, res.Ajenas)

	// Rollback: no quedó álbum a medias
	var count int64
	require.NoError(t, db.Model(&models.Album{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
