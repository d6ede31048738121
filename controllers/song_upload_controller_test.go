package controllers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// doUpload manda un multipart con campos y un fichero adjunto.
func doUpload(t *testing.T, r *gin.Engine, path, token string, fields map[string]string, fileField, fileName, fileCtype string, fileBody []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, v := range fields {
		require.NoError(t, mw.WriteField(name, v))
	}

	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="`+fileField+`"; filename="`+fileName+`"`)
	h.Set("Content-Type", fileCtype)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(fileBody)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateSongWithUpload(t *testing.T) {
	r, db := testServer(t)
	t.Setenv("UPLOAD_DIR", t.TempDir())
	seedGenre(t, db, "rock")

	w := doUpload(t, r, "/api/canciones", "token-luisa", map[string]string{
		"nomCancion": "mi tema",
		"precio":     "1.99",
		"genre":      "rock",
	}, "audio", "mi tema.mp3", "audio/mpeg", []byte("no es un mp3 de verdad"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res struct {
		NomCancion     string   `json:"nomCancion"`
		ArchivoMp3     string   `json:"archivoMp3"`
		Precio         float64  `json:"precio"`
		Generos        []string `json:"generos"`
		ArtistasEmails []string `json:"artistas_emails"`
	}
	decodeBody(t, w, &res)
	assert.Equal(t, "mi tema", res.NomCancion)
	assert.Equal(t, 1.99, res.Precio)
	assert.Equal(t, []string{"rock"}, res.Generos)
	// Sin lista explícita, la canción queda a nombre del artista del token
	assert.Equal(t, []string{"luisa@x.com"}, res.ArtistasEmails)
	// La ruta guardada se sirve bajo el prefijo público
	assert.Contains(t, res.ArchivoMp3, "/files/uploads/audio/")
	assert.True(t, strings.HasSuffix(res.ArchivoMp3, ".mp3"), res.ArchivoMp3)
}

func TestCreateSongEnNombreDeOtroArtista(t *testing.T) {
	r, _ := testServer(t)
	t.Setenv("UPLOAD_DIR", t.TempDir())

	w := doUpload(t, r, "/api/canciones", "token-luisa", map[string]string{
		"nomCancion":      "tema",
		"precio":          "1",
		"artistas_emails": "otro@x.com",
	}, "audio", "tema.mp3", "audio/mpeg", []byte("x"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateSongSinAudio(t *testing.T) {
	r, _ := testServer(t)

	w := doForm(r, "POST", "/api/canciones", "token-ana", map[string][]string{
		"nomCancion": {"tema"},
		"precio":     {"1"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSongExtensionNoPermitida(t *testing.T) {
	r, _ := testServer(t)
	t.Setenv("UPLOAD_DIR", t.TempDir())

	w := doUpload(t, r, "/api/canciones", "token-ana", map[string]string{
		"nomCancion": "tema",
		"precio":     "1",
	}, "audio", "tema.pdf", "audio/mpeg", []byte("x"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
