package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/amartinp/contenido-backend/config"
	"github.com/amartinp/contenido-backend/models"
	"github.com/amartinp/contenido-backend/routes"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Identidades que reconoce el doble del servicio de usuarios.
var testIdentities = map[string]string{
	"token-ana":   `{"user_type":"user","user_data":{"email":"ana@x.com","nombre":"Ana"}}`,
	"token-pedro": `{"user_type":"user","user_data":{"email":"pedro@x.com"}}`,
	"token-luisa": `{"user_type":"artist","user_data":{"email":"luisa@x.com","nombre":"Luisa"}}`,
}

// testServer levanta el router completo sobre sqlite en memoria y un doble
// HTTP del servicio de usuarios (ver services.VerifyIdentity).
func testServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// :memory: crea una BD por conexión
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))

	users := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/me" {
			http.NotFound(w, r)
			return
		}
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		body, ok := testIdentities[token]
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(users.Close)
	t.Setenv("USERS_BASE_URL", users.URL)

	return routes.SetupRouter(gin.New(), db), db
}

// doJSON lanza una petición contra el router; token vacío = sin Authorization.
func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "cuerpo: %s", w.Body.String())
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

func seedGenre(t *testing.T, db *gorm.DB, name string) models.Genre {
	t.Helper()
	g := models.Genre{Name: name}
	require.NoError(t, db.Create(&g).Error)
	return g
}
