package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/amartinp/contenido-backend/models"
)

var DB *gorm.DB

// Extensiones permitidas en subidas
var (
	AllowedAudioExts = map[string]bool{".mp3": true, ".wav": true, ".flac": true, ".ogg": true}
	AllowedImageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}
)

func InitDB() {
	// Lee la configuración de las variables de entorno
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Europe/Madrid",
		dbHost, dbUser, dbPass, dbName, dbPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		// Necesario para detectar la carrera de compra duplicada como
		// gorm.ErrDuplicatedKey en vez de un error genérico del driver
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("No se pudo conectar a la base de datos:", err)
	}

	DB = db

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("No se pudo obtener sql.DB de gorm:", err)
	}

	// Connection pooling
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(DB); err != nil {
		log.Fatal("autoMigrate falló: ", err)
	}
	log.Println("postgreSQL conectado y migrado")
}

// Migrate registra el esquema completo del catálogo. Separado de InitDB para
// poder reutilizarlo con la BD en memoria de los tests.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Genre{},
		&models.Album{},
		&models.Cancion{},
		&models.CancionArtista{},
		&models.AlbumArtista{},
		&models.Playlist{},
		&models.PlaylistCancion{},
		&models.CompraCancion{},
		&models.CompraAlbum{},
		&models.Comentario{},
	)
}

// UploadDir devuelve el directorio base de subidas en disco
func UploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "static/uploads"
}

// FileBaseURL es el prefijo público con el que se sirven los ficheros
func FileBaseURL() string {
	if u := os.Getenv("FILE_BASE_URL"); u != "" {
		return u
	}
	return "http://localhost:8080/files"
}

// UsersBaseURL apunta al servicio externo de usuarios
func UsersBaseURL() string {
	if u := os.Getenv("USERS_BASE_URL"); u != "" {
		return u
	}
	return "http://localhost:8001"
}

func MaxAudioMB() int { return envInt("MAX_AUDIO_MB", 20) }
func MaxImageMB() int { return envInt("MAX_IMAGE_MB", 5) }

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
