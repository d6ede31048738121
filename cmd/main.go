package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/amartinp/contenido-backend/config"
	"github.com/amartinp/contenido-backend/routes"
	"github.com/amartinp/contenido-backend/services"
)

func main() {
	// Carga .env
	if err := godotenv.Load(); err != nil {
		log.Println("No se encontró el fichero .env")
	}

	config.InitDB()

	// Seed de géneros por defecto
	if err := services.EnsureSeedGenres(config.DB); err != nil {
		log.Fatal("No se pudieron crear los géneros iniciales: ", err)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r = routes.SetupRouter(r, config.DB)

	// Ficheros subidos: las rutas de BD son "uploads/..." y se sirven
	// públicamente bajo /files (ver services.PublicURL)
	r.Static("/files", filepath.Dir(config.UploadDir()))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Servidor escuchando en el puerto " + port)
	r.Run(":" + port)
}
