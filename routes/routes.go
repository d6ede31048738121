package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amartinp/contenido-backend/controllers"
	"github.com/amartinp/contenido-backend/middleware"
)

func SetupRouter(r *gin.Engine, db *gorm.DB) *gin.Engine {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")
	api.Use(middleware.DBMiddleware(db))

	auth := middleware.AuthMiddleware()
	// Las rutas que escriben van dentro de una transacción por petición
	tx := middleware.Transaction(db)

	// Canciones
	api.GET("/canciones", controllers.ListSongs)
	api.GET("/canciones/artista", controllers.GetSongsByArtist)
	api.GET("/canciones/:id", controllers.GetSong)
	api.POST("/canciones", auth, tx, controllers.CreateSongWithUpload)
	api.PUT("/canciones/:id", tx, controllers.UpdateSong)
	api.PATCH("/canciones/:id/precio", tx, controllers.UpdateSongPrice)
	api.POST("/canciones/:id/visualizaciones", tx, controllers.IncrementSongViews)
	api.DELETE("/canciones/:id", tx, controllers.DeleteSong)

	// Álbumes
	api.GET("/albumes", controllers.ListAlbums)
	api.GET("/albumes/artista", controllers.GetAlbumsByArtist)
	api.GET("/albumes/:id", controllers.GetAlbum)
	api.GET("/albumes/:id/canciones", controllers.ListAlbumSongs)
	api.POST("/albumes", auth, tx, controllers.CreateAlbumWithUpload)
	api.PUT("/albumes/:id", tx, controllers.UpdateAlbum)
	api.PATCH("/albumes/:id/precio", tx, controllers.UpdateAlbumPrice)
	api.DELETE("/albumes/:id", tx, controllers.DeleteAlbum)

	// Superficie admin: crea álbumes con cualquier lista de artistas, sin
	// comprobación de propiedad (contrato distinto al self-serve)
	admin := api.Group("/admin")
	{
		admin.POST("/albumes", tx, controllers.CreateAlbumAdmin)
	}

	// Compras
	api.POST("/compras", auth, tx, controllers.CreatePurchase)
	api.GET("/compras", controllers.ListPurchasedSongIDs)
	api.GET("/compras/check", controllers.CheckPurchase)
	api.GET("/compras/count", controllers.CountSongPurchases)
	api.GET("/compras/albumes", controllers.ListPurchasedAlbumIDs)
	api.POST("/compras/check-multiple", controllers.CheckMultiplePurchases)
	api.POST("/albumes/:id/compras", auth, tx, controllers.PurchaseAlbum)

	// Playlists (siempre del usuario autenticado)
	playlists := api.Group("/playlists")
	playlists.Use(auth)
	{
		playlists.GET("", controllers.ListMyPlaylists)
		playlists.POST("", tx, controllers.CreatePlaylist)
		playlists.GET("/:id", controllers.GetPlaylist)
		playlists.PATCH("/:id", tx, controllers.UpdatePlaylist)
		playlists.DELETE("/:id", tx, controllers.DeletePlaylist)
		playlists.POST("/:id/songs", tx, controllers.AddPlaylistSong)
		playlists.DELETE("/:id/songs/:song_id", tx, controllers.RemovePlaylistSong)
	}

	// Comentarios
	api.GET("/canciones/:id/comentarios", controllers.ListSongComments)
	api.POST("/canciones/:id/comentarios", auth, tx, controllers.CreateSongComment)
	api.GET("/albumes/:id/comentarios", controllers.ListAlbumComments)
	api.POST("/albumes/:id/comentarios", auth, tx, controllers.CreateAlbumComment)

	// Géneros
	api.GET("/generos", controllers.ListGenres)

	return r
}
