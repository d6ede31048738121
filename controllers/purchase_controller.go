package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amartinp/contenido-backend/services"
)

type compraCreateRequest struct {
	SongID    uint     `json:"song_id" binding:"required"`
	UserRef   string   `json:"user_ref"`
	PricePaid *float64 `json:"price_paid"`
}

// POST /api/compras
// El user_ref efectivo es siempre el email verificado del token; si el
// cliente manda user_ref debe coincidir.
func CreatePurchase(c *gin.Context) {
	var req compraCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email, ok := currentEmail(c)
	if !ok {
		return
	}
	if req.UserRef != "" && req.UserRef != email {
		c.JSON(http.StatusForbidden, gin.H{"error": "No puedes comprar en nombre de otro usuario"})
		return
	}
	if req.PricePaid != nil && *req.PricePaid < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price_paid no puede ser negativo"})
		return
	}

	db := getDB(c)

	compra, err := services.PurchaseSong(db, req.SongID, email, req.PricePaid)
	if err != nil {
		if errors.Is(err, services.ErrCancionNoEncontrada) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Canción no encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, compra)
}

// GET /api/compras?user_ref=...
func ListPurchasedSongIDs(c *gin.Context) {
	userRef := c.Query("user_ref")
	if userRef == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Falta el parámetro user_ref"})
		return
	}
	db := getDB(c)

	ids, err := services.ListUserSongIDs(db, userRef)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ids)
}

// GET /api/compras/check?user_ref=...&song_id=...
func CheckPurchase(c *gin.Context) {
	userRef := c.Query("user_ref")
	songIDStr := c.Query("song_id")
	if userRef == "" || songIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Faltan los parámetros user_ref y song_id"})
		return
	}
	songID, err := strconv.ParseUint(songIDStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "song_id no válido"})
		return
	}

	db := getDB(c)

	purchased, err := services.HasPurchase(db, uint(songID), userRef)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"purchased": purchased})
}

// GET /api/compras/count?song_id=...
func CountSongPurchases(c *gin.Context) {
	songIDStr := c.Query("song_id")
	if songIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Falta el parámetro song_id"})
		return
	}
	songID, err := strconv.ParseUint(songIDStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "song_id no válido"})
		return
	}

	db := getDB(c)

	count, err := services.CountSongPurchases(db, uint(songID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"song_id": songID, "count": count})
}

type checkMultipleRequest struct {
	UserRef string `json:"user_ref" binding:"required"`
	SongIDs []uint `json:"song_ids" binding:"required"`
}

// POST /api/compras/check-multiple
// Divide song_ids en compradas / no compradas. Útil para saber si un usuario
// ya posee todas las canciones de un álbum sin más viajes.
func CheckMultiplePurchases(c *gin.Context) {
	var req checkMultipleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := getDB(c)

	owned, missing, err := services.CheckMultiple(db, req.UserRef, req.SongIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"owned": owned, "missing": missing})
}

type compraAlbumCreateRequest struct {
	PricePaid *float64 `json:"price_paid"`
}

// POST /api/albumes/:id/compras
// Compra de álbum completo (pay-what-you-want con suelo en el precio del
// álbum). Tras registrarla se asegura la compra de cada canción miembro.
func PurchaseAlbum(c *gin.Context) {
	albumID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// El cuerpo es opcional: sin price_paid se paga el precio de lista
	var req compraAlbumCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email, ok := currentEmail(c)
	if !ok {
		return
	}

	db := getDB(c)

	compra, err := services.PurchaseAlbum(db, albumID, email, req.PricePaid)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlbumNoEncontrado):
			c.JSON(http.StatusNotFound, gin.H{"error": "Álbum no encontrado"})
		case errors.Is(err, services.ErrPrecioInferior):
			c.JSON(http.StatusBadRequest, gin.H{"error": "El precio pagado es inferior al mínimo"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, compra)
}

// GET /api/compras/albumes?user_ref=...
func ListPurchasedAlbumIDs(c *gin.Context) {
	userRef := c.Query("user_ref")
	if userRef == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Falta el parámetro user_ref"})
		return
	}
	db := getDB(c)

	ids, err := services.ListUserAlbumIDs(db, userRef)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ids)
}
