package models

import (
	"time"
)

// CompraCancion registra la compra de una canción por un usuario externo.
// PK compuesta (cancion_id, user_ref): idempotencia, una fila por par.
type CompraCancion struct {
	CancionID uint   `gorm:"primaryKey" json:"song_id"`
	UserRef   string `gorm:"size:120;primaryKey;index" json:"user_ref"`

	PurchasedAt time.Time `gorm:"autoCreateTime" json:"purchased_at"`

	// Precio capturado en el momento de la compra; cambios posteriores del
	// precio de la canción no lo alteran.
	PricePaid float64 `json:"price_paid"`
}

func (CompraCancion) TableName() string { return "compra_cancion" }

type CompraAlbum struct {
	AlbumID uint   `gorm:"primaryKey" json:"album_id"`
	UserRef string `gorm:"size:120;primaryKey;index" json:"user_ref"`

	PurchasedAt time.Time `gorm:"autoCreateTime" json:"purchased_at"`
	PricePaid   float64   `json:"price_paid"`
}

func (CompraAlbum) TableName() string { return "compra_album" }
