package models

import (
	"time"
)

// Comentario sobre una canción o un álbum (exactamente uno de los dos).
type Comentario struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Content string `gorm:"type:text;not null" json:"content"`

	// Email del autor (identidad externa)
	UserRef string `gorm:"size:120;not null;index" json:"user_ref"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	CancionID *uint `json:"cancion_id,omitempty"`
	AlbumID   *uint `json:"album_id,omitempty"`
}

func (Comentario) TableName() string { return "comentario" }
