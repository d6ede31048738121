package models

import (
	"time"
)

type Playlist struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"size:200;not null" json:"name"`
	Description *string `gorm:"size:500" json:"description,omitempty"`

	// Email del dueño (usuario o artista)
	OwnerRef string `gorm:"size:120;not null;index" json:"owner_ref"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Ordenada por position; las posiciones pueden tener huecos tras borrar
	Songs []PlaylistCancion `gorm:"foreignKey:PlaylistID;constraint:OnDelete:CASCADE" json:"songs"`
}

func (Playlist) TableName() string { return "playlist" }

func (p *Playlist) SongIDs() []uint {
	out := make([]uint, 0, len(p.Songs))
	for _, ps := range p.Songs {
		out = append(out, ps.CancionID)
	}
	return out
}

type PlaylistCancion struct {
	PlaylistID uint `gorm:"primaryKey" json:"playlist_id"`
	CancionID  uint `gorm:"primaryKey" json:"cancion_id"`

	// Posición dentro de la playlist (0,1,2,...). No se renumera al borrar.
	Position int `gorm:"not null;default:0" json:"position"`
}

func (PlaylistCancion) TableName() string { return "playlist_cancion" }
