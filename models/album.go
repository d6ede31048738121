package models

import (
	"time"
)

type Album struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Titulo     string     `gorm:"size:255;not null" json:"titulo"`
	ImgPortada *string    `gorm:"type:text" json:"imgPortada,omitempty"`
	Date       *time.Time `json:"date,omitempty"`

	// Precio mínimo de compra (pay-what-you-want)
	Precio float64 `gorm:"not null;default:0" json:"precio"`

	Canciones   []Cancion      `gorm:"foreignKey:IDAlbum" json:"-"`
	Genres      []Genre        `gorm:"many2many:album_genero;constraint:OnDelete:CASCADE" json:"-"`
	Artistas    []AlbumArtista `gorm:"foreignKey:AlbumID;constraint:OnDelete:CASCADE" json:"-"`
	Compras     []CompraAlbum  `gorm:"foreignKey:AlbumID;constraint:OnDelete:CASCADE" json:"-"`
	Comentarios []Comentario   `gorm:"foreignKey:AlbumID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Album) TableName() string { return "album" }

func (a *Album) Generos() []string {
	out := make([]string, 0, len(a.Genres))
	for _, g := range a.Genres {
		out = append(out, g.Name)
	}
	return out
}

func (a *Album) ArtistasEmails() []string {
	out := make([]string, 0, len(a.Artistas))
	for _, ref := range a.Artistas {
		out = append(out, ref.ArtistaEmail)
	}
	return out
}

func (a *Album) CancionIDs() []uint {
	out := make([]uint, 0, len(a.Canciones))
	for _, c := range a.Canciones {
		out = append(out, c.ID)
	}
	return out
}
