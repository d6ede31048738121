package models

import (
	"time"
)

type Cancion struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	NomCancion string     `gorm:"size:255;not null" json:"nomCancion"`
	ArchivoMp3 string     `gorm:"type:text;not null" json:"archivoMp3"`
	ImgPortada *string    `gorm:"type:text" json:"imgPortada,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
	Precio     float64    `gorm:"not null;default:0" json:"precio"`

	// Contadores: nunca NULL una vez persistidos
	NumVisualizaciones int     `gorm:"not null;default:0" json:"numVisualizaciones"`
	NumIngresos        float64 `gorm:"not null;default:0" json:"numIngresos"`
	NumLikes           int     `gorm:"not null;default:0" json:"numLikes"`
	DuracionSec        int     `gorm:"not null;default:0" json:"duracionSec"`

	// Álbum propietario (opcional). Borrar el álbum NO borra la canción.
	IDAlbum *uint  `gorm:"column:id_album" json:"idAlbum,omitempty"`
	Album   *Album `gorm:"foreignKey:IDAlbum;constraint:OnDelete:SET NULL" json:"-"`

	Genres      []Genre          `gorm:"many2many:cancion_genero;constraint:OnDelete:CASCADE" json:"-"`
	Artistas    []CancionArtista `gorm:"foreignKey:CancionID;constraint:OnDelete:CASCADE" json:"-"`
	Compras     []CompraCancion  `gorm:"foreignKey:CancionID;constraint:OnDelete:CASCADE" json:"-"`
	Comentarios []Comentario     `gorm:"foreignKey:CancionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Cancion) TableName() string { return "cancion" }

// Nombres de géneros desde la relación N-N
func (c *Cancion) Generos() []string {
	out := make([]string, 0, len(c.Genres))
	for _, g := range c.Genres {
		out = append(out, g.Name)
	}
	return out
}

func (c *Cancion) ArtistasEmails() []string {
	out := make([]string, 0, len(c.Artistas))
	for _, ref := range c.Artistas {
		out = append(out, ref.ArtistaEmail)
	}
	return out
}
