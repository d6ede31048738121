package models

// Enlaces canción/álbum - artista por email. La identidad del artista vive
// en el servicio externo de usuarios; aquí solo guardamos la referencia.
// PK compuesta: un artista se enlaza como mucho una vez por elemento.

type CancionArtista struct {
	CancionID    uint   `gorm:"primaryKey" json:"cancion_id"`
	ArtistaEmail string `gorm:"size:120;primaryKey;index" json:"artista_email"`
}

func (CancionArtista) TableName() string { return "cancion_artista" }

type AlbumArtista struct {
	AlbumID      uint   `gorm:"primaryKey" json:"album_id"`
	ArtistaEmail string `gorm:"size:120;primaryKey;index" json:"artista_email"`
}

func (AlbumArtista) TableName() string { return "album_artista" }
