package models

// Género musical. El nombre es único sin distinguir mayúsculas:
// las búsquedas siempre comparan LOWER(name).
type Genre struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:64;not null;uniqueIndex" json:"name"`

	Canciones []Cancion `gorm:"many2many:cancion_genero" json:"-"`
	Albumes   []Album   `gorm:"many2many:album_genero" json:"-"`
}

func (Genre) TableName() string { return "genre" }
