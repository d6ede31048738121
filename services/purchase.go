package services

import (
	"errors"
	"sort"

	"gorm.io/gorm"

	"github.com/amartinp/contenido-backend/models"
)

var (
	ErrCancionNoEncontrada = errors.New("canción no encontrada")
	ErrAlbumNoEncontrado   = errors.New("álbum no encontrado")
	// El precio pagado está por debajo del mínimo del álbum
	ErrPrecioInferior = errors.New("el precio pagado es inferior al mínimo")
)

// PurchaseSong registra la compra de una canción. Idempotente: si ya existe
// una fila (cancion_id, user_ref) se devuelve tal cual, sin tocar el precio
// almacenado. Si pricePaid es nil se captura el precio actual de la canción.
func PurchaseSong(db *gorm.DB, songID uint, userRef string, pricePaid *float64) (*models.CompraCancion, error) {
	var existing models.CompraCancion
	err := db.Where("cancion_id = ? AND user_ref = ?", songID, userRef).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var song models.Cancion
	if err := db.First(&song, "id = ?", songID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCancionNoEncontrada
		}
		return nil, err
	}

	price := song.Precio
	if pricePaid != nil {
		price = *pricePaid
	}

	compra := models.CompraCancion{
		CancionID: songID,
		UserRef:   userRef,
		PricePaid: price,
	}
	if err := db.Create(&compra).Error; err != nil {
		// Carrera: otra petición insertó el mismo par a la vez. La PK
		// compuesta la detecta; devolvemos la fila ganadora.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var won models.CompraCancion
			if err := db.Where("cancion_id = ? AND user_ref = ?", songID, userRef).
				First(&won).Error; err != nil {
				return nil, err
			}
			return &won, nil
		}
		return nil, err
	}
	return &compra, nil
}

// HasPurchase indica si el usuario ya compró la canción. Sin efectos.
func HasPurchase(db *gorm.DB, songID uint, userRef string) (bool, error) {
	var count int64
	err := db.Model(&models.CompraCancion{}).
		Where("cancion_id = ? AND user_ref = ?", songID, userRef).
		Count(&count).Error
	return count > 0, err
}

// ListUserSongIDs devuelve los ids de todas las canciones compradas.
func ListUserSongIDs(db *gorm.DB, userRef string) ([]uint, error) {
	var ids []uint
	err := db.Model(&models.CompraCancion{}).
		Where("user_ref = ?", userRef).
		Pluck("cancion_id", &ids).Error
	return ids, err
}

func ListUserPurchases(db *gorm.DB, userRef string) ([]models.CompraCancion, error) {
	var compras []models.CompraCancion
	err := db.Where("user_ref = ?", userRef).
		Order("purchased_at DESC").
		Find(&compras).Error
	return compras, err
}

// CountSongPurchases cuenta cuántos usuarios compraron una canción.
func CountSongPurchases(db *gorm.DB, songID uint) (int64, error) {
	var count int64
	err := db.Model(&models.CompraCancion{}).
		Where("cancion_id = ?", songID).
		Count(&count).Error
	return count, err
}

// PurchaseAlbum registra la compra de un álbum completo (pay-what-you-want
// con suelo en album.precio) y asegura después una CompraCancion para cada
// canción que forme parte del álbum en este momento: comprar el álbum
// implica poseer sus canciones aunque luego salgan de él.
func PurchaseAlbum(db *gorm.DB, albumID uint, userRef string, pricePaid *float64) (*models.CompraAlbum, error) {
	var existing models.CompraAlbum
	err := db.Where("album_id = ? AND user_ref = ?", albumID, userRef).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var album models.Album
	if err := db.Preload("Canciones").First(&album, "id = ?", albumID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlbumNoEncontrado
		}
		return nil, err
	}

	minPrice := album.Precio
	price := minPrice
	if pricePaid != nil {
		if *pricePaid < minPrice {
			return nil, ErrPrecioInferior
		}
		price = *pricePaid
	}

	compra := models.CompraAlbum{
		AlbumID:   albumID,
		UserRef:   userRef,
		PricePaid: price,
	}
	if err := db.Create(&compra).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var won models.CompraAlbum
			if err := db.Where("album_id = ? AND user_ref = ?", albumID, userRef).
				First(&won).Error; err != nil {
				return nil, err
			}
			return &won, nil
		}
		return nil, err
	}

	// Cada canción al precio propio de la canción (sin precio explícito);
	// PurchaseSong ya es idempotente para las que el usuario tuviera.
	for _, song := range album.Canciones {
		if _, err := PurchaseSong(db, song.ID, userRef, nil); err != nil {
			return nil, err
		}
	}

	return &compra, nil
}

// CheckMultiple divide los ids pedidos en comprados / no comprados con una
// única consulta de pertenencia, ambos ordenados ascendentemente.
func CheckMultiple(db *gorm.DB, userRef string, songIDs []uint) (owned, missing []uint, err error) {
	purchased, err := ListUserSongIDs(db, userRef)
	if err != nil {
		return nil, nil, err
	}

	have := make(map[uint]bool, len(purchased))
	for _, id := range purchased {
		have[id] = true
	}

	seen := make(map[uint]bool, len(songIDs))
	owned = make([]uint, 0)
	missing = make([]uint, 0)
	for _, id := range songIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if have[id] {
			owned = append(owned, id)
		} else {
			missing = append(missing, id)
		}
	}

	sort.Slice(owned, func(i, j int) bool { return owned[i] < owned[j] })
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return owned, missing, nil
}

// ListUserAlbumIDs devuelve los ids de los álbumes comprados por un usuario.
func ListUserAlbumIDs(db *gorm.DB, userRef string) ([]uint, error) {
	var ids []uint
	err := db.Model(&models.CompraAlbum{}).
		Where("user_ref = ?", userRef).
		Pluck("album_id", &ids).Error
	return ids, err
}
