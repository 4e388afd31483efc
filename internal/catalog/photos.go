package catalog

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/photoalbum/internal/entities"
	"github.com/mrlokans/photoalbum/internal/photos"
)

const (
	DefaultSortKey   = entities.SortByUploadedAt
	DefaultSortOrder = entities.SortDesc
)

var sortColumns = map[entities.SortKey]string{
	entities.SortByFilename:   "filename",
	entities.SortByTakenAt:    "taken_at",
	entities.SortByModifiedAt: "modified_at",
	entities.SortByUploadedAt: "uploaded_at",
	entities.SortByCustom:     "position",
}

// ParseSort validates listing parameters. Empty values select the defaults.
func ParseSort(key, order string) (entities.SortKey, entities.SortOrder, error) {
	k := entities.SortKey(key)
	if k == "" {
		k = DefaultSortKey
	}
	if _, ok := sortColumns[k]; !ok {
		return "", "", fmt.Errorf("%w: unknown key %q", ErrInvalidSort, key)
	}

	o := entities.SortOrder(order)
	switch o {
	case "":
		o = DefaultSortOrder
	case entities.SortAsc, entities.SortDesc:
	default:
		return "", "", fmt.Errorf("%w: unknown order %q", ErrInvalidSort, order)
	}
	return k, o, nil
}

// orderClause builds the ORDER BY for a listing. Custom order is the service
// order for desc and its reverse for asc. Position breaks ties so equal keys
// keep service order. sqlite sorts NULL times first ascending and last
// descending, the same as a zero time.
func orderClause(key entities.SortKey, order entities.SortOrder) string {
	if key == entities.SortByCustom {
		if order == entities.SortAsc {
			return "position DESC"
		}
		return "position ASC"
	}
	dir := "ASC"
	if order == entities.SortDesc {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s, position ASC", sortColumns[key], dir)
}

// ReplaceAlbumPhotos stores a fresh listing of an album, dropping photos that
// are no longer listed. Positions follow the slice order.
func (d *Database) ReplaceAlbumPhotos(albumID string, list []entities.Photo) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("album_id = ?", albumID).Delete(&entities.Photo{}).Error; err != nil {
			return fmt.Errorf("failed to clear album %s: %w", albumID, err)
		}

		for i := range list {
			list[i].AlbumID = albumID
			list[i].Position = i
		}
		if len(list) > 0 {
			err := tx.Clauses(clause.OnConflict{UpdateAll: true}).CreateInBatches(list, 100).Error
			if err != nil {
				return fmt.Errorf("failed to store photos of album %s: %w", albumID, err)
			}
		}

		album := entities.Album{
			ID:         albumID,
			PhotoCount: len(list),
			SyncedAt:   time.Now(),
		}
		err := tx.Omit("Photos").Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"photo_count", "synced_at", "updated_at"}),
		}).Create(&album).Error
		if err != nil {
			return fmt.Errorf("failed to store album %s: %w", albumID, err)
		}
		return nil
	})
}

func (d *Database) GetAlbum(id string) (*entities.Album, error) {
	var album entities.Album
	err := d.DB.First(&album, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAlbumNotFound
	}
	if err != nil {
		return nil, err
	}
	return &album, nil
}

func (d *Database) GetAllAlbums() ([]entities.Album, error) {
	var albums []entities.Album
	err := d.DB.Order("id ASC").Find(&albums).Error
	return albums, err
}

func (d *Database) GetPhoto(id string) (*entities.Photo, error) {
	var photo entities.Photo
	err := d.DB.First(&photo, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPhotoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// Photos lists an album in display order.
func (d *Database) Photos(albumID string, key entities.SortKey, order entities.SortOrder) ([]entities.Photo, error) {
	if _, ok := sortColumns[key]; !ok {
		return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidSort, key)
	}
	if _, err := d.GetAlbum(albumID); err != nil {
		return nil, err
	}

	var list []entities.Photo
	err := d.DB.Where("album_id = ?", albumID).Order(orderClause(key, order)).Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list album %s: %w", albumID, err)
	}
	return list, nil
}

// Sequence returns the album as the ordered photo list the gesture engines
// index into.
func (d *Database) Sequence(albumID string, key entities.SortKey, order entities.SortOrder) (photos.List, error) {
	list, err := d.Photos(albumID, key, order)
	if err != nil {
		return nil, err
	}
	seq := make(photos.List, len(list))
	for i, p := range list {
		seq[i] = photos.Photo{ID: p.ID, Path: p.Path}
	}
	return seq, nil
}
