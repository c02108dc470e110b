package models

import (
	"errors"
	"time"

	"gallery/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Photo struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ImageURL    string    `gorm:"column:image_url;type:varchar(500);not null" json:"image_url"`
	Description *string   `gorm:"type:varchar(1000)" json:"description"`
	Year        *int      `json:"year"`
	AlbumID     *string   `gorm:"column:album_id;type:varchar(36);index" json:"album_id"`
	FileSize    int64     `json:"file_size"`
	CreatedAt   time.Time `json:"created_at"`
}

// PhotoInfo is a Photo row joined with the name of its album, if any.
type PhotoInfo struct {
	ID          string    `json:"id"`
	ImageURL    string    `gorm:"column:image_url" json:"image_url"`
	Description *string   `json:"description"`
	Year        *int      `json:"year"`
	AlbumID     *string   `gorm:"column:album_id" json:"album_id"`
	FileSize    int64     `json:"file_size"`
	CreatedAt   time.Time `json:"created_at"`
	AlbumName   *string   `json:"album_name"`
}

// PhotoFilter is a conjunction of optional predicates. Zero values mean
// "no constraint".
type PhotoFilter struct {
	AlbumID    string
	Unassigned bool
	Search     string
	Year       int
}

func photoInfoQuery() *gorm.DB {
	return db.Instance.
		Table("photos").
		Select("photos.id, photos.image_url, photos.description, photos.year, " +
			"photos.album_id, photos.file_size, photos.created_at, albums.name as album_name").
		Joins("left join albums on photos.album_id = albums.id")
}

func PhotoList(filter PhotoFilter) ([]PhotoInfo, error) {
	tx := photoInfoQuery()
	if filter.AlbumID != "" {
		tx = tx.Where("photos.album_id = ?", filter.AlbumID)
	}
	if filter.Unassigned {
		tx = tx.Where("photos.album_id IS NULL")
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		tx = tx.Where("photos.description LIKE ? OR albums.name LIKE ?", pattern, pattern)
	}
	if filter.Year != 0 {
		tx = tx.Where("photos.year = ?", filter.Year)
	}
	result := []PhotoInfo{}
	err := tx.Order("photos.created_at DESC").Scan(&result).Error
	return result, err
}

func PhotoGet(id string) (PhotoInfo, error) {
	var rows []PhotoInfo
	err := photoInfoQuery().Where("photos.id = ?", id).Scan(&rows).Error
	if err != nil {
		return PhotoInfo{}, err
	}
	if len(rows) == 0 {
		return PhotoInfo{}, ErrNotFound
	}
	return rows[0], nil
}

// PhotoCreate persists the metadata row for an already-stored asset.
// ImageURL is immutable after this point.
func PhotoCreate(photo *Photo) error {
	if photo.ID == "" {
		photo.ID = uuid.NewString()
	}
	return db.Instance.Create(photo).Error
}

func PhotoUpdate(id string, description *string, year *int, albumID *string) (PhotoInfo, error) {
	var photo Photo
	if err := db.Instance.First(&photo, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PhotoInfo{}, ErrNotFound
		}
		return PhotoInfo{}, err
	}
	err := db.Instance.Model(&photo).Updates(map[string]interface{}{
		"description": description,
		"year":        year,
		"album_id":    albumID,
	}).Error
	if err != nil {
		return PhotoInfo{}, err
	}
	return PhotoGet(id)
}

func PhotoSetAlbum(id string, albumID *string) error {
	var photo Photo
	if err := db.Instance.First(&photo, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return db.Instance.Model(&photo).Update("album_id", albumID).Error
}

func PhotoDelete(id string) error {
	result := db.Instance.Delete(&Photo{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
