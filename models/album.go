package models

import (
	"errors"
	"time"

	"gallery/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Album struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(300);not null" json:"name"`
	Description *string   `gorm:"type:varchar(1000)" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// AlbumInfo is an Album row plus the aggregates computed at query time.
type AlbumInfo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	PhotoCount  int64     `json:"photo_count"`
	TotalSize   int64     `json:"total_size"`
}

func albumInfoQuery() *gorm.DB {
	return db.Instance.
		Table("albums").
		Select("albums.id, albums.name, albums.description, albums.created_at, " +
			"count(photos.id) as photo_count, ifnull(sum(photos.file_size), 0) as total_size").
		Joins("left join photos on photos.album_id = albums.id").
		Group("albums.id, albums.name, albums.description, albums.created_at")
}

func AlbumList() ([]AlbumInfo, error) {
	result := []AlbumInfo{}
	err := albumInfoQuery().Order("albums.created_at DESC").Scan(&result).Error
	return result, err
}

func AlbumGetInfo(id string) (AlbumInfo, error) {
	var rows []AlbumInfo
	err := albumInfoQuery().Where("albums.id = ?", id).Scan(&rows).Error
	if err != nil {
		return AlbumInfo{}, err
	}
	if len(rows) == 0 {
		return AlbumInfo{}, ErrNotFound
	}
	return rows[0], nil
}

func AlbumCreate(name string, description *string) (Album, error) {
	album := Album{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
	}
	return album, db.Instance.Create(&album).Error
}

func AlbumUpdate(id, name string, description *string) (AlbumInfo, error) {
	var album Album
	if err := db.Instance.First(&album, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AlbumInfo{}, ErrNotFound
		}
		return AlbumInfo{}, err
	}
	err := db.Instance.Model(&album).Updates(map[string]interface{}{
		"name":        name,
		"description": description,
	}).Error
	if err != nil {
		return AlbumInfo{}, err
	}
	return AlbumGetInfo(id)
}

// AlbumDelete detaches the album's photos before removing the album row.
// The order matters: photos must survive the deletion of their album.
func AlbumDelete(id string) error {
	err := db.Instance.Model(&Photo{}).Where("album_id = ?", id).
		Update("album_id", nil).Error
	if err != nil {
		return err
	}
	result := db.Instance.Delete(&Album{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
