package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"gallery/models"

	"github.com/gin-gonic/gin"
)

type AlbumSaveRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// AlbumWithPhotos is the GET /albums/:id payload: the album row, its
// query-time aggregates and its photos, newest first.
type AlbumWithPhotos struct {
	models.AlbumInfo
	Photos []models.PhotoInfo `json:"photos"`
}

func AlbumList(c *gin.Context) {
	albums, err := models.AlbumList()
	if err != nil {
		log.Printf("Cannot list albums: %v", err)
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	c.JSON(http.StatusOK, albums)
}

func AlbumCreate(c *gin.Context, user *models.User) {
	r := AlbumSaveRequest{}
	if err := c.ShouldBindJSON(&r); err != nil || strings.TrimSpace(r.Name) == "" {
		c.JSON(http.StatusBadRequest, ValidationError("name is required"))
		return
	}
	album, err := models.AlbumCreate(r.Name, r.Description)
	if err != nil {
		log.Printf("Cannot create album: %v", err)
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	info, err := models.AlbumGetInfo(album.ID)
	if err != nil {
		log.Printf("Cannot load new album %s: %v", album.ID, err)
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	c.JSON(http.StatusCreated, info)
}

func AlbumGet(c *gin.Context) {
	id := c.Param("id")
	info, err := models.AlbumGetInfo(id)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, NotFoundError("album not found"))
		return
	}
	if err != nil {
		log.Printf("Cannot load album %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	photos, err := models.PhotoList(models.PhotoFilter{AlbumID: id})
	if err != nil {
		log.Printf("Cannot load photos of album %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	c.JSON(http.StatusOK, AlbumWithPhotos{AlbumInfo: info, Photos: photos})
}

func AlbumUpdate(c *gin.Context, user *models.User) {
	r := AlbumSaveRequest{}
	if err := c.ShouldBindJSON(&r); err != nil || strings.TrimSpace(r.Name) == "" {
		c.JSON(http.StatusBadRequest, ValidationError("name is required"))
		return
	}
	info, err := models.AlbumUpdate(c.Param("id"), r.Name, r.Description)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, NotFoundError("album not found"))
		return
	}
	if err != nil {
		log.Printf("Cannot update album %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	c.JSON(http.StatusOK, info)
}

func AlbumDelete(c *gin.Context, user *models.User) {
	err := models.AlbumDelete(c.Param("id"))
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, NotFoundError("album not found"))
		return
	}
	if err != nil {
		log.Printf("Cannot delete album %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
