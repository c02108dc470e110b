package handlers

import (
	"errors"
	"log"
	"net/http"

	"gallery/models"
	"gallery/storage"

	"github.com/gin-gonic/gin"
)

type PhotoListRequest struct {
	AlbumID    string `form:"album_id"`
	Unassigned string `form:"unassigned"`
	Search     string `form:"search"`
	Year       int    `form:"year"`
}

type PhotoCreateRequest struct {
	ImageURL    string  `json:"image_url"`
	Description *string `json:"description"`
	Year        *int    `json:"year"`
	AlbumID     *string `json:"album_id"`
	FileSize    int64   `json:"file_size"`
}

type PhotoUpdateRequest struct {
	Description *string `json:"description"`
	Year        *int    `json:"year"`
	AlbumID     *string `json:"album_id"`
}

type PhotoMoveRequest struct {
	IDs     []string `json:"ids" binding:"required"`
	AlbumID *string  `json:"album_id"`
}

func PhotoList(c *gin.Context) {
	r := PhotoListRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, ValidationError(err.Error()))
		return
	}
	photos, err := models.PhotoList(models.PhotoFilter{
		AlbumID:    r.AlbumID,
		Unassigned: r.Unassigned == "true",
		Search:     r.Search,
		Year:       r.Year,
	})
	if err != nil {
		log.Printf("Cannot list photos: %v", err)
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	c.JSON(http.StatusOK, photos)
}

func PhotoGet(c *gin.Context) {
	photo, err := models.PhotoGet(c.Param("id"))
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, NotFoundError("photo not found"))
		return
	}
	if err != nil {
		log.Printf("Cannot load photo %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	c.JSON(http.StatusOK, photo)
}

// PhotoCreate persists metadata for an asset that is already in the
// store; the normal path is POST /upload, which stores the file first.
func PhotoCreate(c *gin.Context, user *models.User) {
	r := PhotoCreateRequest{}
	if err := c.ShouldBindJSON(&r); err != nil || r.ImageURL == "" {
		c.JSON(http.StatusBadRequest, ValidationError("image_url is required"))
		return
	}
	photo := models.Photo{
		ImageURL:    r.ImageURL,
		Description: r.Description,
		Year:        r.Year,
		AlbumID:     r.AlbumID,
		FileSize:    r.FileSize,
	}
	if err := models.PhotoCreate(&photo); err != nil {
		log.Printf("Cannot create photo: %v", err)
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	info, err := models.PhotoGet(photo.ID)
	if err != nil {
		log.Printf("Cannot load new photo %s: %v", photo.ID, err)
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	c.JSON(http.StatusCreated, info)
}

func PhotoUpdate(c *gin.Context, user *models.User) {
	r := PhotoUpdateRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, ValidationError(err.Error()))
		return
	}
	info, err := models.PhotoUpdate(c.Param("id"), r.Description, r.Year, r.AlbumID)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, NotFoundError("photo not found"))
		return
	}
	if err != nil {
		log.Printf("Cannot update photo %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	c.JSON(http.StatusOK, info)
}

// PhotoDelete removes the remote asset best-effort, then the metadata
// row. The row always goes: a dangling metadata row is worse than an
// orphaned blob.
func PhotoDelete(c *gin.Context, user *models.User) {
	id := c.Param("id")
	photo, err := models.PhotoGet(id)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, NotFoundError("photo not found"))
		return
	}
	if err != nil {
		log.Printf("Cannot load photo %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	remotePath := storage.PathFromPublicURL(photo.ImageURL)
	if err := storage.Get().Delete(c.Request.Context(), remotePath); err != nil {
		log.Printf("Cannot delete asset %s of photo %s: %v", remotePath, id, err)
	}
	if err := models.PhotoDelete(id); err != nil && !errors.Is(err, models.ErrNotFound) {
		log.Printf("Cannot delete photo %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PhotoMove assigns (or unassigns, with a null album_id) a batch of
// photos. The updates are independent, not transactional: some photos
// may move while others fail, and the response reports the aggregate.
func PhotoMove(c *gin.Context, user *models.User) {
	r := PhotoMoveRequest{}
	if err := c.ShouldBindJSON(&r); err != nil || len(r.IDs) == 0 {
		c.JSON(http.StatusBadRequest, ValidationError("ids are required"))
		return
	}
	failed := []string{}
	for _, id := range r.IDs {
		if err := models.PhotoSetAlbum(id, r.AlbumID); err != nil {
			log.Printf("Cannot move photo %s: %v", id, err)
			failed = append(failed, id)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"moved":  len(r.IDs) - len(failed),
		"total":  len(r.IDs),
		"failed": failed,
	})
}
