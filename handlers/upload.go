package handlers

import (
	"bytes"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"path"
	"strconv"

	"gallery/config"
	"gallery/models"
	"gallery/processing"
	"gallery/storage"
	"gallery/utils"

	"github.com/gin-gonic/gin"
)

type UploadResult struct {
	FileName  string `json:"fileName"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	Message   string `json:"message,omitempty"`
	PhotoID   string `json:"photoId,omitempty"`
	PublicURL string `json:"publicUrl,omitempty"`
}

// Upload runs the pipeline normalize -> store -> persist for each file
// in the batch. Files succeed or fail independently; the response
// carries per-file outcomes plus aggregate counts.
func Upload(c *gin.Context, user *models.User) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, ValidationError("multipart form expected"))
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, ValidationError("no files provided"))
		return
	}
	albumID := c.PostForm("albumId")
	descriptions := form.Value["descriptions"]
	years := form.Value["years"]

	store := storage.Get()
	results := make([]UploadResult, 0, len(files))
	uploaded := 0
	for i, file := range files {
		result := uploadOneFile(c, store, file, albumID, valueAt(descriptions, i), valueAt(years, i))
		if result.Success {
			uploaded++
		}
		results = append(results, result)
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"uploaded": uploaded,
		"total":    len(files),
		"results":  results,
	})
}

func uploadOneFile(c *gin.Context, store storage.Store, fileHeader *multipart.FileHeader, albumID, description, yearValue string) UploadResult {
	result := UploadResult{FileName: fileHeader.Filename}

	file, err := fileHeader.Open()
	if err != nil {
		result.Error, result.Message = CategoryTransfer, "cannot read file"
		return result
	}
	data, _, _, err := processing.NormalizeImage(file)
	file.Close()
	if err != nil {
		if !errors.Is(err, processing.ErrBadImage) {
			log.Printf("Cannot normalize %s: %v", fileHeader.Filename, err)
		}
		result.Error, result.Message = CategoryFormat, "cannot decode image"
		return result
	}

	remotePath := path.Join(config.UPLOAD_DIR, utils.NewAssetName(".jpg"))
	publicURL, err := store.Upload(c.Request.Context(), bytes.NewReader(data), remotePath)
	if err != nil {
		log.Printf("Cannot store %s as %s: %v", fileHeader.Filename, remotePath, err)
		result.Error, result.Message = CategoryTransfer, "cannot store file"
		return result
	}

	photo := models.Photo{
		ImageURL: publicURL,
		FileSize: int64(len(data)),
	}
	if description != "" {
		photo.Description = &description
	}
	if year, convErr := strconv.Atoi(yearValue); convErr == nil && year != 0 {
		photo.Year = &year
	}
	if albumID != "" {
		photo.AlbumID = &albumID
	}
	if err = models.PhotoCreate(&photo); err != nil {
		log.Printf("Cannot persist photo for %s: %v", fileHeader.Filename, err)
		// Compensate: the blob must not outlive the failed metadata write
		if delErr := store.Delete(c.Request.Context(), remotePath); delErr != nil {
			log.Printf("Orphaned asset %s: %v", remotePath, delErr)
		}
		result.Error, result.Message = CategoryStorage, "database error"
		return result
	}

	result.Success = true
	result.PhotoID = photo.ID
	result.PublicURL = publicURL
	return result
}

func valueAt(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}
