package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kristins-brudesalong/salon-scheduler/internal/httperr"
	"github.com/kristins-brudesalong/salon-scheduler/internal/httpresp"
	"github.com/kristins-brudesalong/salon-scheduler/internal/models"
	"github.com/kristins-brudesalong/salon-scheduler/internal/storage"
)

// Lookbook uploads are capped before image decoding even starts.
const maxUploadBytes = 10 << 20

type DressHandler struct {
	db    *gorm.DB
	media *storage.MediaStore
}

func NewDressHandler(db *gorm.DB, media *storage.MediaStore) *DressHandler {
	return &DressHandler{db: db, media: media}
}

func (h *DressHandler) List(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	activeStr := strings.TrimSpace(c.Query("active"))

	q := h.db.Model(&models.Dress{})
	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}
	if activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
	}

	var dresses []models.Dress
	if err := q.Order("id DESC").Find(&dresses).Error; err != nil {
		httperr.Internal(c, "failed_to_list_dresses", "Kunne ikke hente kjoler.")
		return
	}

	httpresp.List(c, dresses)
}

// Create takes multipart form data: the dress fields plus an optional
// "image" file, converted to webp and stored before the row is written.
func (h *DressHandler) Create(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		httperr.Validation(c, "missing_field", "name", messageFor("missing_field"))
		return
	}

	dress := models.Dress{
		Name:     name,
		Designer: strings.TrimSpace(c.PostForm("designer")),
		Category: strings.TrimSpace(c.PostForm("category")),
		Active:   true,
	}

	if url, err := h.uploadedImage(c); err != nil {
		httperr.BadRequest(c, "invalid_image", "Bildet kunne ikke behandles.")
		return
	} else if url != "" {
		dress.ImageURL = url
	}

	if err := h.db.Create(&dress).Error; err != nil {
		httperr.Internal(c, "failed_to_create_dress", "Kunne ikke opprette kjolen.")
		return
	}

	c.JSON(http.StatusCreated, dress)
}

func (h *DressHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Ugyldig kjole-ID.")
		return
	}

	var dress models.Dress
	if err := h.db.First(&dress, uint(id)).Error; err != nil {
		httperr.NotFound(c, "dress_not_found", "Kjolen ble ikke funnet.")
		return
	}

	if v, ok := c.GetPostForm("name"); ok {
		dress.Name = strings.TrimSpace(v)
	}
	if v, ok := c.GetPostForm("designer"); ok {
		dress.Designer = strings.TrimSpace(v)
	}
	if v, ok := c.GetPostForm("category"); ok {
		dress.Category = strings.TrimSpace(v)
	}
	if v, ok := c.GetPostForm("active"); ok {
		dress.Active = v == "true"
	}

	if url, err := h.uploadedImage(c); err != nil {
		httperr.BadRequest(c, "invalid_image", "Bildet kunne ikke behandles.")
		return
	} else if url != "" {
		// Drop the previous image; a failed delete only orphans an object.
		if dress.ImageURL != "" && h.media != nil {
			_ = h.media.Delete(c.Request.Context(), h.media.KeyFor(dress.ImageURL))
		}
		dress.ImageURL = url
	}

	if err := h.db.Save(&dress).Error; err != nil {
		httperr.Internal(c, "failed_to_update_dress", "Kunne ikke oppdatere kjolen.")
		return
	}

	c.JSON(http.StatusOK, dress)
}

func (h *DressHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Ugyldig kjole-ID.")
		return
	}

	var dress models.Dress
	if err := h.db.First(&dress, uint(id)).Error; err != nil {
		httperr.NotFound(c, "dress_not_found", "Kjolen ble ikke funnet.")
		return
	}

	if dress.ImageURL != "" && h.media != nil {
		_ = h.media.Delete(c.Request.Context(), h.media.KeyFor(dress.ImageURL))
	}

	if err := h.db.Delete(&dress).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_dress", "Kunne ikke slette kjolen.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// uploadedImage returns the stored URL for the "image" form file, or ""
// when no file was sent.
func (h *DressHandler) uploadedImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil // no file attached
	}
	if h.media == nil {
		return "", nil // media storage not configured
	}
	if file.Size > maxUploadBytes {
		return "", fmt.Errorf("upload of %d bytes exceeds the %d byte cap", file.Size, maxUploadBytes)
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	return h.media.UploadImage(c.Request.Context(), "dresses", f)
}
