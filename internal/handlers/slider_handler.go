package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clinicdesk/clinic-scheduler/internal/audit"
	"github.com/clinicdesk/clinic-scheduler/internal/httperr"
	"github.com/clinicdesk/clinic-scheduler/internal/imaging"
	"github.com/clinicdesk/clinic-scheduler/internal/middleware"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
	"github.com/clinicdesk/clinic-scheduler/internal/storage"
)

const maxSliderImageBytes = 5 * 1024 * 1024

// ======================================================
// HANDLER
// ======================================================

type SliderHandler struct {
	db       *gorm.DB
	uploader *storage.Uploader
	audit    *audit.Dispatcher
}

func NewSliderHandler(
	db *gorm.DB,
	uploader *storage.Uploader,
	audit *audit.Dispatcher,
) *SliderHandler {
	return &SliderHandler{
		db:       db,
		uploader: uploader,
		audit:    audit,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateSliderImageRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Position    *int    `json:"position"`
}

// ======================================================
// PUBLIC LIST
// ======================================================

func (h *SliderHandler) List(c *gin.Context) {
	var images []models.SliderImage
	if err := h.db.Order("position ASC, id ASC").Find(&images).Error; err != nil {
		httperr.Internal(c, "failed_to_list_slider", "Failed to list slider images.")
		return
	}

	c.JSON(http.StatusOK, images)
}

// ======================================================
// UPLOAD (ADMIN)
// ======================================================

func (h *SliderHandler) Create(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	if h.uploader == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "storage_unconfigured", "Image storage is not configured.")
		return
	}

	title := c.PostForm("title")
	description := c.PostForm("description")
	if title == "" {
		httperr.BadRequest(c, "missing_title", "Title is required.")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "Image file is required.")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" {
		httperr.BadRequest(c, "unsupported_image_type", "Only JPG and PNG images are allowed.")
		return
	}

	if fileHeader.Size > maxSliderImageBytes {
		httperr.BadRequest(c, "image_too_large", "Image size must be less than 5MB.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_image", "Failed to read image.")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxSliderImageBytes+1))
	if err != nil || len(raw) > maxSliderImageBytes {
		httperr.BadRequest(c, "image_too_large", "Image size must be less than 5MB.")
		return
	}

	encoded, err := imaging.ToWebP(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Image could not be decoded.")
		return
	}

	url, err := h.uploader.UploadSliderImage(c.Request.Context(), encoded, "image/webp")
	if err != nil {
		httperr.Internal(c, "failed_to_upload_image", "Failed to store image.")
		return
	}

	img := models.SliderImage{
		Title:       title,
		Description: description,
		ImageURL:    url,
	}

	if err := h.db.Create(&img).Error; err != nil {
		httperr.Internal(c, "failed_to_save_image", "Failed to save slider image.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "slider_image_uploaded",
		Entity:   "slider_image",
		EntityID: &img.ID,
	})

	c.JSON(http.StatusCreated, img)
}

// ======================================================
// UPDATE / DELETE (ADMIN)
// ======================================================

func (h *SliderHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid image id.")
		return
	}

	var req UpdateSliderImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	var img models.SliderImage
	if err := h.db.First(&img, id).Error; err != nil {
		httperr.NotFound(c, "image_not_found", "Slider image not found.")
		return
	}

	if req.Title != nil {
		img.Title = *req.Title
	}
	if req.Description != nil {
		img.Description = *req.Description
	}
	if req.Position != nil {
		img.Position = *req.Position
	}

	if err := h.db.Save(&img).Error; err != nil {
		httperr.Internal(c, "failed_to_update_image", "Failed to update slider image.")
		return
	}

	c.JSON(http.StatusOK, img)
}

func (h *SliderHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid image id.")
		return
	}

	res := h.db.Delete(&models.SliderImage{}, id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_image", "Failed to delete slider image.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "image_not_found", "Slider image not found.")
		return
	}

	c.Status(http.StatusNoContent)
}
