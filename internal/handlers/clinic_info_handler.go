package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clinicdesk/clinic-scheduler/internal/httperr"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
)

type ClinicInfoHandler struct {
	db *gorm.DB
}

func NewClinicInfoHandler(db *gorm.DB) *ClinicInfoHandler {
	return &ClinicInfoHandler{db: db}
}

type UpdateClinicInfoRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func (h *ClinicInfoHandler) Get(c *gin.Context) {
	var info models.ClinicInfo
	if err := h.db.Order("id ASC").First(&info).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "clinic_info_not_found", "Clinic info not configured.")
			return
		}
		httperr.Internal(c, "failed_to_get_clinic_info", "Failed to load clinic info.")
		return
	}

	c.JSON(http.StatusOK, info)
}

// Update upserts the single clinic info record.
func (h *ClinicInfoHandler) Update(c *gin.Context) {
	var req UpdateClinicInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	var info models.ClinicInfo
	err := h.db.Order("id ASC").First(&info).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		httperr.Internal(c, "failed_to_get_clinic_info", "Failed to load clinic info.")
		return
	}

	info.Name = req.Name
	info.Phone = req.Phone
	info.Email = req.Email
	info.Address = req.Address

	if err := h.db.Save(&info).Error; err != nil {
		httperr.Internal(c, "failed_to_save_clinic_info", "Failed to save clinic info.")
		return
	}

	c.JSON(http.StatusOK, info)
}
