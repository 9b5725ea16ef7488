package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/clinicdesk/clinic-scheduler/internal/domain/schedule"
	"github.com/clinicdesk/clinic-scheduler/internal/dto"
	"github.com/clinicdesk/clinic-scheduler/internal/httperr"
	"github.com/clinicdesk/clinic-scheduler/internal/httpresp"
	"github.com/clinicdesk/clinic-scheduler/internal/middleware"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
	"github.com/clinicdesk/clinic-scheduler/internal/timefmt"
	ucBooking "github.com/clinicdesk/clinic-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AdminHandler struct {
	db        *gorm.DB
	replaceUC *ucBooking.AdminReplaceBooking
	deleteUC  *ucBooking.AdminDeleteBooking
}

func NewAdminHandler(
	db *gorm.DB,
	replaceUC *ucBooking.AdminReplaceBooking,
	deleteUC *ucBooking.AdminDeleteBooking,
) *AdminHandler {
	return &AdminHandler{
		db:        db,
		replaceUC: replaceUC,
		deleteUC:  deleteUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AdminUpdateBookingRequest struct {
	Date      string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime string `json:"start_time" binding:"required"` // "09:00 AM"
	EndTime   string `json:"end_time" binding:"required"`   // "09:30 AM"
	Status    string `json:"status" binding:"required"`
}

// ======================================================
// DASHBOARD
// ======================================================

func (h *AdminHandler) DashboardStats(c *gin.Context) {
	var (
		total     int64
		today     int64
		patients  int64
		pending   int64
		confirmed int64
	)

	todayStr := timefmt.Today()

	h.db.Model(&models.Booking{}).Count(&total)
	h.db.Model(&models.Booking{}).Where("date = ?", todayStr).Count(&today)
	h.db.Model(&models.User{}).Where("role = ?", models.RolePatient).Count(&patients)
	h.db.Model(&models.Booking{}).Where("status = ?", string(domain.StatusPending)).Count(&pending)
	h.db.Model(&models.Booking{}).Where("status = ?", string(domain.StatusConfirmed)).Count(&confirmed)

	c.JSON(http.StatusOK, gin.H{
		"totalAppointments":     total,
		"todayAppointments":     today,
		"newPatients":           patients,
		"pendingAppointments":   pending,
		"confirmedAppointments": confirmed,
	})
}

// ======================================================
// BOOKINGS
// ======================================================

// ListBookings returns every booking, optionally filtered by a free-text
// match on the owning patient's name or phone number.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	query := strings.TrimSpace(strings.ToLower(c.Query("q")))

	q := h.db.Model(&models.Booking{}).Preload("User")

	if query != "" {
		like := "%" + query + "%"
		q = q.
			Joins("JOIN users ON users.id = bookings.user_id").
			Where("LOWER(users.name) LIKE ? OR users.phone_number LIKE ?", like, like)
	}

	var bookings []models.Booking
	if err := q.
		Order("date ASC, start_minute ASC").
		Find(&bookings).Error; err != nil {

		httperr.Internal(c, "failed_to_list_bookings", "Failed to list bookings.")
		return
	}

	out := make([]dto.BookingOut, 0, len(bookings))
	for i := range bookings {
		out = append(out, dto.NewBookingOut(&bookings[i]))
	}

	httpresp.List(c, out)
}

func (h *AdminHandler) UpdateBooking(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	var req AdminUpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	b, err := h.replaceUC.Execute(c.Request.Context(), adminID, ucBooking.AdminReplaceBookingInput{
		BookingID: uint(id),
		Date:      req.Date,
		StartText: req.StartTime,
		EndText:   req.EndTime,
		Status:    req.Status,
	})
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "booking_not_found"):
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
		case httperr.IsBusiness(err, "invalid_range"):
			httperr.BadRequest(c, "invalid_range", "Start time must be before end time.")
		case httperr.IsBusiness(err, "invalid_status"):
			httperr.BadRequest(c, "invalid_status", "Unknown booking status.")
		default:
			mapBookingErrors(c, err)
		}
		return
	}

	h.db.First(&b.User, b.UserID)

	c.JSON(http.StatusOK, dto.NewBookingOut(b))
}

func (h *AdminHandler) DeleteBooking(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	ok, err := h.deleteUC.Execute(c.Request.Context(), adminID, uint(id))
	if err != nil {
		httperr.Internal(c, "failed_to_delete_booking", "Failed to delete booking.")
		return
	}
	if !ok {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// USERS
// ======================================================

func (h *AdminHandler) ListUsers(c *gin.Context) {
	query := strings.TrimSpace(strings.ToLower(c.Query("q")))

	q := h.db.Model(&models.User{})

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var users []models.User
	if err := q.Order("id ASC").Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "Failed to list users.")
		return
	}

	out := make([]dto.UserOut, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserOut(&users[i]))
	}

	httpresp.List(c, out)
}
