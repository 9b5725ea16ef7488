package handlers

import (
	"net/http"
	"strconv"

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

type BookingHandler struct {
	db        *gorm.DB
	createUC  *ucBooking.CreateBooking
	cancelUC  *ucBooking.CancelBooking
	freeSlots *ucBooking.FreeSlots
}

func NewBookingHandler(
	db *gorm.DB,
	createUC *ucBooking.CreateBooking,
	cancelUC *ucBooking.CancelBooking,
	freeSlots *ucBooking.FreeSlots,
) *BookingHandler {
	return &BookingHandler{
		db:        db,
		createUC:  createUC,
		cancelUC:  cancelUC,
		freeSlots: freeSlots,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	Date      string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime string `json:"start_time" binding:"required"` // "09:00 AM"
	EndTime   string `json:"end_time" binding:"required"`   // "09:30 AM"
}

// ======================================================
// HELPERS
// ======================================================

func mapBookingErrors(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "invalid_date"):
		httperr.BadRequest(c, "invalid_date", "Invalid date format. Use YYYY-MM-DD.")
	case httperr.IsBusiness(err, "invalid_time_format"):
		httperr.BadRequest(c, "invalid_time_format", "Time must be in HH:MM am/pm format.")
	case httperr.IsBusiness(err, "wrong_duration"):
		httperr.BadRequest(c, "wrong_duration", "Bookings must match the configured slot duration.")
	case httperr.IsBusiness(err, "outside_window"):
		httperr.BadRequest(c, "outside_window", "This slot is not available for booking.")
	case httperr.IsBusiness(err, "already_booked"):
		httperr.Conflict(c, "already_booked", "Slot already booked.")
	case httperr.IsBusiness(err, "time_conflict"):
		httperr.Conflict(c, "time_conflict", "Slot was booked by someone else, pick another one.")
	default:
		httperr.Internal(c, "booking_failed", "Failed to process booking.")
	}
}

func slotsOut(slots []domain.Slot) []dto.SlotOut {
	out := make([]dto.SlotOut, 0, len(slots))
	for _, s := range slots {
		out = append(out, dto.SlotOut{
			Start: timefmt.Format12h(s.Start),
			End:   timefmt.Format12h(s.End),
		})
	}
	return out
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		UserID:    userID,
		Date:      req.Date,
		StartText: req.StartTime,
		EndText:   req.EndTime,
	})
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	// the reserve path stores only ids; load the owner for the response
	h.db.First(&b.User, userID)

	c.JSON(http.StatusCreated, dto.NewBookingOut(b))
}

// ======================================================
// LIST (OWN)
// ======================================================

func (h *BookingHandler) MyBookings(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var bookings []models.Booking
	if err := h.db.
		Preload("User").
		Where("user_id = ?", userID).
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

// ======================================================
// CANCEL
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	ok, err := h.cancelUC.Execute(c.Request.Context(), uint(id), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_cancel_booking", "Failed to cancel booking.")
		return
	}
	if !ok {
		httperr.NotFound(c, "booking_not_found", "Booking not found or not yours.")
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// AVAILABLE SLOTS
// ======================================================

// AvailableSlots serves both the public and the authenticated-patient
// endpoint; semantics are identical, only the middleware differs.
func (h *BookingHandler) AvailableSlots(c *gin.Context) {
	dateStr := c.Param("date")
	if dateStr == "" {
		dateStr = c.Query("date")
	}
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	slots, err := h.freeSlots.Execute(c.Request.Context(), dateStr)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_date") {
			httperr.BadRequest(c, "invalid_date", "Invalid date format. Use YYYY-MM-DD.")
			return
		}
		httperr.Internal(c, "availability_failed", "Failed to resolve available slots.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slotsOut(slots),
	})
}
