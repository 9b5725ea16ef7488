package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clinicdesk/clinic-scheduler/internal/audit"
	"github.com/clinicdesk/clinic-scheduler/internal/cache"
	domain "github.com/clinicdesk/clinic-scheduler/internal/domain/schedule"
	"github.com/clinicdesk/clinic-scheduler/internal/dto"
	"github.com/clinicdesk/clinic-scheduler/internal/httperr"
	"github.com/clinicdesk/clinic-scheduler/internal/middleware"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
	"github.com/clinicdesk/clinic-scheduler/internal/timefmt"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	repo  domain.Repository
	cache *cache.SlotsCache
	audit *audit.Dispatcher
}

func NewAvailabilityHandler(
	repo domain.Repository,
	cache *cache.SlotsCache,
	audit *audit.Dispatcher,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateWindowRequest struct {
	Weekday   string `json:"weekday" binding:"required"`
	StartTime string `json:"start_time" binding:"required"` // "09:00 AM"
	EndTime   string `json:"end_time" binding:"required"`   // "02:00 pm"
}

type DayHoursConfig struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

type SaveSettingsRequest struct {
	SlotDuration int                       `json:"slot_duration" binding:"required"`
	WorkingHours map[string]DayHoursConfig `json:"working_hours" binding:"required"`
}

// ======================================================
// WINDOWS
// ======================================================

func (h *AvailabilityHandler) CreateWindow(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	start, err := timefmt.Parse12h(req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_time_format", "Time must be in HH:MM am/pm format.")
		return
	}

	end, err := timefmt.Parse12h(req.EndTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_time_format", "Time must be in HH:MM am/pm format.")
		return
	}

	if start >= end {
		httperr.BadRequest(c, "invalid_range", "Start time must be before end time.")
		return
	}

	w := models.AvailabilityWindow{
		Weekday:     req.Weekday,
		StartMinute: start,
		EndMinute:   end,
		Active:      true,
	}

	if err := h.repo.CreateWindow(c.Request.Context(), &w); err != nil {
		httperr.Internal(c, "failed_to_create_window", "Failed to save availability.")
		return
	}

	h.cache.InvalidateAll(c.Request.Context())

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "window_created",
		Entity:   "availability_window",
		EntityID: &w.ID,
	})

	c.JSON(http.StatusCreated, dto.NewAvailabilityOut(&w))
}

func (h *AvailabilityHandler) ListWindows(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if skip < 0 {
		skip = 0
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	windows, err := h.repo.ListWindows(c.Request.Context(), skip, limit)
	if err != nil {
		httperr.Internal(c, "failed_to_list_windows", "Failed to list availability.")
		return
	}

	out := make([]dto.AvailabilityOut, 0, len(windows))
	for i := range windows {
		out = append(out, dto.NewAvailabilityOut(&windows[i]))
	}

	c.JSON(http.StatusOK, out)
}

func (h *AvailabilityHandler) ListWindowsByWeekday(c *gin.Context) {
	weekday := c.Param("weekday")

	windows, err := h.repo.ListWindowsByWeekday(c.Request.Context(), weekday)
	if err != nil {
		httperr.Internal(c, "failed_to_list_windows", "Failed to list availability.")
		return
	}

	out := make([]dto.AvailabilityOut, 0, len(windows))
	for i := range windows {
		out = append(out, dto.NewAvailabilityOut(&windows[i]))
	}

	c.JSON(http.StatusOK, out)
}

func (h *AvailabilityHandler) DeleteWindow(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid window id.")
		return
	}

	ok, err := h.repo.DeleteWindow(c.Request.Context(), uint(id))
	if err != nil {
		httperr.Internal(c, "failed_to_delete_window", "Failed to delete availability.")
		return
	}
	if !ok {
		httperr.NotFound(c, "window_not_found", "Availability slot not found.")
		return
	}

	h.cache.InvalidateAll(c.Request.Context())

	windowID := uint(id)
	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "window_deleted",
		Entity:   "availability_window",
		EntityID: &windowID,
	})

	c.Status(http.StatusNoContent)
}

// ======================================================
// BOOKING SETTINGS (SINGLETON)
// ======================================================

func (h *AvailabilityHandler) SaveSettings(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req SaveSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.SlotDuration <= 0 {
		httperr.BadRequest(c, "invalid_duration", "Slot duration must be a positive number of minutes.")
		return
	}

	hours := make(models.WeekHours, len(req.WorkingHours))
	for day, cfg := range req.WorkingHours {
		hours[day] = models.DayHours{
			Enabled: cfg.Enabled,
			Start:   cfg.Start,
			End:     cfg.End,
		}
	}

	settings := models.BookingSettings{
		SlotDurationMin: req.SlotDuration,
		WorkingHours:    hours,
	}

	if err := h.repo.SaveSettings(c.Request.Context(), &settings); err != nil {
		httperr.Internal(c, "failed_to_save_settings", "Failed to save booking settings.")
		return
	}

	h.cache.InvalidateAll(c.Request.Context())

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "settings_updated",
		Entity:   "booking_settings",
		EntityID: &settings.ID,
	})

	c.JSON(http.StatusOK, settings)
}

func (h *AvailabilityHandler) GetSettings(c *gin.Context) {
	settings, err := h.repo.GetSettings(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_get_settings", "Failed to load booking settings.")
		return
	}
	if settings == nil {
		httperr.NotFound(c, "settings_not_found", "No booking settings found.")
		return
	}

	c.JSON(http.StatusOK, settings)
}
