package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clinicdesk/clinic-scheduler/internal/audit"
	"github.com/clinicdesk/clinic-scheduler/internal/cache"
	"github.com/clinicdesk/clinic-scheduler/internal/config"
	"github.com/clinicdesk/clinic-scheduler/internal/handlers"
	infraRepo "github.com/clinicdesk/clinic-scheduler/internal/infra/repository"
	"github.com/clinicdesk/clinic-scheduler/internal/middleware"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
	"github.com/clinicdesk/clinic-scheduler/internal/storage"
	ucBooking "github.com/clinicdesk/clinic-scheduler/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	slotsCache *cache.SlotsCache,
	uploader *storage.Uploader,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	freeSlotsUC := ucBooking.NewFreeSlots(scheduleRepo, slotsCache)

	createBookingUC := ucBooking.NewCreateBooking(
		scheduleRepo,
		slotsCache,
		auditDispatcher,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		scheduleRepo,
		slotsCache,
		auditDispatcher,
	)

	replaceBookingUC := ucBooking.NewAdminReplaceBooking(
		scheduleRepo,
		slotsCache,
		auditDispatcher,
	)

	deleteBookingUC := ucBooking.NewAdminDeleteBooking(
		scheduleRepo,
		slotsCache,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	availabilityHandler := handlers.NewAvailabilityHandler(
		scheduleRepo,
		slotsCache,
		auditDispatcher,
	)

	bookingHandler := handlers.NewBookingHandler(
		db,
		createBookingUC,
		cancelBookingUC,
		freeSlotsUC,
	)

	adminHandler := handlers.NewAdminHandler(
		db,
		replaceBookingUC,
		deleteBookingUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	sliderHandler := handlers.NewSliderHandler(db, uploader, auditDispatcher)
	contactHandler := handlers.NewContactHandler(db)
	clinicInfoHandler := handlers.NewClinicInfoHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/availability/available-slots", bookingHandler.AvailableSlots)
		api.GET("/slider", sliderHandler.List)
		api.GET("/clinic-info", clinicInfoHandler.Get)
		api.POST("/contact", contactHandler.Create)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", authHandler.GetMe)

			// ------------------------------
			// BOOKINGS (PATIENT)
			// ------------------------------
			patient := secured.Group("/bookings")
			patient.Use(middleware.RequireRole(models.RolePatient))
			{
				patient.POST("", bookingHandler.Create)
				patient.GET("/my-bookings", bookingHandler.MyBookings)
				patient.GET("/available-slots/:date", bookingHandler.AvailableSlots)
				patient.DELETE("/:id", bookingHandler.Cancel)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/dashboard/stats", adminHandler.DashboardStats)

				admin.GET("/bookings", adminHandler.ListBookings)
				admin.PUT("/bookings/:id", adminHandler.UpdateBooking)
				admin.DELETE("/bookings/:id", adminHandler.DeleteBooking)

				admin.GET("/users", adminHandler.ListUsers)

				admin.POST("/availability", availabilityHandler.CreateWindow)
				admin.GET("/availability", availabilityHandler.ListWindows)
				admin.GET("/availability/by-weekday/:weekday", availabilityHandler.ListWindowsByWeekday)
				admin.DELETE("/availability/:id", availabilityHandler.DeleteWindow)

				admin.GET("/booking-settings", availabilityHandler.GetSettings)
				admin.POST("/booking-settings", availabilityHandler.SaveSettings)

				admin.POST("/slider", sliderHandler.Create)
				admin.PATCH("/slider/:id", sliderHandler.Update)
				admin.DELETE("/slider/:id", sliderHandler.Delete)

				admin.GET("/contact-messages", contactHandler.List)
				admin.PUT("/clinic-info", clinicInfoHandler.Update)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
