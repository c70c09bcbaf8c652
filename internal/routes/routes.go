package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/MedAgendaServices/clinic-scheduler/internal/audit"
	"github.com/MedAgendaServices/clinic-scheduler/internal/cacheversion"
	"github.com/MedAgendaServices/clinic-scheduler/internal/config"
	"github.com/MedAgendaServices/clinic-scheduler/internal/handlers"
	infraRepo "github.com/MedAgendaServices/clinic-scheduler/internal/infra/repository"
	"github.com/MedAgendaServices/clinic-scheduler/internal/middleware"
	ucAppointment "github.com/MedAgendaServices/clinic-scheduler/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	versions := cacheversion.New(rdb)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
		versions,
	)

	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)

	updateStatusUC := ucAppointment.NewUpdateStatus(
		appointmentRepo,
		auditDispatcher,
		versions,
	)

	rescheduleUC := ucAppointment.NewRescheduleAppointment(
		appointmentRepo,
		auditDispatcher,
		versions,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
		versions,
	)

	statsUC := ucAppointment.NewGetStats(appointmentRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	clinicHandler := handlers.NewClinicHandler(db)
	usersHandler := handlers.NewUsersHandler(db)

	scheduleHandler := handlers.NewScheduleHandler(db)
	exceptionHandler := handlers.NewScheduleExceptionHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		rdb,
		versions,
		createAppointmentUC,
		availabilityUC,
		updateStatusUC,
		rescheduleUC,
		cancelAppointmentUC,
		statsUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/clinic", clinicHandler.GetClinic)
			secured.PATCH("/clinic", clinicHandler.UpdateClinic)

			secured.GET("/users/doctors", usersHandler.ListDoctors)
			secured.GET("/users/patients", usersHandler.ListPatients)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments/stats", appointmentHandler.Stats)
			secured.GET("/appointments/slots", appointmentHandler.AvailableSlots)
			secured.GET("/appointments/mine", appointmentHandler.Mine)
			secured.GET("/appointments/:id", appointmentHandler.Show)
			secured.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
			secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			// ------------------------------
			// AGENDAS
			// ------------------------------
			secured.GET("/schedules", scheduleHandler.List)
			secured.POST("/schedules", scheduleHandler.Create)
			secured.PATCH("/schedules/:id", scheduleHandler.Update)
			secured.DELETE("/schedules/:id", scheduleHandler.Delete)

			secured.GET("/schedule-exceptions", exceptionHandler.List)
			secured.POST("/schedule-exceptions", exceptionHandler.Create)
			secured.PATCH("/schedule-exceptions/:id", exceptionHandler.Update)
			secured.DELETE("/schedule-exceptions/:id", exceptionHandler.Delete)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
