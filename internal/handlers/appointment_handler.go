package handlers

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/MedAgendaServices/clinic-scheduler/internal/cacheversion"
	domain "github.com/MedAgendaServices/clinic-scheduler/internal/domain/appointment"
	"github.com/MedAgendaServices/clinic-scheduler/internal/dto"
	"github.com/MedAgendaServices/clinic-scheduler/internal/httperr"
	"github.com/MedAgendaServices/clinic-scheduler/internal/httpresp"
	"github.com/MedAgendaServices/clinic-scheduler/internal/middleware"
	"github.com/MedAgendaServices/clinic-scheduler/internal/models"
	ucAppointment "github.com/MedAgendaServices/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db       *gorm.DB
	rdb      *redis.Client
	versions *cacheversion.Counter

	createUC       *ucAppointment.CreateAppointment
	availabilityUC *ucAppointment.GetAvailability
	statusUC       *ucAppointment.UpdateStatus
	rescheduleUC   *ucAppointment.RescheduleAppointment
	cancelUC       *ucAppointment.CancelAppointment
	statsUC        *ucAppointment.GetStats
}

func NewAppointmentHandler(
	db *gorm.DB,
	rdb *redis.Client,
	versions *cacheversion.Counter,
	createUC *ucAppointment.CreateAppointment,
	availabilityUC *ucAppointment.GetAvailability,
	statusUC *ucAppointment.UpdateStatus,
	rescheduleUC *ucAppointment.RescheduleAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	statsUC *ucAppointment.GetStats,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:             db,
		rdb:            rdb,
		versions:       versions,
		createUC:       createUC,
		availabilityUC: availabilityUC,
		statusUC:       statusUC,
		rescheduleUC:   rescheduleUC,
		cancelUC:       cancelUC,
		statsUC:        statsUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	AppointmentNo   string `json:"appointment_no" binding:"required"`
	PatientID       uint   `json:"patient_id" binding:"required"`
	DoctorID        uint   `json:"doctor_id" binding:"required"`
	AppointmentType string `json:"appointment_type" binding:"required"`
	Date            string `json:"scheduled_date" binding:"required"`
	Time            string `json:"scheduled_time" binding:"required"`
	Duration        int    `json:"estimated_duration" binding:"required,min=15,max=240"`
	Priority        string `json:"priority" binding:"required,oneof=low normal high urgent"`
	Reason          string `json:"reason" binding:"required,min=10,max=1000"`
	Symptoms        string `json:"symptoms" binding:"max=1000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes" binding:"max=500"`
}

type RescheduleRequest struct {
	Date   string `json:"scheduled_date" binding:"required"`
	Time   string `json:"scheduled_time" binding:"required"`
	Reason string `json:"reason" binding:"max=500"`
}

type CancelRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		AppointmentNo:   req.AppointmentNo,
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		AppointmentType: req.AppointmentType,
		Date:            req.Date,
		Time:            req.Time,
		Duration:        req.Duration,
		Priority:        req.Priority,
		Reason:          req.Reason,
		Symptoms:        req.Symptoms,
		RecordedBy:      actorID,
	})

	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(201, ap)
}

// ======================================================
// LIST (cache por versão, 5 minutos)
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	filters := map[string]string{
		"search":           c.Query("search"),
		"priority":         c.Query("priority"),
		"status":           c.Query("status"),
		"appointment_type": c.Query("appointment_type"),
		"page":             c.DefaultQuery("page", "1"),
	}

	ctx := c.Request.Context()
	version := h.versions.Current(ctx)

	raw, _ := json.Marshal(filters)
	cacheKey := fmt.Sprintf("appointments:index:v%d:%x", version, md5.Sum(raw))

	if cached, err := h.rdb.Get(ctx, cacheKey).Result(); err == nil {
		c.Data(200, "application/json", []byte(cached))
		return
	}

	page, _ := strconv.Atoi(filters["page"])
	if page <= 0 {
		page = 1
	}

	const perPage = 50

	q := h.db.
		Preload("Patient").
		Preload("Doctor").
		Model(&models.Appointment{})

	if filters["search"] != "" {
		like := "%" + filters["search"] + "%"
		q = q.Where(
			"appointment_no LIKE ? OR reason LIKE ? OR symptoms LIKE ?",
			like, like, like,
		)
	}

	if filters["priority"] != "" {
		q = q.Where("priority = ?", filters["priority"])
	}

	if filters["status"] != "" {
		q = q.Where("status = ?", filters["status"])
	}

	if filters["appointment_type"] != "" {
		q = q.Where("appointment_type = ?", filters["appointment_type"])
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	var aps []models.Appointment
	if err := q.
		Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&aps).Error; err != nil {

		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	payload, _ := json.Marshal(gin.H{
		"page":         page,
		"per_page":     perPage,
		"total":        total,
		"appointments": aps,
	})

	h.rdb.Set(ctx, cacheKey, payload, 5*time.Minute)

	c.Data(200, "application/json", payload)
}

// ======================================================
// DOCTOR AGENDA
// ======================================================

func (h *AppointmentHandler) Mine(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	q := h.db.
		Preload("Patient").
		Preload("Doctor").
		Where("doctor_id = ?", doctorID)

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	if date := c.Query("date"); date != "" {
		q = q.Where("scheduled_date = ?", date)
	}

	var aps []models.Appointment
	if err := q.
		Order("scheduled_date ASC").
		Order("scheduled_time ASC").
		Find(&aps).Error; err != nil {

		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	out := make([]dto.AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, dto.AppointmentListDTO{
			ID:            ap.ID,
			AppointmentNo: ap.AppointmentNo,
			ScheduledDate: ap.ScheduledDate,
			ScheduledTime: ap.ScheduledTime,
			Duration:      ap.EstimatedDuration,
			Status:        ap.Status,
			Priority:      ap.Priority,
			PatientName:   ap.Patient.Name,
			DoctorName:    ap.Doctor.Name,
		})
	}

	httpresp.List(c, out)
}

// ======================================================
// SHOW
// ======================================================

func (h *AppointmentHandler) Show(c *gin.Context) {
	id := c.Param("id")

	var ap models.Appointment
	if err := h.db.
		Preload("Patient").
		Preload("Doctor").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Limit(10)
		}).
		Where("id = ?", id).
		First(&ap).Error; err != nil {

		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// AVAILABLE SLOTS
// ======================================================

func (h *AppointmentHandler) AvailableSlots(c *gin.Context) {
	doctorIDStr := c.Query("doctor_id")
	dateStr := c.Query("date")
	durationStr := c.Query("duration")

	if doctorIDStr == "" || dateStr == "" || durationStr == "" {
		httperr.BadRequest(c, "missing_params", "Médico, data e duração são obrigatórios.")
		return
	}

	doctorID, err := strconv.ParseUint(doctorIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_doctor_id", "Médico inválido.")
		return
	}

	duration, err := strconv.Atoi(durationStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_duration", "Duração inválida.")
		return
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			DoctorID: uint(doctorID),
			Date:     dateStr,
			Duration: duration,
		},
	)

	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

// ======================================================
// STATUS / RESCHEDULE / CANCEL
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.statusUC.Execute(c.Request.Context(), id, req.Status, req.Notes, actorID)
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(200, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), ucAppointment.RescheduleInput{
		AppointmentID: id,
		Date:          req.Date,
		Time:          req.Time,
		Reason:        req.Reason,
		ActorID:       actorID,
	})
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(200, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Motivo do cancelamento é obrigatório.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), id, req.Reason, actorID)
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// STATS
// ======================================================

func (h *AppointmentHandler) Stats(c *gin.Context) {
	userType := c.MustGet(middleware.ContextUserType).(string)

	var doctorID *uint
	if userType == "doctor" {
		id := c.MustGet(middleware.ContextUserID).(uint)
		doctorID = &id
	}

	stats, err := h.statsUC.Execute(c.Request.Context(), doctorID)
	if err != nil {
		httperr.Internal(c, "failed_to_get_stats", "Erro ao calcular estatísticas.")
		return
	}

	c.JSON(200, stats)
}

// ======================================================
// ERROR MAPPING
// ======================================================

func mapAppointmentError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "scheduling_conflict"):
		httperr.Conflict(c, "scheduling_conflict", "Este horário já está ocupado. Escolha outro horário.")

	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")

	case httperr.IsBusiness(err, "doctor_not_found"):
		httperr.BadRequest(c, "doctor_not_found", "Médico não encontrado.")

	case httperr.IsBusiness(err, "invalid_date"),
		httperr.IsBusiness(err, "invalid_time"),
		httperr.IsBusiness(err, "invalid_duration"),
		httperr.IsBusiness(err, "date_in_past"),
		httperr.IsBusiness(err, "invalid_status"):
		code, _ := httperr.IsAnyBusiness(err)
		httperr.BadRequest(c, code, "Dados de agendamento inválidos.")

	default:
		httperr.Internal(c, "appointment_operation_failed", "Erro ao processar agendamento.")
	}
}
