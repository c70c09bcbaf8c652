package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/MedAgendaServices/clinic-scheduler/internal/domain/appointment"
	"github.com/MedAgendaServices/clinic-scheduler/internal/httperr"
	"github.com/MedAgendaServices/clinic-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type ScheduleHandler struct {
	db *gorm.DB
}

func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type ScheduleRequest struct {
	DoctorID           uint   `json:"doctor_id" binding:"required"`
	DayOfWeek          string `json:"day_of_week" binding:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime          string `json:"start_time" binding:"required"`
	EndTime            string `json:"end_time" binding:"required"`
	BreakStart         string `json:"break_start"`
	BreakEnd           string `json:"break_end"`
	SlotDuration       int    `json:"slot_duration" binding:"required,min=5"`
	MaxPatientsPerSlot int    `json:"max_patients_per_slot" binding:"required,min=1"`
	IsActive           *bool  `json:"is_active"`
}

func (req *ScheduleRequest) validateTimes() error {
	start, err := domain.ParseClock(req.StartTime)
	if err != nil {
		return err
	}
	end, err := domain.ParseClock(req.EndTime)
	if err != nil {
		return err
	}
	if end <= start {
		return httperr.ErrBusiness("end_before_start")
	}

	if req.BreakStart == "" && req.BreakEnd == "" {
		return nil
	}

	bs, err := domain.ParseClock(req.BreakStart)
	if err != nil {
		return err
	}
	be, err := domain.ParseClock(req.BreakEnd)
	if err != nil {
		return err
	}
	if be <= bs || bs < start || be > end {
		return httperr.ErrBusiness("invalid_break_window")
	}

	return nil
}

// ======================================================
// LIST (segunda → domingo)
// ======================================================

func (h *ScheduleHandler) List(c *gin.Context) {
	q := h.db.
		Preload("Doctor").
		Model(&models.DoctorSchedule{})

	if doctor := c.Query("doctor"); doctor != "" {
		q = q.Where("doctor_id = ?", doctor)
	}

	if day := c.Query("day"); day != "" {
		q = q.Where("day_of_week = ?", day)
	}

	switch c.Query("status") {
	case "active":
		q = q.Where("is_active = true")
	case "inactive":
		q = q.Where("is_active = false")
	}

	var schedules []models.DoctorSchedule
	if err := q.
		Order(`CASE day_of_week
            WHEN 'monday' THEN 1
            WHEN 'tuesday' THEN 2
            WHEN 'wednesday' THEN 3
            WHEN 'thursday' THEN 4
            WHEN 'friday' THEN 5
            WHEN 'saturday' THEN 6
            WHEN 'sunday' THEN 7
        END`).
		Order("doctor_id ASC").
		Find(&schedules).Error; err != nil {

		httperr.Internal(c, "failed_to_list_schedules", "Erro ao listar agendas.")
		return
	}

	c.JSON(http.StatusOK, schedules)
}

// ======================================================
// CREATE
// ======================================================

func (h *ScheduleHandler) Create(c *gin.Context) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if err := req.validateTimes(); err != nil {
		code, _ := httperr.IsAnyBusiness(err)
		httperr.BadRequest(c, code, "Horários da agenda inválidos.")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	sched := models.DoctorSchedule{
		DoctorID:           req.DoctorID,
		DayOfWeek:          req.DayOfWeek,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		BreakStart:         req.BreakStart,
		BreakEnd:           req.BreakEnd,
		SlotDuration:       req.SlotDuration,
		MaxPatientsPerSlot: req.MaxPatientsPerSlot,
		IsActive:           isActive,
	}

	if err := h.db.Create(&sched).Error; err != nil {
		httperr.Internal(c, "failed_to_create_schedule", "Erro ao criar agenda.")
		return
	}

	c.JSON(http.StatusCreated, sched)
}

// ======================================================
// UPDATE
// ======================================================

func (h *ScheduleHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var sched models.DoctorSchedule
	if err := h.db.First(&sched, id).Error; err != nil {
		httperr.NotFound(c, "schedule_not_found", "Agenda não encontrada.")
		return
	}

	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if err := req.validateTimes(); err != nil {
		code, _ := httperr.IsAnyBusiness(err)
		httperr.BadRequest(c, code, "Horários da agenda inválidos.")
		return
	}

	sched.DoctorID = req.DoctorID
	sched.DayOfWeek = req.DayOfWeek
	sched.StartTime = req.StartTime
	sched.EndTime = req.EndTime
	sched.BreakStart = req.BreakStart
	sched.BreakEnd = req.BreakEnd
	sched.SlotDuration = req.SlotDuration
	sched.MaxPatientsPerSlot = req.MaxPatientsPerSlot
	if req.IsActive != nil {
		sched.IsActive = *req.IsActive
	}

	if err := h.db.Save(&sched).Error; err != nil {
		httperr.Internal(c, "failed_to_update_schedule", "Erro ao atualizar agenda.")
		return
	}

	c.JSON(http.StatusOK, sched)
}

// ======================================================
// DELETE
// ======================================================

func (h *ScheduleHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.db.Delete(&models.DoctorSchedule{}, id).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_schedule", "Erro ao remover agenda.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
