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

type ScheduleExceptionHandler struct {
	db *gorm.DB
}

func NewScheduleExceptionHandler(db *gorm.DB) *ScheduleExceptionHandler {
	return &ScheduleExceptionHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type ScheduleExceptionRequest struct {
	DoctorID      uint   `json:"doctor_id" binding:"required"`
	ExceptionDate string `json:"exception_date" binding:"required"`
	IsAvailable   *bool  `json:"is_available" binding:"required"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Reason        string `json:"reason"`
}

func (req *ScheduleExceptionRequest) validate() error {
	if _, err := domain.ParseDate(req.ExceptionDate); err != nil {
		return httperr.ErrBusiness("invalid_date")
	}

	// Bloqueio total: horários são ignorados.
	if req.IsAvailable == nil || !*req.IsAvailable {
		return nil
	}

	// Disponibilidade especial exige janela explícita.
	start, err := domain.ParseClock(req.StartTime)
	if err != nil {
		return httperr.ErrBusiness("invalid_time")
	}
	end, err := domain.ParseClock(req.EndTime)
	if err != nil {
		return httperr.ErrBusiness("invalid_time")
	}
	if end <= start {
		return httperr.ErrBusiness("end_before_start")
	}

	return nil
}

// ======================================================
// LIST
// ======================================================

func (h *ScheduleExceptionHandler) List(c *gin.Context) {
	q := h.db.
		Preload("Doctor").
		Model(&models.ScheduleException{})

	if doctor := c.Query("doctor"); doctor != "" {
		q = q.Where("doctor_id = ?", doctor)
	}

	if from := c.Query("from"); from != "" {
		q = q.Where("exception_date >= ?", from)
	}

	if to := c.Query("to"); to != "" {
		q = q.Where("exception_date <= ?", to)
	}

	switch c.Query("availability") {
	case "available":
		q = q.Where("is_available = true")
	case "blocked":
		q = q.Where("is_available = false")
	}

	var exceptions []models.ScheduleException
	if err := q.
		Order("exception_date ASC").
		Order("doctor_id ASC").
		Find(&exceptions).Error; err != nil {

		httperr.Internal(c, "failed_to_list_exceptions", "Erro ao listar exceções.")
		return
	}

	c.JSON(http.StatusOK, exceptions)
}

// ======================================================
// CREATE
// ======================================================

func (h *ScheduleExceptionHandler) Create(c *gin.Context) {
	var req ScheduleExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if err := req.validate(); err != nil {
		code, _ := httperr.IsAnyBusiness(err)
		httperr.BadRequest(c, code, "Exceção de agenda inválida.")
		return
	}

	exc := models.ScheduleException{
		DoctorID:      req.DoctorID,
		ExceptionDate: req.ExceptionDate,
		IsAvailable:   *req.IsAvailable,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Reason:        req.Reason,
	}

	// Uma exceção por médico/data: a mais recente substitui.
	if err := h.db.
		Where("doctor_id = ? AND exception_date = ?", exc.DoctorID, exc.ExceptionDate).
		Delete(&models.ScheduleException{}).Error; err != nil {

		httperr.Internal(c, "failed_to_create_exception", "Erro ao criar exceção.")
		return
	}

	if err := h.db.Create(&exc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_exception", "Erro ao criar exceção.")
		return
	}

	c.JSON(http.StatusCreated, exc)
}

// ======================================================
// UPDATE
// ======================================================

func (h *ScheduleExceptionHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var exc models.ScheduleException
	if err := h.db.First(&exc, id).Error; err != nil {
		httperr.NotFound(c, "exception_not_found", "Exceção não encontrada.")
		return
	}

	var req ScheduleExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if err := req.validate(); err != nil {
		code, _ := httperr.IsAnyBusiness(err)
		httperr.BadRequest(c, code, "Exceção de agenda inválida.")
		return
	}

	exc.DoctorID = req.DoctorID
	exc.ExceptionDate = req.ExceptionDate
	exc.IsAvailable = *req.IsAvailable
	exc.StartTime = req.StartTime
	exc.EndTime = req.EndTime
	exc.Reason = req.Reason

	if err := h.db.Save(&exc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_exception", "Erro ao atualizar exceção.")
		return
	}

	c.JSON(http.StatusOK, exc)
}

// ======================================================
// DELETE
// ======================================================

func (h *ScheduleExceptionHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.db.Delete(&models.ScheduleException{}, id).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_exception", "Erro ao remover exceção.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
