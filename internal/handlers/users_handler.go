package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MedAgendaServices/clinic-scheduler/internal/httperr"
	"github.com/MedAgendaServices/clinic-scheduler/internal/httpresp"
	"github.com/MedAgendaServices/clinic-scheduler/internal/models"
)

type UsersHandler struct {
	db *gorm.DB
}

func NewUsersHandler(db *gorm.DB) *UsersHandler {
	return &UsersHandler{db: db}
}

// ======================================================
// DOCTORS
// ======================================================

func (h *UsersHandler) ListDoctors(c *gin.Context) {
	var doctors []models.User
	if err := h.db.
		Where("user_type = ? AND is_active = true", "doctor").
		Order("name ASC").
		Find(&doctors).Error; err != nil {

		httperr.Internal(c, "failed_to_list_doctors", "Erro ao listar médicos.")
		return
	}

	out := make([]gin.H, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, gin.H{
			"id":    d.ID,
			"name":  d.Name,
			"email": d.Email,
			"phone": d.Phone,
		})
	}

	httpresp.List(c, out)
}

// ======================================================
// PATIENTS
// ======================================================

func (h *UsersHandler) ListPatients(c *gin.Context) {
	q := h.db.
		Model(&models.User{}).
		Where("user_type = ?", "patient")

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where(
			"name ILIKE ? OR email ILIKE ? OR patient_no ILIKE ?",
			like, like, like,
		)
	}

	var patients []models.User
	if err := q.
		Order("name ASC").
		Limit(100).
		Find(&patients).Error; err != nil {

		httperr.Internal(c, "failed_to_list_patients", "Erro ao listar pacientes.")
		return
	}

	out := make([]gin.H, 0, len(patients))
	for _, p := range patients {
		out = append(out, gin.H{
			"id":         p.ID,
			"name":       p.Name,
			"email":      p.Email,
			"phone":      p.Phone,
			"patient_no": p.PatientNo,
		})
	}

	httpresp.List(c, out)
}
