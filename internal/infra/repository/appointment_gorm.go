package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/MedAgendaServices/clinic-scheduler/internal/domain/appointment"
	"github.com/MedAgendaServices/clinic-scheduler/internal/httperr"
	"github.com/MedAgendaServices/clinic-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Clinic / Doctor
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClinic(
	ctx context.Context,
) (*models.Clinic, error) {

	var clinic models.Clinic
	if err := r.db.WithContext(ctx).First(&clinic).Error; err != nil {
		return nil, err
	}
	return &clinic, nil
}

func (r *AppointmentGormRepository) GetDoctor(
	ctx context.Context,
	doctorID uint,
) (*models.User, error) {

	var doctor models.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_type = ? AND is_active = true", doctorID, "doctor").
		First(&doctor).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

// --------------------------------------------------
// Schedule templates
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSchedule(
	ctx context.Context,
	doctorID uint,
	dayOfWeek string,
) (*models.DoctorSchedule, error) {

	var sched models.DoctorSchedule
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND day_of_week = ? AND is_active = true", doctorID, dayOfWeek).
		Order("id ASC").
		First(&sched).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sched, nil
}

func (r *AppointmentGormRepository) GetScheduleException(
	ctx context.Context,
	doctorID uint,
	date string,
) (*models.ScheduleException, error) {

	var exc models.ScheduleException
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND exception_date = ?", doctorID, date).
		Order("id ASC").
		First(&exc).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &exc, nil
}

// --------------------------------------------------
// Appointment (queries)
// --------------------------------------------------

func (r *AppointmentGormRepository) ListOccupyingAppointments(
	ctx context.Context,
	doctorID uint,
	date string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"doctor_id = ? AND scheduled_date = ? AND status IN ?",
			doctorID, date, domain.OccupyingStatuses,
		).
		Order("scheduled_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *AppointmentGormRepository) ListNonCancelledAppointments(
	ctx context.Context,
	doctorID uint,
	date string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"doctor_id = ? AND scheduled_date = ? AND status <> ?",
			doctorID, date, string(domain.StatusCancelled),
		).
		Order("scheduled_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) GetStats(
	ctx context.Context,
	doctorID *uint,
	today string,
) (*domain.Stats, error) {

	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Appointment{})
		if doctorID != nil {
			q = q.Where("doctor_id = ?", *doctorID)
		}
		return q
	}

	stats := &domain.Stats{}

	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&stats.TotalToday, base().Where("scheduled_date = ?", today)},
		{&stats.TotalUpcoming, base().
			Where("scheduled_date > ?", today).
			Where("status IN ?", []string{"scheduled", "confirmed"})},
		{&stats.CompletedToday, base().
			Where("scheduled_date = ? AND status = ?", today, "completed")},
		{&stats.CancelledToday, base().
			Where("scheduled_date = ? AND status = ?", today, "cancelled")},
		{&stats.NoShowToday, base().
			Where("scheduled_date = ? AND status = ?", today, "no-show")},
		{&stats.InProgress, base().Where("status = ?", "in-progress")},
	}

	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	return stats, nil
}

// --------------------------------------------------
// Appointment (writes)
// --------------------------------------------------

// CreateAppointment serializa a checagem de conflito e o insert por
// médico: SELECT ... FOR UPDATE sobre os agendamentos do dia dentro da
// transação, depois a checagem legada por horário exato.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var existing []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"doctor_id = ? AND scheduled_date = ? AND status <> ?",
				ap.DoctorID, ap.ScheduledDate, string(domain.StatusCancelled),
			).
			Find(&existing).Error; err != nil {
			return err
		}

		if domain.HasExactMatch(existing, ap.ScheduledTime) {
			return httperr.ErrBusiness("scheduling_conflict")
		}

		return tx.Create(ap).Error
	})

	if err != nil && httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness("scheduling_conflict")
	}

	return err
}

// SaveTransition grava agendamento, histórico e efeitos de consulta em
// uma única transação: ou tudo persiste, ou nada.
func (r *AppointmentGormRepository) SaveTransition(
	ctx context.Context,
	ap *models.Appointment,
	fx *domain.TransitionEffects,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Save(ap).Error; err != nil {
			return err
		}

		if fx.History != nil {
			if err := tx.Create(fx.History).Error; err != nil {
				return err
			}
		}

		if fx.NewConsultation != nil {
			if err := tx.Create(fx.NewConsultation).Error; err != nil {
				return err
			}
		}

		if fx.CloseConsultation {
			if err := closeOpenConsultation(tx, ap.ID, fx.ClosedAt); err != nil {
				return err
			}
		}

		return nil
	})
}

func closeOpenConsultation(tx *gorm.DB, appointmentID string, endedAt time.Time) error {
	var consultation models.Consultation
	err := tx.
		Where("appointment_id = ? AND ended_at IS NULL", appointmentID).
		Order("created_at DESC").
		First(&consultation).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		// concluir sem consulta aberta é válido
		return nil
	}
	if err != nil {
		return err
	}

	consultation.EndedAt = &endedAt
	consultation.Status = "completed"

	return tx.Save(&consultation).Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
