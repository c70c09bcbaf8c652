package appointment

import (
	"context"

	"github.com/MedAgendaServices/clinic-scheduler/internal/audit"
	domain "github.com/MedAgendaServices/clinic-scheduler/internal/domain/appointment"
	"github.com/MedAgendaServices/clinic-scheduler/internal/httperr"
	"github.com/MedAgendaServices/clinic-scheduler/internal/models"
	"github.com/MedAgendaServices/clinic-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	AppointmentNo   string
	PatientID       uint
	DoctorID        uint
	AppointmentType string

	Date     string // YYYY-MM-DD
	Time     string // HH:MM
	Duration int    // minutos

	Priority string
	Reason   string
	Symptoms string

	RecordedBy uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	audit    AuditSink
	versions VersionBumper
}

func NewCreateAppointment(
	repo domain.Repository,
	audit AuditSink,
	versions VersionBumper,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		audit:    audit,
		versions: versions,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Validação de entrada (antes de qualquer repositório)
	// --------------------------------------------------
	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}

	if _, err := domain.ParseClock(in.Time); err != nil {
		return nil, err
	}

	if in.Duration < domain.MinSlotDurationMinutes || in.Duration > 240 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	// --------------------------------------------------
	// Data não pode estar no passado (timezone da clínica)
	// --------------------------------------------------
	clinic, err := uc.repo.GetClinic(ctx)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(clinic.Timezone)
	today := now.Format("2006-01-02")
	if date.Format("2006-01-02") < today {
		return nil, httperr.ErrBusiness("date_in_past")
	}

	// --------------------------------------------------
	// Médico
	// --------------------------------------------------
	doctor, err := uc.repo.GetDoctor(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil || doctor.UserType != "doctor" {
		return nil, httperr.ErrBusiness("doctor_not_found")
	}

	// --------------------------------------------------
	// Criação: checagem de conflito + insert na mesma
	// transação (serializada por médico no repositório)
	// --------------------------------------------------
	ap := &models.Appointment{
		AppointmentNo:     in.AppointmentNo,
		PatientID:         in.PatientID,
		DoctorID:          in.DoctorID,
		AppointmentType:   in.AppointmentType,
		Status:            string(domain.InitialStatus()),
		ScheduledDate:     in.Date,
		ScheduledTime:     in.Time,
		EstimatedDuration: in.Duration,
		Priority:          in.Priority,
		Reason:            in.Reason,
		Symptoms:          in.Symptoms,
		RecordedBy:        in.RecordedBy,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsBusiness(err, "scheduling_conflict") {
			uc.audit.Dispatch(audit.Event{
				UserID: &in.RecordedBy,
				Action: "appointment_conflict",
				Entity: "appointment",
				Metadata: map[string]any{
					"doctor_id": in.DoctorID,
					"date":      in.Date,
					"time":      in.Time,
				},
			})
		}
		return nil, err
	}

	uc.versions.Bump(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.RecordedBy,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: ap.ID,
	})

	return ap, nil
}
