package appointment

import (
	"context"

	"github.com/MedAgendaServices/clinic-scheduler/internal/audit"
	domain "github.com/MedAgendaServices/clinic-scheduler/internal/domain/appointment"
	"github.com/MedAgendaServices/clinic-scheduler/internal/httperr"
	"github.com/MedAgendaServices/clinic-scheduler/internal/models"
)

type RescheduleInput struct {
	AppointmentID string
	Date          string // YYYY-MM-DD
	Time          string // HH:MM
	Reason        string
	ActorID       uint
}

type RescheduleAppointment struct {
	repo     domain.Repository
	audit    AuditSink
	versions VersionBumper
}

func NewRescheduleAppointment(
	repo domain.Repository,
	audit AuditSink,
	versions VersionBumper,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:     repo,
		audit:    audit,
		versions: versions,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	start, err := domain.ParseClock(in.Time)
	if err != nil {
		return nil, err
	}
	if _, err := domain.ParseDate(in.Date); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Conflito por sobreposição, excluindo o próprio registro.
	// Qualquer corrida residual é barrada pela constraint de
	// exclusão do banco no SaveTransition.
	// --------------------------------------------------
	occupying, err := uc.repo.ListOccupyingAppointments(ctx, ap.DoctorID, in.Date)
	if err != nil {
		return nil, err
	}

	candidate := domain.Interval{Start: start, End: start + ap.EstimatedDuration}
	if hit := domain.FindOverlap(occupying, candidate, ap.ID); hit != nil {
		return nil, httperr.ErrBusiness("scheduling_conflict")
	}

	fx, err := domain.Reschedule(ap, in.Date, in.Time, in.Reason, in.ActorID)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.SaveTransition(ctx, ap, fx); err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrBusiness("scheduling_conflict")
		}
		return nil, err
	}

	uc.versions.Bump(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]any{
			"date": in.Date,
			"time": in.Time,
		},
	})

	return ap, nil
}
