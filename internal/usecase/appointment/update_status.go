package appointment

import (
	"context"

	"github.com/MedAgendaServices/clinic-scheduler/internal/audit"
	domain "github.com/MedAgendaServices/clinic-scheduler/internal/domain/appointment"
	"github.com/MedAgendaServices/clinic-scheduler/internal/httperr"
	"github.com/MedAgendaServices/clinic-scheduler/internal/models"
	"github.com/MedAgendaServices/clinic-scheduler/internal/timezone"
)

type UpdateStatus struct {
	repo     domain.Repository
	audit    AuditSink
	versions VersionBumper
}

func NewUpdateStatus(
	repo domain.Repository,
	audit AuditSink,
	versions VersionBumper,
) *UpdateStatus {
	return &UpdateStatus{
		repo:     repo,
		audit:    audit,
		versions: versions,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	appointmentID string,
	newStatus string,
	notes string,
	actorID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	clinic, err := uc.repo.GetClinic(ctx)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(clinic.Timezone)

	fx, err := domain.Transition(ap, domain.Status(newStatus), actorID, notes, now)
	if err != nil {
		return nil, err
	}

	// mesmo status → no-op: sem histórico, sem side effects
	if fx == nil {
		return ap, nil
	}

	if err := uc.repo.SaveTransition(ctx, ap, fx); err != nil {
		return nil, err
	}

	uc.versions.Bump(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "appointment_status_updated",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]any{
			"old_status": fx.History.OldStatus,
			"new_status": fx.History.NewStatus,
		},
	})

	return ap, nil
}
