package appointment

import (
	"context"

	"github.com/MedAgendaServices/clinic-scheduler/internal/audit"
	domain "github.com/MedAgendaServices/clinic-scheduler/internal/domain/appointment"
	"github.com/MedAgendaServices/clinic-scheduler/internal/httperr"
	"github.com/MedAgendaServices/clinic-scheduler/internal/models"
	"github.com/MedAgendaServices/clinic-scheduler/internal/timezone"
)

type CancelAppointment struct {
	repo     domain.Repository
	audit    AuditSink
	versions VersionBumper
}

func NewCancelAppointment(
	repo domain.Repository,
	audit AuditSink,
	versions VersionBumper,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		audit:    audit,
		versions: versions,
	}
}

// Cancelamento nunca exige checagem de conflito: só libera horário.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID string,
	reason string,
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

	fx := domain.Cancel(ap, reason, actorID, now)
	if fx == nil {
		// já cancelado
		return ap, nil
	}

	if err := uc.repo.SaveTransition(ctx, ap, fx); err != nil {
		return nil, err
	}

	uc.versions.Bump(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: ap.ID,
	})

	return ap, nil
}
