package appointment

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/MedAgendaServices/clinic-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Efeitos de uma transição que o repositório precisa persistir junto
// com o agendamento, em uma única transação.
type TransitionEffects struct {
	History *models.AppointmentStatusHistory

	// preenchido na entrada em in-progress
	NewConsultation *models.Consultation

	// fecha a consulta aberta na entrada em completed
	CloseConsultation bool
	ClosedAt          time.Time
}

func historyEntry(ap *models.Appointment, oldStatus, newStatus Status, actorID uint, notes string) *models.AppointmentStatusHistory {
	actor := actorID
	return &models.AppointmentStatusHistory{
		AppointmentID: ap.ID,
		UserID:        &actor,
		OldStatus:     string(oldStatus),
		NewStatus:     string(newStatus),
		Notes:         notes,
	}
}

// Transition aplica newStatus sobre o agendamento e devolve os efeitos a
// persistir. Mesma transição de status é no-op: retorna (nil, nil) e nada
// é gravado.
func Transition(ap *models.Appointment, newStatus Status, actorID uint, notes string, now time.Time) (*TransitionEffects, error) {
	current := Status(ap.Status)

	if err := ValidateTransition(current, newStatus); err != nil {
		return nil, err
	}

	if current == newStatus {
		return nil, nil
	}

	ap.Status = string(newStatus)

	fx := &TransitionEffects{
		History: historyEntry(ap, current, newStatus, actorID, notes),
	}

	switch newStatus {
	case StatusInProgress:
		ap.ConsultationStartedAt = &now
		started := now
		fx.NewConsultation = &models.Consultation{
			AppointmentID: ap.ID,
			DoctorID:      ap.DoctorID,
			PatientID:     ap.PatientID,
			StartedAt:     &started,
			Status:        "in_progress",
		}

	case StatusCompleted:
		ap.ConsultationEndedAt = &now
		fx.CloseConsultation = true
		fx.ClosedAt = now

	case StatusCancelled:
		actor := actorID
		ap.CancelledAt = &now
		ap.CancelledBy = &actor
	}

	return fx, nil
}

// Reschedule move o agendamento para nova data/horário, guardando o
// horário anterior e marcando o status como rescheduled. A checagem de
// conflito do novo intervalo é responsabilidade de quem chama.
func Reschedule(ap *models.Appointment, newDate, newTime, reason string, actorID uint) (*TransitionEffects, error) {
	if _, err := ParseDate(newDate); err != nil {
		return nil, err
	}
	if _, err := ParseClock(newTime); err != nil {
		return nil, err
	}

	oldStatus := Status(ap.Status)
	oldDate := ap.ScheduledDate
	oldTime := ap.ScheduledTime

	from, _ := json.Marshal(map[string]string{
		"date": oldDate,
		"time": oldTime,
	})

	ap.ScheduledDate = newDate
	ap.ScheduledTime = newTime
	ap.Status = string(StatusRescheduled)
	ap.RescheduledFrom = string(from)

	notes := fmt.Sprintf("Rescheduled from %s %s. Reason: %s", oldDate, oldTime, reason)

	return &TransitionEffects{
		History: historyEntry(ap, oldStatus, StatusRescheduled, actorID, notes),
	}, nil
}

// Cancel sempre sucede: não há checagem de conflito para liberar horário.
// Cancelar um agendamento já cancelado é no-op.
func Cancel(ap *models.Appointment, reason string, actorID uint, now time.Time) *TransitionEffects {
	current := Status(ap.Status)
	if current == StatusCancelled {
		return nil
	}

	actor := actorID
	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	ap.CancelledBy = &actor
	ap.CancellationReason = reason

	notes := fmt.Sprintf("Cancelled. Reason: %s", reason)

	return &TransitionEffects{
		History: historyEntry(ap, current, StatusCancelled, actorID, notes),
	}
}
