package appointment

import "github.com/MedAgendaServices/clinic-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusConfirmed   Status = "confirmed"
	StatusInProgress  Status = "in-progress"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusNoShow      Status = "no-show"
	StatusRescheduled Status = "rescheduled"
)

// Status que ocupam a agenda do médico. Cancelado, concluído, no-show e
// remanejado liberam o horário.
var OccupyingStatuses = []string{
	string(StatusScheduled),
	string(StatusConfirmed),
	string(StatusInProgress),
}

var allStatuses = map[Status]bool{
	StatusScheduled:   true,
	StatusConfirmed:   true,
	StatusInProgress:  true,
	StatusCompleted:   true,
	StatusCancelled:   true,
	StatusNoShow:      true,
	StatusRescheduled: true,
}

// ===============================
// Validations
// ===============================

func KnownStatus(s Status) bool {
	return allStatuses[s]
}

// Qualquer status pode virar qualquer outro (contrato legado); a única
// regra dura é rejeitar valores fora do domínio.
func ValidateTransition(current, next Status) error {
	if !KnownStatus(next) {
		return httperr.ErrBusiness("invalid_status")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
