package appointment

import "github.com/MedAgendaServices/clinic-scheduler/internal/models"

// ===============================
// Conflict detection
// ===============================

// HasExactMatch reproduz a checagem de criação: mesmo médico, mesma data
// e mesmo horário de início. Não considera sobreposição de duração.
func HasExactMatch(existing []models.Appointment, scheduledTime string) bool {
	for i := range existing {
		if existing[i].ScheduledTime == scheduledTime {
			return true
		}
	}
	return false
}

// FindOverlap devolve o primeiro agendamento cujo intervalo cruza o
// candidato, ignorando excludeID (o próprio registro em edição).
// Teste estrito meio-aberto: start < busyEnd && end > busyStart.
func FindOverlap(existing []models.Appointment, candidate Interval, excludeID string) *models.Appointment {
	for i := range existing {
		ap := &existing[i]
		if ap.ID == excludeID {
			continue
		}

		busy, err := BusyInterval(ap)
		if err != nil {
			// horário ilegível no banco não pode bloquear a agenda
			continue
		}

		if candidate.Overlaps(busy) {
			return ap
		}
	}
	return nil
}
