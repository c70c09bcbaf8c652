package appointment

import "github.com/MedAgendaServices/clinic-scheduler/internal/models"

// Grade fixa de 15 minutos, independente do slot_duration do template.
const GridStepMinutes = 15

const MinSlotDurationMinutes = 15

type AvailabilityInput struct {
	DoctorID uint
	Date     string // YYYY-MM-DD
	Duration int    // minutos
}

// Janela efetiva de atendimento de um dia, já resolvida entre template
// semanal e exceção de agenda.
type DayWindow struct {
	Start int
	End   int

	HasBreak   bool
	BreakStart int
	BreakEnd   int
}

// WindowFromSchedule monta a janela a partir do template semanal,
// incluindo a pausa quando configurada.
func WindowFromSchedule(sched *models.DoctorSchedule) (DayWindow, error) {
	start, err := ParseClock(sched.StartTime)
	if err != nil {
		return DayWindow{}, err
	}
	end, err := ParseClock(sched.EndTime)
	if err != nil {
		return DayWindow{}, err
	}

	win := DayWindow{Start: start, End: end}

	if sched.BreakStart != "" && sched.BreakEnd != "" {
		bs, err := ParseClock(sched.BreakStart)
		if err != nil {
			return DayWindow{}, err
		}
		be, err := ParseClock(sched.BreakEnd)
		if err != nil {
			return DayWindow{}, err
		}
		win.HasBreak = true
		win.BreakStart = bs
		win.BreakEnd = be
	}

	return win, nil
}

// WindowFromException monta a janela a partir de uma exceção disponível.
// Exceções substituem o expediente por inteiro: a pausa do template não
// se aplica.
func WindowFromException(exc *models.ScheduleException) (DayWindow, error) {
	start, err := ParseClock(exc.StartTime)
	if err != nil {
		return DayWindow{}, err
	}
	end, err := ParseClock(exc.EndTime)
	if err != nil {
		return DayWindow{}, err
	}
	return DayWindow{Start: start, End: end}, nil
}

// BuildSlots percorre a janela em passos de 15 minutos e devolve os
// inícios livres ("HH:MM"), em ordem crescente.
//
// Um início t é aceito quando:
//   - t + duration cabe antes do fim da janela;
//   - t não cai dentro da pausa [break_start, break_end);
//   - [t, t+duration) não cruza nenhum intervalo ocupado.
func BuildSlots(win DayWindow, busy []Interval, duration int) []string {
	slots := []string{}

	if win.End <= win.Start || duration <= 0 {
		return slots
	}

	for t := win.Start; t+duration <= win.End; t += GridStepMinutes {
		if win.HasBreak && t >= win.BreakStart && t < win.BreakEnd {
			continue
		}

		candidate := Interval{Start: t, End: t + duration}

		conflict := false
		for _, b := range busy {
			if candidate.Overlaps(b) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, FormatClock(t))
		}
	}

	return slots
}
