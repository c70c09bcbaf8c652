package appointment

import (
	"fmt"
	"time"

	"github.com/MedAgendaServices/clinic-scheduler/internal/httperr"
	"github.com/MedAgendaServices/clinic-scheduler/internal/models"
)

// ===============================
// Wall-clock helpers
// ===============================

// ParseClock converte "HH:MM" em minutos desde meia-noite.
func ParseClock(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, httperr.ErrBusiness("invalid_time")
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func ParseDate(date string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date")
	}
	return d, nil
}

// DayOfWeek devolve o dia da semana em minúsculas ("monday", ...).
func DayOfWeek(date string) (string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return map[time.Weekday]string{
		time.Sunday:    "sunday",
		time.Monday:    "monday",
		time.Tuesday:   "tuesday",
		time.Wednesday: "wednesday",
		time.Thursday:  "thursday",
		time.Friday:    "friday",
		time.Saturday:  "saturday",
	}[d.Weekday()], nil
}

// ===============================
// Intervals
// ===============================

// Intervalo meio-aberto [Start, End) em minutos desde meia-noite.
type Interval struct {
	Start int
	End   int
}

func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && iv.End > other.Start
}

// BusyInterval deriva o intervalo ocupado de um agendamento.
func BusyInterval(ap *models.Appointment) (Interval, error) {
	start, err := ParseClock(ap.ScheduledTime)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: start + ap.EstimatedDuration}, nil
}
