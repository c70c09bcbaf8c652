package appointment

import (
	"context"

	"github.com/MedAgendaServices/clinic-scheduler/internal/models"
)

type Stats struct {
	TotalToday     int64 `json:"total_today"`
	TotalUpcoming  int64 `json:"total_upcoming"`
	CompletedToday int64 `json:"completed_today"`
	CancelledToday int64 `json:"cancelled_today"`
	NoShowToday    int64 `json:"no_show_today"`
	InProgress     int64 `json:"in_progress"`
}

type Repository interface {
	// -------- Clinic / Doctor --------
	GetClinic(ctx context.Context) (*models.Clinic, error)

	GetDoctor(ctx context.Context, doctorID uint) (*models.User, error)

	// -------- Schedule templates --------

	// Apenas templates ativos; com múltiplas linhas para o mesmo dia,
	// vale a de menor ID. Retorna (nil, nil) quando não há template.
	GetSchedule(
		ctx context.Context,
		doctorID uint,
		dayOfWeek string,
	) (*models.DoctorSchedule, error)

	// Retorna (nil, nil) quando não há exceção para a data.
	GetScheduleException(
		ctx context.Context,
		doctorID uint,
		date string,
	) (*models.ScheduleException, error)

	// -------- Appointment (queries) --------

	// Agendamentos que ocupam a agenda (scheduled/confirmed/in-progress),
	// ordenados por horário.
	ListOccupyingAppointments(
		ctx context.Context,
		doctorID uint,
		date string,
	) ([]models.Appointment, error)

	// Todos os não cancelados da data (checagem de criação).
	ListNonCancelledAppointments(
		ctx context.Context,
		doctorID uint,
		date string,
	) ([]models.Appointment, error)

	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	GetStats(
		ctx context.Context,
		doctorID *uint,
		today string,
	) (*Stats, error)

	// -------- Appointment (writes) --------

	// Checagem de conflito e insert na mesma transação, serializada por
	// médico. Retorna ErrBusiness("scheduling_conflict") quando o horário
	// exato já está tomado.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// Persiste agendamento + efeitos da transição atomicamente: ou tudo,
	// ou nada.
	SaveTransition(
		ctx context.Context,
		ap *models.Appointment,
		fx *TransitionEffects,
	) error
}
