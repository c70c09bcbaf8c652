package appointment

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/MedAgendaServices/clinic-scheduler/internal/audit"
	domain "github.com/MedAgendaServices/clinic-scheduler/internal/domain/appointment"
	"github.com/MedAgendaServices/clinic-scheduler/internal/httperr"
	"github.com/MedAgendaServices/clinic-scheduler/internal/models"
)

// ======================================================
// FAKE REPOSITORY (em memória, guardado por mutex)
// ======================================================

type fakeRepo struct {
	mu sync.Mutex

	clinic     models.Clinic
	doctors    map[uint]models.User
	schedules  []models.DoctorSchedule
	exceptions []models.ScheduleException

	appointments  map[string]models.Appointment
	histories     []models.AppointmentStatusHistory
	consultations []models.Consultation

	stats domain.Stats
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		clinic: models.Clinic{ID: 1, Name: "Clínica Teste", Timezone: "Africa/Lagos"},
		doctors: map[uint]models.User{
			1: {ID: 1, Name: "Dra. Amina", UserType: "doctor", IsActive: true},
		},
		appointments: map[string]models.Appointment{},
	}
}

func (r *fakeRepo) addAppointment(ap models.Appointment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ap.ID == "" {
		ap.ID = uuid.NewString()
	}
	r.appointments[ap.ID] = ap
}

func (r *fakeRepo) getStored(id string) models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.appointments[id]
}

func (r *fakeRepo) GetClinic(ctx context.Context) (*models.Clinic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.clinic
	return &c, nil
}

func (r *fakeRepo) GetDoctor(ctx context.Context, doctorID uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.doctors[doctorID]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *fakeRepo) GetSchedule(ctx context.Context, doctorID uint, dayOfWeek string) (*models.DoctorSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var found *models.DoctorSchedule
	for i := range r.schedules {
		s := r.schedules[i]
		if s.DoctorID != doctorID || s.DayOfWeek != dayOfWeek || !s.IsActive {
			continue
		}
		if found == nil || s.ID < found.ID {
			found = &s
		}
	}
	if found == nil {
		return nil, nil
	}
	s := *found
	return &s, nil
}

func (r *fakeRepo) GetScheduleException(ctx context.Context, doctorID uint, date string) (*models.ScheduleException, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.exceptions {
		e := r.exceptions[i]
		if e.DoctorID == doctorID && e.ExceptionDate == date {
			return &e, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) listLocked(doctorID uint, date string, keep func(models.Appointment) bool) []models.Appointment {
	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if ap.DoctorID == doctorID && ap.ScheduledDate == date && keep(ap) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledTime < out[j].ScheduledTime
	})
	return out
}

func occupying(ap models.Appointment) bool {
	for _, s := range domain.OccupyingStatuses {
		if ap.Status == s {
			return true
		}
	}
	return false
}

func (r *fakeRepo) ListOccupyingAppointments(ctx context.Context, doctorID uint, date string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listLocked(doctorID, date, occupying), nil
}

func (r *fakeRepo) ListNonCancelledAppointments(ctx context.Context, doctorID uint, date string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listLocked(doctorID, date, func(ap models.Appointment) bool {
		return ap.Status != string(domain.StatusCancelled)
	}), nil
}

func (r *fakeRepo) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[id]
	if !ok {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	return &ap, nil
}

func (r *fakeRepo) GetStats(ctx context.Context, doctorID *uint, today string) (*domain.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.stats
	return &s, nil
}

// checagem de conflito + insert sob o mesmo lock, como a transação
// serializada por médico do repositório real
func (r *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.listLocked(ap.DoctorID, ap.ScheduledDate, func(a models.Appointment) bool {
		return a.Status != string(domain.StatusCancelled)
	})
	if domain.HasExactMatch(existing, ap.ScheduledTime) {
		return httperr.ErrBusiness("scheduling_conflict")
	}

	if ap.ID == "" {
		ap.ID = uuid.NewString()
	}
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *fakeRepo) SaveTransition(ctx context.Context, ap *models.Appointment, fx *domain.TransitionEffects) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.appointments[ap.ID] = *ap

	if fx.History != nil {
		h := *fx.History
		if h.ID == "" {
			h.ID = uuid.NewString()
		}
		r.histories = append(r.histories, h)
	}

	if fx.NewConsultation != nil {
		cons := *fx.NewConsultation
		if cons.ID == "" {
			cons.ID = uuid.NewString()
		}
		r.consultations = append(r.consultations, cons)
	}

	if fx.CloseConsultation {
		for i := range r.consultations {
			cons := &r.consultations[i]
			if cons.AppointmentID == ap.ID && cons.EndedAt == nil {
				endedAt := fx.ClosedAt
				cons.EndedAt = &endedAt
				cons.Status = "completed"
			}
		}
	}

	return nil
}

// ======================================================
// GRAVADORES DE DEPENDÊNCIAS AMBIENTAIS
// ======================================================

type auditRecorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *auditRecorder) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *auditRecorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

type versionRecorder struct {
	mu    sync.Mutex
	bumps int
}

func (r *versionRecorder) Bump(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bumps++
}

func (r *versionRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bumps
}
