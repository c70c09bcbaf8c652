package appointment

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/MedAgendaServices/clinic-scheduler/internal/domain/appointment"
	"github.com/MedAgendaServices/clinic-scheduler/internal/httperr"
	"github.com/MedAgendaServices/clinic-scheduler/internal/models"
)

func createInput() CreateAppointmentInput {
	return CreateAppointmentInput{
		AppointmentNo:   "APT-0001",
		PatientID:       2,
		DoctorID:        1,
		AppointmentType: "consultation",
		Date:            monday,
		Time:            "10:00",
		Duration:        30,
		Priority:        "normal",
		Reason:          "dor de cabeça persistente",
		RecordedBy:      9,
	}
}

func TestCreateAppointment(t *testing.T) {
	repo := newFakeRepo()
	auditRec := &auditRecorder{}
	versions := &versionRecorder{}
	uc := NewCreateAppointment(repo, auditRec, versions)

	ap, err := uc.Execute(context.Background(), createInput())
	require.NoError(t, err)
	require.NotNil(t, ap)

	assert.NotEmpty(t, ap.ID)
	assert.Equal(t, string(domain.StatusScheduled), ap.Status)

	stored := repo.getStored(ap.ID)
	assert.Equal(t, monday, stored.ScheduledDate)
	assert.Equal(t, "10:00", stored.ScheduledTime)
	assert.Equal(t, 30, stored.EstimatedDuration)

	assert.Equal(t, 1, versions.count())
	assert.Equal(t, []string{"appointment_created"}, auditRec.actions())
}

func TestCreateAppointmentExactTimeConflict(t *testing.T) {
	repo := newFakeRepo()
	repo.addAppointment(models.Appointment{
		DoctorID:          1,
		Status:            string(domain.StatusConfirmed),
		ScheduledDate:     monday,
		ScheduledTime:     "10:00",
		EstimatedDuration: 30,
	})

	auditRec := &auditRecorder{}
	versions := &versionRecorder{}
	uc := NewCreateAppointment(repo, auditRec, versions)

	_, err := uc.Execute(context.Background(), createInput())
	assert.True(t, httperr.IsBusiness(err, "scheduling_conflict"))

	assert.Equal(t, 0, versions.count())
	assert.Equal(t, []string{"appointment_conflict"}, auditRec.actions())
}

// A criação checa igualdade exata de horário, não sobreposição: 10:15
// cruza a consulta das 10:00 mas passa (contrato legado da recepção).
func TestCreateAppointmentOverlapIsNotExactConflict(t *testing.T) {
	repo := newFakeRepo()
	repo.addAppointment(models.Appointment{
		DoctorID:          1,
		Status:            string(domain.StatusConfirmed),
		ScheduledDate:     monday,
		ScheduledTime:     "10:00",
		EstimatedDuration: 30,
	})

	uc := NewCreateAppointment(repo, &auditRecorder{}, &versionRecorder{})

	in := createInput()
	in.Time = "10:15"

	_, err := uc.Execute(context.Background(), in)
	assert.NoError(t, err)
}

func TestCreateAppointmentCancelledSlotIsFree(t *testing.T) {
	repo := newFakeRepo()
	repo.addAppointment(models.Appointment{
		DoctorID:          1,
		Status:            string(domain.StatusCancelled),
		ScheduledDate:     monday,
		ScheduledTime:     "10:00",
		EstimatedDuration: 30,
	})

	uc := NewCreateAppointment(repo, &auditRecorder{}, &versionRecorder{})

	_, err := uc.Execute(context.Background(), createInput())
	assert.NoError(t, err)
}

func TestCreateAppointmentRejectsPastDate(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateAppointment(repo, &auditRecorder{}, &versionRecorder{})

	in := createInput()
	in.Date = "2020-01-06"

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "date_in_past"))
}

func TestCreateAppointmentRejectsUnknownDoctor(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateAppointment(repo, &auditRecorder{}, &versionRecorder{})

	in := createInput()
	in.DoctorID = 42

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "doctor_not_found"))
}

func TestCreateAppointmentRejectsBadDuration(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateAppointment(repo, &auditRecorder{}, &versionRecorder{})

	for _, d := range []int{0, 10, 300} {
		in := createInput()
		in.Duration = d

		_, err := uc.Execute(context.Background(), in)
		assert.True(t, httperr.IsBusiness(err, "invalid_duration"), "duração %d", d)
	}
}

// Duas recepcionistas disputando o mesmo horário: exatamente uma vence.
func TestCreateAppointmentConcurrentSameSlot(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateAppointment(repo, &auditRecorder{}, &versionRecorder{})

	const workers = 8

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := createInput()
			in.AppointmentNo = fmt.Sprintf("APT-%04d", i)
			_, errs[i] = uc.Execute(context.Background(), in)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.True(t, httperr.IsBusiness(err, "scheduling_conflict"))
	}
	assert.Equal(t, 1, successes)

	booked, err := repo.ListNonCancelledAppointments(context.Background(), 1, monday)
	require.NoError(t, err)
	assert.Len(t, booked, 1)
}
