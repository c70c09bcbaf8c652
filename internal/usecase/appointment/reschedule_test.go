package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/MedAgendaServices/clinic-scheduler/internal/domain/appointment"
	"github.com/MedAgendaServices/clinic-scheduler/internal/httperr"
	"github.com/MedAgendaServices/clinic-scheduler/internal/models"
)

func TestRescheduleToFreeSlot(t *testing.T) {
	repo := newFakeRepo()
	id := seedScheduledAppointment(repo)

	auditRec := &auditRecorder{}
	versions := &versionRecorder{}
	uc := NewRescheduleAppointment(repo, auditRec, versions)

	ap, err := uc.Execute(context.Background(), RescheduleInput{
		AppointmentID: id,
		Date:          "2026-09-08",
		Time:          "11:00",
		Reason:        "médico indisponível",
		ActorID:       9,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusRescheduled), ap.Status)

	stored := repo.getStored(id)
	assert.Equal(t, "2026-09-08", stored.ScheduledDate)
	assert.Equal(t, "11:00", stored.ScheduledTime)
	assert.JSONEq(t, `{"date":"2026-09-07","time":"10:00"}`, stored.RescheduledFrom)

	require.Len(t, repo.histories, 1)
	assert.Equal(t, "scheduled", repo.histories[0].OldStatus)
	assert.Equal(t, "rescheduled", repo.histories[0].NewStatus)

	assert.Equal(t, 1, versions.count())
	assert.Equal(t, []string{"appointment_rescheduled"}, auditRec.actions())
}

// Remanejamento recusado não pode deixar rastro: registro, histórico e
// versão de cache ficam exatamente como estavam.
func TestRescheduleOverlapLeavesRecordUnchanged(t *testing.T) {
	repo := newFakeRepo()
	id := seedScheduledAppointment(repo)
	repo.addAppointment(models.Appointment{
		ID:                "ap-2",
		DoctorID:          1,
		Status:            string(domain.StatusConfirmed),
		ScheduledDate:     monday,
		ScheduledTime:     "11:00",
		EstimatedDuration: 30,
	})

	auditRec := &auditRecorder{}
	versions := &versionRecorder{}
	uc := NewRescheduleAppointment(repo, auditRec, versions)

	_, err := uc.Execute(context.Background(), RescheduleInput{
		AppointmentID: id,
		Date:          monday,
		Time:          "11:15", // cruza ap-2 (11:00–11:30)
		Reason:        "tentativa",
		ActorID:       9,
	})
	assert.True(t, httperr.IsBusiness(err, "scheduling_conflict"))

	stored := repo.getStored(id)
	assert.Equal(t, monday, stored.ScheduledDate)
	assert.Equal(t, "10:00", stored.ScheduledTime)
	assert.Equal(t, string(domain.StatusScheduled), stored.Status)
	assert.Empty(t, stored.RescheduledFrom)

	assert.Empty(t, repo.histories)
	assert.Equal(t, 0, versions.count())
	assert.Empty(t, auditRec.actions())
}

// O próprio registro nunca conta como conflito do novo horário.
func TestRescheduleOverOwnSlot(t *testing.T) {
	repo := newFakeRepo()
	id := seedScheduledAppointment(repo)
	uc := NewRescheduleAppointment(repo, &auditRecorder{}, &versionRecorder{})

	_, err := uc.Execute(context.Background(), RescheduleInput{
		AppointmentID: id,
		Date:          monday,
		Time:          "10:15", // cruza o horário atual do próprio registro
		Reason:        "ajuste fino",
		ActorID:       9,
	})
	assert.NoError(t, err)
}

// Horário liberado por status terminal pode receber o remanejamento.
func TestRescheduleOntoReleasedSlot(t *testing.T) {
	repo := newFakeRepo()
	id := seedScheduledAppointment(repo)
	repo.addAppointment(models.Appointment{
		ID:                "ap-2",
		DoctorID:          1,
		Status:            string(domain.StatusCompleted),
		ScheduledDate:     monday,
		ScheduledTime:     "11:00",
		EstimatedDuration: 30,
	})

	uc := NewRescheduleAppointment(repo, &auditRecorder{}, &versionRecorder{})

	_, err := uc.Execute(context.Background(), RescheduleInput{
		AppointmentID: id,
		Date:          monday,
		Time:          "11:00",
		Reason:        "encaixe",
		ActorID:       9,
	})
	assert.NoError(t, err)
}

func TestRescheduleUnknownAppointment(t *testing.T) {
	repo := newFakeRepo()
	uc := NewRescheduleAppointment(repo, &auditRecorder{}, &versionRecorder{})

	_, err := uc.Execute(context.Background(), RescheduleInput{
		AppointmentID: "nope",
		Date:          monday,
		Time:          "11:00",
		Reason:        "x",
		ActorID:       9,
	})
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}
