package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/MedAgendaServices/clinic-scheduler/internal/domain/appointment"
	"github.com/MedAgendaServices/clinic-scheduler/internal/httperr"
)

func TestCancelAppointment(t *testing.T) {
	repo := newFakeRepo()
	id := seedScheduledAppointment(repo)

	auditRec := &auditRecorder{}
	versions := &versionRecorder{}
	uc := NewCancelAppointment(repo, auditRec, versions)

	ap, err := uc.Execute(context.Background(), id, "paciente viajou", 7)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), ap.Status)

	stored := repo.getStored(id)
	assert.Equal(t, string(domain.StatusCancelled), stored.Status)
	assert.Equal(t, "paciente viajou", stored.CancellationReason)
	require.NotNil(t, stored.CancelledAt)
	require.NotNil(t, stored.CancelledBy)
	assert.Equal(t, uint(7), *stored.CancelledBy)

	require.Len(t, repo.histories, 1)
	assert.Equal(t, "scheduled", repo.histories[0].OldStatus)
	assert.Equal(t, "cancelled", repo.histories[0].NewStatus)

	assert.Equal(t, 1, versions.count())
	assert.Equal(t, []string{"appointment_cancelled"}, auditRec.actions())
}

func TestCancelAlreadyCancelledIsNoOp(t *testing.T) {
	repo := newFakeRepo()
	id := seedScheduledAppointment(repo)

	uc := NewCancelAppointment(repo, &auditRecorder{}, &versionRecorder{})

	_, err := uc.Execute(context.Background(), id, "primeiro motivo", 7)
	require.NoError(t, err)

	auditRec := &auditRecorder{}
	versions := &versionRecorder{}
	uc2 := NewCancelAppointment(repo, auditRec, versions)

	ap, err := uc2.Execute(context.Background(), id, "segundo motivo", 7)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), ap.Status)

	// motivo original preservado, nenhum efeito novo
	assert.Equal(t, "primeiro motivo", repo.getStored(id).CancellationReason)
	assert.Len(t, repo.histories, 1)
	assert.Equal(t, 0, versions.count())
	assert.Empty(t, auditRec.actions())
}

func TestCancelUnknownAppointment(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCancelAppointment(repo, &auditRecorder{}, &versionRecorder{})

	_, err := uc.Execute(context.Background(), "nope", "x", 7)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}
