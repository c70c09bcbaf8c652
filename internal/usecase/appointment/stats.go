package appointment

import (
	"context"

	domain "github.com/MedAgendaServices/clinic-scheduler/internal/domain/appointment"
	"github.com/MedAgendaServices/clinic-scheduler/internal/timezone"
)

type GetStats struct {
	repo domain.Repository
}

func NewGetStats(repo domain.Repository) *GetStats {
	return &GetStats{repo: repo}
}

// doctorID nil → visão da clínica inteira (admin).
func (uc *GetStats) Execute(
	ctx context.Context,
	doctorID *uint,
) (*domain.Stats, error) {

	clinic, err := uc.repo.GetClinic(ctx)
	if err != nil {
		return nil, err
	}

	today := timezone.NowIn(clinic.Timezone).Format("2006-01-02")

	return uc.repo.GetStats(ctx, doctorID, today)
}
