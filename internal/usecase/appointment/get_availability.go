package appointment

import (
	"context"

	domain "github.com/MedAgendaServices/clinic-scheduler/internal/domain/appointment"
	"github.com/MedAgendaServices/clinic-scheduler/internal/httperr"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute resolve os horários livres do médico na data:
//
//  1. exceção bloqueando o dia → lista vazia, template ignorado;
//  2. exceção com horário alternativo → janela da exceção, sem pausa;
//  3. senão, template semanal ativo (sem template → lista vazia);
//  4. subtrai pausa e agendamentos ocupantes na grade de 15 minutos.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]string, error) {

	if in.Duration < domain.MinSlotDurationMinutes {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	if _, err := domain.ParseDate(in.Date); err != nil {
		return nil, err
	}

	var win domain.DayWindow

	exc, err := uc.repo.GetScheduleException(ctx, in.DoctorID, in.Date)
	if err != nil {
		return nil, err
	}

	switch {
	case exc != nil && !exc.IsAvailable:
		// médico bloqueado na data
		return []string{}, nil

	case exc != nil:
		win, err = domain.WindowFromException(exc)
		if err != nil {
			return nil, err
		}

	default:
		dayOfWeek, err := domain.DayOfWeek(in.Date)
		if err != nil {
			return nil, err
		}

		sched, err := uc.repo.GetSchedule(ctx, in.DoctorID, dayOfWeek)
		if err != nil {
			return nil, err
		}
		if sched == nil {
			return []string{}, nil
		}

		win, err = domain.WindowFromSchedule(sched)
		if err != nil {
			return nil, err
		}
	}

	booked, err := uc.repo.ListOccupyingAppointments(ctx, in.DoctorID, in.Date)
	if err != nil {
		return nil, err
	}

	busy := make([]domain.Interval, 0, len(booked))
	for i := range booked {
		iv, err := domain.BusyInterval(&booked[i])
		if err != nil {
			continue
		}
		busy = append(busy, iv)
	}

	return domain.BuildSlots(win, busy, in.Duration), nil
}
