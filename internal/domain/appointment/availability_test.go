package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MedAgendaServices/clinic-scheduler/internal/models"
)

func mondayTemplate() *models.DoctorSchedule {
	return &models.DoctorSchedule{
		DoctorID:   1,
		DayOfWeek:  "monday",
		StartTime:  "09:00",
		EndTime:    "17:00",
		BreakStart: "13:00",
		BreakEnd:   "14:00",
		IsActive:   true,
	}
}

func TestWindowFromSchedule(t *testing.T) {
	win, err := WindowFromSchedule(mondayTemplate())
	require.NoError(t, err)

	assert.Equal(t, 540, win.Start)
	assert.Equal(t, 1020, win.End)
	assert.True(t, win.HasBreak)
	assert.Equal(t, 780, win.BreakStart)
	assert.Equal(t, 840, win.BreakEnd)
}

func TestWindowFromScheduleWithoutBreak(t *testing.T) {
	sched := mondayTemplate()
	sched.BreakStart = ""
	sched.BreakEnd = ""

	win, err := WindowFromSchedule(sched)
	require.NoError(t, err)
	assert.False(t, win.HasBreak)
}

func TestWindowFromException(t *testing.T) {
	win, err := WindowFromException(&models.ScheduleException{
		IsAvailable: true,
		StartTime:   "08:00",
		EndTime:     "12:00",
	})
	require.NoError(t, err)

	assert.Equal(t, DayWindow{Start: 480, End: 720}, win)
	assert.False(t, win.HasBreak)
}

// Expediente 09:00–17:00, pausa 13:00–14:00, consulta marcada
// 10:00–10:30, duração pedida de 30 minutos.
func TestBuildSlotsFullDay(t *testing.T) {
	win, err := WindowFromSchedule(mondayTemplate())
	require.NoError(t, err)

	busy := []Interval{{Start: 600, End: 630}} // 10:00–10:30

	slots := BuildSlots(win, busy, 30)

	expected := []string{
		"09:00", "09:15", "09:30",
		"10:30", "10:45",
		"11:00", "11:15", "11:30", "11:45",
		"12:00", "12:15", "12:30", "12:45",
		"14:00", "14:15", "14:30", "14:45",
		"15:00", "15:15", "15:30", "15:45",
		"16:00", "16:15", "16:30",
	}
	assert.Equal(t, expected, slots)

	// 09:45–10:15 cruza a consulta marcada
	assert.NotContains(t, slots, "09:45")
	assert.NotContains(t, slots, "10:00")
	assert.NotContains(t, slots, "10:15")

	// nenhum início dentro da pausa [13:00, 14:00)
	for _, s := range []string{"13:00", "13:15", "13:30", "13:45"} {
		assert.NotContains(t, slots, s)
	}

	// 12:45 começa antes da pausa e a pausa não é intervalo ocupado
	assert.Contains(t, slots, "12:45")

	// 16:45 + 30min estoura as 17:00
	assert.NotContains(t, slots, "16:45")
}

func TestBuildSlotsExceptionWindow(t *testing.T) {
	win, err := WindowFromException(&models.ScheduleException{
		IsAvailable: true,
		StartTime:   "08:00",
		EndTime:     "12:00",
	})
	require.NoError(t, err)

	slots := BuildSlots(win, nil, 30)

	require.Len(t, slots, 15)
	assert.Equal(t, "08:00", slots[0])
	assert.Equal(t, "11:30", slots[len(slots)-1])
}

func TestBuildSlotsDurationExceedsWindow(t *testing.T) {
	win := DayWindow{Start: 540, End: 600}
	assert.Empty(t, BuildSlots(win, nil, 90))
}

func TestBuildSlotsDegenerateWindow(t *testing.T) {
	assert.Empty(t, BuildSlots(DayWindow{Start: 600, End: 600}, nil, 30))
	assert.Empty(t, BuildSlots(DayWindow{Start: 700, End: 600}, nil, 30))
}

func TestBuildSlotsSortedAscending(t *testing.T) {
	win, err := WindowFromSchedule(mondayTemplate())
	require.NoError(t, err)

	slots := BuildSlots(win, []Interval{{Start: 660, End: 720}}, 15)
	for i := 1; i < len(slots); i++ {
		assert.Less(t, slots[i-1], slots[i])
	}
}
