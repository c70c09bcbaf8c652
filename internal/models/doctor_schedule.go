package models

import "time"

// Template semanal de atendimento do médico.
// Horários em wall-clock "HH:MM", um registro por dia da semana.
type DoctorSchedule struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	DoctorID uint `gorm:"index" json:"doctor_id"`
	Doctor   User `gorm:"foreignKey:DoctorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"doctor"`

	// monday | tuesday | ... | sunday
	DayOfWeek string `gorm:"size:10;not null" json:"day_of_week"`

	StartTime  string `gorm:"size:5;not null" json:"start_time"`
	EndTime    string `gorm:"size:5;not null" json:"end_time"`
	BreakStart string `gorm:"size:5" json:"break_start"`
	BreakEnd   string `gorm:"size:5" json:"break_end"`

	SlotDuration       int  `gorm:"default:30" json:"slot_duration"`
	MaxPatientsPerSlot int  `gorm:"default:1" json:"max_patients_per_slot"`
	IsActive           bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
