package models

import "time"

// Exceção pontual de agenda: bloqueio total do dia ou horário alternativo
// que substitui integralmente o template semanal naquela data.
type ScheduleException struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	DoctorID uint `gorm:"index" json:"doctor_id"`
	Doctor   User `gorm:"foreignKey:DoctorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"doctor"`

	// YYYY-MM-DD
	ExceptionDate string `gorm:"size:10;not null;index" json:"exception_date"`
	Reason        string `gorm:"size:255" json:"reason"`

	IsAvailable bool   `json:"is_available"`
	StartTime   string `gorm:"size:5" json:"start_time"`
	EndTime     string `gorm:"size:5" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
