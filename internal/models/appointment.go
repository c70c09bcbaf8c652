package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	// UUID opaco, nunca sequencial
	ID string `gorm:"primaryKey;size:36" json:"id"`

	AppointmentNo string `gorm:"size:30;uniqueIndex;not null" json:"appointment_no"`

	PatientID uint `gorm:"index" json:"patient_id"`
	Patient   User `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"patient"`

	DoctorID uint `gorm:"index" json:"doctor_id"`
	Doctor   User `gorm:"foreignKey:DoctorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"doctor"`

	AppointmentType string `gorm:"size:50" json:"appointment_type"`

	// scheduled | confirmed | in-progress | completed | cancelled | no-show | rescheduled
	Status string `gorm:"size:20;default:'scheduled';index" json:"status"`

	// YYYY-MM-DD + HH:MM no timezone da clínica
	ScheduledDate     string `gorm:"size:10;not null;index" json:"scheduled_date"`
	ScheduledTime     string `gorm:"size:5;not null" json:"scheduled_time"`
	EstimatedDuration int    `gorm:"not null" json:"estimated_duration"`

	// low | normal | high | urgent
	Priority string `gorm:"size:10;default:'normal'" json:"priority"`
	Reason   string `gorm:"size:1000" json:"reason"`
	Symptoms string `gorm:"size:1000" json:"symptoms"`

	ConsultationStartedAt *time.Time `json:"consultation_started_at"`
	ConsultationEndedAt   *time.Time `json:"consultation_ended_at"`

	CancelledAt        *time.Time `json:"cancelled_at"`
	CancelledBy        *uint      `json:"cancelled_by"`
	CancellationReason string     `gorm:"size:500" json:"cancellation_reason"`

	// JSON {date, time} com o horário anterior ao remanejamento
	RescheduledFrom string `gorm:"size:100" json:"rescheduled_from"`

	RecordedBy uint `json:"recorded_by"`

	StatusHistory []AppointmentStatusHistory `gorm:"foreignKey:AppointmentID;constraint:OnDelete:CASCADE;" json:"status_history,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
