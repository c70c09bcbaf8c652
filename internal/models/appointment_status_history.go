package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Trilha imutável de transições de status: um registro por mudança,
// nunca atualizado ou removido fora do cascade do agendamento.
type AppointmentStatusHistory struct {
	ID            string `gorm:"primaryKey;size:36" json:"id"`
	AppointmentID string `gorm:"size:36;index;not null" json:"appointment_id"`

	UserID *uint `json:"user_id"`
	User   User  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	OldStatus string `gorm:"size:20" json:"old_status"`
	NewStatus string `gorm:"size:20;not null" json:"new_status"`
	Notes     string `gorm:"size:500" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
}

func (h *AppointmentStatusHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
