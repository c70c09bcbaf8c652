package models

import "time"

// Clinic é um registro único: o primeiro cadastro cria a linha.
type Clinic struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	// IANA, ex: Africa/Lagos
	Timezone string `gorm:"size:64;default:'Africa/Lagos'" json:"timezone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
