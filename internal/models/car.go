package models

import (
	"time"

	"github.com/BruksfildServices01/car-rental/internal/money"
)

type Car struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Name        string      `gorm:"size:100;not null" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	PricePerDay money.Money `gorm:"type:numeric(8,2);not null" json:"price_per_day"`
	IsAvailable bool        `gorm:"not null;index" json:"is_available"`

	// Image is the public URL of the stored picture, empty when none was uploaded.
	Image string `gorm:"size:500" json:"image"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
