package models

import (
	"time"

	"github.com/BruksfildServices01/car-rental/internal/money"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	CarID uint `gorm:"not null;index" json:"car_id"`
	Car   Car  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"car"`

	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`

	// TotalPrice stays nil when the date range is inverted.
	TotalPrice *money.Money `gorm:"type:numeric(12,2)" json:"total_price"`

	CreatedAt time.Time `json:"created_at"`
}
