package dto

import "github.com/BruksfildServices01/car-rental/internal/money"

type BookingListDTO struct {
	ID         uint         `json:"id"`
	CarID      uint         `json:"car_id"`
	CarName    string       `json:"car_name"`
	CarImage   string       `json:"car_image,omitempty"`
	Username   string       `json:"username,omitempty"`
	StartDate  string       `json:"start_date"`
	EndDate    string       `json:"end_date"`
	TotalPrice *money.Money `json:"total_price"`
	// Upcoming is true while the rental has not started yet.
	Upcoming bool `json:"upcoming"`
}

type MyBookingsResponse struct {
	Today    string           `json:"today"`
	Bookings []BookingListDTO `json:"bookings"`
	Total    int              `json:"total"`
}

