package rental

import "github.com/BruksfildServices01/car-rental/internal/models"

// ===============================
// Availability side effects
// ===============================

// OnBookingCreated marks the booked car as taken. The caller persists the car
// in the same transaction as the booking insert.
func OnBookingCreated(car *models.Car) {
	car.IsAvailable = false
}

// OnBookingDeleted releases the car, whoever cancelled the booking.
func OnBookingDeleted(car *models.Car) {
	car.IsAvailable = true
}
