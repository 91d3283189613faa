package rental

import (
	"context"

	"github.com/BruksfildServices01/car-rental/internal/domain/access"
	"github.com/BruksfildServices01/car-rental/internal/models"
)

// Repository is the persistence port of the rental domain. Lookups return
// ErrNotFound for missing rows and writes return ErrDuplicate on unique
// violations.
type Repository interface {
	// -------- Users --------
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error

	// -------- Cars --------
	CreateCar(ctx context.Context, car *models.Car) error
	GetCar(ctx context.Context, id uint) (*models.Car, error)
	// GetCarForUpdate locks the row until the surrounding transaction ends.
	GetCarForUpdate(ctx context.Context, id uint) (*models.Car, error)
	UpdateCar(ctx context.Context, car *models.Car) error
	ListCars(ctx context.Context) ([]models.Car, error)
	// SearchCars matches name case-insensitively, ordered by id.
	SearchCars(ctx context.Context, query string, limit int) ([]models.Car, error)

	// -------- Bookings --------
	CreateBooking(ctx context.Context, b *models.Booking) error
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	GetBookingForUser(ctx context.Context, id uint, userID uint) (*models.Booking, error)
	DeleteBooking(ctx context.Context, b *models.Booking) error
	ListBookingsForUser(ctx context.Context, userID uint) ([]models.Booking, error)
	// ListBookingsByUserRole preloads both Car and User.
	ListBookingsByUserRole(ctx context.Context, role access.Role) ([]models.Booking, error)

	// Transaction runs fn against a repository bound to a single transaction.
	Transaction(ctx context.Context, fn func(tx Repository) error) error
}
