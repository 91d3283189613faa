package repository

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/car-rental/internal/domain/access"
	"github.com/BruksfildServices01/car-rental/internal/domain/rental"
	"github.com/BruksfildServices01/car-rental/internal/httperr"
	"github.com/BruksfildServices01/car-rental/internal/models"
)

type RentalGormRepository struct {
	db *gorm.DB
}

func NewRentalGormRepository(db *gorm.DB) *RentalGormRepository {
	return &RentalGormRepository{db: db}
}

// translate maps driver errors onto the domain sentinels.
func translate(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrap(rental.ErrNotFound, op)
	}
	if httperr.IsUniqueViolation(err) {
		var pgErr *pgconn.PgError
		errors.As(err, &pgErr)
		return errors.Wrap(&rental.DuplicateError{Field: uniqueField(pgErr.ConstraintName)}, op)
	}
	return errors.Wrap(err, op)
}

// uniqueField extracts the column from gorm's idx_<table>_<column> names.
func uniqueField(constraint string) string {
	parts := strings.SplitN(constraint, "_", 3)
	if len(parts) == 3 {
		return parts[2]
	}
	return constraint
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *RentalGormRepository) CreateUser(ctx context.Context, u *models.User) error {
	return translate(r.db.WithContext(ctx).Create(u).Error, "create user")
}

func (r *RentalGormRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err, "get user")
	}
	return &u, nil
}

func (r *RentalGormRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&u).Error; err != nil {
		return nil, translate(err, "get user by username")
	}
	return &u, nil
}

func (r *RentalGormRepository) UpdateUser(ctx context.Context, u *models.User) error {
	return translate(r.db.WithContext(ctx).Save(u).Error, "update user")
}

// --------------------------------------------------
// Cars
// --------------------------------------------------

func (r *RentalGormRepository) CreateCar(ctx context.Context, car *models.Car) error {
	return translate(r.db.WithContext(ctx).Create(car).Error, "create car")
}

func (r *RentalGormRepository) GetCar(ctx context.Context, id uint) (*models.Car, error) {
	var car models.Car
	if err := r.db.WithContext(ctx).First(&car, id).Error; err != nil {
		return nil, translate(err, "get car")
	}
	return &car, nil
}

func (r *RentalGormRepository) GetCarForUpdate(ctx context.Context, id uint) (*models.Car, error) {
	var car models.Car
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&car, id).Error; err != nil {
		return nil, translate(err, "lock car")
	}
	return &car, nil
}

func (r *RentalGormRepository) UpdateCar(ctx context.Context, car *models.Car) error {
	return translate(r.db.WithContext(ctx).Save(car).Error, "update car")
}

func (r *RentalGormRepository) ListCars(ctx context.Context) ([]models.Car, error) {
	var cars []models.Car
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&cars).Error; err != nil {
		return nil, translate(err, "list cars")
	}
	return cars, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *RentalGormRepository) SearchCars(ctx context.Context, query string, limit int) ([]models.Car, error) {
	q := r.db.WithContext(ctx)

	if query != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
		q = q.Where("LOWER(name) LIKE ?", like)
	}

	var cars []models.Car
	if err := q.
		Order("id ASC").
		Limit(limit).
		Find(&cars).Error; err != nil {
		return nil, translate(err, "search cars")
	}
	return cars, nil
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

func (r *RentalGormRepository) CreateBooking(ctx context.Context, b *models.Booking) error {
	return translate(
		r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error,
		"create booking",
	)
}

func (r *RentalGormRepository) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Car").
		First(&b, id).Error; err != nil {
		return nil, translate(err, "get booking")
	}
	return &b, nil
}

func (r *RentalGormRepository) GetBookingForUser(ctx context.Context, id uint, userID uint) (*models.Booking, error) {
	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Car").
		Where("id = ? AND user_id = ?", id, userID).
		First(&b).Error; err != nil {
		return nil, translate(err, "get booking for user")
	}
	return &b, nil
}

func (r *RentalGormRepository) DeleteBooking(ctx context.Context, b *models.Booking) error {
	res := r.db.WithContext(ctx).Delete(&models.Booking{}, b.ID)
	if res.Error != nil {
		return translate(res.Error, "delete booking")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(rental.ErrNotFound, "delete booking")
	}
	return nil
}

func (r *RentalGormRepository) ListBookingsForUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Car").
		Where("user_id = ?", userID).
		Order("start_date ASC, id ASC").
		Find(&bookings).Error; err != nil {
		return nil, translate(err, "list bookings for user")
	}
	return bookings, nil
}

func (r *RentalGormRepository) ListBookingsByUserRole(ctx context.Context, role access.Role) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Car").
		Preload("User").
		Joins("JOIN users ON users.id = bookings.user_id").
		Where("users.role = ?", string(role)).
		Order("bookings.start_date ASC, bookings.id ASC").
		Find(&bookings).Error; err != nil {
		return nil, translate(err, "list bookings by role")
	}
	return bookings, nil
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

func (r *RentalGormRepository) Transaction(ctx context.Context, fn func(tx rental.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&RentalGormRepository{db: tx})
	})
}

// Compile-time check
var _ rental.Repository = (*RentalGormRepository)(nil)
