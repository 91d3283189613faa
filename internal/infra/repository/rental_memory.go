package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/BruksfildServices01/car-rental/internal/domain/access"
	"github.com/BruksfildServices01/car-rental/internal/domain/rental"
	"github.com/BruksfildServices01/car-rental/internal/models"
)

// RentalMemoryRepository keeps everything in process memory. It backs
// STORAGE_BACKEND=memory and the handler tests.
type RentalMemoryRepository struct {
	// txMu serialises transactions; mu guards the maps.
	txMu sync.Mutex
	mu   sync.RWMutex

	state memoryState
}

type memoryState struct {
	users    map[uint]models.User
	cars     map[uint]models.Car
	bookings map[uint]models.Booking
	nextID   uint
}

func (s memoryState) clone() memoryState {
	out := memoryState{
		users:    make(map[uint]models.User, len(s.users)),
		cars:     make(map[uint]models.Car, len(s.cars)),
		bookings: make(map[uint]models.Booking, len(s.bookings)),
		nextID:   s.nextID,
	}
	for k, v := range s.users {
		out.users[k] = v
	}
	for k, v := range s.cars {
		out.cars[k] = v
	}
	for k, v := range s.bookings {
		out.bookings[k] = v
	}
	return out
}

func NewRentalMemoryRepository() *RentalMemoryRepository {
	return &RentalMemoryRepository{
		state: memoryState{
			users:    map[uint]models.User{},
			cars:     map[uint]models.Car{},
			bookings: map[uint]models.Booking{},
		},
	}
}

func (r *RentalMemoryRepository) id() uint {
	r.state.nextID++
	return r.state.nextID
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *RentalMemoryRepository) CreateUser(_ context.Context, u *models.User) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	return r.createUser(u)
}

func (r *RentalMemoryRepository) createUser(u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.state.users {
		if existing.Username == u.Username {
			return &rental.DuplicateError{Field: "username"}
		}
		if existing.Email == u.Email {
			return &rental.DuplicateError{Field: "email"}
		}
	}

	now := time.Now()
	u.ID = r.id()
	u.CreatedAt, u.UpdatedAt = now, now
	r.state.users[u.ID] = *u
	return nil
}

func (r *RentalMemoryRepository) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.state.users[id]
	if !ok {
		return nil, errors.Wrap(rental.ErrNotFound, "get user")
	}
	return &u, nil
}

func (r *RentalMemoryRepository) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.state.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, errors.Wrap(rental.ErrNotFound, "get user by username")
}

func (r *RentalMemoryRepository) UpdateUser(_ context.Context, u *models.User) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	return r.updateUser(u)
}

func (r *RentalMemoryRepository) updateUser(u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.users[u.ID]; !ok {
		return errors.Wrap(rental.ErrNotFound, "update user")
	}
	u.UpdatedAt = time.Now()
	r.state.users[u.ID] = *u
	return nil
}

// --------------------------------------------------
// Cars
// --------------------------------------------------

func (r *RentalMemoryRepository) CreateCar(_ context.Context, car *models.Car) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	return r.createCar(car)
}

func (r *RentalMemoryRepository) createCar(car *models.Car) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	car.ID = r.id()
	car.CreatedAt, car.UpdatedAt = now, now
	r.state.cars[car.ID] = *car
	return nil
}

func (r *RentalMemoryRepository) GetCar(_ context.Context, id uint) (*models.Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	car, ok := r.state.cars[id]
	if !ok {
		return nil, errors.Wrap(rental.ErrNotFound, "get car")
	}
	return &car, nil
}

// GetCarForUpdate needs no row lock here: transactions are already serialised.
func (r *RentalMemoryRepository) GetCarForUpdate(ctx context.Context, id uint) (*models.Car, error) {
	return r.GetCar(ctx, id)
}

func (r *RentalMemoryRepository) UpdateCar(_ context.Context, car *models.Car) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	return r.updateCar(car)
}

func (r *RentalMemoryRepository) updateCar(car *models.Car) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.cars[car.ID]; !ok {
		return errors.Wrap(rental.ErrNotFound, "update car")
	}
	car.UpdatedAt = time.Now()
	r.state.cars[car.ID] = *car
	return nil
}

func (r *RentalMemoryRepository) ListCars(_ context.Context) ([]models.Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedCars(func(models.Car) bool { return true }, 0), nil
}

func (r *RentalMemoryRepository) SearchCars(_ context.Context, query string, limit int) ([]models.Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(query)
	return r.sortedCars(func(c models.Car) bool {
		return strings.Contains(strings.ToLower(c.Name), needle)
	}, limit), nil
}

func (r *RentalMemoryRepository) sortedCars(keep func(models.Car) bool, limit int) []models.Car {
	out := make([]models.Car, 0, len(r.state.cars))
	for _, c := range r.state.cars {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

func (r *RentalMemoryRepository) CreateBooking(_ context.Context, b *models.Booking) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	return r.createBooking(b)
}

func (r *RentalMemoryRepository) createBooking(b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.users[b.UserID]; !ok {
		return errors.Newf("create booking: user %d does not exist", b.UserID)
	}
	if _, ok := r.state.cars[b.CarID]; !ok {
		return errors.Newf("create booking: car %d does not exist", b.CarID)
	}

	b.ID = r.id()
	b.CreatedAt = time.Now()
	stored := *b
	stored.Car, stored.User = models.Car{}, models.User{}
	r.state.bookings[b.ID] = stored
	return nil
}

// withRelations fills Car and User the way gorm preloads do.
func (r *RentalMemoryRepository) withRelations(b models.Booking) models.Booking {
	b.Car = r.state.cars[b.CarID]
	b.User = r.state.users[b.UserID]
	return b
}

func (r *RentalMemoryRepository) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.state.bookings[id]
	if !ok {
		return nil, errors.Wrap(rental.ErrNotFound, "get booking")
	}
	b = r.withRelations(b)
	return &b, nil
}

func (r *RentalMemoryRepository) GetBookingForUser(ctx context.Context, id uint, userID uint) (*models.Booking, error) {
	b, err := r.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, errors.Wrap(rental.ErrNotFound, "get booking for user")
	}
	return b, nil
}

func (r *RentalMemoryRepository) DeleteBooking(_ context.Context, b *models.Booking) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	return r.deleteBooking(b)
}

func (r *RentalMemoryRepository) deleteBooking(b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.bookings[b.ID]; !ok {
		return errors.Wrap(rental.ErrNotFound, "delete booking")
	}
	delete(r.state.bookings, b.ID)
	return nil
}

func (r *RentalMemoryRepository) ListBookingsForUser(_ context.Context, userID uint) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedBookings(func(b models.Booking) bool { return b.UserID == userID }), nil
}

func (r *RentalMemoryRepository) ListBookingsByUserRole(_ context.Context, role access.Role) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedBookings(func(b models.Booking) bool {
		return r.state.users[b.UserID].Role == string(role)
	}), nil
}

func (r *RentalMemoryRepository) sortedBookings(keep func(models.Booking) bool) []models.Booking {
	out := make([]models.Booking, 0)
	for _, b := range r.state.bookings {
		if keep(b) {
			out = append(out, r.withRelations(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

// Transaction restores the previous state when fn fails. Writes made
// outside a transaction also take txMu, so a rollback never discards them.
// Ids stay monotonic across rollbacks.
func (r *RentalMemoryRepository) Transaction(_ context.Context, fn func(tx rental.Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.mu.RLock()
	snapshot := r.state.clone()
	r.mu.RUnlock()

	if err := fn(memoryTx{r}); err != nil {
		r.mu.Lock()
		snapshot.nextID = r.state.nextID
		r.state = snapshot
		r.mu.Unlock()
		return err
	}
	return nil
}

// memoryTx is the repository handed to a transaction body. txMu is already
// held, so its writes skip it.
type memoryTx struct {
	*RentalMemoryRepository
}

func (tx memoryTx) CreateUser(_ context.Context, u *models.User) error { return tx.createUser(u) }
func (tx memoryTx) UpdateUser(_ context.Context, u *models.User) error { return tx.updateUser(u) }
func (tx memoryTx) CreateCar(_ context.Context, car *models.Car) error { return tx.createCar(car) }
func (tx memoryTx) UpdateCar(_ context.Context, car *models.Car) error { return tx.updateCar(car) }

func (tx memoryTx) CreateBooking(_ context.Context, b *models.Booking) error {
	return tx.createBooking(b)
}

func (tx memoryTx) DeleteBooking(_ context.Context, b *models.Booking) error {
	return tx.deleteBooking(b)
}

// Transaction nests into the outer one.
func (tx memoryTx) Transaction(_ context.Context, fn func(tx rental.Repository) error) error {
	return fn(tx)
}

// Compile-time check
var (
	_ rental.Repository = (*RentalMemoryRepository)(nil)
	_ rental.Repository = memoryTx{}
)
