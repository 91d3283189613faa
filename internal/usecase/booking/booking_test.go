package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/car-rental/internal/audit"
	"github.com/BruksfildServices01/car-rental/internal/domain/access"
	"github.com/BruksfildServices01/car-rental/internal/httperr"
	"github.com/BruksfildServices01/car-rental/internal/infra/repository"
	"github.com/BruksfildServices01/car-rental/internal/metrics"
	"github.com/BruksfildServices01/car-rental/internal/models"
	"github.com/BruksfildServices01/car-rental/internal/money"
)

type fixture struct {
	repo    *repository.RentalMemoryRepository
	create  *CreateBooking
	cancel  *CancelBooking
	list    *ListBookings
	normal  models.User
	other   models.User
	manager models.User
	car     models.Car
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	repo := repository.NewRentalMemoryRepository()
	dispatcher := audit.NewDispatcher(audit.Discard{})
	t.Cleanup(dispatcher.Close)
	m := metrics.New()

	f := &fixture{
		repo:    repo,
		create:  NewCreateBooking(repo, dispatcher, m),
		cancel:  NewCancelBooking(repo, dispatcher, m),
		list:    NewListBookings(repo, "UTC"),
		normal:  models.User{Username: "testuser", Email: "t@example.com", Role: string(access.RoleNormalUser)},
		other:   models.User{Username: "other", Email: "o@example.com", Role: string(access.RoleNormalUser)},
		manager: models.User{Username: "manager", Email: "m@example.com", Role: string(access.RoleManager)},
		car:     models.Car{Name: "Toyota Corolla", PricePerDay: money.FromInt(100), IsAvailable: true},
	}
	require.NoError(t, repo.CreateUser(ctx, &f.normal))
	require.NoError(t, repo.CreateUser(ctx, &f.other))
	require.NoError(t, repo.CreateUser(ctx, &f.manager))
	require.NoError(t, repo.CreateCar(ctx, &f.car))
	return f
}

func (f *fixture) book(t *testing.T, userID uint) *models.Booking {
	t.Helper()
	b, err := f.create.Execute(context.Background(), CreateBookingInput{
		UserID: userID, CarID: f.car.ID, StartDate: "2025-10-20", EndDate: "2025-10-22",
	})
	require.NoError(t, err)
	return b
}

func (f *fixture) carAvailable(t *testing.T) bool {
	t.Helper()
	car, err := f.repo.GetCar(context.Background(), f.car.ID)
	require.NoError(t, err)
	return car.IsAvailable
}

// TestCreateBooking_PricesAndBlocksCar covers the 3 days × 100 example.
func TestCreateBooking_PricesAndBlocksCar(t *testing.T) {
	f := newFixture(t)

	b := f.book(t, f.normal.ID)

	require.NotNil(t, b.TotalPrice)
	assert.Equal(t, "300.00", b.TotalPrice.String())
	assert.Equal(t, f.normal.ID, b.UserID)
	assert.False(t, f.carAvailable(t))
}

func TestCreateBooking_ManagerAlsoBlocksCar(t *testing.T) {
	f := newFixture(t)

	f.book(t, f.manager.ID)

	assert.False(t, f.carAvailable(t))
}

func TestCreateBooking_InvalidDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.create.Execute(context.Background(), CreateBookingInput{
		UserID: f.normal.ID, CarID: f.car.ID, StartDate: "20-10-2025", EndDate: "2025-10-22",
	})

	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
	assert.True(t, f.carAvailable(t), "failed booking must not touch the car")
}

func TestCreateBooking_MissingCar(t *testing.T) {
	f := newFixture(t)

	_, err := f.create.Execute(context.Background(), CreateBookingInput{
		UserID: f.normal.ID, CarID: 999, StartDate: "bad", EndDate: "bad",
	})

	assert.True(t, httperr.IsBusiness(err, "car_not_found"))
}

func TestCreateBooking_InvertedRangeLeavesPriceUnset(t *testing.T) {
	f := newFixture(t)

	b, err := f.create.Execute(context.Background(), CreateBookingInput{
		UserID: f.normal.ID, CarID: f.car.ID, StartDate: "2025-10-22", EndDate: "2025-10-20",
	})

	require.NoError(t, err)
	assert.Nil(t, b.TotalPrice)
	assert.False(t, f.carAvailable(t))
}

func TestCreateBooking_TotalAboveDailyPriceLimit(t *testing.T) {
	f := newFixture(t)
	pricey := models.Car{Name: "Ferrari", PricePerDay: money.MustParse("600000.00"), IsAvailable: true}
	require.NoError(t, f.repo.CreateCar(context.Background(), &pricey))

	b, err := f.create.Execute(context.Background(), CreateBookingInput{
		UserID: f.normal.ID, CarID: pricey.ID, StartDate: "2025-10-20", EndDate: "2025-10-21",
	})

	require.NoError(t, err)
	assert.Equal(t, "1200000.00", b.TotalPrice.String())
}

func TestCreateBooking_TotalTooLarge(t *testing.T) {
	f := newFixture(t)
	pricey := models.Car{Name: "Ferrari", PricePerDay: money.MustParse("999999.99"), IsAvailable: true}
	require.NoError(t, f.repo.CreateCar(context.Background(), &pricey))

	_, err := f.create.Execute(context.Background(), CreateBookingInput{
		UserID: f.normal.ID, CarID: pricey.ID, StartDate: "2025-01-01", EndDate: "2055-01-01",
	})

	assert.True(t, httperr.IsBusiness(err, "total_price_too_large"))
	car, err := f.repo.GetCar(context.Background(), pricey.ID)
	require.NoError(t, err)
	assert.True(t, car.IsAvailable)
}

// TestCreateBooking_UnavailableCarStillBooks documents the missing overlap check.
func TestCreateBooking_UnavailableCarStillBooks(t *testing.T) {
	f := newFixture(t)

	f.book(t, f.normal.ID)
	second := f.book(t, f.other.ID)

	assert.NotZero(t, second.ID)
	bookings, err := f.repo.ListBookingsByUserRole(context.Background(), access.RoleNormalUser)
	require.NoError(t, err)
	assert.Len(t, bookings, 2)
}

func TestCancelOwn_OnlyOwner(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, f.normal.ID)

	_, err := f.cancel.ExecuteOwn(context.Background(), f.other.ID, b.ID)
	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))
	assert.False(t, f.carAvailable(t))

	_, err = f.cancel.ExecuteOwn(context.Background(), f.normal.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, f.carAvailable(t))

	_, err = f.cancel.ExecuteOwn(context.Background(), f.normal.ID, b.ID)
	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))
}

func TestCancelAny_ReleasesCar(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, f.normal.ID)

	deleted, err := f.cancel.ExecuteAny(context.Background(), f.manager.ID, b.ID)

	require.NoError(t, err)
	assert.Equal(t, b.ID, deleted.ID)
	assert.True(t, deleted.Car.IsAvailable)
	assert.True(t, f.carAvailable(t))
}

func TestListBookings_Mine(t *testing.T) {
	f := newFixture(t)
	f.book(t, f.normal.ID)
	f.book(t, f.other.ID)

	f.list.now = func() time.Time { return time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC) }
	resp, err := f.list.Mine(context.Background(), f.normal.ID)

	require.NoError(t, err)
	assert.Equal(t, "2025-10-01", resp.Today)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "Toyota Corolla", resp.Bookings[0].CarName)
	assert.Equal(t, "2025-10-20", resp.Bookings[0].StartDate)
	assert.True(t, resp.Bookings[0].Upcoming)
}

func TestListBookings_MadeByNormalUsers(t *testing.T) {
	f := newFixture(t)
	f.book(t, f.normal.ID)
	f.book(t, f.manager.ID)

	items, err := f.list.MadeByNormalUsers(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "testuser", items[0].Username)
	assert.Equal(t, "300.00", items[0].TotalPrice.String())
}
