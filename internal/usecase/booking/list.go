package booking

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/BruksfildServices01/car-rental/internal/domain/access"
	"github.com/BruksfildServices01/car-rental/internal/domain/rental"
	"github.com/BruksfildServices01/car-rental/internal/dto"
	"github.com/BruksfildServices01/car-rental/internal/httperr"
	"github.com/BruksfildServices01/car-rental/internal/models"
	"github.com/BruksfildServices01/car-rental/internal/timezone"
)

type ListBookings struct {
	repo     rental.Repository
	timezone string
	now      func() time.Time
}

func NewListBookings(repo rental.Repository, tz string) *ListBookings {
	return &ListBookings{
		repo:     repo,
		timezone: tz,
		now:      time.Now,
	}
}

// Mine lists the caller's bookings together with today's date.
func (uc *ListBookings) Mine(
	ctx context.Context,
	userID uint,
) (*dto.MyBookingsResponse, error) {

	bookings, err := uc.repo.ListBookingsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := timezone.TodayIn(uc.timezone, uc.now())

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toListDTO(b, today))
	}

	return &dto.MyBookingsResponse{
		Today:    today.Format(rental.DateLayout),
		Bookings: out,
		Total:    len(out),
	}, nil
}

// MadeByNormalUsers is the manager's overview.
func (uc *ListBookings) MadeByNormalUsers(ctx context.Context) ([]dto.BookingListDTO, error) {
	bookings, err := uc.repo.ListBookingsByUserRole(ctx, access.RoleNormalUser)
	if err != nil {
		return nil, err
	}

	today := timezone.TodayIn(uc.timezone, uc.now())

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		item := toListDTO(b, today)
		item.Username = b.User.Username
		out = append(out, item)
	}
	return out, nil
}

// Own loads one booking of userID, for the cancel confirmation.
func (uc *ListBookings) Own(ctx context.Context, userID, bookingID uint) (*dto.BookingListDTO, error) {
	b, err := uc.repo.GetBookingForUser(ctx, bookingID, userID)
	return uc.single(b, err)
}

// Any loads any booking, for the manager cancel confirmation.
func (uc *ListBookings) Any(ctx context.Context, bookingID uint) (*dto.BookingListDTO, error) {
	b, err := uc.repo.GetBooking(ctx, bookingID)
	return uc.single(b, err)
}

func (uc *ListBookings) single(b *models.Booking, err error) (*dto.BookingListDTO, error) {
	if err != nil {
		if errors.Is(err, rental.ErrNotFound) {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return nil, err
	}
	item := toListDTO(*b, timezone.TodayIn(uc.timezone, uc.now()))
	return &item, nil
}

func toListDTO(b models.Booking, today time.Time) dto.BookingListDTO {
	return dto.BookingListDTO{
		ID:         b.ID,
		CarID:      b.CarID,
		CarName:    b.Car.Name,
		CarImage:   b.Car.Image,
		StartDate:  b.StartDate.Format(rental.DateLayout),
		EndDate:    b.EndDate.Format(rental.DateLayout),
		TotalPrice: b.TotalPrice,
		Upcoming:   rental.CivilDate(b.StartDate).After(today),
	}
}
