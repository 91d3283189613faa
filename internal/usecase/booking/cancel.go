package booking

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/BruksfildServices01/car-rental/internal/audit"
	"github.com/BruksfildServices01/car-rental/internal/domain/rental"
	"github.com/BruksfildServices01/car-rental/internal/httperr"
	"github.com/BruksfildServices01/car-rental/internal/metrics"
	"github.com/BruksfildServices01/car-rental/internal/models"
)

type CancelBooking struct {
	repo    rental.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
}

func NewCancelBooking(
	repo rental.Repository,
	audit *audit.Dispatcher,
	metrics *metrics.Metrics,
) *CancelBooking {
	return &CancelBooking{
		repo:    repo,
		audit:   audit,
		metrics: metrics,
	}
}

// ExecuteOwn deletes a booking only when userID owns it.
func (uc *CancelBooking) ExecuteOwn(
	ctx context.Context,
	userID uint,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.cancel(ctx, func(tx rental.Repository) (*models.Booking, error) {
		return tx.GetBookingForUser(ctx, bookingID, userID)
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.BookingsCancelled.WithLabelValues("owner").Inc()
	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   audit.ActionBookingCancelled,
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"car_id": b.CarID},
	})
	return b, nil
}

// ExecuteAny deletes any booking; the caller has already checked the
// manager role.
func (uc *CancelBooking) ExecuteAny(
	ctx context.Context,
	managerID uint,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.cancel(ctx, func(tx rental.Repository) (*models.Booking, error) {
		return tx.GetBooking(ctx, bookingID)
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.BookingsCancelled.WithLabelValues("manager").Inc()
	uc.audit.Dispatch(audit.Event{
		UserID:   &managerID,
		Action:   audit.ActionBookingCancelledManager,
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{
			"car_id":  b.CarID,
			"user_id": b.UserID,
		},
	})
	return b, nil
}

func (uc *CancelBooking) cancel(
	ctx context.Context,
	lookup func(tx rental.Repository) (*models.Booking, error),
) (*models.Booking, error) {

	var deleted *models.Booking

	err := uc.repo.Transaction(ctx, func(tx rental.Repository) error {
		b, err := lookup(tx)
		if err != nil {
			if errors.Is(err, rental.ErrNotFound) {
				return httperr.ErrBusiness("booking_not_found")
			}
			return err
		}

		if err := tx.DeleteBooking(ctx, b); err != nil {
			return err
		}

		car, err := tx.GetCarForUpdate(ctx, b.CarID)
		if err != nil {
			return err
		}
		rental.OnBookingDeleted(car)
		if err := tx.UpdateCar(ctx, car); err != nil {
			return err
		}

		b.Car = *car
		deleted = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
