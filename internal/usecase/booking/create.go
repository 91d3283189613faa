package booking

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/BruksfildServices01/car-rental/internal/audit"
	"github.com/BruksfildServices01/car-rental/internal/domain/rental"
	"github.com/BruksfildServices01/car-rental/internal/httperr"
	"github.com/BruksfildServices01/car-rental/internal/metrics"
	"github.com/BruksfildServices01/car-rental/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	UserID uint
	CarID  uint

	// YYYY-MM-DD, as submitted by the booking form.
	StartDate string
	EndDate   string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo    rental.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
}

func NewCreateBooking(
	repo rental.Repository,
	audit *audit.Dispatcher,
	metrics *metrics.Metrics,
) *CreateBooking {
	return &CreateBooking{
		repo:    repo,
		audit:   audit,
		metrics: metrics,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute stores the booking and marks the car unavailable in one
// transaction. Booking a car that is already unavailable is allowed; it is
// reported as a suspected overlap.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	var (
		created    *models.Booking
		wasBlocked bool
	)

	err := uc.repo.Transaction(ctx, func(tx rental.Repository) error {
		car, err := tx.GetCarForUpdate(ctx, in.CarID)
		if err != nil {
			if errors.Is(err, rental.ErrNotFound) {
				return httperr.ErrBusiness("car_not_found")
			}
			return err
		}

		start, err := rental.ParseDate(strings.TrimSpace(in.StartDate))
		if err != nil {
			return httperr.ErrBusiness("invalid_date")
		}
		end, err := rental.ParseDate(strings.TrimSpace(in.EndDate))
		if err != nil {
			return httperr.ErrBusiness("invalid_date")
		}

		b := &models.Booking{
			UserID:    in.UserID,
			CarID:     car.ID,
			StartDate: start,
			EndDate:   end,
		}
		rental.ApplyTotalPrice(b, car.PricePerDay)
		if b.TotalPrice != nil && !rental.TotalFits(*b.TotalPrice) {
			return httperr.ErrBusiness("total_price_too_large")
		}

		if err := tx.CreateBooking(ctx, b); err != nil {
			return err
		}

		wasBlocked = !car.IsAvailable
		rental.OnBookingCreated(car)
		if err := tx.UpdateCar(ctx, car); err != nil {
			return err
		}

		b.Car = *car
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.BookingsCreated.Inc()

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   audit.ActionBookingCreated,
		Entity:   "booking",
		EntityID: &created.ID,
		Metadata: map[string]any{
			"car_id":      created.CarID,
			"start_date":  created.StartDate.Format(rental.DateLayout),
			"end_date":    created.EndDate.Format(rental.DateLayout),
			"total_price": created.TotalPrice,
		},
	})

	if wasBlocked {
		uc.audit.Dispatch(audit.Event{
			UserID:   &in.UserID,
			Action:   audit.ActionBookingOverlapSuspected,
			Entity:   "car",
			EntityID: &created.CarID,
			Metadata: map[string]any{"booking_id": created.ID},
		})
	}

	return created, nil
}
