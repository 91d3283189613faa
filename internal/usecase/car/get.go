package car

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/BruksfildServices01/car-rental/internal/domain/rental"
	"github.com/BruksfildServices01/car-rental/internal/httperr"
	"github.com/BruksfildServices01/car-rental/internal/models"
)

type GetCars struct {
	repo rental.Repository
}

func NewGetCars(repo rental.Repository) *GetCars {
	return &GetCars{repo: repo}
}

func (uc *GetCars) List(ctx context.Context) ([]models.Car, error) {
	return uc.repo.ListCars(ctx)
}

func (uc *GetCars) One(ctx context.Context, id uint) (*models.Car, error) {
	car, err := uc.repo.GetCar(ctx, id)
	if err != nil {
		if errors.Is(err, rental.ErrNotFound) {
			return nil, httperr.ErrBusiness("car_not_found")
		}
		return nil, err
	}
	return car, nil
}
