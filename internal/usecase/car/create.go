package car

import (
	"context"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"

	"github.com/BruksfildServices01/car-rental/internal/audit"
	"github.com/BruksfildServices01/car-rental/internal/domain/rental"
	"github.com/BruksfildServices01/car-rental/internal/httperr"
	"github.com/BruksfildServices01/car-rental/internal/imaging"
	"github.com/BruksfildServices01/car-rental/internal/models"
	"github.com/BruksfildServices01/car-rental/internal/money"
	"github.com/BruksfildServices01/car-rental/internal/storage"
)

const maxNameLength = 100

// numeric(8,2) holds at most 999999.99.
var maxPrice = money.MustParse("999999.99")

// ======================================================
// INPUT
// ======================================================

type CreateCarInput struct {
	ManagerID uint

	Name        string
	Description string
	PricePerDay string
	IsAvailable bool

	// Image is nil when no file was uploaded.
	Image io.Reader
}

// ======================================================
// USE CASE
// ======================================================

type CreateCar struct {
	repo   rental.Repository
	images ImageStore
	cache  SearchCache
	audit  *audit.Dispatcher
}

func NewCreateCar(
	repo rental.Repository,
	images ImageStore,
	cache SearchCache,
	audit *audit.Dispatcher,
) *CreateCar {
	return &CreateCar{
		repo:   repo,
		images: images,
		cache:  cache,
		audit:  audit,
	}
}

func (uc *CreateCar) Execute(ctx context.Context, in CreateCarInput) (*models.Car, error) {
	car, err := validateCar(in)
	if err != nil {
		return nil, err
	}

	if in.Image != nil {
		encoded, err := imaging.ToWebP(in.Image)
		if err != nil {
			if errors.Is(err, imaging.ErrUnsupported) || errors.Is(err, imaging.ErrTooLarge) {
				return nil, (&httperr.ValidationError{}).Add("image", "Upload a valid JPEG, PNG, GIF or WebP image up to 10 MB.")
			}
			return nil, err
		}

		url, err := uc.images.Put(ctx, storage.ImageKey(car.Name, ".webp"), encoded, imaging.ContentType)
		if err != nil {
			return nil, errors.Wrap(err, "store car image")
		}
		car.Image = url
	}

	if err := uc.repo.CreateCar(ctx, car); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ManagerID,
		Action:   audit.ActionCarCreated,
		Entity:   "car",
		EntityID: &car.ID,
		Metadata: map[string]any{
			"name":          car.Name,
			"price_per_day": car.PricePerDay,
		},
	})

	return car, nil
}

func validateCar(in CreateCarInput) (*models.Car, error) {
	verr := &httperr.ValidationError{}

	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		verr.Add("name", "This field is required.")
	case utf8.RuneCountInString(name) > maxNameLength:
		verr.Add("name", "Ensure this value has at most 100 characters.")
	}

	var price money.Money
	if strings.TrimSpace(in.PricePerDay) == "" {
		verr.Add("price_per_day", "This field is required.")
	} else if p, err := money.Parse(in.PricePerDay); err != nil {
		verr.Add("price_per_day", "Enter a number.")
	} else if p.IsNegative() {
		verr.Add("price_per_day", "Ensure this value is greater than or equal to 0.")
	} else if p.Cmp(maxPrice) > 0 {
		verr.Add("price_per_day", "Ensure that there are no more than 6 digits before the decimal point.")
	} else {
		price = p
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	return &models.Car{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		PricePerDay: price,
		IsAvailable: in.IsAvailable,
	}, nil
}
