package car

import (
	"context"

	"github.com/BruksfildServices01/car-rental/internal/dto"
)

// ImageStore persists an encoded picture and returns its public URL.
type ImageStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type SearchCache interface {
	Get(ctx context.Context, query string) ([]dto.CarSearchResult, bool)
	Set(ctx context.Context, query string, results []dto.CarSearchResult)
	Invalidate(ctx context.Context)
}
