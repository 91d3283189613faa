package car

import (
	"context"

	"github.com/BruksfildServices01/car-rental/internal/domain/rental"
	"github.com/BruksfildServices01/car-rental/internal/dto"
	"github.com/BruksfildServices01/car-rental/internal/metrics"
)

// SearchLimit caps the number of search results.
const SearchLimit = 5

type SearchCars struct {
	repo    rental.Repository
	cache   SearchCache
	metrics *metrics.Metrics
}

func NewSearchCars(repo rental.Repository, cache SearchCache, m *metrics.Metrics) *SearchCars {
	return &SearchCars{repo: repo, cache: cache, metrics: m}
}

// Execute matches query against car names case-insensitively. An empty
// query matches every car, still capped at SearchLimit. The query is used
// as typed, surrounding spaces included.
func (uc *SearchCars) Execute(ctx context.Context, query string) ([]dto.CarSearchResult, error) {
	if cached, ok := uc.cache.Get(ctx, query); ok {
		uc.metrics.SearchCache.WithLabelValues("hit").Inc()
		return cached, nil
	}
	uc.metrics.SearchCache.WithLabelValues("miss").Inc()

	cars, err := uc.repo.SearchCars(ctx, query, SearchLimit)
	if err != nil {
		return nil, err
	}

	results := make([]dto.CarSearchResult, 0, len(cars))
	for _, c := range cars {
		results = append(results, dto.CarSearchResult{
			ID:          c.ID,
			Name:        c.Name,
			PricePerDay: c.PricePerDay,
		})
	}

	uc.cache.Set(ctx, query, results)
	return results, nil
}
