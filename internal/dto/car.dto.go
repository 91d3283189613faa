package dto

import "github.com/BruksfildServices01/car-rental/internal/money"

type CarSearchResult struct {
	ID          uint        `json:"id"`
	Name        string      `json:"name"`
	PricePerDay money.Money `json:"price_per_day"`
}

type CarSearchResponse struct {
	Results []CarSearchResult `json:"results"`
}
