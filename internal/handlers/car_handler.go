package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/car-rental/internal/dto"
	"github.com/BruksfildServices01/car-rental/internal/httpresp"
	ucCar "github.com/BruksfildServices01/car-rental/internal/usecase/car"
)

type CarHandler struct {
	cars   *ucCar.GetCars
	search *ucCar.SearchCars
}

func NewCarHandler(cars *ucCar.GetCars, search *ucCar.SearchCars) *CarHandler {
	return &CarHandler{cars: cars, search: search}
}

// GET /cars/
func (h *CarHandler) List(c *gin.Context) {
	cars, err := h.cars.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, cars)
}

// GET /car/:car_id/
func (h *CarHandler) Detail(c *gin.Context) {
	id, ok := pathID(c, "car_id", "car_not_found")
	if !ok {
		return
	}

	car, err := h.cars.One(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, gin.H{"car": car})
}

// GET /api/search/?q=
func (h *CarHandler) Search(c *gin.Context) {
	results, err := h.search.Execute(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, dto.CarSearchResponse{Results: results})
}
