package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/car-rental/internal/domain/rental"
	"github.com/BruksfildServices01/car-rental/internal/middleware"
	"github.com/BruksfildServices01/car-rental/internal/models"
	ucBooking "github.com/BruksfildServices01/car-rental/internal/usecase/booking"
	ucCar "github.com/BruksfildServices01/car-rental/internal/usecase/car"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	cars   *ucCar.GetCars
	create *ucBooking.CreateBooking
	cancel *ucBooking.CancelBooking
	list   *ucBooking.ListBookings
}

func NewBookingHandler(
	cars *ucCar.GetCars,
	create *ucBooking.CreateBooking,
	cancel *ucBooking.CancelBooking,
	list *ucBooking.ListBookings,
) *BookingHandler {
	return &BookingHandler{
		cars:   cars,
		create: create,
		cancel: cancel,
		list:   list,
	}
}

// ======================================================
// BOOK
// ======================================================

// GET /book/:car_id/
func (h *BookingHandler) BookForm(c *gin.Context) {
	id, ok := pathID(c, "car_id", "car_not_found")
	if !ok {
		return
	}

	car, err := h.cars.One(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"car": car,
		"form": gin.H{
			"fields": []string{"start_date", "end_date"},
			"format": "YYYY-MM-DD",
		},
	})
}

// POST /book/:car_id/
func (h *BookingHandler) Book(c *gin.Context) {
	id, ok := pathID(c, "car_id", "car_not_found")
	if !ok {
		return
	}

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		UserID:    middleware.Principal(c).UserID,
		CarID:     id,
		StartDate: c.PostForm("start_date"),
		EndDate:   c.PostForm("end_date"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"booking": bookingPayload(b)})
}

// ======================================================
// MY BOOKINGS
// ======================================================

// GET /my_bookings/
func (h *BookingHandler) Mine(c *gin.Context) {
	resp, err := h.list.Mine(c.Request.Context(), middleware.Principal(c).UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ======================================================
// CANCEL (OWNER)
// ======================================================

// GET /cancel_booking/:booking_id/
func (h *BookingHandler) CancelForm(c *gin.Context) {
	id, ok := pathID(c, "booking_id", "booking_not_found")
	if !ok {
		return
	}

	b, err := h.list.Own(c.Request.Context(), middleware.Principal(c).UserID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b, "confirm": "POST to cancel this booking."})
}

// POST /cancel_booking/:booking_id/
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "booking_id", "booking_not_found")
	if !ok {
		return
	}

	if _, err := h.cancel.ExecuteOwn(c.Request.Context(), middleware.Principal(c).UserID, id); err != nil {
		respondError(c, err)
		return
	}
	redirect(c, "/my_bookings/")
}

func bookingPayload(b *models.Booking) gin.H {
	return gin.H{
		"id":          b.ID,
		"car_id":      b.CarID,
		"car_name":    b.Car.Name,
		"start_date":  b.StartDate.Format(rental.DateLayout),
		"end_date":    b.EndDate.Format(rental.DateLayout),
		"total_price": b.TotalPrice,
	}
}
