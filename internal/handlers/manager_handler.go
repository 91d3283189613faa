package handlers

import (
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/car-rental/internal/httperr"
	"github.com/BruksfildServices01/car-rental/internal/httpresp"
	"github.com/BruksfildServices01/car-rental/internal/middleware"
	ucBooking "github.com/BruksfildServices01/car-rental/internal/usecase/booking"
	ucCar "github.com/BruksfildServices01/car-rental/internal/usecase/car"
)

// ManagerHandler serves the /manager/ routes. The router guarantees the
// caller holds the manager role.
type ManagerHandler struct {
	createCar *ucCar.CreateCar
	list      *ucBooking.ListBookings
	cancel    *ucBooking.CancelBooking
}

func NewManagerHandler(
	createCar *ucCar.CreateCar,
	list *ucBooking.ListBookings,
	cancel *ucBooking.CancelBooking,
) *ManagerHandler {
	return &ManagerHandler{
		createCar: createCar,
		list:      list,
		cancel:    cancel,
	}
}

// GET /manager/dashboard/
func (h *ManagerHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"page": "manager_dashboard",
		"links": gin.H{
			"add_car":  "/manager/add_car/",
			"bookings": "/manager/bookings/",
			"cars":     "/cars/",
		},
	})
}

// --------------------------------------------------
// Cars
// --------------------------------------------------

// GET /manager/add_car/
func (h *ManagerHandler) AddCarForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"form": gin.H{
			"fields": []gin.H{
				{"name": "name", "type": "text", "required": true, "max_length": 100},
				{"name": "description", "type": "textarea", "required": false},
				{"name": "price_per_day", "type": "decimal", "required": true, "max_digits": 8, "decimal_places": 2},
				{"name": "is_available", "type": "checkbox", "required": false, "initial": true},
				{"name": "image", "type": "file", "required": false},
			},
		},
	})
}

// POST /manager/add_car/
func (h *ManagerHandler) AddCar(c *gin.Context) {
	in := ucCar.CreateCarInput{
		ManagerID:   middleware.Principal(c).UserID,
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		PricePerDay: c.PostForm("price_per_day"),
		IsAvailable: checkbox(c.PostForm("is_available")),
	}

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("image")
		switch {
		case err == nil:
			f, err := fh.Open()
			if err != nil {
				httperr.Invalid(c, map[string]string{"image": "The submitted file could not be read."})
				return
			}
			defer f.Close()
			in.Image = f
		case !errors.Is(err, http.ErrMissingFile):
			httperr.BadRequest(c, "invalid_request", "Malformed multipart body.")
			return
		}
	}

	if _, err := h.createCar.Execute(c.Request.Context(), in); err != nil {
		respondError(c, err)
		return
	}
	redirect(c, "/cars/")
}

func checkbox(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1":
		return true
	}
	return false
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

// GET /manager/bookings/
func (h *ManagerHandler) Bookings(c *gin.Context) {
	bookings, err := h.list.MadeByNormalUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, bookings)
}

// GET /manager/bookings/cancel/:booking_id/
func (h *ManagerHandler) CancelForm(c *gin.Context) {
	id, ok := pathID(c, "booking_id", "booking_not_found")
	if !ok {
		return
	}

	b, err := h.list.Any(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b, "confirm": "POST to cancel this booking."})
}

// POST /manager/bookings/cancel/:booking_id/
func (h *ManagerHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "booking_id", "booking_not_found")
	if !ok {
		return
	}

	if _, err := h.cancel.ExecuteAny(c.Request.Context(), middleware.Principal(c).UserID, id); err != nil {
		respondError(c, err)
		return
	}
	redirect(c, "/manager/bookings/")
}
