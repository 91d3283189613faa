package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/car-rental/internal/httperr"
)

var messages = map[string]string{
	"car_not_found":         "Car not found.",
	"booking_not_found":     "Booking not found.",
	"user_not_found":        "User not found.",
	"invalid_date":          "Dates must use the YYYY-MM-DD format.",
	"total_price_too_large": "The booking period is too long for this car's price.",
	"invalid_credentials":   "Please enter a correct username and password.",
	"invalid_old_password":  "Your old password was entered incorrectly.",
	"password_mismatch":     "The two password fields didn't match.",
	"username_taken":        "A user with that username already exists.",
	"email_taken":           "A user with that email already exists.",
}

// respondError maps use case errors to HTTP responses. Anything that is not
// a business or validation error is logged and reported as a 500.
func respondError(c *gin.Context, err error) {
	var verr *httperr.ValidationError
	if errors.As(err, &verr) {
		httperr.Invalid(c, verr.Fields)
		return
	}

	code := httperr.Code(err)
	msg := messages[code]

	switch {
	case code == "":
		log.Printf("%s %s: %+v", c.Request.Method, c.Request.URL.Path, err)
		httperr.Internal(c, "internal_error", "Something went wrong.")
	case strings.HasSuffix(code, "_not_found"):
		httperr.NotFound(c, code, msg)
	case code == "invalid_credentials":
		httperr.Unauthorized(c, code, msg)
	case strings.HasSuffix(code, "_taken"):
		httperr.Conflict(c, code, msg)
	default:
		httperr.BadRequest(c, code, msg)
	}
}

// pathID reads an integer route parameter. Anything else is a 404, the same
// as an unknown id.
func pathID(c *gin.Context, name, notFoundCode string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.NotFound(c, notFoundCode, messages[notFoundCode])
		return 0, false
	}
	return uint(id), true
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}
