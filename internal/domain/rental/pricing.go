package rental

import (
	"time"

	"github.com/BruksfildServices01/car-rental/internal/money"
	"github.com/BruksfildServices01/car-rental/internal/models"
)

const DateLayout = "2006-01-02"

// MaxTotalPrice is the largest value the booking total_price column holds.
var MaxTotalPrice = money.MustParse("9999999999.99")

// CivilDate drops the clock part of t, keeping its calendar date.
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD form value.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// InclusiveDays counts calendar days from start to end, both included.
// The result is zero or negative when start is after end.
func InclusiveDays(start, end time.Time) int64 {
	diff := CivilDate(end).Sub(CivilDate(start))
	return int64(diff/(24*time.Hour)) + 1
}

// ComputeTotalPrice returns days × pricePerDay for a valid range. ok is
// false when start is after end.
func ComputeTotalPrice(start, end time.Time, pricePerDay money.Money) (money.Money, bool) {
	if CivilDate(start).After(CivilDate(end)) {
		return money.Money{}, false
	}
	return pricePerDay.MulInt(InclusiveDays(start, end)), true
}

// TotalFits reports whether a computed total can be stored.
func TotalFits(total money.Money) bool {
	return total.Cmp(MaxTotalPrice) <= 0
}

// ApplyTotalPrice derives b.TotalPrice from the car's daily price. An
// inverted range leaves the field as it was.
func ApplyTotalPrice(b *models.Booking, pricePerDay money.Money) {
	total, ok := ComputeTotalPrice(b.StartDate, b.EndDate, pricePerDay)
	if !ok {
		return
	}
	b.TotalPrice = &total
}
