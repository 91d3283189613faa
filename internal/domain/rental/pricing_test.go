package rental

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/car-rental/internal/money"
	"github.com/BruksfildServices01/car-rental/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeTotalPrice(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		price string
		want  string
	}{
		{"three inclusive days", date(2025, 10, 20), date(2025, 10, 22), "100", "300.00"},
		{"same day is one day", date(2025, 10, 20), date(2025, 10, 20), "49.90", "49.90"},
		{"across month end", date(2025, 10, 20), date(2025, 11, 25), "50.00", "1850.00"},
		{"across dst change", date(2025, 3, 29), date(2025, 3, 31), "10.10", "30.30"},
		{"beyond a price column", date(2025, 10, 20), date(2025, 10, 21), "600000.00", "1200000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, ok := ComputeTotalPrice(tt.start, tt.end, money.MustParse(tt.price))
			require.True(t, ok)
			assert.Equal(t, tt.want, total.String())
		})
	}
}

func TestComputeTotalPrice_InvertedRange(t *testing.T) {
	_, ok := ComputeTotalPrice(date(2025, 10, 22), date(2025, 10, 20), money.FromInt(100))
	assert.False(t, ok)
}

func TestComputeTotalPrice_IgnoresClock(t *testing.T) {
	start := time.Date(2025, 10, 20, 23, 59, 0, 0, time.UTC)
	end := time.Date(2025, 10, 21, 0, 1, 0, 0, time.UTC)

	total, ok := ComputeTotalPrice(start, end, money.FromInt(20))
	require.True(t, ok)
	assert.Equal(t, "40.00", total.String())
}

func TestApplyTotalPrice(t *testing.T) {
	b := &models.Booking{StartDate: date(2025, 10, 20), EndDate: date(2025, 10, 22)}
	ApplyTotalPrice(b, money.FromInt(100))
	require.NotNil(t, b.TotalPrice)
	assert.Equal(t, "300.00", b.TotalPrice.String())

	inverted := &models.Booking{StartDate: date(2025, 10, 22), EndDate: date(2025, 10, 20)}
	ApplyTotalPrice(inverted, money.FromInt(100))
	assert.Nil(t, inverted.TotalPrice)

	preset := money.FromInt(7)
	kept := &models.Booking{StartDate: date(2025, 10, 22), EndDate: date(2025, 10, 20), TotalPrice: &preset}
	ApplyTotalPrice(kept, money.FromInt(100))
	assert.Equal(t, "7.00", kept.TotalPrice.String())
}

func TestAvailabilityToggles(t *testing.T) {
	car := &models.Car{IsAvailable: true}

	OnBookingCreated(car)
	assert.False(t, car.IsAvailable)

	OnBookingDeleted(car)
	assert.True(t, car.IsAvailable)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-10-20")
	require.NoError(t, err)
	assert.Equal(t, date(2025, 10, 20), d)

	_, err = ParseDate("20/10/2025")
	assert.Error(t, err)
}

func TestTotalFits(t *testing.T) {
	assert.True(t, TotalFits(money.MustParse("1200000.00")))
	assert.True(t, TotalFits(MaxTotalPrice))
	assert.False(t, TotalFits(money.MustParse("10000000000.00")))
}
