package httperr

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestBusinessCodes(t *testing.T) {
	err := errors.Wrap(ErrBusiness("car_not_found"), "book car")

	assert.True(t, IsBusiness(err, "car_not_found"))
	assert.False(t, IsBusiness(err, "booking_not_found"))
	assert.Equal(t, "car_not_found", Code(err))
	assert.Equal(t, "", Code(errors.New("boom")))
}

func TestPgClassification(t *testing.T) {
	unique := errors.Wrap(&pgconn.PgError{Code: "23505"}, "insert user")
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsForeignKeyViolation(unique))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
}
