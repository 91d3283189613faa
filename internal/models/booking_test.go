package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func columnType(t *testing.T, model any, field string) string {
	t.Helper()
	s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	f := s.LookUpField(field)
	require.NotNil(t, f, field)
	return f.TagSettings["TYPE"]
}

// A total can be many times the largest daily price.
func TestMoneyColumns(t *testing.T) {
	assert.Equal(t, "numeric(8,2)", columnType(t, &Car{}, "PricePerDay"))
	assert.Equal(t, "numeric(12,2)", columnType(t, &Booking{}, "TotalPrice"))
}
