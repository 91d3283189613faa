package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_ListFiltersAndPages(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, m.Log(ctx, Event{Action: ActionBookingCreated, Entity: "booking"}))
	}
	require.NoError(t, m.Log(ctx, Event{Action: ActionCarCreated, Entity: "car", Metadata: map[string]any{"name": "Civic"}}))

	all, err := m.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), all.Total)
	assert.Equal(t, DefaultLimit, all.Limit)
	require.Len(t, all.Logs, 4)
	assert.Equal(t, ActionCarCreated, all.Logs[0].Action)
	assert.JSONEq(t, `{"name":"Civic"}`, all.Logs[0].Metadata)

	bookings, err := m.List(ctx, Filter{Action: ActionBookingCreated, Limit: 2, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), bookings.Total)
	assert.Len(t, bookings.Logs, 1)

	tomorrow := time.Now().Add(24 * time.Hour)
	none, err := m.List(ctx, Filter{From: &tomorrow})
	require.NoError(t, err)
	assert.Zero(t, none.Total)
	assert.NotNil(t, none.Logs)
}
